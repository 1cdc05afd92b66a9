package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/thesyncim/glasscheck/pkg/browser"
)

// ErrTestsFailed is returned by Summary.Err when at least one test failed.
var ErrTestsFailed = errors.New("tests failed")

// ErrorKind classifies why a test failed.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	// KindNavigation: the target could not be loaded (connection refused,
	// DNS failure, navigation timeout).
	KindNavigation
	// KindAssertion: the page loaded but its title never matched.
	KindAssertion
	// KindLaunch: the browser could not be started or a page not opened.
	KindLaunch
	// KindCanceled: the run was interrupted before the test finished.
	KindCanceled
	// KindOther: any error not covered above.
	KindOther
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNavigation:
		return "navigation"
	case KindAssertion:
		return "assertion"
	case KindLaunch:
		return "launch"
	case KindCanceled:
		return "canceled"
	default:
		return "other"
	}
}

// NavigationError reports that URL could not be loaded.
type NavigationError struct {
	URL string
	Err error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigation to %s failed: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// AssertionError reports a title that did not match within the expect
// timeout. Actual is the last title observed.
type AssertionError struct {
	Pattern string
	Actual  string
	Timeout time.Duration
	Err     error // last error reading the title, if any
}

func (e *AssertionError) Error() string {
	msg := fmt.Sprintf("expected page title to match %s, got %q (waited %v)", e.Pattern, e.Actual, e.Timeout)
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *AssertionError) Unwrap() error { return e.Err }

// LaunchError reports that a browser session could not be established.
type LaunchError struct {
	Engine browser.Engine
	Err    error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Engine, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// KindOf classifies err. Typed errors win over context errors they wrap,
// so a navigation cut short by cancellation is still a navigation failure.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}

	var (
		navErr    *NavigationError
		assertErr *AssertionError
		launchErr *LaunchError
	)
	switch {
	case errors.As(err, &navErr):
		return KindNavigation
	case errors.As(err, &assertErr):
		return KindAssertion
	case errors.As(err, &launchErr):
		return KindLaunch
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	default:
		return KindOther
	}
}
