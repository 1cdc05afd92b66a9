package runner

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/thesyncim/glasscheck/pkg/browser"
)

func TestKindOf(t *testing.T) {
	refused := errors.New("net::ERR_CONNECTION_REFUSED")

	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, KindNone},
		{"navigation", &NavigationError{URL: "http://localhost:3000", Err: refused}, KindNavigation},
		{"wrapped navigation", fmt.Errorf("case: %w", &NavigationError{Err: refused}), KindNavigation},
		{"assertion", &AssertionError{Pattern: "/x/", Actual: "y"}, KindAssertion},
		{"launch", &LaunchError{Engine: browser.WebKit, Err: refused}, KindLaunch},
		{"canceled", context.Canceled, KindCanceled},
		{"deadline", fmt.Errorf("wait: %w", context.DeadlineExceeded), KindCanceled},
		{"navigation cut by cancel", &NavigationError{Err: context.Canceled}, KindNavigation},
		{"other", errors.New("boom"), KindOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "navigation", KindNavigation.String())
	assert.Equal(t, "assertion", KindAssertion.String())
	assert.Equal(t, "launch", KindLaunch.String())
	assert.Equal(t, "canceled", KindCanceled.String())
	assert.Equal(t, "none", KindNone.String())
	assert.Equal(t, "other", KindOther.String())
}

func TestErrorMessages(t *testing.T) {
	refused := errors.New("connection refused")

	nav := &NavigationError{URL: "http://localhost:3000", Err: refused}
	assert.Equal(t, "navigation to http://localhost:3000 failed: connection refused", nav.Error())
	assert.ErrorIs(t, nav, refused)

	mismatch := &AssertionError{Pattern: "/Liquid Glass/i", Actual: "Something Else", Timeout: 5 * time.Second}
	assert.Equal(t, `expected page title to match /Liquid Glass/i, got "Something Else" (waited 5s)`, mismatch.Error())

	unreadable := &AssertionError{Pattern: "/x/", Timeout: time.Second, Err: refused}
	assert.Contains(t, unreadable.Error(), ": connection refused")
	assert.ErrorIs(t, unreadable, refused)

	launch := &LaunchError{Engine: browser.Firefox, Err: refused}
	assert.Equal(t, "failed to start firefox: connection refused", launch.Error())
}

func TestSummary(t *testing.T) {
	s := &Summary{Results: []Result{
		{Project: "chromium", Status: StatusPassed},
		{Project: "firefox", Status: StatusFailed, Err: &AssertionError{}},
		{Project: "webkit", Status: StatusPassed},
	}}

	assert.Equal(t, 3, s.Total())
	assert.Equal(t, 2, s.Passed())
	assert.Equal(t, 1, s.Failed())
	assert.Len(t, s.Failures(), 1)
	assert.Equal(t, KindAssertion, s.Failures()[0].Kind())
	assert.ErrorIs(t, s.Err(), ErrTestsFailed)

	assert.NoError(t, (&Summary{}).Err())
}
