package browser

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Driver names accepted by NewLauncher.
const (
	DriverPlaywright = "playwright"
	DriverRod        = "rod"
)

// ErrUnknownDriver is returned by NewLauncher for an unrecognised driver name.
var ErrUnknownDriver = errors.New("unknown browser driver")

// Options configures a browser launch.
type Options struct {
	Headless bool          // Run without a visible window (default: true)
	Timeout  time.Duration // Navigation timeout (default: 30s)
}

// DefaultOptions returns sensible defaults for smoke testing.
func DefaultOptions() Options {
	return Options{
		Headless: true,
		Timeout:  30 * time.Second,
	}
}

// Launcher starts browser sessions for one or more engines.
type Launcher interface {
	// Name returns the driver name, e.g. "playwright".
	Name() string
	// Supports reports whether Launch can start the given engine.
	Supports(e Engine) bool
	// Launch starts a new browser. The caller owns the result and must
	// Close it.
	Launch(ctx context.Context, e Engine, opts Options) (Browser, error)
	// Close releases driver-wide resources. Browsers must be closed first.
	Close() error
}

// Browser is a running browser session.
type Browser interface {
	// NewPage opens a fresh, isolated page.
	NewPage(ctx context.Context) (Page, error)
	Close() error
}

// Page is a single tab.
type Page interface {
	// Navigate loads url and waits for the load event.
	Navigate(ctx context.Context, url string) error
	// Title returns the current document title.
	Title(ctx context.Context) (string, error)
	Close() error
}

// NewLauncher returns the launcher for the named driver.
func NewLauncher(driver string) (Launcher, error) {
	switch driver {
	case DriverPlaywright, "":
		return NewPlaywrightLauncher(), nil
	case DriverRod:
		return NewRodLauncher(), nil
	default:
		return nil, fmt.Errorf("%w: %q (want %q or %q)", ErrUnknownDriver, driver, DriverPlaywright, DriverRod)
	}
}

// CheckSupport returns ErrUnsupportedEngine if l cannot drive any of engines.
func CheckSupport(l Launcher, engines ...Engine) error {
	for _, e := range engines {
		if !l.Supports(e) {
			return fmt.Errorf("%w: driver %s cannot launch %s", ErrUnsupportedEngine, l.Name(), e)
		}
	}
	return nil
}
