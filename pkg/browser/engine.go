// Package browser wraps real browser automation drivers behind a small
// launcher/browser/page interface so the runner can drive any engine the
// same way.
package browser

import (
	"errors"
	"fmt"
	"strings"
)

// Engine identifies a browser engine a project runs against.
type Engine string

const (
	Chromium Engine = "chromium"
	Firefox  Engine = "firefox"
	WebKit   Engine = "webkit"
)

// ErrUnknownEngine is returned by ParseEngine for identifiers outside
// Engines().
var ErrUnknownEngine = errors.New("unknown browser engine")

// ErrUnsupportedEngine is returned when a launcher cannot drive an engine.
var ErrUnsupportedEngine = errors.New("browser engine not supported by driver")

// Engines returns every known engine in canonical order.
func Engines() []Engine {
	return []Engine{Chromium, Firefox, WebKit}
}

// ParseEngine converts a browserName value into an Engine.
func ParseEngine(s string) (Engine, error) {
	e := Engine(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Engines() {
		if e == known {
			return e, nil
		}
	}
	return "", fmt.Errorf("%w: %q (want one of chromium, firefox, webkit)", ErrUnknownEngine, s)
}

// String implements fmt.Stringer.
func (e Engine) String() string {
	return string(e)
}
