//go:build e2e

// Package e2e runs the smoke tests against real browsers.
//
// These tests are isolated from the standard test suite via build tags.
// They require Playwright's browsers to be installed and are intended for
// CI pipelines or explicit local testing.
//
// Installing browsers:
//
//	go run github.com/playwright-community/playwright-go/cmd/playwright install --with-deps
//
// Running E2E tests:
//
//	go test -tags=e2e ./e2e/...
//
// Running all tests except E2E:
//
//	go test ./...
//
// E2E tests use:
//   - Playwright for chromium, firefox and webkit
//   - Rod for an additional chromium pass over CDP
//   - the liquid-glass-demo server as the target page
//
// Test isolation:
// Each test starts its own demo server on a random port and its own
// browsers. The shipped-suite test binds :3000 and skips if it is taken.
package e2e
