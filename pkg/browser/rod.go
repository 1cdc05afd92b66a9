package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// RodLauncher drives Chrome/Chromium over the DevTools protocol using Rod.
// Rod speaks CDP only, so it supports the chromium engine alone.
type RodLauncher struct{}

// NewRodLauncher creates a RodLauncher. Rod downloads a Chromium build on
// first use if no system browser is found.
func NewRodLauncher() *RodLauncher {
	return &RodLauncher{}
}

// Name implements Launcher.
func (*RodLauncher) Name() string { return DriverRod }

// Supports implements Launcher.
func (*RodLauncher) Supports(e Engine) bool { return e == Chromium }

// Launch starts a headless Chrome configured for container use:
//   - No sandbox (for container compatibility)
//   - No GPU
func (r *RodLauncher) Launch(ctx context.Context, e Engine, opts Options) (Browser, error) {
	if !r.Supports(e) {
		return nil, fmt.Errorf("%w: driver %s cannot launch %s", ErrUnsupportedEngine, DriverRod, e)
	}

	l := launcher.New().
		Context(ctx).
		Headless(opts.Headless).
		Set("no-sandbox").
		Set("disable-gpu")

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch Chrome: %w", err)
	}

	browser := rod.New().ControlURL(url)
	if err := browser.Connect(); err != nil {
		discard(l)
		return nil, fmt.Errorf("failed to connect to Chrome: %w", err)
	}

	return &rodBrowser{
		launcher: l,
		browser:  browser,
		timeout:  opts.Timeout,
	}, nil
}

// chromeProcess is the part of *launcher.Launcher that owns the process.
type chromeProcess interface {
	Kill()
	Cleanup()
}

var _ chromeProcess = (*launcher.Launcher)(nil)

// discard kills a Chrome that will never be used and removes its
// user-data dir. Cleanup waits for the process to exit, so Kill goes first.
func discard(p chromeProcess) {
	p.Kill()
	p.Cleanup()
}

// Close implements Launcher. Rod keeps no driver-wide state.
func (*RodLauncher) Close() error { return nil }

type rodBrowser struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
}

func (b *rodBrowser) NewPage(ctx context.Context) (Page, error) {
	page, err := b.browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	return &rodPage{page: page, timeout: b.timeout}, nil
}

// Close shuts the browser down and removes its user-data dir.
// Always call this (via defer) to prevent orphaned Chrome processes.
func (b *rodBrowser) Close() error {
	err := b.browser.Close()
	b.launcher.Cleanup()
	return err
}

type rodPage struct {
	page    *rod.Page
	timeout time.Duration
}

func (p *rodPage) Navigate(ctx context.Context, url string) error {
	page := p.page.Context(ctx)
	if p.timeout > 0 {
		page = page.Timeout(p.timeout)
		// Cancel timeout so later calls on the page are not bound by it
		defer page.CancelTimeout()
	}

	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("failed waiting for load of %s: %w", url, err)
	}
	return nil
}

func (p *rodPage) Title(ctx context.Context) (string, error) {
	info, err := p.page.Context(ctx).Info()
	if err != nil {
		return "", fmt.Errorf("failed to read title: %w", err)
	}
	return info.Title, nil
}

func (p *rodPage) Close() error {
	return p.page.Close()
}
