package browser

import (
	"context"
	"fmt"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightLauncher drives chromium, firefox and webkit through the
// Playwright driver. The driver process is started on the first Launch and
// shared by every browser until Close.
type PlaywrightLauncher struct {
	mu sync.Mutex
	pw *playwright.Playwright
}

// NewPlaywrightLauncher creates a PlaywrightLauncher. Browsers must already
// be installed (`go run github.com/playwright-community/playwright-go/cmd/playwright install`).
func NewPlaywrightLauncher() *PlaywrightLauncher {
	return &PlaywrightLauncher{}
}

// Name implements Launcher.
func (*PlaywrightLauncher) Name() string { return DriverPlaywright }

// Supports implements Launcher.
func (*PlaywrightLauncher) Supports(e Engine) bool {
	switch e {
	case Chromium, Firefox, WebKit:
		return true
	}
	return false
}

func (p *PlaywrightLauncher) driver() (*playwright.Playwright, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pw != nil {
		return p.pw, nil
	}
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright driver: %w", err)
	}
	p.pw = pw
	return pw, nil
}

// Launch implements Launcher.
func (p *PlaywrightLauncher) Launch(ctx context.Context, e Engine, opts Options) (Browser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pw, err := p.driver()
	if err != nil {
		return nil, err
	}

	var bt playwright.BrowserType
	switch e {
	case Chromium:
		bt = pw.Chromium
	case Firefox:
		bt = pw.Firefox
	case WebKit:
		bt = pw.WebKit
	default:
		return nil, fmt.Errorf("%w: driver %s cannot launch %s", ErrUnsupportedEngine, DriverPlaywright, e)
	}

	b, err := bt.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to launch %s: %w", e, err)
	}

	return &pwBrowser{browser: b, timeout: float64(opts.Timeout.Milliseconds())}, nil
}

// Close stops the shared driver process.
func (p *PlaywrightLauncher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pw == nil {
		return nil
	}
	err := p.pw.Stop()
	p.pw = nil
	return err
}

type pwBrowser struct {
	browser playwright.Browser
	timeout float64 // milliseconds, 0 disables
}

func (b *pwBrowser) NewPage(ctx context.Context) (Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page, err := b.browser.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	return &pwPage{page: page, timeout: b.timeout}, nil
}

func (b *pwBrowser) Close() error {
	return b.browser.Close()
}

type pwPage struct {
	page    playwright.Page
	timeout float64
}

// Playwright calls take no context. Closing the page makes a pending
// Goto or Title return, so cancellation does not wait for the timeout.
func (p *pwPage) abort() {
	_ = p.page.Close()
}

func (p *pwPage) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	stop := abortOnDone(ctx, p.abort)
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		Timeout:   playwright.Float(p.timeout),
		WaitUntil: playwright.WaitUntilStateLoad,
	})
	stop()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("navigation to %s aborted: %w", url, ctxErr)
		}
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

func (p *pwPage) Title(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stop := abortOnDone(ctx, p.abort)
	title, err := p.page.Title()
	stop()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("failed to read title: %w", err)
	}
	return title, nil
}

// abortOnDone calls abort if ctx is done before stop is called.
// stop is safe to call more than once.
func abortOnDone(ctx context.Context, abort func()) (stop func()) {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			abort()
		case <-done:
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}

func (p *pwPage) Close() error {
	return p.page.Close()
}
