package runner

import (
	"context"
	"errors"
	"html"
	"io"
	"net/http"
	"regexp"
	"sync"
	"time"

	"github.com/thesyncim/glasscheck/pkg/browser"
)

// fakeLauncher implements browser.Launcher without a real browser. Pages
// either fetch the URL over HTTP and extract <title>, or replay a fixed
// sequence of titles.
type fakeLauncher struct {
	supported map[browser.Engine]bool // nil means all engines
	launchErr map[browser.Engine]error
	titles    []string // if set, pages replay these instead of fetching

	mu        sync.Mutex
	launched  []browser.Engine
	closed    int
	active    int
	maxActive int
}

func (f *fakeLauncher) Name() string { return "fake" }

func (f *fakeLauncher) Supports(e browser.Engine) bool {
	return f.supported == nil || f.supported[e]
}

func (f *fakeLauncher) Launch(ctx context.Context, e browser.Engine, opts browser.Options) (browser.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.launchErr[e]; err != nil {
		return nil, err
	}
	f.launched = append(f.launched, e)
	f.active++
	if f.active > f.maxActive {
		f.maxActive = f.active
	}
	return &fakeBrowser{launcher: f, timeout: opts.Timeout}, nil
}

func (f *fakeLauncher) Close() error { return nil }

func (f *fakeLauncher) launchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.launched)
}

type fakeBrowser struct {
	launcher *fakeLauncher
	timeout  time.Duration
}

func (b *fakeBrowser) NewPage(ctx context.Context) (browser.Page, error) {
	// Give concurrent projects a chance to overlap so worker limits show.
	time.Sleep(10 * time.Millisecond)
	if b.launcher.titles != nil {
		return &scriptedPage{titles: b.launcher.titles}, nil
	}
	return &httpPage{client: &http.Client{Timeout: b.timeout}}, nil
}

func (b *fakeBrowser) Close() error {
	b.launcher.mu.Lock()
	defer b.launcher.mu.Unlock()
	b.launcher.closed++
	b.launcher.active--
	return nil
}

var titleRe = regexp.MustCompile(`(?is)<title>(.*?)</title>`)

type httpPage struct {
	client *http.Client
	title  string
}

func (p *httpPage) Navigate(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if m := titleRe.FindSubmatch(body); m != nil {
		p.title = html.UnescapeString(string(m[1]))
	}
	return nil
}

func (p *httpPage) Title(ctx context.Context) (string, error) { return p.title, nil }

func (p *httpPage) Close() error { return nil }

// scriptedPage returns titles in order, then repeats the last one.
type scriptedPage struct {
	titles []string
	calls  int
}

func (p *scriptedPage) Navigate(ctx context.Context, url string) error { return nil }

func (p *scriptedPage) Title(ctx context.Context) (string, error) {
	if len(p.titles) == 0 {
		return "", errors.New("no title")
	}
	i := p.calls
	if i >= len(p.titles) {
		i = len(p.titles) - 1
	}
	p.calls++
	return p.titles[i], nil
}

func (p *scriptedPage) Close() error { return nil }

// recordingReporter captures reporter calls.
type recordingReporter struct {
	total   int
	results []Result
	summary *Summary
	began   int
	ended   int
}

func (r *recordingReporter) Begin(total int) {
	r.began++
	r.total = total
}

func (r *recordingReporter) Result(res Result) { r.results = append(r.results, res) }

func (r *recordingReporter) End(s *Summary) {
	r.ended++
	r.summary = s
}
