// Package runner executes smoke test cases across the configured project
// matrix. Each project gets its own browser session; projects run in
// parallel up to the configured worker count, and the cases inside a
// project run sequentially on that session.
package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/thesyncim/glasscheck/internal/clock"
	"github.com/thesyncim/glasscheck/pkg/browser"
	"github.com/thesyncim/glasscheck/pkg/config"
	"github.com/thesyncim/glasscheck/pkg/smoke"
)

// DefaultPollInterval is how often a title assertion re-reads the title.
const DefaultPollInterval = 100 * time.Millisecond

// Reporter receives run progress. Calls are serialized by the runner.
type Reporter interface {
	// Begin is called once before any test runs.
	Begin(total int)
	// Result is called as each test finishes.
	Result(r Result)
	// End is called once with the final summary.
	End(s *Summary)
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the structured logger. Default: no-op.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithReporter sets the progress reporter. Default: none.
func WithReporter(rep Reporter) Option {
	return func(r *Runner) {
		r.reporter = rep
	}
}

// WithClock sets the clock used to measure durations.
// Title assertions still poll and time out on wall time, so a frozen
// clock.Mock does not stall them.
// Default: clock.System.
func WithClock(c clock.Clock) Option {
	return func(r *Runner) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithPollInterval sets how often title assertions poll.
// Default: 100ms.
func WithPollInterval(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.pollInterval = d
		}
	}
}

// WithProjects restricts the run to a subset of the config's projects.
// Default: all projects.
func WithProjects(projects []config.Project) Option {
	return func(r *Runner) {
		r.projects = projects
	}
}

// Runner runs cases against every selected project.
type Runner struct {
	cfg          *config.Config
	launcher     browser.Launcher
	projects     []config.Project
	engines      []browser.Engine
	logger       *zap.Logger
	reporter     Reporter
	clock        clock.Clock
	pollInterval time.Duration

	reportMu sync.Mutex
}

// New validates cfg and checks that launcher can drive every selected
// project before anything is started.
func New(cfg *config.Config, launcher browser.Launcher, opts ...Option) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("runner: nil config")
	}
	if launcher == nil {
		return nil, errors.New("runner: nil launcher")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Runner{
		cfg:          cfg,
		launcher:     launcher,
		projects:     cfg.Projects,
		logger:       zap.NewNop(),
		clock:        clock.System{},
		pollInterval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(r)
	}

	if len(r.projects) == 0 {
		return nil, errors.New("runner: no projects selected")
	}
	r.engines = make([]browser.Engine, len(r.projects))
	for i, p := range r.projects {
		e, err := p.Engine()
		if err != nil {
			return nil, fmt.Errorf("project %q: %w", p.Name, err)
		}
		r.engines[i] = e
	}
	if err := browser.CheckSupport(launcher, r.engines...); err != nil {
		return nil, err
	}

	return r, nil
}

// Projects returns the projects this runner will execute.
func (r *Runner) Projects() []config.Project {
	return r.projects
}

// Run executes every case in every project. Test failures are reported in
// the summary, not as an error; use Summary.Err for a pass/fail verdict.
// With no cases the summary is empty and no browser is launched.
func (r *Runner) Run(ctx context.Context, cases []smoke.Case) (*Summary, error) {
	start := r.clock.Now()
	summary := &Summary{Workers: r.cfg.Workers}

	total := len(cases) * len(r.projects)
	r.begin(total)

	if len(cases) == 0 {
		r.logger.Warn("no tests found", zap.String("testDir", r.cfg.TestPath()))
		summary.Duration = clock.Since(r.clock, start)
		r.end(summary)
		return summary, nil
	}

	r.logger.Info("running tests",
		zap.Int("tests", total),
		zap.Int("projects", len(r.projects)),
		zap.Int("workers", r.cfg.Workers),
		zap.String("driver", r.launcher.Name()),
	)

	// One row per project; each worker writes only its own row.
	rows := make([][]Result, len(r.projects))

	var g errgroup.Group
	g.SetLimit(r.cfg.Workers)
	for i := range r.projects {
		g.Go(func() error {
			rows[i] = r.runProject(ctx, r.projects[i], r.engines[i], cases)
			return nil
		})
	}
	_ = g.Wait()

	for _, row := range rows {
		summary.Results = append(summary.Results, row...)
	}
	summary.Duration = clock.Since(r.clock, start)

	r.logger.Info("run finished",
		zap.Int("passed", summary.Passed()),
		zap.Int("failed", summary.Failed()),
		zap.Duration("duration", summary.Duration),
	)
	r.end(summary)
	return summary, nil
}

func (r *Runner) runProject(ctx context.Context, p config.Project, engine browser.Engine, cases []smoke.Case) []Result {
	logger := r.logger.With(zap.String("project", p.Name), zap.Stringer("engine", engine))
	results := make([]Result, 0, len(cases))

	fail := func(c smoke.Case, err error, d time.Duration) {
		res := Result{Project: p.Name, Engine: engine, Case: c, Status: StatusFailed, Err: err, Duration: d}
		results = append(results, res)
		r.report(res)
	}

	if err := ctx.Err(); err != nil {
		for _, c := range cases {
			fail(c, err, 0)
		}
		return results
	}

	launchStart := r.clock.Now()
	b, err := r.launcher.Launch(ctx, engine, r.cfg.BrowserOptions())
	if err != nil {
		logger.Error("browser launch failed", zap.Error(err))
		launchErr := &LaunchError{Engine: engine, Err: err}
		elapsed := clock.Since(r.clock, launchStart)
		for _, c := range cases {
			fail(c, launchErr, elapsed)
		}
		return results
	}
	defer func() {
		if err := b.Close(); err != nil {
			logger.Warn("browser close failed", zap.Error(err))
		}
	}()
	logger.Debug("browser launched")

	for _, c := range cases {
		res := r.runCase(ctx, b, p, engine, c)
		if res.Status == StatusFailed {
			logger.Info("test failed",
				zap.String("test", c.FullTitle()),
				zap.Stringer("kind", res.Kind()),
				zap.Error(res.Err),
			)
		}
		results = append(results, res)
		r.report(res)
	}
	return results
}

func (r *Runner) runCase(ctx context.Context, b browser.Browser, p config.Project, engine browser.Engine, c smoke.Case) Result {
	start := r.clock.Now()
	res := Result{Project: p.Name, Engine: engine, Case: c, Status: StatusFailed}

	res.Err = r.execute(ctx, b, engine, c)
	if res.Err == nil {
		res.Status = StatusPassed
	}
	res.Duration = clock.Since(r.clock, start)
	return res
}

// execute performs the two steps of a smoke case: navigate, then expect
// the title.
func (r *Runner) execute(ctx context.Context, b browser.Browser, engine browser.Engine, c smoke.Case) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	page, err := b.NewPage(ctx)
	if err != nil {
		return &LaunchError{Engine: engine, Err: err}
	}
	defer func() {
		if err := page.Close(); err != nil {
			r.logger.Debug("page close failed", zap.Error(err))
		}
	}()

	if err := page.Navigate(ctx, c.URL); err != nil {
		return &NavigationError{URL: c.URL, Err: err}
	}
	return r.expectTitle(ctx, page, c.Title)
}

// expectTitle polls the page title until it matches pattern or the expect
// timeout elapses. This is the assertion's auto-wait, not a test retry.
func (r *Runner) expectTitle(ctx context.Context, page browser.Page, pattern smoke.Pattern) error {
	timeout := r.cfg.Expect.Timeout
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	var (
		last    string
		lastErr error
	)
	for {
		title, err := page.Title(ctx)
		if err == nil {
			if pattern.Match(title) {
				return nil
			}
			last, lastErr = title, nil
		} else {
			lastErr = err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return &AssertionError{Pattern: pattern.String(), Actual: last, Timeout: timeout, Err: lastErr}
		case <-ticker.C:
		}
	}
}

func (r *Runner) begin(total int) {
	if r.reporter == nil {
		return
	}
	r.reportMu.Lock()
	defer r.reportMu.Unlock()
	r.reporter.Begin(total)
}

func (r *Runner) report(res Result) {
	if r.reporter == nil {
		return
	}
	r.reportMu.Lock()
	defer r.reportMu.Unlock()
	r.reporter.Result(res)
}

func (r *Runner) end(s *Summary) {
	if r.reporter == nil {
		return
	}
	r.reportMu.Lock()
	defer r.reportMu.Unlock()
	r.reporter.End(s)
}
