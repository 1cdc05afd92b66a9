// Package ui renders run progress and results for the terminal.
package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/thesyncim/glasscheck/pkg/runner"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// Console is a runner.Reporter printing to a terminal. With a progress
// writer it draws a progress bar there instead of one line per result.
type Console struct {
	out      io.Writer
	progress io.Writer

	bar    *ProgressBar
	passed int
	failed int
}

var _ runner.Reporter = (*Console)(nil)

// NewConsole creates a Console writing results to out. If progress is
// non-nil a progress bar is drawn on it while tests run.
func NewConsole(out, progress io.Writer) *Console {
	return &Console{out: out, progress: progress}
}

// Begin implements runner.Reporter.
func (c *Console) Begin(total int) {
	if total == 0 {
		return
	}
	fmt.Fprintf(c.out, "\nRunning %d %s\n\n", total, plural(total, "test", "tests"))
	if c.progress != nil {
		c.bar = NewProgressBar(c.progress, total)
	}
}

// Result implements runner.Reporter.
func (c *Console) Result(r runner.Result) {
	if r.Status == runner.StatusPassed {
		c.passed++
	} else {
		c.failed++
	}

	if c.bar != nil {
		c.bar.Update(c.passed, c.failed)
		return
	}
	fmt.Fprintln(c.out, FormatResult(r))
}

// End implements runner.Reporter.
func (c *Console) End(s *runner.Summary) {
	if c.bar != nil {
		c.bar.Finish()
	}

	if s.Total() == 0 {
		fmt.Fprintln(c.out, yellow("No tests found"))
		return
	}

	failures := s.Failures()
	if len(failures) > 0 {
		fmt.Fprintln(c.out)
		for i, r := range failures {
			fmt.Fprintf(c.out, "  %s %s\n", red(fmt.Sprintf("%d)", i+1)), testTitle(r))
			fmt.Fprintf(c.out, "     %s %v\n\n", dim(r.Kind().String()+":"), r.Err)
		}
	}

	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "  %s\n", FormatSummary(s))
}

// FormatSummary renders the totals line, e.g. "2 passed, 1 failed (1.2s)".
func FormatSummary(s *runner.Summary) string {
	var counts []string
	if s.Passed() > 0 {
		counts = append(counts, green(fmt.Sprintf("%d passed", s.Passed())))
	}
	if s.Failed() > 0 {
		counts = append(counts, red(fmt.Sprintf("%d failed", s.Failed())))
	}
	return strings.Join(counts, ", ") + " " + dim("("+FormatDuration(s.Duration)+")")
}

// FormatResult renders one result line, e.g.
// "  ✓  [chromium] › home.spec.yaml › page opens (120ms)".
func FormatResult(r runner.Result) string {
	mark := green("✓")
	if r.Status != runner.StatusPassed {
		mark = red("✘")
	}
	return fmt.Sprintf("  %s  %s %s", mark, testTitle(r), dim("("+FormatDuration(r.Duration)+")"))
}

func testTitle(r runner.Result) string {
	return fmt.Sprintf("[%s] › %s", r.Project, r.Case.FullTitle())
}

// FormatDuration renders d the way test reporters do: milliseconds below a
// second, then seconds with one decimal, then minutes.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return d.Round(time.Second).String()
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
