package ui

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/thesyncim/glasscheck/pkg/runner"
	"github.com/thesyncim/glasscheck/pkg/smoke"
)

func init() {
	color.NoColor = true
}

func sampleCase() smoke.Case {
	return smoke.Case{Name: "page opens", File: "liquid-glass.spec.yaml", URL: "http://localhost:3000"}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0ms", FormatDuration(0))
	assert.Equal(t, "312ms", FormatDuration(312*time.Millisecond))
	assert.Equal(t, "1.5s", FormatDuration(1500*time.Millisecond))
	assert.Equal(t, "2m5s", FormatDuration(2*time.Minute+5*time.Second+200*time.Millisecond))
}

func TestFormatResult(t *testing.T) {
	passed := runner.Result{Project: "chromium", Case: sampleCase(), Status: runner.StatusPassed, Duration: 120 * time.Millisecond}
	assert.Equal(t, "  ✓  [chromium] › liquid-glass.spec.yaml › page opens (120ms)", FormatResult(passed))

	failed := passed
	failed.Status = runner.StatusFailed
	assert.Contains(t, FormatResult(failed), "✘  [chromium]")
}

func TestConsole_LineMode(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, nil)

	c.Begin(3)
	c.Result(runner.Result{Project: "chromium", Case: sampleCase(), Status: runner.StatusPassed})
	c.Result(runner.Result{Project: "firefox", Case: sampleCase(), Status: runner.StatusPassed})
	mismatch := runner.Result{
		Project: "webkit",
		Case:    sampleCase(),
		Status:  runner.StatusFailed,
		Err:     &runner.AssertionError{Pattern: "/Liquid Glass/i", Actual: "Something Else", Timeout: 5 * time.Second},
	}
	c.Result(mismatch)

	s := &runner.Summary{Duration: 1200 * time.Millisecond, Results: []runner.Result{
		{Project: "chromium", Status: runner.StatusPassed},
		{Project: "firefox", Status: runner.StatusPassed},
		mismatch,
	}}
	c.End(s)

	got := out.String()
	assert.Contains(t, got, "Running 3 tests")
	assert.Contains(t, got, "✓  [chromium] › liquid-glass.spec.yaml › page opens")
	assert.Contains(t, got, "✘  [webkit] › liquid-glass.spec.yaml › page opens")
	assert.Contains(t, got, "1) [webkit] › liquid-glass.spec.yaml › page opens")
	assert.Contains(t, got, `assertion: expected page title to match /Liquid Glass/i, got "Something Else"`)
	assert.Contains(t, got, "  2 passed, 1 failed (1.2s)\n")
}

func TestConsole_ProgressMode(t *testing.T) {
	var out, progress bytes.Buffer
	c := NewConsole(&out, &progress)

	c.Begin(1)
	c.Result(runner.Result{Project: "chromium", Case: sampleCase(), Status: runner.StatusFailed, Err: errors.New("boom")})
	c.End(&runner.Summary{Results: []runner.Result{{Project: "chromium", Case: sampleCase(), Status: runner.StatusFailed, Err: errors.New("boom")}}})

	assert.NotContains(t, out.String(), "✘", "per-result lines are replaced by the bar")
	assert.Contains(t, out.String(), "other: boom")
	assert.Contains(t, progress.String(), "failed: 1")
}

func TestConsole_NoTests(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, nil)

	c.Begin(0)
	c.End(&runner.Summary{})
	assert.Equal(t, "No tests found\n", out.String())
}

func TestFormatSummary(t *testing.T) {
	passed := runner.Result{Status: runner.StatusPassed}
	failed := runner.Result{Status: runner.StatusFailed}

	tests := []struct {
		name    string
		results []runner.Result
		want    string
	}{
		{"all passed", []runner.Result{passed, passed, passed}, "3 passed (250ms)"},
		{"mixed", []runner.Result{passed, failed, passed}, "2 passed, 1 failed (250ms)"},
		{"all failed", []runner.Result{failed}, "1 failed (250ms)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &runner.Summary{Results: tt.results, Duration: 250 * time.Millisecond}
			assert.Equal(t, tt.want, FormatSummary(s))
		})
	}
}
