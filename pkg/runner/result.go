package runner

import (
	"fmt"
	"time"

	"github.com/thesyncim/glasscheck/pkg/browser"
	"github.com/thesyncim/glasscheck/pkg/smoke"
)

// Status is the outcome of one test in one project.
type Status string

const (
	StatusPassed Status = "passed"
	StatusFailed Status = "failed"
)

// Result is the outcome of running one case in one project.
type Result struct {
	Project  string
	Engine   browser.Engine
	Case     smoke.Case
	Status   Status
	Err      error
	Duration time.Duration
}

// Kind classifies the failure, KindNone for passed results.
func (r Result) Kind() ErrorKind {
	return KindOf(r.Err)
}

// Summary aggregates a run. Results are ordered by project (config order),
// then by case (discovery order), regardless of completion order.
type Summary struct {
	Results  []Result
	Duration time.Duration
	Workers  int
}

// Total returns the number of executed results.
func (s *Summary) Total() int {
	return len(s.Results)
}

// Passed returns the number of passed results.
func (s *Summary) Passed() int {
	return s.count(StatusPassed)
}

// Failed returns the number of failed results.
func (s *Summary) Failed() int {
	return s.count(StatusFailed)
}

func (s *Summary) count(status Status) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

// Failures returns only the failed results.
func (s *Summary) Failures() []Result {
	var failed []Result
	for _, r := range s.Results {
		if r.Status == StatusFailed {
			failed = append(failed, r)
		}
	}
	return failed
}

// Err returns ErrTestsFailed wrapped with counts if any result failed.
func (s *Summary) Err() error {
	if failed := s.Failed(); failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrTestsFailed, failed, s.Total())
	}
	return nil
}
