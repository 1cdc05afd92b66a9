// Package storage writes machine-readable run reports.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/thesyncim/glasscheck/pkg/runner"
)

// Report is the JSON document written after a run.
type Report struct {
	Meta    Meta           `json:"meta"`
	Results []ResultRecord `json:"results"`
}

// Meta contains totals and timing for a run.
type Meta struct {
	Total           int     `json:"total"`
	Passed          int     `json:"passed"`
	Failed          int     `json:"failed"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Workers         int     `json:"workers"`
	Timestamp       string  `json:"timestamp"`
}

// ResultRecord is one project × case outcome.
type ResultRecord struct {
	Project    string  `json:"project"`
	Engine     string  `json:"engine"`
	File       string  `json:"file"`
	Test       string  `json:"test"`
	URL        string  `json:"url"`
	Status     string  `json:"status"`
	ErrorKind  string  `json:"error_kind,omitempty"`
	Error      string  `json:"error,omitempty"`
	DurationMs float64 `json:"duration_ms"`
}

// NewReport converts a summary into a Report stamped with now.
func NewReport(s *runner.Summary, now time.Time) *Report {
	r := &Report{
		Meta: Meta{
			Total:           s.Total(),
			Passed:          s.Passed(),
			Failed:          s.Failed(),
			Duration:        s.Duration.String(),
			DurationSeconds: s.Duration.Seconds(),
			Workers:         s.Workers,
			Timestamp:       now.Format(time.RFC3339),
		},
		Results: make([]ResultRecord, 0, len(s.Results)),
	}

	for _, res := range s.Results {
		rec := ResultRecord{
			Project:    res.Project,
			Engine:     res.Engine.String(),
			File:       res.Case.File,
			Test:       res.Case.Name,
			URL:        res.Case.URL,
			Status:     string(res.Status),
			DurationMs: float64(res.Duration) / float64(time.Millisecond),
		}
		if res.Err != nil {
			rec.ErrorKind = res.Kind().String()
			rec.Error = res.Err.Error()
		}
		r.Results = append(r.Results, rec)
	}
	return r
}

// Save writes the report for s to path, creating parent directories.
func Save(path string, s *runner.Summary, now time.Time) error {
	data, err := json.MarshalIndent(NewReport(s, now), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
