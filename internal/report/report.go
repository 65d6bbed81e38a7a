// Package report writes the end-of-run summary file.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/EmmanuelLazard/IBM-ponder-this-2024-03/internal/search"
)

// Report is the JSON document written after a verified run.
type Report struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	N          int64  `json:"n"`
	Strategy   string `json:"strategy"`
	Threads    int    `json:"threads"`
	Start      int64  `json:"start"`
	WindowSize int64  `json:"window_size"`

	Answer         int64           `json:"answer"`
	Verified       bool            `json:"verified"`
	Counters       search.Snapshot `json:"counters"`
	ElapsedSeconds float64         `json:"elapsed_seconds"`
}

// New stamps a report with a fresh run id and timestamp.
func New(n int64, strategy string, threads int, start, windowSize int64, res *search.Result) *Report {
	return &Report{
		RunID:          uuid.NewString(),
		GeneratedAt:    time.Now().UTC(),
		N:              n,
		Strategy:       strategy,
		Threads:        threads,
		Start:          start,
		WindowSize:     windowSize,
		Answer:         res.Answer,
		Verified:       true,
		Counters:       res.Counters,
		ElapsedSeconds: res.Elapsed.Seconds(),
	}
}

// Write stores the report as <prefix>_report.json under dir and returns the
// full path.
func Write(dir, prefix string, r *Report) (string, error) {
	if dir == "" {
		dir = "."
	}
	if prefix == "" {
		prefix = "primeseq"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}
	path := filepath.Join(dir, prefix+"_report.json")
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}
