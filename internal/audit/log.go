// Package audit keeps a JSONL journal of cleaning runs so past batches can be
// reviewed with "mahito history".
package audit

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/victormicco/mahito/internal/types"
)

// maxFailures bounds how many failed files one record lists.
const maxFailures = 10

type RunRecord struct {
	Timestamp         time.Time        `json:"timestamp"`
	RunID             string           `json:"run_id"`
	Target            string           `json:"target"`
	Mode              string           `json:"mode"`
	DryRun            bool             `json:"dry_run"`
	TotalFiles        int              `json:"total_files"`
	Successful        int              `json:"successful"`
	Failed            int              `json:"failed"`
	Skipped           int              `json:"skipped"`
	StreamsRemoved    int              `json:"streams_removed"`
	AttributesRemoved int              `json:"attributes_removed"`
	Duration          string           `json:"duration"`
	Failures          []FailureSummary `json:"failures,omitempty"`
}

type FailureSummary struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

type Journal struct {
	path string
}

// NewJournal returns a journal stored at path.
func NewJournal(path string) *Journal {
	return &Journal{path: path}
}

// DefaultPath is $XDG_STATE_HOME/mahito/journal.jsonl, falling back to
// ~/.local/state.
func DefaultPath() (string, error) {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".local", "state")
		}
	}
	if base == "" {
		return "", errors.New("no state dir")
	}
	return filepath.Join(base, "mahito", "journal.jsonl"), nil
}

func (j *Journal) Path() string { return j.path }

// LoadHistory returns the recorded runs, newest first. Reading stops at the
// first corrupt line. A journal that does not exist yet is empty.
func (j *Journal) LoadHistory() ([]RunRecord, error) {
	f, err := os.Open(j.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	defer f.Close()

	var records []RunRecord
	decoder := json.NewDecoder(f)
	for decoder.More() {
		var record RunRecord
		if err := decoder.Decode(&record); err != nil {
			break
		}
		records = append(records, record)
	}

	for i, k := 0, len(records)-1; i < k; i, k = i+1, k-1 {
		records[i], records[k] = records[k], records[i]
	}
	return records, nil
}

// Append writes one record, assigning a RunID if it has none.
func (j *Journal) Append(record RunRecord) error {
	if record.RunID == "" {
		record.RunID = uuid.NewString()
	}
	if err := os.MkdirAll(filepath.Dir(j.path), 0o700); err != nil {
		return fmt.Errorf("failed to create journal dir: %w", err)
	}
	// the journal lists file paths, keep it private
	f, err := os.OpenFile(j.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(record); err != nil {
		return fmt.Errorf("failed to write journal record: %w", err)
	}
	return nil
}

// Clear removes the journal file.
func (j *Journal) Clear() error {
	if err := os.Remove(j.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove journal: %w", err)
	}
	return nil
}

// NewRunRecord summarizes one finished batch.
func NewRunRecord(target string, mode types.CleanMode, opts types.CleanOptions, report types.CleanReport, duration time.Duration) RunRecord {
	failures := make([]FailureSummary, 0, maxFailures)
	for _, r := range report.FailedResults() {
		if len(failures) >= maxFailures {
			break
		}
		failures = append(failures, FailureSummary{Path: r.Path, Error: r.Error})
	}
	return RunRecord{
		Timestamp:         time.Now().UTC(),
		RunID:             uuid.NewString(),
		Target:            target,
		Mode:              mode.String(),
		DryRun:            opts.DryRun,
		TotalFiles:        report.TotalFiles,
		Successful:        report.Successful,
		Failed:            report.Failed,
		Skipped:           report.Skipped,
		StreamsRemoved:    report.TotalStreamsRemoved,
		AttributesRemoved: report.TotalAttributesRemoved,
		Duration:          duration.Round(time.Millisecond).String(),
		Failures:          failures,
	}
}
