package types

import (
	"fmt"
	"strings"
)

// CleanMode selects how far a clean operation reaches from its target path.
type CleanMode int

const (
	// SingleFile cleans the target file only.
	SingleFile CleanMode = iota
	// Shallow cleans the direct file children of a directory.
	Shallow
	// Deep cleans every file below a directory, at any depth.
	Deep
)

func (m CleanMode) String() string {
	switch m {
	case SingleFile:
		return "single file"
	case Shallow:
		return "shallow (non-recursive)"
	case Deep:
		return "deep (recursive)"
	default:
		return fmt.Sprintf("CleanMode(%d)", int(m))
	}
}

// ParseCleanMode maps a user supplied name onto a CleanMode.
func ParseCleanMode(s string) (CleanMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "file", "single", "singlefile":
		return SingleFile, nil
	case "dir", "shallow":
		return Shallow, nil
	case "recursive", "deep":
		return Deep, nil
	}
	return SingleFile, fmt.Errorf("unknown clean mode %q (want file|dir|recursive)", s)
}

// CleanOptions toggles the individual cleaning steps. It is a value type:
// the With* helpers return a modified copy and never touch the receiver.
type CleanOptions struct {
	ClearTimestamps bool
	ClearStreams    bool
	ClearAttributes bool
	// ClearOwner needs elevated privileges on Windows and is only enabled
	// through WithAdmin.
	ClearOwner      bool
	ClearProperties bool
	DryRun          bool
	Verbose         bool

	// VerifyContent fingerprints the primary content before and after the
	// in-place steps and fails the file if it changed.
	VerifyContent bool
	// Include and Exclude are comma-separated glob lists applied by the
	// directory walker. Empty means no filtering.
	Include string
	Exclude string
}

// AllOptions enables every non-privileged cleaning step.
func AllOptions() CleanOptions {
	return CleanOptions{
		ClearTimestamps: true,
		ClearStreams:    true,
		ClearAttributes: true,
		ClearOwner:      false,
		ClearProperties: true,
	}
}

func (o CleanOptions) WithDryRun(dryRun bool) CleanOptions {
	o.DryRun = dryRun
	return o
}

func (o CleanOptions) WithVerbose(verbose bool) CleanOptions {
	o.Verbose = verbose
	return o
}

// WithAdmin opts into owner clearing.
func (o CleanOptions) WithAdmin(admin bool) CleanOptions {
	o.ClearOwner = admin
	return o
}

func (o CleanOptions) WithVerifyContent(verify bool) CleanOptions {
	o.VerifyContent = verify
	return o
}

func (o CleanOptions) WithGlobs(include, exclude string) CleanOptions {
	o.Include = include
	o.Exclude = exclude
	return o
}

// FileResult is the outcome of cleaning exactly one file. A failed result
// always carries a message and zero counts.
type FileResult struct {
	Path              string `json:"path"`
	Success           bool   `json:"success"`
	Error             string `json:"error,omitempty"`
	StreamsRemoved    int    `json:"streams_removed"`
	AttributesRemoved int    `json:"attributes_removed"`
	TimestampsReset   bool   `json:"timestamps_reset"`
	PropertiesCleared bool   `json:"properties_cleared"`
}

// Succeeded builds a successful result.
func Succeeded(path string, streamsRemoved int, timestampsReset bool) FileResult {
	return FileResult{
		Path:            path,
		Success:         true,
		StreamsRemoved:  streamsRemoved,
		TimestampsReset: timestampsReset,
	}
}

// Failed builds a failed result for path.
func Failed(path, msg string) FileResult {
	if msg == "" {
		msg = "unknown error"
	}
	return FileResult{Path: path, Error: msg}
}

// CleanReport accumulates FileResults for one batch.
// TotalFiles == Successful + Failed holds after every AddResult; Skipped is
// tracked on its own.
type CleanReport struct {
	TotalFiles             int          `json:"total_files"`
	Successful             int          `json:"successful"`
	Failed                 int          `json:"failed"`
	Skipped                int          `json:"skipped"`
	TotalStreamsRemoved    int          `json:"total_streams_removed"`
	TotalAttributesRemoved int          `json:"total_attributes_removed"`
	FileResults            []FileResult `json:"file_results"`
}

// AddResult folds one outcome into the running totals.
func (r *CleanReport) AddResult(res FileResult) {
	r.TotalFiles++
	if res.Success {
		r.Successful++
		r.TotalStreamsRemoved += res.StreamsRemoved
		r.TotalAttributesRemoved += res.AttributesRemoved
	} else {
		r.Failed++
	}
	r.FileResults = append(r.FileResults, res)
}

// AddSkipped records a file that was deliberately not processed.
func (r *CleanReport) AddSkipped() {
	r.Skipped++
}

// IsCompleteSuccess reports whether no file failed.
func (r CleanReport) IsCompleteSuccess() bool {
	return r.Failed == 0
}

// FailedResults returns the failed outcomes in processing order.
func (r CleanReport) FailedResults() []FileResult {
	var out []FileResult
	for _, res := range r.FileResults {
		if !res.Success {
			out = append(out, res)
		}
	}
	return out
}
