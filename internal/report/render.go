// Package report renders a CleanReport for people (table or plain text) and
// for machines (JSON), and decides the process exit status.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/victormicco/mahito/internal/types"
)

type PrintOptions struct {
	NoColor  bool
	Duration time.Duration
	DryRun   bool
	// Verbose lists successful files too; otherwise only failures are
	// listed individually.
	Verbose bool
}

// PrintTable writes one table row per listed file and a summary footer.
func PrintTable(w io.Writer, r types.CleanReport, opts PrintOptions) {
	rows := make([][]string, 0, len(r.FileResults))
	for _, res := range listed(r, opts) {
		rows = append(rows, []string{
			res.Path,
			statusLabel(res, opts),
			strconv.Itoa(res.StreamsRemoved),
			strconv.Itoa(res.AttributesRemoved),
			yesNo(res.TimestampsReset),
			yesNo(res.PropertiesCleared),
			res.Error,
		})
	}
	if len(rows) > 0 {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"PATH", "STATUS", "STREAMS", "ATTRS", "TIMESTAMPS", "PROPERTIES", "ERROR"})
		if err := table.Bulk(rows); err == nil {
			_ = table.Render()
		}
	}
	printSummary(w, r, opts)
}

// PrintText is the plain, pipe friendly rendering used when stdout is not a
// terminal.
func PrintText(w io.Writer, r types.CleanReport, opts PrintOptions) {
	for _, res := range listed(r, opts) {
		if res.Success {
			fmt.Fprintf(w, "%s %s (streams: %d, attributes: %d, timestamps: %s)\n",
				statusLabel(res, opts), res.Path, res.StreamsRemoved, res.AttributesRemoved, yesNo(res.TimestampsReset))
			continue
		}
		fmt.Fprintf(w, "%s %s: %s\n", statusLabel(res, opts), res.Path, res.Error)
	}
	printSummary(w, r, opts)
}

// PrintFileResult renders the outcome of a single-file clean.
func PrintFileResult(w io.Writer, res types.FileResult, opts PrintOptions) {
	var r types.CleanReport
	r.AddResult(res)
	opts.Verbose = true
	PrintText(w, r, opts)
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, r types.CleanReport) error {
	if r.FileResults == nil {
		r.FileResults = []types.FileResult{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func listed(r types.CleanReport, opts PrintOptions) []types.FileResult {
	if opts.Verbose {
		return r.FileResults
	}
	return r.FailedResults()
}

func printSummary(w io.Writer, r types.CleanReport, opts PrintOptions) {
	if r.TotalFiles == 0 && r.Skipped == 0 {
		fmt.Fprintln(w, "No files to clean")
		return
	}
	if opts.DryRun {
		fmt.Fprintln(w, "Dry run: no file was modified")
	}
	fmt.Fprintf(w, "Files: %d (successful: %d, failed: %d, skipped: %d)\n",
		r.TotalFiles, r.Successful, r.Failed, r.Skipped)
	fmt.Fprintf(w, "Streams removed: %d\n", r.TotalStreamsRemoved)
	if r.TotalAttributesRemoved > 0 {
		fmt.Fprintf(w, "Attributes removed: %d\n", r.TotalAttributesRemoved)
	}
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Duration: %.2fs\n", opts.Duration.Seconds())
	}
	if r.IsCompleteSuccess() {
		fmt.Fprintln(w, "All files cleaned ✅")
	}
}

func statusLabel(res types.FileResult, opts PrintOptions) string {
	switch {
	case res.Success && opts.NoColor:
		return "ok"
	case res.Success:
		return "\x1b[32mok\x1b[0m" // green
	case opts.NoColor:
		return "FAILED"
	default:
		return "\x1b[31mFAILED\x1b[0m" // red
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
