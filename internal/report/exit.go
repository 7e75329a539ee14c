package report

import "github.com/victormicco/mahito/internal/types"

// ShouldFail reports whether the run must exit non-zero: any failed file
// fails the run.
func ShouldFail(r types.CleanReport) bool {
	return !r.IsCompleteSuccess()
}
