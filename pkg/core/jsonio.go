package core

import (
	"encoding/json"
	"io"
)

// MarshalReport pretty-prints a report as JSON for humans or pipelines.
func MarshalReport(w io.Writer, report CleanReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// UnmarshalReport decodes report JSON, useful for ingestion tests.
func UnmarshalReport(r io.Reader) (CleanReport, error) {
	var rep CleanReport
	if err := json.NewDecoder(r).Decode(&rep); err != nil {
		return CleanReport{}, err
	}
	return rep, nil
}
