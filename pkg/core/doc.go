// Package core provides a small, stable facade over mahito's internal engine
// for external integrations. It re-exports a narrow API surface so other
// programs can depend on a stable import path without importing internal
// packages.
//
// Example:
//
//	opts := core.AllOptions().WithDryRun(true)
//	report, err := core.CleanDirectory("./outbox", core.Deep, opts)
//	if err != nil { /* handle */ }
//	_ = core.MarshalReport(os.Stdout, report)
package core
