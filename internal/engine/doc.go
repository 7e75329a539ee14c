// Package engine contains the core cleaning logic for mahito. It expands a
// target path into files, runs the enabled metadata backends on each one in a
// fixed order, and folds the outcomes into a report. This package is internal;
// external consumers should use the stable facade in pkg/core.
package engine
