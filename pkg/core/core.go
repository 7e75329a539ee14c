package core

import (
	"github.com/victormicco/mahito/internal/engine"
	"github.com/victormicco/mahito/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type (
	CleanMode    = types.CleanMode
	CleanOptions = types.CleanOptions
	FileResult   = types.FileResult
	CleanReport  = types.CleanReport
	Error        = types.Error
	ErrorKind    = types.ErrorKind
	Cleaner      = engine.Cleaner
	Option       = engine.Option
)

const (
	SingleFile = types.SingleFile
	Shallow    = types.Shallow
	Deep       = types.Deep
)

const (
	KindPathNotFound      = types.KindPathNotFound
	KindNotAFile          = types.KindNotAFile
	KindNotADirectory     = types.KindNotADirectory
	KindPermissionDenied  = types.KindPermissionDenied
	KindDirectoryRead     = types.KindDirectoryRead
	KindCleaningFailed    = types.KindCleaningFailed
	KindPlatformAPI       = types.KindPlatformAPI
	KindIO                = types.KindIO
	KindStreamEnumeration = types.KindStreamEnumeration
	KindInvalidMode       = types.KindInvalidMode
)

var (
	WithLogger = engine.WithLogger
	IsKind     = types.IsKind
)

// AllOptions enables every cleaning step that needs no elevated rights.
func AllOptions() CleanOptions { return types.AllOptions() }

// ParseCleanMode maps "file", "dir" or "recursive" onto a CleanMode.
func ParseCleanMode(s string) (CleanMode, error) { return types.ParseCleanMode(s) }

// New returns a Cleaner for opts using the native platform backend.
func New(opts CleanOptions, options ...Option) *Cleaner {
	return engine.New(opts, options...)
}

// CollectFiles lists the files mode would touch for path.
func CollectFiles(path string, mode CleanMode) ([]string, error) {
	return engine.CollectFiles(path, mode)
}

// CleanFile cleans one file with opts.
func CleanFile(path string, opts CleanOptions) (FileResult, error) {
	return engine.New(opts).CleanFile(path)
}

// CleanDirectory cleans the files mode selects below path with opts.
func CleanDirectory(path string, mode CleanMode, opts CleanOptions) (CleanReport, error) {
	return engine.New(opts).CleanDirectory(path, mode)
}
