package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies cleaner failures.
type ErrorKind int

const (
	KindPathNotFound ErrorKind = iota + 1
	KindNotAFile
	KindNotADirectory
	KindPermissionDenied
	KindDirectoryRead
	KindCleaningFailed
	KindPlatformAPI
	KindIO
	KindStreamEnumeration
	KindInvalidMode
)

// Error is the error type returned by the cleaner and its backends.
type Error struct {
	Kind   ErrorKind
	Path   string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindPathNotFound:
		return fmt.Sprintf("path does not exist: %s", e.Path)
	case KindNotAFile:
		return fmt.Sprintf("expected a file but found a directory: %s", e.Path)
	case KindNotADirectory:
		return fmt.Sprintf("expected a directory but found a file: %s", e.Path)
	case KindPermissionDenied:
		return fmt.Sprintf("permission denied: %s", e.Path)
	case KindDirectoryRead:
		return fmt.Sprintf("failed to read directory '%s': %v", e.Path, e.Err)
	case KindCleaningFailed:
		return fmt.Sprintf("failed to clean metadata for '%s': %s", e.Path, e.reason())
	case KindPlatformAPI:
		return fmt.Sprintf("platform API error for '%s': %s", e.Path, e.reason())
	case KindStreamEnumeration:
		return fmt.Sprintf("failed to enumerate data streams for '%s'", e.Path)
	case KindInvalidMode:
		return fmt.Sprintf("invalid clean mode for '%s': %s", e.Path, e.Reason)
	default:
		return fmt.Sprintf("I/O error: %s", e.reason())
	}
}

func (e *Error) reason() string {
	switch {
	case e.Reason != "" && e.Err != nil:
		return e.Reason + ": " + e.Err.Error()
	case e.Reason != "":
		return e.Reason
	case e.Err != nil:
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds an *Error.
func NewError(kind ErrorKind, path string) *Error {
	return &Error{Kind: kind, Path: path}
}

// CleaningFailed wraps a backend failure for path.
func CleaningFailed(path, reason string, err error) *Error {
	return &Error{Kind: KindCleaningFailed, Path: path, Reason: reason, Err: err}
}

// PlatformAPI wraps an OS API failure, usually privilege related.
func PlatformAPI(path, message string, err error) *Error {
	return &Error{Kind: KindPlatformAPI, Path: path, Reason: message, Err: err}
}

// IsKind reports whether err or anything it wraps is an *Error of kind k.
func IsKind(err error, k ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}
