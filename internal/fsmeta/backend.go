// Package fsmeta is the platform seam for filesystem metadata. Every OS
// specific call the cleaner makes (named streams, extended attributes,
// timestamps, ownership and provenance streams) goes through Backend, and the
// implementation is picked at build time.
package fsmeta

import (
	"time"
)

// NeutralTime is the instant every timestamp is reset to. It is a fixed,
// ordinary calendar date so a scrubbed file does not look recently touched
// and does not sit at the epoch either.
var NeutralTime = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// PrimaryStream is the unnamed content stream as reported by NTFS.
const PrimaryStream = "::$DATA"

// Backend exposes the metadata operations of one platform.
type Backend interface {
	// ListStreams returns the named data streams attached to path. A platform
	// or file without streams yields an empty list, not an error.
	ListStreams(path string) ([]string, error)
	DeleteStream(path, name string) error

	// ListAttributes returns the removable extended attribute names of path.
	ListAttributes(path string) ([]string, error)
	DeleteAttribute(path, name string) error

	// SetTimestamps sets creation, access and modification time together
	// where the platform allows it, or the supported subset otherwise.
	SetTimestamps(path string, t time.Time) error

	// SetOwner hands ownership to a generic well-known principal.
	SetOwner(path string) error

	// ClearProperties deletes the well-known provenance streams or
	// attributes (download origin, summary information). Missing ones are
	// ignored.
	ClearProperties(path string) error
}

// Native returns the Backend for the running platform.
func Native() Backend { return native{} }

// RemoveStreams deletes every named stream except the primary one and
// returns how many deletions succeeded. Individual failures are not errors.
func RemoveStreams(b Backend, path string) (int, error) {
	names, err := b.ListStreams(path)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, name := range names {
		if name == "" || name == PrimaryStream {
			continue
		}
		if b.DeleteStream(path, name) == nil {
			removed++
		}
	}
	return removed, nil
}

// RemoveAttributes deletes every listed extended attribute, best effort.
func RemoveAttributes(b Backend, path string) (int, error) {
	names, err := b.ListAttributes(path)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, name := range names {
		if b.DeleteAttribute(path, name) == nil {
			removed++
		}
	}
	return removed, nil
}

// ResetTimestamps moves all timestamps of path to NeutralTime.
func ResetTimestamps(b Backend, path string) error {
	return b.SetTimestamps(path, NeutralTime)
}
