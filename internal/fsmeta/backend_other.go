//go:build !windows && !linux && !darwin

package fsmeta

import (
	"os"
	"time"

	"github.com/victormicco/mahito/internal/types"
)

type native struct{}

func (native) ListStreams(string) ([]string, error) { return nil, nil }

func (native) DeleteStream(string, string) error { return nil }

func (native) ListAttributes(string) ([]string, error) { return nil, nil }

func (native) DeleteAttribute(string, string) error { return nil }

// SetTimestamps falls back to access and modification time only.
func (native) SetTimestamps(path string, t time.Time) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		if os.IsPermission(err) {
			return &types.Error{Kind: types.KindPermissionDenied, Path: path, Err: err}
		}
		return types.CleaningFailed(path, "open for timestamp reset", err)
	}
	_ = f.Close()
	if err := os.Chtimes(path, t, t); err != nil {
		return types.CleaningFailed(path, "chtimes", err)
	}
	return nil
}

func (native) SetOwner(string) error { return nil }

func (native) ClearProperties(string) error { return nil }
