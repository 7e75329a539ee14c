//go:build linux || darwin

package fsmeta

import (
	"bytes"
	"errors"
	"os"
	"time"

	"github.com/victormicco/mahito/internal/types"
	"golang.org/x/sys/unix"
)

// propertyAttributes carry download origin and similar provenance, the
// xattr counterparts of Zone.Identifier.
var propertyAttributes = []string{
	"com.apple.quarantine",
	"com.apple.metadata:kMDItemWhereFroms",
	"user.xdg.origin.url",
	"user.xdg.referrer.url",
	"user.xdg.origin.email",
	"user.xdg.publisher",
}

type native struct{}

// Unix filesystems have no named data streams.
func (native) ListStreams(string) ([]string, error) { return nil, nil }

func (native) DeleteStream(string, string) error { return nil }

func (native) ListAttributes(path string) ([]string, error) {
	buf, err := listxattr(path)
	if err != nil {
		if errors.Is(err, unix.ENOTSUP) || errors.Is(err, unix.EOPNOTSUPP) {
			return nil, nil
		}
		if errors.Is(err, unix.EACCES) || errors.Is(err, unix.EPERM) {
			return nil, &types.Error{Kind: types.KindPermissionDenied, Path: path, Err: err}
		}
		return nil, &types.Error{Kind: types.KindIO, Path: path, Reason: "listxattr", Err: err}
	}
	var names []string
	for _, raw := range bytes.Split(buf, []byte{0}) {
		if len(raw) == 0 {
			continue
		}
		if name := string(raw); removableAttribute(name) {
			names = append(names, name)
		}
	}
	return names, nil
}

func listxattr(path string) ([]byte, error) {
	for attempt := 0; attempt < 3; attempt++ {
		size, err := unix.Listxattr(path, nil)
		if err != nil {
			return nil, err
		}
		if size == 0 {
			return nil, nil
		}
		buf := make([]byte, size)
		n, err := unix.Listxattr(path, buf)
		if errors.Is(err, unix.ERANGE) {
			// grew between the two calls
			continue
		}
		if err != nil {
			return nil, err
		}
		return buf[:n], nil
	}
	return nil, unix.ERANGE
}

func (native) DeleteAttribute(path, name string) error {
	return unix.Removexattr(path, name)
}

func (native) SetTimestamps(path string, t time.Time) error {
	// Opening for write proves we may modify the file; a bare utimes call
	// would succeed on read-only files we merely own.
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		if os.IsPermission(err) {
			return &types.Error{Kind: types.KindPermissionDenied, Path: path, Err: err}
		}
		return types.CleaningFailed(path, "open for timestamp reset", err)
	}
	defer f.Close()

	// Birth time cannot be set here; access and modification go in one call.
	tv := unix.NsecToTimeval(t.UnixNano())
	if err := unix.Futimes(int(f.Fd()), []unix.Timeval{tv, tv}); err != nil {
		return types.PlatformAPI(path, "futimes failed", err)
	}
	return nil
}

func (native) SetOwner(string) error { return nil }

func (native) ClearProperties(path string) error {
	for _, name := range propertyAttributes {
		_ = unix.Removexattr(path, name)
	}
	return nil
}
