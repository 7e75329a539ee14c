//go:build windows

package fsmeta

import (
	"errors"
	"strings"
	"time"
	"unsafe"

	"github.com/victormicco/mahito/internal/types"
	"golang.org/x/sys/windows"
)

// genericOwnerSID is BUILTIN\Administrators, a well-known group that does
// not identify a person.
const genericOwnerSID = "S-1-5-32-544"

const findStreamInfoStandard = 0

var (
	modkernel32          = windows.NewLazySystemDLL("kernel32.dll")
	procFindFirstStreamW = modkernel32.NewProc("FindFirstStreamW")
	procFindNextStreamW  = modkernel32.NewProc("FindNextStreamW")
)

// win32FindStreamData mirrors WIN32_FIND_STREAM_DATA.
type win32FindStreamData struct {
	StreamSize int64
	StreamName [windows.MAX_PATH + 36]uint16
}

// propertyStreams are ADS names Explorer, browsers and Office use to record
// provenance and summary information.
var propertyStreams = []string{
	"Zone.Identifier",
	"\x05SummaryInformation",
	"\x05DocumentSummaryInformation",
	"Afp_AfpInfo",
	"encryptable",
	"OECustomProperty",
}

type native struct{}

func (native) ListStreams(path string) ([]string, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, &types.Error{Kind: types.KindStreamEnumeration, Path: path, Err: err}
	}
	var data win32FindStreamData
	r, _, callErr := procFindFirstStreamW.Call(
		uintptr(unsafe.Pointer(p)),
		findStreamInfoStandard,
		uintptr(unsafe.Pointer(&data)),
		0,
	)
	h := windows.Handle(r)
	if h == windows.InvalidHandle {
		// No streams at all, or a filesystem (FAT, network share) that has
		// no notion of them.
		if errors.Is(callErr, windows.ERROR_HANDLE_EOF) || errors.Is(callErr, windows.ERROR_INVALID_PARAMETER) {
			return nil, nil
		}
		return nil, &types.Error{Kind: types.KindStreamEnumeration, Path: path, Err: callErr}
	}
	defer windows.FindClose(h) //nolint:errcheck

	var names []string
	for {
		if name := windows.UTF16ToString(data.StreamName[:]); name != "" {
			names = append(names, name)
		}
		ok, _, _ := procFindNextStreamW.Call(uintptr(h), uintptr(unsafe.Pointer(&data)))
		if ok == 0 {
			break
		}
	}
	return names, nil
}

func (native) DeleteStream(path, name string) error {
	name = strings.TrimSuffix(strings.TrimPrefix(name, ":"), ":$DATA")
	return deleteFile(path + ":" + name)
}

func (native) ListAttributes(string) ([]string, error) { return nil, nil }

func (native) DeleteAttribute(string, string) error { return nil }

func (native) SetTimestamps(path string, t time.Time) error {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return types.CleaningFailed(path, "invalid path", err)
	}
	h, err := windows.CreateFile(
		p,
		windows.FILE_WRITE_ATTRIBUTES,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_FLAG_BACKUP_SEMANTICS,
		0,
	)
	if err != nil {
		if errors.Is(err, windows.ERROR_ACCESS_DENIED) {
			return &types.Error{Kind: types.KindPermissionDenied, Path: path, Err: err}
		}
		return types.CleaningFailed(path, "open for attribute write", err)
	}
	defer windows.CloseHandle(h) //nolint:errcheck

	ft := windows.NsecToFiletime(t.UnixNano())
	if err := windows.SetFileTime(h, &ft, &ft, &ft); err != nil {
		return types.PlatformAPI(path, "SetFileTime failed", err)
	}
	return nil
}

func (native) SetOwner(path string) error {
	sid, err := windows.StringToSid(genericOwnerSID)
	if err != nil {
		return types.PlatformAPI(path, "failed to convert SID string", err)
	}
	err = windows.SetNamedSecurityInfo(path, windows.SE_FILE_OBJECT, windows.OWNER_SECURITY_INFORMATION, sid, nil, nil, nil)
	if err != nil {
		return types.PlatformAPI(path, "failed to set owner, run as Administrator", err)
	}
	return nil
}

func (native) ClearProperties(path string) error {
	for _, name := range propertyStreams {
		// most files carry none of these
		_ = deleteFile(path + ":" + name)
	}
	return nil
}

func deleteFile(name string) error {
	p, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return err
	}
	return windows.DeleteFile(p)
}
