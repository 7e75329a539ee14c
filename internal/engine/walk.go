package engine

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/victormicco/mahito/internal/types"
)

// CollectFiles returns the files mode would touch for path, in enumeration
// order, without modifying anything. SingleFile yields path itself; Shallow
// the direct file children of a directory; Deep every file below it.
// Directories are never part of the result.
func CollectFiles(path string, mode types.CleanMode) ([]string, error) {
	w, err := collect(path, mode, globFilter{})
	if err != nil {
		return nil, err
	}
	return w.files, nil
}

// walkResult is one snapshot of the files a batch will process.
type walkResult struct {
	root    string
	files   []string
	skipped int
}

func collect(path string, mode types.CleanMode, filter globFilter) (walkResult, error) {
	root, info, err := resolve(path)
	if err != nil {
		return walkResult{}, err
	}
	w := walkResult{root: root}

	switch mode {
	case types.SingleFile:
		if info.IsDir() {
			return walkResult{}, types.NewError(types.KindNotAFile, root)
		}
		w.files = []string{root}
		return w, nil
	case types.Shallow, types.Deep:
		if !info.IsDir() {
			return walkResult{}, types.NewError(types.KindNotADirectory, root)
		}
	default:
		return walkResult{}, &types.Error{Kind: types.KindInvalidMode, Path: root, Reason: mode.String()}
	}

	add := func(p string) {
		if !filter.empty() {
			rel, err := filepath.Rel(root, p)
			if err == nil && !filter.allows(rel) {
				w.skipped++
				return
			}
		}
		w.files = append(w.files, p)
	}

	if mode == types.Shallow {
		err = walkShallow(root, add)
	} else {
		err = walkDeep(root, add)
	}
	if err != nil {
		return walkResult{}, err
	}
	return w, nil
}

// walkShallow reads the directory in the order the filesystem returns it.
func walkShallow(root string, visit func(string)) error {
	d, err := os.Open(root)
	if err != nil {
		return &types.Error{Kind: types.KindDirectoryRead, Path: root, Err: err}
	}
	defer d.Close()
	for {
		entries, err := d.ReadDir(256)
		for _, e := range entries {
			p := filepath.Join(root, e.Name())
			if isFileEntry(p, e) {
				visit(p)
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return &types.Error{Kind: types.KindDirectoryRead, Path: root, Err: err}
		}
	}
}

func walkDeep(root string, visit func(string)) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return &types.Error{Kind: types.KindDirectoryRead, Path: root, Err: err}
			}
			// unreadable subtrees and vanished entries are skipped
			return nil
		}
		if p == root || d.IsDir() {
			return nil
		}
		if isFileEntry(p, d) {
			visit(p)
		}
		return nil
	})
}

// isFileEntry reports whether d is a regular file CleanFile can process.
// FIFOs, sockets and devices are left out since opening them can block.
// Entries that cannot be stat'ed are skipped, and symlinks count as what
// they point to.
func isFileEntry(p string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink != 0 {
		st, err := os.Stat(p)
		return err == nil && st.Mode().IsRegular()
	}
	if !d.Type().IsRegular() {
		return false
	}
	_, err := d.Info()
	return err == nil
}

// resolve makes path absolute, follows symlinks and stats the result.
func resolve(path string) (string, os.FileInfo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", nil, &types.Error{Kind: types.KindPathNotFound, Path: path, Err: err}
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", nil, statError(abs, err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", nil, statError(resolved, err)
	}
	return resolved, info, nil
}

func statError(path string, err error) error {
	if os.IsPermission(err) {
		return &types.Error{Kind: types.KindPermissionDenied, Path: path, Err: err}
	}
	return &types.Error{Kind: types.KindPathNotFound, Path: path, Err: err}
}
