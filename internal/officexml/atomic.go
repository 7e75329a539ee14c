package officexml

import (
	"fmt"
	"os"
	"path/filepath"
)

// pendingFile is a sibling temp file that replaces its target only on
// Commit. Until then the target is never touched, and Discard removes the
// temp file.
type pendingFile struct {
	*os.File
	target string
	done   bool
}

func newPendingFile(target string) (*pendingFile, error) {
	f, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return nil, err
	}
	return &pendingFile{File: f, target: target}, nil
}

// Commit flushes the temp file, applies perm and renames it over the target.
// The rename replaces the target in one step; there is no window in which
// the target is missing.
func (p *pendingFile) Commit(perm os.FileMode) error {
	if err := p.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := p.Chmod(perm); err != nil {
		return fmt.Errorf("setting temp file mode: %w", err)
	}
	if err := p.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(p.Name(), p.target); err != nil {
		return fmt.Errorf("renaming temp to target: %w", err)
	}
	p.done = true
	return nil
}

// Discard drops the temp file unless Commit succeeded. Safe to defer.
func (p *pendingFile) Discard() {
	if p.done {
		return
	}
	_ = p.Close()
	_ = os.Remove(p.Name())
}
