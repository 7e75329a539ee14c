//go:build linux || darwin

package engine

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/victormicco/mahito/internal/types"
	"golang.org/x/sys/unix"
)

func TestCollectFiles_SkipsFIFOs(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "a")
	b := writeFile(t, dir, "sub/b.txt", "b")
	require.NoError(t, unix.Mkfifo(filepath.Join(dir, "pipe"), 0o644))
	require.NoError(t, unix.Mkfifo(filepath.Join(dir, "sub", "pipe"), 0o644))

	shallow, err := CollectFiles(dir, types.Shallow)
	require.NoError(t, err)
	assert.Equal(t, []string{a}, shallow)

	deep, err := CollectFiles(dir, types.Deep)
	require.NoError(t, err)
	assert.Equal(t, sorted([]string{a, b}), sorted(deep))
}

// withDeadline fails the test instead of hanging when fn blocks.
func withDeadline(t *testing.T, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("blocked on a FIFO")
	}
}

func TestCleanDirectory_FIFODoesNotBlockBatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "a")
	require.NoError(t, unix.Mkfifo(filepath.Join(dir, "pipe"), 0o644))

	var report types.CleanReport
	var err error
	withDeadline(t, func() {
		report, err = New(types.AllOptions().WithVerifyContent(true)).CleanDirectory(dir, types.Shallow)
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalFiles)
	assert.True(t, report.IsCompleteSuccess())
}

func TestCleanFile_RejectsFIFO(t *testing.T) {
	dir := t.TempDir()
	pipe := filepath.Join(dir, "pipe")
	require.NoError(t, unix.Mkfifo(pipe, 0o644))

	fb := newFakeBackend()
	var res types.FileResult
	var err error
	withDeadline(t, func() {
		res, err = New(types.AllOptions().WithVerifyContent(true), WithBackend(fb)).CleanFile(pipe)
	})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "not a regular file")
	assert.Empty(t, fb.calls)
}
