package audit

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/victormicco/mahito/internal/types"
)

func TestJournal_AppendAndLoadNewestFirst(t *testing.T) {
	j := NewJournal(filepath.Join(t.TempDir(), "state", "journal.jsonl"))

	require.NoError(t, j.Append(RunRecord{Target: "/a", TotalFiles: 1}))
	require.NoError(t, j.Append(RunRecord{Target: "/b", TotalFiles: 2}))

	got, err := j.LoadHistory()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "/b", got[0].Target)
	assert.Equal(t, "/a", got[1].Target)
	for _, r := range got {
		_, err := uuid.Parse(r.RunID)
		assert.NoError(t, err, "run id %q", r.RunID)
	}

	if runtime.GOOS != "windows" {
		st, err := os.Stat(j.Path())
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), st.Mode().Perm())
	}
}

func TestJournal_MissingFileIsEmpty(t *testing.T) {
	j := NewJournal(filepath.Join(t.TempDir(), "none.jsonl"))
	got, err := j.LoadHistory()
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, j.Clear())
}

func TestJournal_Clear(t *testing.T) {
	j := NewJournal(filepath.Join(t.TempDir(), "j.jsonl"))
	require.NoError(t, j.Append(RunRecord{Target: "/x"}))
	require.NoError(t, j.Clear())
	got, err := j.LoadHistory()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDefaultPath_UsesXDGState(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mahito", "journal.jsonl"), p)
}

func TestNewRunRecord(t *testing.T) {
	var report types.CleanReport
	for i := 0; i < 12; i++ {
		report.AddResult(types.Failed("/f", "boom"))
	}
	report.AddResult(types.FileResult{Path: "/ok", Success: true, StreamsRemoved: 2, AttributesRemoved: 1})
	report.AddSkipped()

	rec := NewRunRecord("/root", types.Deep, types.AllOptions().WithDryRun(true), report, 1500*time.Millisecond)
	assert.Equal(t, "/root", rec.Target)
	assert.Equal(t, "deep (recursive)", rec.Mode)
	assert.True(t, rec.DryRun)
	assert.Equal(t, 13, rec.TotalFiles)
	assert.Equal(t, 1, rec.Successful)
	assert.Equal(t, 12, rec.Failed)
	assert.Equal(t, 1, rec.Skipped)
	assert.Equal(t, 2, rec.StreamsRemoved)
	assert.Equal(t, 1, rec.AttributesRemoved)
	assert.Equal(t, "1.5s", rec.Duration)
	assert.Len(t, rec.Failures, maxFailures)
	assert.NotEmpty(t, rec.RunID)
}
