package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultConfig(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Console = &buf
	l, closer, err := New(cfg)
	require.NoError(t, err)
	defer closer.Close() //nolint:errcheck

	assert.Equal(t, logrus.WarnLevel, l.GetLevel())
	l.Info("hidden")
	l.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l, closer, err := New(Config{Level: "debug", Format: "json", Console: &buf})
	require.NoError(t, err)
	defer closer.Close() //nolint:errcheck

	l.WithField("path", "/tmp/a.docx").Debug("cleaned")
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "cleaned", rec["msg"])
	assert.Equal(t, "debug", rec["level"])
	assert.Equal(t, "/tmp/a.docx", rec["path"])
}

func TestNew_RejectsUnknownSettings(t *testing.T) {
	_, _, err := New(Config{Level: "chatty"})
	assert.Error(t, err)
	_, _, err = New(Config{Level: "info", Format: "xml"})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, lvl)

	lvl, err = ParseLevel(" DEBUG ")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, lvl)
}

func TestNew_FileOutput(t *testing.T) {
	var console bytes.Buffer
	p := filepath.Join(t.TempDir(), "logs", "mahito.log")
	l, closer, err := New(Config{Level: "info", FilePath: p, Console: &console})
	require.NoError(t, err)

	l.Info("batch finished")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), "batch finished")
	assert.Contains(t, console.String(), "batch finished")
}
