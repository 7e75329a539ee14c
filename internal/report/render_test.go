package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/victormicco/mahito/internal/types"
)

func sampleReport() types.CleanReport {
	var r types.CleanReport
	ok := types.Succeeded("/data/a.docx", 2, true)
	ok.PropertiesCleared = true
	r.AddResult(ok)
	r.AddResult(types.Failed("/data/b.txt", "permission denied: /data/b.txt"))
	r.AddSkipped()
	return r
}

func TestPrintText_NoFiles(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, types.CleanReport{}, PrintOptions{})
	if !strings.Contains(buf.String(), "No files to clean") {
		t.Fatalf("expected friendly empty message; got: %q", buf.String())
	}
}

func TestPrintText_ListsFailuresOnly(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, sampleReport(), PrintOptions{NoColor: true, Duration: 1200 * time.Millisecond})
	out := buf.String()
	if !strings.Contains(out, "FAILED /data/b.txt: permission denied") {
		t.Fatalf("expected failure line; got: %q", out)
	}
	if strings.Contains(out, "/data/a.docx") {
		t.Fatalf("successful files are listed only when verbose; got: %q", out)
	}
	if !strings.Contains(out, "Files: 2 (successful: 1, failed: 1, skipped: 1)") {
		t.Fatalf("expected summary; got: %q", out)
	}
	if !strings.Contains(out, "Duration: 1.20s") {
		t.Fatalf("expected duration; got: %q", out)
	}
	if strings.Contains(out, "All files cleaned") {
		t.Fatalf("no success banner when a file failed; got: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("no escape codes with NoColor; got: %q", out)
	}
}

func TestPrintText_VerboseListsEverything(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, sampleReport(), PrintOptions{NoColor: true, Verbose: true})
	out := buf.String()
	assert.Contains(t, out, "ok /data/a.docx (streams: 2, attributes: 0, timestamps: yes)")
	assert.Contains(t, out, "FAILED /data/b.txt")
}

func TestPrintText_ColorByDefault(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, sampleReport(), PrintOptions{})
	assert.Contains(t, buf.String(), "\x1b[31mFAILED\x1b[0m")
}

func TestPrintTable_WithResults(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, sampleReport(), PrintOptions{NoColor: true, Verbose: true, DryRun: true})
	out := buf.String()
	for _, want := range []string{"PATH", "STATUS", "/data/a.docx", "/data/b.txt", "FAILED", "Dry run: no file was modified"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in table output; got: %q", want, out)
		}
	}
}

func TestPrintTable_AllCleanShowsBanner(t *testing.T) {
	var r types.CleanReport
	r.AddResult(types.Succeeded("/x", 0, true))
	var buf bytes.Buffer
	PrintTable(&buf, r, PrintOptions{NoColor: true})
	out := buf.String()
	assert.Contains(t, out, "All files cleaned")
	assert.NotContains(t, out, "PATH", "no table when nothing is listed")
}

func TestPrintFileResult(t *testing.T) {
	var buf bytes.Buffer
	PrintFileResult(&buf, types.Succeeded("/x/y.pdf", 1, true), PrintOptions{NoColor: true})
	assert.Contains(t, buf.String(), "ok /x/y.pdf (streams: 1")
	assert.Contains(t, buf.String(), "Files: 1 (successful: 1, failed: 0, skipped: 0)")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleReport()))

	var got types.CleanReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleReport(), got)

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, types.CleanReport{}))
	assert.Contains(t, buf.String(), `"file_results": []`)
}

func TestShouldFail(t *testing.T) {
	assert.True(t, ShouldFail(sampleReport()))

	var clean types.CleanReport
	clean.AddResult(types.Succeeded("/x", 0, false))
	assert.False(t, ShouldFail(clean))
}
