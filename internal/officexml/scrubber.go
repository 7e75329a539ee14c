// Package officexml clears the document properties Office Open XML files
// carry inside their zip package (author, company, last modified by, ...)
// without touching any other part of the document.
package officexml

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/victormicco/mahito/internal/types"
)

const (
	CoreEntry = "docProps/core.xml"
	AppEntry  = "docProps/app.xml"
)

var officeExtensions = map[string]bool{
	".docx": true, ".xlsx": true, ".pptx": true,
	".docm": true, ".xlsm": true, ".pptm": true,
	".dotx": true, ".xltx": true, ".potx": true,
}

// CoreElements are blanked in docProps/core.xml.
var CoreElements = []string{
	"dc:creator",        // Author
	"cp:lastModifiedBy", // Last Modified By
	"dc:title",
	"dc:subject",
	"dc:description", // Comments
	"cp:keywords",
	"cp:category",
	"cp:contentStatus",
}

// AppElements are blanked in docProps/app.xml.
var AppElements = []string{
	"Company",
	"Manager",
	"HyperlinkBase",
}

// IsOfficeDocument reports whether path has an Office Open XML extension.
func IsOfficeDocument(path string) bool {
	return officeExtensions[strings.ToLower(filepath.Ext(path))]
}

// Outcome describes what Scrub did.
type Outcome struct {
	// Recognized is false for files that are not office documents by
	// extension or cannot be read as a zip archive.
	Recognized bool
	// Rewritten is true when the file was replaced by a cleaned copy.
	Rewritten bool
}

// ClearProperties blanks the property elements of the office document at
// path. It returns false, nil for anything that is not an office document.
func ClearProperties(path string) (bool, error) {
	out, err := Scrub(path)
	return out.Recognized, err
}

// Scrub is ClearProperties with the detail of whether the file was replaced.
// Documents whose properties are already empty are left byte-identical.
func Scrub(path string) (Outcome, error) {
	if !IsOfficeDocument(path) {
		return Outcome{}, nil
	}
	src, err := os.Open(path)
	if err != nil {
		return Outcome{}, types.CleaningFailed(path, "failed to open file", err)
	}
	defer src.Close()

	st, err := src.Stat()
	if err != nil {
		return Outcome{}, types.CleaningFailed(path, "failed to stat file", err)
	}
	zr, err := zip.NewReader(src, st.Size())
	if err != nil {
		// not a zip package; nothing we know how to clean
		return Outcome{}, nil
	}

	cleaned, err := cleanPropertyEntries(path, zr)
	if err != nil {
		return Outcome{Recognized: true}, err
	}
	if len(cleaned) == 0 {
		return Outcome{Recognized: true}, nil
	}

	if err := rewrite(path, zr, cleaned, src, st.Mode().Perm()); err != nil {
		return Outcome{Recognized: true}, err
	}
	return Outcome{Recognized: true, Rewritten: true}, nil
}

// cleanPropertyEntries returns the blanked content of every property entry
// whose content actually changes.
func cleanPropertyEntries(path string, zr *zip.Reader) (map[string][]byte, error) {
	out := map[string][]byte{}
	for _, zf := range zr.File {
		var names []string
		switch zf.Name {
		case CoreEntry:
			names = CoreElements
		case AppEntry:
			names = AppElements
		default:
			continue
		}
		data, err := readEntry(zf)
		if err != nil {
			return nil, types.CleaningFailed(path, "failed to read "+zf.Name, err)
		}
		if blanked := BlankElements(data, names); !bytes.Equal(blanked, data) {
			out[zf.Name] = blanked
		}
	}
	return out, nil
}

func readEntry(zf *zip.File) ([]byte, error) {
	rc, err := zf.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// rewrite builds the cleaned archive next to path and swaps it in. Entries
// other than the cleaned ones are copied raw, so their bytes, names and
// compression methods are reproduced exactly.
func rewrite(path string, zr *zip.Reader, cleaned map[string][]byte, src *os.File, perm os.FileMode) error {
	tmp, err := newPendingFile(path)
	if err != nil {
		return types.CleaningFailed(path, "failed to create temp file", err)
	}
	defer tmp.Discard()

	zw := zip.NewWriter(tmp)
	if zr.Comment != "" {
		if err := zw.SetComment(zr.Comment); err != nil {
			return types.CleaningFailed(path, "failed to write archive comment", err)
		}
	}
	for _, zf := range zr.File {
		data, ok := cleaned[zf.Name]
		if !ok {
			if err := zw.Copy(zf); err != nil {
				return types.CleaningFailed(path, "failed to copy entry "+zf.Name, err)
			}
			continue
		}
		fh := zf.FileHeader
		fh.CRC32 = 0
		fh.CompressedSize, fh.UncompressedSize = 0, 0
		fh.CompressedSize64, fh.UncompressedSize64 = 0, 0
		// a zero Modified makes the writer reuse the original MS-DOS date
		// fields instead of adding an extended timestamp
		fh.Modified = time.Time{}
		fh.Extra = nil
		w, err := zw.CreateHeader(&fh)
		if err != nil {
			return types.CleaningFailed(path, "failed to write to archive", err)
		}
		if _, err := w.Write(data); err != nil {
			return types.CleaningFailed(path, "failed to write content", err)
		}
	}
	if err := zw.Close(); err != nil {
		return types.CleaningFailed(path, "failed to finalize archive", err)
	}
	// Windows refuses to rename over an open file.
	_ = src.Close()
	if err := tmp.Commit(perm); err != nil {
		return types.CleaningFailed(path, "failed to replace original file", err)
	}
	return nil
}
