package officexml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"regexp"
)

// BlankElements empties the text of every element whose qualified name
// (prefix:local as written in the document) is listed in names. The opening
// tag with its attributes, the closing tag and every other byte of doc are
// kept as-is; self-closing elements are already empty and stay untouched.
func BlankElements(doc []byte, names []string) []byte {
	out, err := blankTokens(doc, names)
	if err != nil {
		return blankPattern(doc, names)
	}
	return out
}

type span struct{ from, to int64 }

// blankTokens walks the raw token stream and records the byte range between
// the end of each target start tag and the start of its matching end tag.
func blankTokens(doc []byte, names []string) ([]byte, error) {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	d := xml.NewDecoder(bytes.NewReader(doc))
	var (
		spans []span
		open  string
		depth int
		start int64
	)
	for {
		before := d.InputOffset()
		tok, err := d.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			name := qualifiedName(t.Name)
			switch {
			case open == "" && want[name]:
				open, depth, start = name, 0, d.InputOffset()
			case open != "" && name == open:
				depth++
			}
		case xml.EndElement:
			if open == "" || qualifiedName(t.Name) != open {
				continue
			}
			if depth > 0 {
				depth--
				continue
			}
			if before > start {
				spans = append(spans, span{from: start, to: before})
			}
			open = ""
		}
	}
	if open != "" {
		return nil, errors.New("unterminated element " + open)
	}
	if len(spans) == 0 {
		return doc, nil
	}

	var out bytes.Buffer
	out.Grow(len(doc))
	var last int64
	for _, s := range spans {
		out.Write(doc[last:s.from])
		last = s.to
	}
	out.Write(doc[last:])
	return out.Bytes(), nil
}

func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// blankPattern is the fallback for documents the tokenizer rejects. The
// opening tag must be followed by whitespace or '>' so a name never matches
// a longer one sharing its prefix, and a tag ending in "/>" never matches.
func blankPattern(doc []byte, names []string) []byte {
	for _, name := range names {
		q := regexp.QuoteMeta(name)
		re := regexp.MustCompile(`(?s)(<` + q + `(?:\s+|\s[^>]*[^/>])?>).*?(</` + q + `\s*>)`)
		doc = re.ReplaceAll(doc, []byte("${1}${2}"))
	}
	return doc
}
