package officexml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlankElements(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		in    string
		want  string
	}{
		{
			name:  "plain element",
			names: []string{"dc:creator"},
			in:    `<cp:coreProperties><dc:creator>Alice</dc:creator></cp:coreProperties>`,
			want:  `<cp:coreProperties><dc:creator></dc:creator></cp:coreProperties>`,
		},
		{
			name:  "attributes on the opening tag are kept",
			names: []string{"dc:title"},
			in:    `<r><dc:title xml:lang="en-US">Q3 plan</dc:title></r>`,
			want:  `<r><dc:title xml:lang="en-US"></dc:title></r>`,
		},
		{
			name:  "prefix sharing names do not match",
			names: []string{"dc:creator"},
			in:    `<r><dc:creatorNote>keep</dc:creatorNote><dc:creator>Bob</dc:creator></r>`,
			want:  `<r><dc:creatorNote>keep</dc:creatorNote><dc:creator></dc:creator></r>`,
		},
		{
			name:  "self-closing element untouched",
			names: []string{"dc:subject"},
			in:    `<r><dc:subject/><dc:subject a="1" /></r>`,
			want:  `<r><dc:subject/><dc:subject a="1" /></r>`,
		},
		{
			name:  "multiline content and siblings",
			names: []string{"Company", "Manager"},
			in:    "<Properties>\n  <Company>Acme\n Corp</Company>\n  <Pages>3</Pages>\n  <Manager>Eve</Manager>\n</Properties>",
			want:  "<Properties>\n  <Company></Company>\n  <Pages>3</Pages>\n  <Manager></Manager>\n</Properties>",
		},
		{
			name:  "commented markup is not an element",
			names: []string{"dc:creator"},
			in:    `<r><!-- <dc:creator>x</dc:creator> --><dc:creator>y</dc:creator></r>`,
			want:  `<r><!-- <dc:creator>x</dc:creator> --><dc:creator></dc:creator></r>`,
		},
		{
			name:  "unrelated namespaced elements untouched",
			names: []string{"dc:creator"},
			in:    `<r><dcterms:created xsi:type="dcterms:W3CDTF">2024-01-01T00:00:00Z</dcterms:created></r>`,
			want:  `<r><dcterms:created xsi:type="dcterms:W3CDTF">2024-01-01T00:00:00Z</dcterms:created></r>`,
		},
		{
			name:  "malformed document falls back to pattern matching",
			names: []string{"dc:creator"},
			in:    `<r><dc:creator>Bob & Alice</dc:creator><dc:creatorX>k</dc:creatorX></r>`,
			want:  `<r><dc:creator></dc:creator><dc:creatorX>k</dc:creatorX></r>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BlankElements([]byte(tt.in), tt.names)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestBlankElements_KeepsDeclarationAndNamespaces(t *testing.T) {
	in := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\r\n" +
		`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/">` +
		`<dc:creator>Alice</dc:creator><cp:lastModifiedBy>Alice</cp:lastModifiedBy><cp:revision>4</cp:revision></cp:coreProperties>`
	want := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\r\n" +
		`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/">` +
		`<dc:creator></dc:creator><cp:lastModifiedBy></cp:lastModifiedBy><cp:revision>4</cp:revision></cp:coreProperties>`

	got := BlankElements([]byte(in), CoreElements)
	assert.Equal(t, want, string(got))
}

func TestBlankElements_NothingToDoReturnsInput(t *testing.T) {
	in := []byte(`<r><dc:creator></dc:creator></r>`)
	assert.Equal(t, in, BlankElements(in, CoreElements))
}
