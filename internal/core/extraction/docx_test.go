package extraction

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"
)

// buildDocx assembles a minimal .docx archive around the given paragraph
// texts.
func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	sb.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		sb.WriteString(`<w:p><w:r><w:t>`)
		sb.WriteString(p)
		sb.WriteString(`</w:t></w:r></w:p>`)
	}
	sb.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	ct, err := zw.Create("[Content_Types].xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := ct.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
		`</Types>`)); err != nil {
		t.Fatalf("write [Content_Types].xml: %v", err)
	}
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := f.Write([]byte(sb.String())); err != nil {
		t.Fatalf("write document.xml: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestDocxExtract(t *testing.T) {
	e := NewDocxExtractor()

	res := e.Extract(context.Background(), buildDocx(t, "Hello docx", "second paragraph"))
	if !strings.Contains(res.Text, "Hello docx") {
		t.Errorf("text = %q, want first paragraph", res.Text)
	}
	if !strings.Contains(res.Text, "second paragraph") {
		t.Errorf("text = %q, want second paragraph", res.Text)
	}
	if res.Metadata.Format != "docx" {
		t.Errorf("format = %q, want docx", res.Metadata.Format)
	}
	if got, want := res.Metadata.WordCount, CountWords(res.Text); got != want {
		t.Errorf("WordCount = %d, recomputed %d", got, want)
	}
}

func TestDocxExtractGarbage(t *testing.T) {
	e := NewDocxExtractor()

	res := e.Extract(context.Background(), []byte("definitely not a zip"))
	if res.Text != "" {
		t.Errorf("text = %q, want empty", res.Text)
	}
	if len(res.Metadata.Warnings) == 0 {
		t.Error("expected a warning for unparseable input")
	}
}
