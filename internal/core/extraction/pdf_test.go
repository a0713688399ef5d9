package extraction

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lexhub-io/lexhub/internal/core/ocr"
)

type fakeOCR struct {
	res *ocr.Result
	err error
}

func (f *fakeOCR) ExtractPDF(ctx context.Context, pdf []byte) (*ocr.Result, error) {
	return f.res, f.err
}

func TestPDFExtractSuccess(t *testing.T) {
	e := NewPDFExtractor(&fakeOCR{res: &ocr.Result{
		Text:           "Hello World",
		PageCount:      1,
		ProcessingTime: 0.5,
		Language:       "en",
	}})

	res := e.Extract(context.Background(), []byte("%PDF-1.4"))
	if res.Text != "Hello World" {
		t.Errorf("text = %q, want Hello World", res.Text)
	}
	meta := res.Metadata
	if meta.ExtractionMethod != "external-ocr-api" {
		t.Errorf("method = %q, want external-ocr-api", meta.ExtractionMethod)
	}
	if meta.PageCount != 1 {
		t.Errorf("page count = %d, want 1", meta.PageCount)
	}
	if meta.OCRProcessingTime != 0.5 {
		t.Errorf("ocr processing time = %v, want 0.5", meta.OCRProcessingTime)
	}
	if meta.OCRLanguage != "en" {
		t.Errorf("language = %q, want en", meta.OCRLanguage)
	}
	if meta.WordCount != 2 || meta.CharacterCount != 10 {
		t.Errorf("counts = %d/%d, want 2/10", meta.WordCount, meta.CharacterCount)
	}
}

func TestPDFExtractFailure(t *testing.T) {
	e := NewPDFExtractor(&fakeOCR{err: errors.New("service unavailable")})

	res := e.Extract(context.Background(), []byte("%PDF-1.4"))
	if res.Text != "" {
		t.Errorf("text = %q, want empty", res.Text)
	}
	if res.Metadata.Format != "pdf" {
		t.Errorf("format = %q, want pdf", res.Metadata.Format)
	}
	if res.Metadata.WordCount != 0 || res.Metadata.CharacterCount != 0 {
		t.Errorf("counts = %d/%d, want 0/0", res.Metadata.WordCount, res.Metadata.CharacterCount)
	}
	if len(res.Metadata.Warnings) == 0 {
		t.Fatal("expected a warning")
	}
	if !strings.Contains(res.Metadata.Warnings[0], "service unavailable") {
		t.Errorf("warning %q should embed the underlying error", res.Metadata.Warnings[0])
	}
}
