package models

import "testing"

func TestFormatFromContentType(t *testing.T) {
	tests := []struct {
		contentType string
		want        Format
	}{
		{"application/pdf", FormatPDF},
		{"application/x-pdf", FormatPDF},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", FormatDocx},
		{"text/markdown", FormatMarkdown},
		{"text/markdown; charset=utf-8", FormatMarkdown},
		{"text/plain", FormatPlainText},
		{"text/plain; charset=utf-8", FormatPlainText},
		{"application/rtf", FormatPlainText},
		{"text/rtf", FormatPlainText},
		{"image/png", FormatUnknown},
		{"application/octet-stream", FormatUnknown},
		{"", FormatUnknown},
		{"APPLICATION/PDF", FormatPDF},
	}

	for _, tt := range tests {
		if got := FormatFromContentType(tt.contentType); got != tt.want {
			t.Errorf("FormatFromContentType(%q) = %q, want %q", tt.contentType, got, tt.want)
		}
	}
}

func TestSupportsExtraction(t *testing.T) {
	supported := []Format{FormatPDF, FormatDocx, FormatMarkdown, FormatPlainText}
	for _, f := range supported {
		if !f.SupportsExtraction() {
			t.Errorf("%s should support extraction", f)
		}
	}
	if FormatUnknown.SupportsExtraction() {
		t.Error("unknown format must not support extraction")
	}
}
