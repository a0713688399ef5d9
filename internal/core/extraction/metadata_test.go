package extraction

import (
	"testing"

	"github.com/lexhub-io/lexhub/internal/models"
)

func TestCountWords(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"   \n\t  ", 0},
		{"hi there", 2},
		{"one", 1},
		{"  leading and   trailing  ", 3},
		{"line\nbreaks\ncount\ttoo", 4},
		{"unicode   héllo wörld", 3},
	}

	for _, tt := range tests {
		if got := CountWords(tt.text); got != tt.want {
			t.Errorf("CountWords(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestCountCharacters(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"hi there", 7},
		{"  a  b  ", 2},
		{"héllo", 5},
		{"a\nb\tc", 3},
	}

	for _, tt := range tests {
		if got := CountCharacters(tt.text); got != tt.want {
			t.Errorf("CountCharacters(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestNewMetadata(t *testing.T) {
	meta := NewMetadata("hi there", models.FormatPlainText)
	if meta.WordCount != 2 {
		t.Errorf("WordCount = %d, want 2", meta.WordCount)
	}
	if meta.CharacterCount != 7 {
		t.Errorf("CharacterCount = %d, want 7", meta.CharacterCount)
	}
	if meta.Format != "plaintext" {
		t.Errorf("Format = %q, want plaintext", meta.Format)
	}
}

func TestDegradedResult(t *testing.T) {
	res := degraded(models.FormatPDF, "something broke")
	if res.Text != "" {
		t.Errorf("degraded text = %q, want empty", res.Text)
	}
	if res.Metadata.WordCount != 0 || res.Metadata.CharacterCount != 0 {
		t.Errorf("degraded counts = %d/%d, want 0/0", res.Metadata.WordCount, res.Metadata.CharacterCount)
	}
	if len(res.Metadata.Warnings) != 1 {
		t.Fatalf("expected one warning, got %v", res.Metadata.Warnings)
	}
}
