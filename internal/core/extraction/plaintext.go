package extraction

import "github.com/lexhub-io/lexhub/internal/models"

// PlainTextExtractor is the identity transform. Empty input yields empty
// text, not an error.
type PlainTextExtractor struct{}

func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

func (e *PlainTextExtractor) Extract(text string) Result {
	meta := NewMetadata(text, models.FormatPlainText)
	meta.ExtractionMethod = "passthrough"
	return Result{Text: text, Metadata: meta}
}
