package extraction

import (
	"strings"
	"unicode"

	"github.com/lexhub-io/lexhub/internal/models"
)

// Result is the tuple every extractor hands back to the dispatcher. It is
// ephemeral; the orchestrator persists it into the document row.
type Result struct {
	Text     string
	Metadata models.ExtractionMetadata
}

// CountWords counts whitespace-delimited non-empty tokens.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// CountCharacters counts non-whitespace runes.
func CountCharacters(text string) int {
	n := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// NewMetadata assembles the base metadata for extracted text. Every
// extractor goes through here so the counting rules stay identical across
// formats.
func NewMetadata(text string, format models.Format) models.ExtractionMetadata {
	return models.ExtractionMetadata{
		WordCount:      CountWords(text),
		CharacterCount: CountCharacters(text),
		Format:         string(format),
	}
}

// degraded builds an empty-text result carrying the given warnings. Used by
// every failure path so extraction errors surface as metadata, never as
// returned errors.
func degraded(format models.Format, warnings ...string) Result {
	meta := NewMetadata("", format)
	meta.Warnings = warnings
	return Result{Text: "", Metadata: meta}
}
