package extraction

import (
	"context"
	"fmt"
	"log"

	"github.com/lexhub-io/lexhub/internal/models"
)

// Dispatcher routes raw document bytes to the extractor for the declared
// format. Its Extract method never fails for per-document content problems:
// extractor errors and panics are converted into degraded results so no
// extraction-path error ever crosses into the orchestrator.
type Dispatcher struct {
	pdf      *PDFExtractor
	docx     *DocxExtractor
	markdown *MarkdownExtractor
	plain    *PlainTextExtractor
}

func NewDispatcher(pdf *PDFExtractor) *Dispatcher {
	return &Dispatcher{
		pdf:      pdf,
		docx:     NewDocxExtractor(),
		markdown: NewMarkdownExtractor(),
		plain:    NewPlainTextExtractor(),
	}
}

// Extract selects the extractor for the declared format and returns a
// uniform result. Unsupported formats yield empty text with a warning.
func (d *Dispatcher) Extract(ctx context.Context, format models.Format, data []byte) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Dispatcher: extractor panic for format %q: %v", format, r)
			res = degraded(format, fmt.Sprintf("extraction failed: %v", r))
		}
	}()

	switch format {
	case models.FormatPDF:
		return d.pdf.Extract(ctx, data)
	case models.FormatDocx:
		return d.docx.Extract(ctx, data)
	case models.FormatMarkdown:
		return d.markdown.Extract(string(data))
	case models.FormatPlainText:
		return d.plain.Extract(string(data))
	default:
		return degraded(format, fmt.Sprintf("unsupported format %q, no text extracted", format))
	}
}
