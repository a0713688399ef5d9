package extraction

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/lexhub-io/lexhub/internal/core/ocr"
	"github.com/lexhub-io/lexhub/internal/models"
)

// OCRService is the slice of the OCR client the PDF extractor needs.
type OCRService interface {
	ExtractPDF(ctx context.Context, pdf []byte) (*ocr.Result, error)
}

// PDFExtractor delegates entirely to the remote OCR service. There is no
// local text-layer parsing attempt; a failed or timed-out call degrades to
// empty text with the error recorded as a warning.
type PDFExtractor struct {
	ocr OCRService
}

func NewPDFExtractor(svc OCRService) *PDFExtractor {
	return &PDFExtractor{ocr: svc}
}

func (e *PDFExtractor) Extract(ctx context.Context, data []byte) Result {
	start := time.Now()
	res, err := e.ocr.ExtractPDF(ctx, data)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		log.Printf("PDFExtractor: ocr call failed after %.2fs: %v", elapsed, err)
		out := degraded(models.FormatPDF,
			fmt.Sprintf("ocr extraction failed after %.2fs: %v", elapsed, err))
		out.Metadata.APIResponseTime = elapsed
		return out
	}

	meta := NewMetadata(res.Text, models.FormatPDF)
	meta.ExtractionMethod = "external-ocr-api"
	meta.PageCount = res.PageCount
	meta.OCRProcessingTime = res.ProcessingTime
	meta.OCRLanguage = res.Language
	meta.APIResponseTime = elapsed
	return Result{Text: res.Text, Metadata: meta}
}
