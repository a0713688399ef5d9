package models

import (
	"strings"
	"time"
)

// Format is the declared document format, derived once from the uploaded
// content type and immutable afterwards.
type Format string

const (
	FormatPDF       Format = "pdf"
	FormatDocx      Format = "docx"
	FormatMarkdown  Format = "markdown"
	FormatPlainText Format = "plaintext"
	FormatUnknown   Format = "unknown"
)

// Document status values. A document only ever reaches "failed" when the
// blob itself was never stored; extraction problems degrade to "ready".
const (
	StatusUploading  = "uploading"
	StatusProcessing = "processing"
	StatusReady      = "ready"
	StatusFailed     = "failed"
)

// Pipeline stages tracked by processing records.
const (
	StageUpload  = "upload"
	StageExtract = "extract"
)

// Per-stage statuses for processing records.
const (
	StagePending    = "pending"
	StageProcessing = "processing"
	StageSuccess    = "success"
	StageFailed     = "failed"
)

// User represents an authenticated user of the system.
type User struct {
	ID           string    `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"first_name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Document represents one uploaded artifact and its extraction state.
// OwnerID is empty for anonymous/public documents.
type Document struct {
	ID                 string              `db:"id" json:"id"`
	OwnerID            string              `db:"owner_id" json:"owner_id,omitempty"`
	FileName           string              `db:"file_name" json:"file_name"`
	StorageURL         string              `db:"storage_url" json:"storage_url"`
	ContentType        string              `db:"content_type" json:"content_type"`
	Format             Format              `db:"format" json:"format"`
	SizeBytes          int64               `db:"size_bytes" json:"size_bytes"`
	Status             string              `db:"status" json:"status"`
	ExtractedText      string              `db:"extracted_text" json:"extracted_text,omitempty"`
	ExtractionMetadata *ExtractionMetadata `db:"extraction_metadata" json:"extraction_metadata,omitempty"`
	CreatedAt          time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time           `db:"updated_at" json:"updated_at"`
}

// ProcessingRecord is an audit entry for one pipeline stage of one document.
// It is updated in place as the stage progresses and removed only by
// cascading document deletion.
type ProcessingRecord struct {
	ID         string    `db:"id" json:"id"`
	DocumentID string    `db:"document_id" json:"document_id"`
	Stage      string    `db:"stage" json:"stage"`
	Status     string    `db:"status" json:"status"`
	Detail     string    `db:"detail" json:"detail,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// ExtractionMetadata is the structured record persisted next to the
// extracted text. Warnings collect every degraded-path message so a
// document stays usable even when extraction never succeeds.
type ExtractionMetadata struct {
	WordCount        int      `json:"word_count"`
	CharacterCount   int      `json:"character_count"`
	Format           string   `json:"format"`
	ExtractionMethod string   `json:"extraction_method,omitempty"`
	Warnings         []string `json:"warnings,omitempty"`
	HasFrontMatter   bool     `json:"has_front_matter,omitempty"`

	// OCR diagnostics, set only for PDF extraction attempts.
	PageCount         int     `json:"page_count,omitempty"`
	OCRProcessingTime float64 `json:"ocr_processing_time_seconds,omitempty"`
	OCRLanguage       string  `json:"ocr_language,omitempty"`
	APIResponseTime   float64 `json:"api_response_time_seconds,omitempty"`
}

// FormatFromContentType maps an uploaded Content-Type header to a declared
// format. RTF is close enough to plain text for our purposes.
func FormatFromContentType(contentType string) Format {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	switch ct {
	case "application/pdf", "application/x-pdf":
		return FormatPDF
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/msword":
		return FormatDocx
	case "text/markdown", "text/x-markdown":
		return FormatMarkdown
	case "text/plain", "text/rtf", "application/rtf":
		return FormatPlainText
	default:
		return FormatUnknown
	}
}

// SupportsExtraction reports whether the pipeline attempts text extraction
// for the format. Unknown formats skip extraction and go straight to ready.
func (f Format) SupportsExtraction() bool {
	switch f {
	case FormatPDF, FormatDocx, FormatMarkdown, FormatPlainText:
		return true
	default:
		return false
	}
}
