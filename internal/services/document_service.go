package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lexhub-io/lexhub/internal/core"
	"github.com/lexhub-io/lexhub/internal/core/extraction"
	objectclient "github.com/lexhub-io/lexhub/internal/core/object-client"
	"github.com/lexhub-io/lexhub/internal/models"
)

// DocumentService owns the document lifecycle: creation, the
// uploading/processing/ready state machine, and the extraction audit trail.
// It is the only writer of extracted text and extraction metadata.
type DocumentService struct {
	db        core.DbClient
	storage   core.ObjectClient
	extractor *extraction.Dispatcher
	queue     core.Enqueuer
	bucket    string
}

func NewDocumentService(db core.DbClient, storage core.ObjectClient, extractor *extraction.Dispatcher, queue core.Enqueuer, bucket string) *DocumentService {
	return &DocumentService{db: db, storage: storage, extractor: extractor, queue: queue, bucket: bucket}
}

// CreateDocument stores the blob and the document row, then either enqueues
// background extraction (supported formats) or marks the document ready
// immediately. It returns before extraction completes; callers never wait
// on the pipeline.
func (s *DocumentService) CreateDocument(ctx context.Context, ownerID, filename, contentType string, data []byte) (*models.Document, error) {
	docID := uuid.NewString()
	format := models.FormatFromContentType(contentType)
	now := time.Now()

	doc := &models.Document{
		ID:          docID,
		OwnerID:     ownerID,
		FileName:    filename,
		ContentType: contentType,
		Format:      format,
		SizeBytes:   int64(len(data)),
		Status:      models.StatusUploading,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.db.CreateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("create document row: %w", err)
	}
	if err := s.db.UpsertProcessingRecord(ctx, docID, models.StageUpload, models.StageProcessing, ""); err != nil {
		return nil, fmt.Errorf("record upload stage: %w", err)
	}

	key := s.objectKey(ownerID, docID, filename)
	url, err := s.storage.UploadFile(ctx, s.bucket, key, data, contentType)
	if err != nil {
		// The blob was never stored; this is the one path that may leave a
		// document in the failed state.
		_ = s.db.UpsertProcessingRecord(ctx, docID, models.StageUpload, models.StageFailed, err.Error())
		_ = s.db.UpdateDocumentStatus(ctx, docID, models.StatusFailed)
		return nil, fmt.Errorf("store blob: %w", err)
	}

	status := models.StatusReady
	if format.SupportsExtraction() {
		status = models.StatusProcessing
	}
	if err := s.db.UpdateDocumentUpload(ctx, docID, url, status); err != nil {
		return nil, fmt.Errorf("finalize upload: %w", err)
	}
	if err := s.db.UpsertProcessingRecord(ctx, docID, models.StageUpload, models.StageSuccess, ""); err != nil {
		return nil, fmt.Errorf("record upload stage: %w", err)
	}

	doc.StorageURL = url
	doc.Status = status

	if format.SupportsExtraction() {
		s.queue.Enqueue(docID)
	}
	return doc, nil
}

// ProcessDocumentText runs extraction for one document, either as the
// background job enqueued at creation or on demand for re-processing.
// Re-processing a ready document takes it through processing back to ready,
// overwriting the prior text; last write wins.
//
// Extraction-time problems never surface as errors here: the document is
// always brought back to ready, with warnings captured in metadata. The
// only errors returned are the missing-document precondition and
// persistence failures.
func (s *DocumentService) ProcessDocumentText(ctx context.Context, documentID string) (*extraction.Result, error) {
	doc, err := s.db.GetDocumentByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("document %s: %w", documentID, core.ErrNotFound)
	}
	// A failed upload never stored a blob; there is nothing to extract and
	// no transition out of failed.
	if doc.Status == models.StatusFailed || doc.StorageURL == "" {
		return nil, fmt.Errorf("document %s has no stored content: %w", documentID, core.ErrNotFound)
	}

	if err := s.db.UpsertProcessingRecord(ctx, documentID, models.StageExtract, models.StageProcessing, ""); err != nil {
		return nil, fmt.Errorf("record extract stage: %w", err)
	}
	if err := s.db.UpdateDocumentStatus(ctx, documentID, models.StatusProcessing); err != nil {
		return nil, fmt.Errorf("mark processing: %w", err)
	}

	bucket, key := objectclient.ParseObjectURL(doc.StorageURL)
	data, err := s.storage.GetFile(ctx, bucket, key)
	if err != nil {
		// The blob is unreachable. The document stays usable without text:
		// record the failure for audit, synthesize error metadata and
		// finish at ready.
		log.Printf("DocumentService: fetch blob for %s: %v", documentID, err)
		meta := &models.ExtractionMetadata{
			Format:   "error",
			Warnings: []string{fmt.Sprintf("could not fetch document content: %v", err)},
		}
		if recErr := s.db.UpsertProcessingRecord(ctx, documentID, models.StageExtract, models.StageFailed, err.Error()); recErr != nil {
			return nil, fmt.Errorf("record extract failure: %w", recErr)
		}
		if updErr := s.db.UpdateDocumentExtraction(ctx, documentID, "", meta, models.StatusReady); updErr != nil {
			return nil, fmt.Errorf("persist degraded result: %w", updErr)
		}
		return &extraction.Result{Text: "", Metadata: *meta}, nil
	}

	res := s.extractor.Extract(ctx, doc.Format, data)

	if err := s.db.UpsertProcessingRecord(ctx, documentID, models.StageExtract, models.StageSuccess, ""); err != nil {
		return nil, fmt.Errorf("record extract success: %w", err)
	}
	if err := s.db.UpdateDocumentExtraction(ctx, documentID, res.Text, &res.Metadata, models.StatusReady); err != nil {
		return nil, fmt.Errorf("persist extraction: %w", err)
	}
	return &res, nil
}

// Get returns the document or core.ErrNotFound.
func (s *DocumentService) Get(ctx context.Context, id string) (*models.Document, error) {
	doc, err := s.db.GetDocumentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("document %s: %w", id, core.ErrNotFound)
	}
	return doc, nil
}

func (s *DocumentService) ListByOwner(ctx context.Context, ownerID string) ([]models.Document, error) {
	return s.db.ListDocumentsByOwner(ctx, ownerID)
}

func (s *DocumentService) Records(ctx context.Context, documentID string) ([]models.ProcessingRecord, error) {
	return s.db.ListProcessingRecords(ctx, documentID)
}

// Delete removes the blob and the document row; processing records go with
// the row via the cascading foreign key.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if doc.StorageURL != "" {
		bucket, key := objectclient.ParseObjectURL(doc.StorageURL)
		if err := s.storage.DeleteFile(ctx, bucket, key); err != nil {
			log.Printf("DocumentService: delete blob for %s: %v", id, err)
		}
	}
	return s.db.DeleteDocument(ctx, id)
}

// Content streams the raw stored bytes, for download endpoints.
func (s *DocumentService) Content(ctx context.Context, id string) (*models.Document, io.ReadCloser, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	bucket, key := objectclient.ParseObjectURL(doc.StorageURL)
	rc, err := s.storage.GetObjectReader(ctx, bucket, key)
	if err != nil {
		return nil, nil, err
	}
	return doc, rc, nil
}

// objectKey creates a consistent S3 key layout. Anonymous documents live
// under a shared public prefix.
func (s *DocumentService) objectKey(ownerID, docID, filename string) string {
	filename = strings.TrimSpace(filename)
	filename = strings.ReplaceAll(filename, " ", "_")
	owner := ownerID
	if owner == "" {
		owner = "public"
	}
	return path.Join("users", owner, "documents", docID, filename)
}
