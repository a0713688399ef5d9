package core

import (
	"context"
	"errors"
	"io"

	"github.com/lexhub-io/lexhub/internal/models"
)

// ErrNotFound marks missing documents or blobs. Callers check it with
// errors.Is; the db client itself returns (nil, nil) for absent rows the
// same way the rest of this codebase does.
var ErrNotFound = errors.New("not found")

// DbClient defines all persistence operations the services need.
// It abstracts Postgres so higher layers never depend on a specific DB.
type DbClient interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	CreateDocument(ctx context.Context, doc *models.Document) error
	GetDocumentByID(ctx context.Context, id string) (*models.Document, error)
	ListDocumentsByOwner(ctx context.Context, ownerID string) ([]models.Document, error)
	UpdateDocumentStatus(ctx context.Context, id string, status string) error
	UpdateDocumentUpload(ctx context.Context, id string, storageURL string, status string) error
	UpdateDocumentExtraction(ctx context.Context, id string, text string, meta *models.ExtractionMetadata, status string) error
	DeleteDocument(ctx context.Context, id string) error

	UpsertProcessingRecord(ctx context.Context, documentID, stage, status, detail string) error
	ListProcessingRecords(ctx context.Context, documentID string) ([]models.ProcessingRecord, error)

	Close() error
}

// ObjectClient defines interactions with S3 or any object storage.
// It's abstract so AWS can be replaced with MinIO, GCP, etc. easily.
type ObjectClient interface {
	UploadFile(ctx context.Context, bucket, key string, data []byte, contentType string) (url string, err error)
	DeleteFile(ctx context.Context, bucket, key string) error
	GetFile(ctx context.Context, bucket, key string) ([]byte, error)

	GetObjectReader(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// Enqueuer schedules a document ID for background text extraction.
type Enqueuer interface {
	Enqueue(docID string)
}
