package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/google/uuid"
	"github.com/lexhub-io/lexhub/internal/config"
	"github.com/lexhub-io/lexhub/internal/core"
	"github.com/lexhub-io/lexhub/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(ctx context.Context, cfg *config.Config) (core.DbClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database client configuration is nil")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Sensible pool settings for an API service; adjust as needed.
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := EnsureBootstrapped(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

func (c *DatabaseClient) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Users

func (c *DatabaseClient) CreateUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("nil user")
	}
	const q = `
		INSERT INTO users (id, first_name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, COALESCE($5, now()), COALESCE($6, now()))
	`
	_, err := c.db.ExecContext(ctx, q,
		user.ID, user.FirstName, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	return err
}

func (c *DatabaseClient) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const q = `
		SELECT id, first_name, email, password_hash, created_at, updated_at
		FROM users WHERE email = $1
	`
	var u models.User
	err := c.db.QueryRowContext(ctx, q, email).Scan(
		&u.ID, &u.FirstName, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Documents

func (c *DatabaseClient) CreateDocument(ctx context.Context, doc *models.Document) error {
	if doc == nil {
		return errors.New("nil document")
	}
	const q = `
		INSERT INTO documents
			(id, owner_id, file_name, storage_url, content_type, format, size_bytes, status, created_at, updated_at)
		VALUES
			($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7, $8, COALESCE($9, now()), COALESCE($10, now()))
	`
	_, err := c.db.ExecContext(ctx, q,
		doc.ID, doc.OwnerID, doc.FileName, doc.StorageURL, doc.ContentType,
		string(doc.Format), doc.SizeBytes, doc.Status, doc.CreatedAt, doc.UpdatedAt)
	return err
}

func (c *DatabaseClient) GetDocumentByID(ctx context.Context, id string) (*models.Document, error) {
	const q = `
		SELECT id, COALESCE(owner_id::text, ''), file_name, storage_url, content_type, format,
		       size_bytes, status, COALESCE(extracted_text, ''), extraction_metadata,
		       created_at, updated_at
		FROM documents
		WHERE id = $1
	`
	var (
		d        models.Document
		format   string
		metaJSON []byte
	)
	err := c.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID, &d.OwnerID, &d.FileName, &d.StorageURL, &d.ContentType, &format,
		&d.SizeBytes, &d.Status, &d.ExtractedText, &metaJSON, &d.CreatedAt, &d.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	d.Format = models.Format(format)
	if len(metaJSON) > 0 {
		var meta models.ExtractionMetadata
		if err := json.Unmarshal(metaJSON, &meta); err != nil {
			return nil, fmt.Errorf("decode extraction metadata: %w", err)
		}
		d.ExtractionMetadata = &meta
	}
	return &d, nil
}

func (c *DatabaseClient) ListDocumentsByOwner(ctx context.Context, ownerID string) ([]models.Document, error) {
	const q = `
		SELECT id, COALESCE(owner_id::text, ''), file_name, storage_url, content_type, format,
		       size_bytes, status, created_at, updated_at
		FROM documents
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`
	rows, err := c.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Document
	for rows.Next() {
		var (
			d      models.Document
			format string
		)
		if err := rows.Scan(
			&d.ID, &d.OwnerID, &d.FileName, &d.StorageURL, &d.ContentType, &format,
			&d.SizeBytes, &d.Status, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, err
		}
		d.Format = models.Format(format)
		out = append(out, d)
	}
	return out, rows.Err()
}

func (c *DatabaseClient) UpdateDocumentStatus(ctx context.Context, id string, status string) error {
	const q = `
		UPDATE documents
		SET status = $2, updated_at = now()
		WHERE id = $1
	`
	res, err := c.db.ExecContext(ctx, q, id, status)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("document not found: %s", id)
	}
	return nil
}

// UpdateDocumentUpload records the stored blob location and advances the
// status out of uploading.
func (c *DatabaseClient) UpdateDocumentUpload(ctx context.Context, id string, storageURL string, status string) error {
	const q = `
		UPDATE documents
		SET storage_url = $2, status = $3, updated_at = now()
		WHERE id = $1
	`
	res, err := c.db.ExecContext(ctx, q, id, storageURL, status)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("document not found: %s", id)
	}
	return nil
}

// UpdateDocumentExtraction writes text, metadata and status in one statement
// so readers waiting for status != processing observe them as a unit.
func (c *DatabaseClient) UpdateDocumentExtraction(ctx context.Context, id string, text string, meta *models.ExtractionMetadata, status string) error {
	var metaJSON []byte
	if meta != nil {
		var err error
		metaJSON, err = json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("encode extraction metadata: %w", err)
		}
	}
	const q = `
		UPDATE documents
		SET extracted_text = $2, extraction_metadata = $3, status = $4, updated_at = now()
		WHERE id = $1
	`
	res, err := c.db.ExecContext(ctx, q, id, text, metaJSON, status)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("document not found: %s", id)
	}
	return nil
}

func (c *DatabaseClient) DeleteDocument(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	res, err := c.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("document not found: %s", id)
	}
	return nil
}

// Processing records

// UpsertProcessingRecord creates the per-stage audit row on first use and
// updates it in place afterwards.
func (c *DatabaseClient) UpsertProcessingRecord(ctx context.Context, documentID, stage, status, detail string) error {
	const q = `
		INSERT INTO processing_records (id, document_id, stage, status, detail, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		ON CONFLICT (document_id, stage)
		DO UPDATE SET status = EXCLUDED.status, detail = EXCLUDED.detail, updated_at = now()
	`
	_, err := c.db.ExecContext(ctx, q, uuid.NewString(), documentID, stage, status, detail)
	return err
}

func (c *DatabaseClient) ListProcessingRecords(ctx context.Context, documentID string) ([]models.ProcessingRecord, error) {
	const q = `
		SELECT id, document_id, stage, status, detail, created_at, updated_at
		FROM processing_records
		WHERE document_id = $1
		ORDER BY created_at ASC
	`
	rows, err := c.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ProcessingRecord
	for rows.Next() {
		var r models.ProcessingRecord
		if err := rows.Scan(&r.ID, &r.DocumentID, &r.Stage, &r.Status, &r.Detail, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
