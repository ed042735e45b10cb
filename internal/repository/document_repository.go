package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/missaelcorm/notas-service/internal/models"
)

// DocumentRepository tracks the mutable metadata side channel of stored
// note documents. The send counter is incremented atomically in SQL so
// that concurrent sends of the same document never lose an increment.
type DocumentRepository interface {
	RecordSend(ctx context.Context, rfc, folio, objectKey string, sentAt time.Time) (*models.DocumentMetadata, error)
	Find(ctx context.Context, rfc, folio string) (*models.DocumentMetadata, error)
	MarkDownloaded(ctx context.Context, rfc, folio string) error
}

type documentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// RecordSend initializes the metadata row on first send (send_count = 1,
// downloaded = false) and atomically bumps the counter on every re-send.
func (r *documentRepository) RecordSend(ctx context.Context, rfc, folio, objectKey string, sentAt time.Time) (*models.DocumentMetadata, error) {
	query := `
		INSERT INTO note_documents (rfc, folio, object_key, sent_at, send_count, downloaded, created_at, updated_at)
		VALUES (?, ?, ?, ?, 1, 0, ?, ?)
		ON DUPLICATE KEY UPDATE send_count = send_count + 1, sent_at = VALUES(sent_at), updated_at = VALUES(updated_at)
	`
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query, rfc, folio, objectKey, sentAt, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to record document send: %w", err)
	}

	return r.Find(ctx, rfc, folio)
}

func (r *documentRepository) Find(ctx context.Context, rfc, folio string) (*models.DocumentMetadata, error) {
	query := `
		SELECT id, rfc, folio, object_key, sent_at, send_count, downloaded, created_at, updated_at
		FROM note_documents
		WHERE rfc = ? AND folio = ?
	`
	meta := &models.DocumentMetadata{}
	err := r.db.QueryRowContext(ctx, query, rfc, folio).Scan(
		&meta.ID, &meta.RFC, &meta.Folio, &meta.ObjectKey, &meta.SentAt,
		&meta.SendCount, &meta.Downloaded, &meta.CreatedAt, &meta.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find document metadata: %w", err)
	}
	return meta, nil
}

// MarkDownloaded flips the downloaded flag. Idempotent: repeated calls
// leave the flag true.
func (r *documentRepository) MarkDownloaded(ctx context.Context, rfc, folio string) error {
	query := `
		UPDATE note_documents
		SET downloaded = 1, updated_at = ?
		WHERE rfc = ? AND folio = ?
	`
	_, err := r.db.ExecContext(ctx, query, time.Now(), rfc, folio)
	if err != nil {
		return fmt.Errorf("failed to mark document downloaded: %w", err)
	}

	return nil
}
