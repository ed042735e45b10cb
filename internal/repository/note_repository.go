package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/missaelcorm/notas-service/internal/models"
)

// NoteRepository persists notes. Notes are audit records: there is no
// update or delete path.
type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	FindByID(ctx context.Context, id string) (*models.Note, error)
}

type noteRepository struct {
	db *sql.DB
}

func NewNoteRepository(db *sql.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *models.Note) error {
	query := `
		INSERT INTO notes (id, folio, customer_id, billing_address_id, shipping_address_id, total, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		note.ID, note.Folio, note.CustomerID, note.BillingAddressID,
		note.ShippingAddressID, note.Total, note.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	return nil
}

func (r *noteRepository) FindByID(ctx context.Context, id string) (*models.Note, error) {
	query := `
		SELECT id, folio, customer_id, billing_address_id, shipping_address_id, total, created_at
		FROM notes
		WHERE id = ?
	`
	note := &models.Note{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&note.ID, &note.Folio, &note.CustomerID, &note.BillingAddressID,
		&note.ShippingAddressID, &note.Total, &note.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find note: %w", err)
	}
	return note, nil
}
