package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/missaelcorm/notas-service/internal/models"
)

// NoteLineRepository persists note lines. Lines are written one at a
// time; there is no multi-row transaction primitive assumed available.
type NoteLineRepository interface {
	Create(ctx context.Context, line *models.NoteLine) error
	FindByNoteID(ctx context.Context, noteID string) ([]*models.NoteLine, error)
}

type noteLineRepository struct {
	db *sql.DB
}

func NewNoteLineRepository(db *sql.DB) NoteLineRepository {
	return &noteLineRepository{db: db}
}

func (r *noteLineRepository) Create(ctx context.Context, line *models.NoteLine) error {
	query := `
		INSERT INTO note_lines (id, note_id, product_id, product_name, quantity, unit_price, amount, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		line.ID, line.NoteID, line.ProductID, line.ProductName,
		line.Quantity, line.UnitPrice, line.Amount, line.Position)
	if err != nil {
		return fmt.Errorf("failed to create note line: %w", err)
	}

	return nil
}

func (r *noteLineRepository) FindByNoteID(ctx context.Context, noteID string) ([]*models.NoteLine, error) {
	query := `
		SELECT id, note_id, product_id, product_name, quantity, unit_price, amount, position
		FROM note_lines
		WHERE note_id = ?
		ORDER BY position ASC
	`
	rows, err := r.db.QueryContext(ctx, query, noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to query note lines: %w", err)
	}
	defer rows.Close()

	var lines []*models.NoteLine
	for rows.Next() {
		line := &models.NoteLine{}
		err := rows.Scan(
			&line.ID, &line.NoteID, &line.ProductID, &line.ProductName,
			&line.Quantity, &line.UnitPrice, &line.Amount, &line.Position,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note line: %w", err)
		}
		lines = append(lines, line)
	}

	return lines, nil
}
