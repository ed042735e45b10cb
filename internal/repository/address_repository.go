package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/missaelcorm/notas-service/internal/models"
)

type AddressRepository interface {
	Create(ctx context.Context, address *models.Address) error
	FindByID(ctx context.Context, id string) (*models.Address, error)
	List(ctx context.Context) ([]*models.Address, error)
	Update(ctx context.Context, address *models.Address) error
	Delete(ctx context.Context, id string) error
}

type addressRepository struct {
	db *sql.DB
}

func NewAddressRepository(db *sql.DB) AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) Create(ctx context.Context, address *models.Address) error {
	query := `
		INSERT INTO addresses (id, customer_id, street, neighborhood, municipality, state, type, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	address.CreatedAt = now
	address.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		address.ID, address.CustomerID, address.Street, address.Neighborhood,
		address.Municipality, address.State, address.Type, address.CreatedAt, address.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create address: %w", err)
	}

	return nil
}

func (r *addressRepository) FindByID(ctx context.Context, id string) (*models.Address, error) {
	query := `
		SELECT id, customer_id, street, neighborhood, municipality, state, type, created_at, updated_at
		FROM addresses
		WHERE id = ?
	`
	address := &models.Address{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&address.ID, &address.CustomerID, &address.Street, &address.Neighborhood,
		&address.Municipality, &address.State, &address.Type, &address.CreatedAt, &address.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find address: %w", err)
	}
	return address, nil
}

func (r *addressRepository) List(ctx context.Context) ([]*models.Address, error) {
	query := `
		SELECT id, customer_id, street, neighborhood, municipality, state, type, created_at, updated_at
		FROM addresses
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query addresses: %w", err)
	}
	defer rows.Close()

	var addresses []*models.Address
	for rows.Next() {
		address := &models.Address{}
		err := rows.Scan(
			&address.ID, &address.CustomerID, &address.Street, &address.Neighborhood,
			&address.Municipality, &address.State, &address.Type, &address.CreatedAt, &address.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan address: %w", err)
		}
		addresses = append(addresses, address)
	}

	return addresses, nil
}

func (r *addressRepository) Update(ctx context.Context, address *models.Address) error {
	query := `
		UPDATE addresses
		SET customer_id = ?, street = ?, neighborhood = ?, municipality = ?, state = ?, type = ?, updated_at = ?
		WHERE id = ?
	`
	address.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		address.CustomerID, address.Street, address.Neighborhood, address.Municipality,
		address.State, address.Type, address.UpdatedAt, address.ID)
	if err != nil {
		return fmt.Errorf("failed to update address: %w", err)
	}

	return nil
}

func (r *addressRepository) Delete(ctx context.Context, id string) error {
	query := "DELETE FROM addresses WHERE id = ?"

	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}

	return nil
}
