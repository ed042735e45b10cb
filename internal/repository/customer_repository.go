package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/missaelcorm/notas-service/internal/models"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	FindByID(ctx context.Context, id string) (*models.Customer, error)
	List(ctx context.Context) ([]*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id string) error
}

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *models.Customer) error {
	query := `
		INSERT INTO customers (id, legal_name, trade_name, rfc, email, phone, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	customer.CreatedAt = now
	customer.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		customer.ID, customer.LegalName, customer.TradeName, customer.RFC,
		customer.Email, customer.Phone, customer.CreatedAt, customer.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

func (r *customerRepository) FindByID(ctx context.Context, id string) (*models.Customer, error) {
	query := `
		SELECT id, legal_name, trade_name, rfc, email, phone, created_at, updated_at
		FROM customers
		WHERE id = ?
	`
	customer := &models.Customer{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&customer.ID, &customer.LegalName, &customer.TradeName, &customer.RFC,
		&customer.Email, &customer.Phone, &customer.CreatedAt, &customer.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	return customer, nil
}

func (r *customerRepository) List(ctx context.Context) ([]*models.Customer, error) {
	query := `
		SELECT id, legal_name, trade_name, rfc, email, phone, created_at, updated_at
		FROM customers
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		customer := &models.Customer{}
		err := rows.Scan(
			&customer.ID, &customer.LegalName, &customer.TradeName, &customer.RFC,
			&customer.Email, &customer.Phone, &customer.CreatedAt, &customer.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, customer)
	}

	return customers, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *models.Customer) error {
	query := `
		UPDATE customers
		SET legal_name = ?, trade_name = ?, rfc = ?, email = ?, phone = ?, updated_at = ?
		WHERE id = ?
	`
	customer.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		customer.LegalName, customer.TradeName, customer.RFC, customer.Email,
		customer.Phone, customer.UpdatedAt, customer.ID)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}

	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	query := "DELETE FROM customers WHERE id = ?"

	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	return nil
}
