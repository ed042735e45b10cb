package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/missaelcorm/notas-service/internal/repository"
	"github.com/missaelcorm/notas-service/pkg/apperrors"
)

func productColumns() []string {
	return []string{"id", "name", "unit", "base_price", "created_at", "updated_at"}
}

func TestPricingBuildLines(t *testing.T) {
	now := time.Now()

	t.Run("computes exact fixed-point total", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT id, name, unit, base_price").
			WithArgs("prod-1").
			WillReturnRows(sqlmock.NewRows(productColumns()).
				AddRow("prod-1", "Laptop", "pieza", "25000.00", now, now))
		mock.ExpectQuery("SELECT id, name, unit, base_price").
			WithArgs("prod-2").
			WillReturnRows(sqlmock.NewRows(productColumns()).
				AddRow("prod-2", "Mouse", "pieza", "350.00", now, now))

		pricing := NewPricingService(repository.NewProductRepository(db))
		lines, total, err := pricing.BuildLines(context.Background(), []LineRequest{
			{ProductID: "prod-1", Quantity: 1},
			{ProductID: "prod-2", Quantity: 2},
		})

		require.NoError(t, err)
		require.Len(t, lines, 2)
		assert.Equal(t, "25700", total.String())

		assert.Equal(t, "Laptop", lines[0].ProductName)
		assert.Equal(t, "25000", lines[0].Amount.String())
		assert.Equal(t, 0, lines[0].Position)

		assert.Equal(t, "Mouse", lines[1].ProductName)
		assert.Equal(t, "350", lines[1].UnitPrice.String())
		assert.Equal(t, "700", lines[1].Amount.String())
		assert.Equal(t, 1, lines[1].Position)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fractional prices do not lose cents", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT id, name, unit, base_price").
			WithArgs("prod-1").
			WillReturnRows(sqlmock.NewRows(productColumns()).
				AddRow("prod-1", "Cable", "metro", "10.33", now, now))

		pricing := NewPricingService(repository.NewProductRepository(db))
		_, total, err := pricing.BuildLines(context.Background(), []LineRequest{
			{ProductID: "prod-1", Quantity: 3},
		})

		require.NoError(t, err)
		assert.Equal(t, "30.99", total.String())
	})

	t.Run("rejects non-positive quantity before any lookup", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		pricing := NewPricingService(repository.NewProductRepository(db))
		_, _, err = pricing.BuildLines(context.Background(), []LineRequest{
			{ProductID: "prod-1", Quantity: 1},
			{ProductID: "prod-2", Quantity: 0},
		})

		assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects missing product id", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		pricing := NewPricingService(repository.NewProductRepository(db))
		_, _, err = pricing.BuildLines(context.Background(), []LineRequest{{Quantity: 2}})

		assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
	})

	t.Run("unknown product is not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT id, name, unit, base_price").
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows(productColumns()))

		pricing := NewPricingService(repository.NewProductRepository(db))
		_, _, err = pricing.BuildLines(context.Background(), []LineRequest{
			{ProductID: "ghost", Quantity: 1},
		})

		assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
		assert.Contains(t, err.Error(), "ghost")
	})
}
