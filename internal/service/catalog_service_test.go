package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/missaelcorm/notas-service/internal/models"
	"github.com/missaelcorm/notas-service/internal/repository"
	"github.com/missaelcorm/notas-service/pkg/apperrors"
	"github.com/missaelcorm/notas-service/pkg/helpers"
)

func newCatalogFixture(t *testing.T) (CatalogService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := NewCatalogService(
		repository.NewCustomerRepository(db),
		repository.NewAddressRepository(db),
		repository.NewProductRepository(db),
		helpers.NewCustomValidator(),
		helpers.NewIDGenerator(),
	)
	return svc, mock
}

func TestCreateCustomer(t *testing.T) {
	t.Run("normalizes rfc and email on create", func(t *testing.T) {
		svc, mock := newCatalogFixture(t)

		mock.ExpectExec("INSERT INTO customers").
			WithArgs(sqlmock.AnyArg(), "Empresa de Tecnologia SA de CV", "EmpresaTec",
				"ETE201125XYZ", "cliente@example.com", "5512345678",
				sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		customer, err := svc.CreateCustomer(context.Background(), CustomerInput{
			LegalName: "Empresa de Tecnologia SA de CV",
			TradeName: "EmpresaTec",
			RFC:       "ete201125xyz",
			Email:     "Cliente@Example.COM",
			Phone:     "5512345678",
		})

		require.NoError(t, err)
		assert.Equal(t, "ETE201125XYZ", customer.RFC)
		assert.Equal(t, "cliente@example.com", customer.Email)
		assert.NotEmpty(t, customer.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects malformed rfc before touching the database", func(t *testing.T) {
		svc, mock := newCatalogFixture(t)

		_, err := svc.CreateCustomer(context.Background(), CustomerInput{
			LegalName: "Empresa",
			TradeName: "Emp",
			RFC:       "NOT-AN-RFC",
			Email:     "cliente@example.com",
			Phone:     "5512345678",
		})

		assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
		assert.Contains(t, apperrors.MessageOf(err), "rfc")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing required field is named in the error", func(t *testing.T) {
		svc, _ := newCatalogFixture(t)

		_, err := svc.CreateCustomer(context.Background(), CustomerInput{
			TradeName: "Emp",
			RFC:       "ETE201125XYZ",
			Email:     "cliente@example.com",
			Phone:     "5512345678",
		})

		assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
		assert.Contains(t, apperrors.MessageOf(err), "required")
	})
}

func TestCreateAddress(t *testing.T) {
	t.Run("requires an existing owning customer", func(t *testing.T) {
		svc, mock := newCatalogFixture(t)

		mock.ExpectQuery("SELECT id, legal_name, trade_name").
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{"id", "legal_name", "trade_name", "rfc", "email", "phone", "created_at", "updated_at"}))

		_, err := svc.CreateAddress(context.Background(), AddressInput{
			CustomerID:   "ghost",
			Street:       "Av. Reforma 100",
			Neighborhood: "Centro",
			Municipality: "Cuauhtemoc",
			State:        "CDMX",
			Type:         "BILLING",
		})

		assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects unknown address type", func(t *testing.T) {
		svc, _ := newCatalogFixture(t)

		_, err := svc.CreateAddress(context.Background(), AddressInput{
			CustomerID:   "cust-1",
			Street:       "Av. Reforma 100",
			Neighborhood: "Centro",
			Municipality: "Cuauhtemoc",
			State:        "CDMX",
			Type:         "WAREHOUSE",
		})

		assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
	})

	t.Run("normalizes the address type tag", func(t *testing.T) {
		svc, mock := newCatalogFixture(t)
		now := time.Now()

		mock.ExpectQuery("SELECT id, legal_name, trade_name").
			WithArgs("cust-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "legal_name", "trade_name", "rfc", "email", "phone", "created_at", "updated_at"}).
				AddRow("cust-1", "Empresa", "Emp", "ETE201125XYZ", "cliente@example.com", "5512345678", now, now))
		mock.ExpectExec("INSERT INTO addresses").
			WillReturnResult(sqlmock.NewResult(0, 1))

		address, err := svc.CreateAddress(context.Background(), AddressInput{
			CustomerID:   "cust-1",
			Street:       "Av. Reforma 100",
			Neighborhood: "Centro",
			Municipality: "Cuauhtemoc",
			State:        "CDMX",
			Type:         "shipping",
		})

		require.NoError(t, err)
		assert.Equal(t, models.AddressTypeShipping, address.Type)
	})
}

func TestCreateProduct(t *testing.T) {
	t.Run("rejects non-positive price", func(t *testing.T) {
		svc, _ := newCatalogFixture(t)

		_, err := svc.CreateProduct(context.Background(), ProductInput{
			Name: "Laptop",
			Unit: "pieza",
		})

		assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
	})

	t.Run("creates product with positive price", func(t *testing.T) {
		svc, mock := newCatalogFixture(t)

		mock.ExpectExec("INSERT INTO products").
			WillReturnResult(sqlmock.NewResult(0, 1))

		price, err := models.MoneyFromString("25000.00")
		require.NoError(t, err)

		product, err := svc.CreateProduct(context.Background(), ProductInput{
			Name:      "Laptop",
			Unit:      "pieza",
			BasePrice: price,
		})

		require.NoError(t, err)
		assert.NotEmpty(t, product.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateProduct(t *testing.T) {
	t.Run("unknown product is not found", func(t *testing.T) {
		svc, mock := newCatalogFixture(t)

		mock.ExpectQuery("SELECT id, name, unit, base_price").
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "unit", "base_price", "created_at", "updated_at"}))

		price, err := models.MoneyFromString("100.00")
		require.NoError(t, err)

		_, err = svc.UpdateProduct(context.Background(), "ghost", ProductInput{
			Name:      "Laptop",
			Unit:      "pieza",
			BasePrice: price,
		})

		assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
	})
}

func TestDeleteCustomer(t *testing.T) {
	t.Run("deletes an existing customer", func(t *testing.T) {
		svc, mock := newCatalogFixture(t)
		now := time.Now()

		mock.ExpectQuery("SELECT id, legal_name, trade_name").
			WithArgs("cust-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "legal_name", "trade_name", "rfc", "email", "phone", "created_at", "updated_at"}).
				AddRow("cust-1", "Empresa", "Emp", "ETE201125XYZ", "cliente@example.com", "5512345678", now, now))
		mock.ExpectExec("DELETE FROM customers").
			WithArgs("cust-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, svc.DeleteCustomer(context.Background(), "cust-1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
