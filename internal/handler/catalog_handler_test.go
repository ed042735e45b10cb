package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/missaelcorm/notas-service/internal/models"
	"github.com/missaelcorm/notas-service/internal/service"
	"github.com/missaelcorm/notas-service/pkg/apperrors"
)

// stubCatalog overrides only the methods a test exercises.
type stubCatalog struct {
	service.CatalogService

	customer    *models.Customer
	customerErr error
	products    []*models.Product
	deleteErr   error
}

func (s *stubCatalog) CreateCustomer(ctx context.Context, input service.CustomerInput) (*models.Customer, error) {
	return s.customer, s.customerErr
}

func (s *stubCatalog) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	return s.customer, s.customerErr
}

func (s *stubCatalog) ListProducts(ctx context.Context) ([]*models.Product, error) {
	return s.products, nil
}

func (s *stubCatalog) DeleteProduct(ctx context.Context, id string) error {
	return s.deleteErr
}

func newCatalogMux(stub *stubCatalog) *http.ServeMux {
	mux := http.NewServeMux()
	NewCatalogHandler(stub).RegisterRoutes(mux)
	return mux
}

func TestCatalogHandler(t *testing.T) {
	t.Run("create customer returns 201", func(t *testing.T) {
		stub := &stubCatalog{customer: &models.Customer{ID: "cust-1", RFC: "ETE201125XYZ"}}
		mux := newCatalogMux(stub)

		body := `{"legal_name":"Empresa","trade_name":"Emp","rfc":"ETE201125XYZ","email":"cliente@example.com","phone":"5512345678"}`
		req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(body))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "ETE201125XYZ")
	})

	t.Run("validation failure returns 400 with code", func(t *testing.T) {
		stub := &stubCatalog{customerErr: apperrors.Validation("field rfc is invalid")}
		mux := newCatalogMux(stub)

		req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(`{"rfc":"bad"}`))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body errorBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "VALIDATION", body.Code)
	})

	t.Run("get unknown customer returns 404", func(t *testing.T) {
		stub := &stubCatalog{customerErr: apperrors.NotFound("customer not found")}
		mux := newCatalogMux(stub)

		req := httptest.NewRequest(http.MethodGet, "/customers/ghost", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("list products returns the collection", func(t *testing.T) {
		stub := &stubCatalog{products: []*models.Product{
			{ID: "prod-1", Name: "Laptop"},
			{ID: "prod-2", Name: "Mouse"},
		}}
		mux := newCatalogMux(stub)

		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Laptop")
		assert.Contains(t, rec.Body.String(), "Mouse")
	})

	t.Run("delete product returns confirmation", func(t *testing.T) {
		mux := newCatalogMux(&stubCatalog{})

		req := httptest.NewRequest(http.MethodDelete, "/products/prod-1", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "product deleted")
	})
}
