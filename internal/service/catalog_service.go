package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/missaelcorm/notas-service/internal/models"
	"github.com/missaelcorm/notas-service/internal/repository"
	"github.com/missaelcorm/notas-service/pkg/apperrors"
	"github.com/missaelcorm/notas-service/pkg/helpers"
)

// CustomerInput carries the writable fields of a customer.
type CustomerInput struct {
	LegalName string `json:"legal_name" validate:"required"`
	TradeName string `json:"trade_name" validate:"required"`
	RFC       string `json:"rfc" validate:"required,rfc"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
}

// AddressInput carries the writable fields of an address.
type AddressInput struct {
	CustomerID   string `json:"customer_id" validate:"required"`
	Street       string `json:"street" validate:"required"`
	Neighborhood string `json:"neighborhood" validate:"required"`
	Municipality string `json:"municipality" validate:"required"`
	State        string `json:"state" validate:"required"`
	Type         string `json:"type" validate:"required,address_type"`
}

// ProductInput carries the writable fields of a product.
type ProductInput struct {
	Name      string       `json:"name" validate:"required"`
	Unit      string       `json:"unit" validate:"required"`
	BasePrice models.Money `json:"base_price"`
}

// CatalogService manages the customer, address and product records that
// notes reference.
type CatalogService interface {
	CreateCustomer(ctx context.Context, input CustomerInput) (*models.Customer, error)
	GetCustomer(ctx context.Context, id string) (*models.Customer, error)
	ListCustomers(ctx context.Context) ([]*models.Customer, error)
	UpdateCustomer(ctx context.Context, id string, input CustomerInput) (*models.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error

	CreateAddress(ctx context.Context, input AddressInput) (*models.Address, error)
	GetAddress(ctx context.Context, id string) (*models.Address, error)
	ListAddresses(ctx context.Context) ([]*models.Address, error)
	UpdateAddress(ctx context.Context, id string, input AddressInput) (*models.Address, error)
	DeleteAddress(ctx context.Context, id string) error

	CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	ListProducts(ctx context.Context) ([]*models.Product, error)
	UpdateProduct(ctx context.Context, id string, input ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type catalogService struct {
	customerRepo repository.CustomerRepository
	addressRepo  repository.AddressRepository
	productRepo  repository.ProductRepository
	validator    *helpers.CustomValidator
	ids          *helpers.IDGenerator
}

func NewCatalogService(
	customerRepo repository.CustomerRepository,
	addressRepo repository.AddressRepository,
	productRepo repository.ProductRepository,
	validator *helpers.CustomValidator,
	ids *helpers.IDGenerator,
) CatalogService {
	return &catalogService{
		customerRepo: customerRepo,
		addressRepo:  addressRepo,
		productRepo:  productRepo,
		validator:    validator,
		ids:          ids,
	}
}

// validationError flattens validator output into a client-safe message.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := strings.ToLower(fe.Field())
		if fe.Tag() == "required" {
			return apperrors.Validation("field %s is required", field)
		}
		return apperrors.Validation("field %s is invalid", field)
	}
	return apperrors.Validation("invalid request body")
}

// ===== Customers =====

func (s *catalogService) CreateCustomer(ctx context.Context, input CustomerInput) (*models.Customer, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, validationError(err)
	}

	customer := &models.Customer{
		ID:        s.ids.GenerateUUID(),
		LegalName: input.LegalName,
		TradeName: input.TradeName,
		RFC:       helpers.NormalizeRFC(input.RFC),
		Email:     helpers.NormalizeEmail(input.Email),
		Phone:     input.Phone,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, apperrors.Internal("failed to create customer", err)
	}
	return customer, nil
}

func (s *catalogService) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("failed to get customer", err)
	}
	if customer == nil {
		return nil, apperrors.NotFound("customer not found")
	}
	return customer, nil
}

func (s *catalogService) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to list customers", err)
	}
	return customers, nil
}

func (s *catalogService) UpdateCustomer(ctx context.Context, id string, input CustomerInput) (*models.Customer, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, validationError(err)
	}

	existing, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("failed to get customer", err)
	}
	if existing == nil {
		return nil, apperrors.NotFound("customer not found")
	}

	existing.LegalName = input.LegalName
	existing.TradeName = input.TradeName
	existing.RFC = helpers.NormalizeRFC(input.RFC)
	existing.Email = helpers.NormalizeEmail(input.Email)
	existing.Phone = input.Phone

	if err := s.customerRepo.Update(ctx, existing); err != nil {
		return nil, apperrors.Internal("failed to update customer", err)
	}
	return existing, nil
}

func (s *catalogService) DeleteCustomer(ctx context.Context, id string) error {
	existing, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return apperrors.Internal("failed to get customer", err)
	}
	if existing == nil {
		return apperrors.NotFound("customer not found")
	}
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return apperrors.Internal("failed to delete customer", err)
	}
	return nil
}

// ===== Addresses =====

func (s *catalogService) CreateAddress(ctx context.Context, input AddressInput) (*models.Address, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, validationError(err)
	}

	// The owning customer must exist.
	customer, err := s.customerRepo.FindByID(ctx, input.CustomerID)
	if err != nil {
		return nil, apperrors.Internal("failed to get customer", err)
	}
	if customer == nil {
		return nil, apperrors.NotFound("customer not found")
	}

	address := &models.Address{
		ID:           s.ids.GenerateUUID(),
		CustomerID:   input.CustomerID,
		Street:       input.Street,
		Neighborhood: input.Neighborhood,
		Municipality: input.Municipality,
		State:        input.State,
		Type:         helpers.NormalizeAddressType(input.Type),
	}

	if err := s.addressRepo.Create(ctx, address); err != nil {
		return nil, apperrors.Internal("failed to create address", err)
	}
	return address, nil
}

func (s *catalogService) GetAddress(ctx context.Context, id string) (*models.Address, error) {
	address, err := s.addressRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("failed to get address", err)
	}
	if address == nil {
		return nil, apperrors.NotFound("address not found")
	}
	return address, nil
}

func (s *catalogService) ListAddresses(ctx context.Context) ([]*models.Address, error) {
	addresses, err := s.addressRepo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to list addresses", err)
	}
	return addresses, nil
}

func (s *catalogService) UpdateAddress(ctx context.Context, id string, input AddressInput) (*models.Address, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, validationError(err)
	}

	existing, err := s.addressRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("failed to get address", err)
	}
	if existing == nil {
		return nil, apperrors.NotFound("address not found")
	}

	existing.CustomerID = input.CustomerID
	existing.Street = input.Street
	existing.Neighborhood = input.Neighborhood
	existing.Municipality = input.Municipality
	existing.State = input.State
	existing.Type = helpers.NormalizeAddressType(input.Type)

	if err := s.addressRepo.Update(ctx, existing); err != nil {
		return nil, apperrors.Internal("failed to update address", err)
	}
	return existing, nil
}

func (s *catalogService) DeleteAddress(ctx context.Context, id string) error {
	existing, err := s.addressRepo.FindByID(ctx, id)
	if err != nil {
		return apperrors.Internal("failed to get address", err)
	}
	if existing == nil {
		return apperrors.NotFound("address not found")
	}
	if err := s.addressRepo.Delete(ctx, id); err != nil {
		return apperrors.Internal("failed to delete address", err)
	}
	return nil
}

// ===== Products =====

func (s *catalogService) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, validationError(err)
	}
	if !input.BasePrice.IsPositive() {
		return nil, apperrors.Validation("base price must be greater than 0")
	}

	product := &models.Product{
		ID:        s.ids.GenerateUUID(),
		Name:      input.Name,
		Unit:      input.Unit,
		BasePrice: input.BasePrice,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, apperrors.Internal("failed to create product", err)
	}
	return product, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("failed to get product", err)
	}
	if product == nil {
		return nil, apperrors.NotFound("product not found")
	}
	return product, nil
}

func (s *catalogService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to list products", err)
	}
	return products, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id string, input ProductInput) (*models.Product, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, validationError(err)
	}
	if !input.BasePrice.IsPositive() {
		return nil, apperrors.Validation("base price must be greater than 0")
	}

	existing, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("failed to get product", err)
	}
	if existing == nil {
		return nil, apperrors.NotFound("product not found")
	}

	existing.Name = input.Name
	existing.Unit = input.Unit
	existing.BasePrice = input.BasePrice

	if err := s.productRepo.Update(ctx, existing); err != nil {
		return nil, apperrors.Internal("failed to update product", err)
	}
	return existing, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id string) error {
	existing, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return apperrors.Internal("failed to get product", err)
	}
	if existing == nil {
		return apperrors.NotFound("product not found")
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return apperrors.Internal("failed to delete product", err)
	}
	return nil
}
