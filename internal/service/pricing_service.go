package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/missaelcorm/notas-service/internal/models"
	"github.com/missaelcorm/notas-service/internal/repository"
	"github.com/missaelcorm/notas-service/pkg/apperrors"
)

// LineRequest asks for a quantity of one product.
type LineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// PricingService resolves requested products into priced line drafts.
type PricingService interface {
	BuildLines(ctx context.Context, requests []LineRequest) ([]*models.NoteLine, models.Money, error)
}

type pricingService struct {
	productRepo repository.ProductRepository
}

func NewPricingService(productRepo repository.ProductRepository) PricingService {
	return &pricingService{productRepo: productRepo}
}

// BuildLines produces one draft per request, in request order, snapshotting
// the product name and unit price. The total is the exact fixed-point sum
// of the line amounts; each amount is quantity times unit price with no
// intermediate rounding.
func (s *pricingService) BuildLines(ctx context.Context, requests []LineRequest) ([]*models.NoteLine, models.Money, error) {
	for _, req := range requests {
		if req.ProductID == "" {
			return nil, models.Money{}, apperrors.Validation("each product entry requires product_id and quantity")
		}
		if req.Quantity <= 0 {
			return nil, models.Money{}, apperrors.Validation("quantity must be greater than 0")
		}
	}

	total := decimal.Zero
	lines := make([]*models.NoteLine, 0, len(requests))

	for i, req := range requests {
		product, err := s.productRepo.FindByID(ctx, req.ProductID)
		if err != nil {
			return nil, models.Money{}, apperrors.Internal("failed to resolve product", fmt.Errorf("product %s: %w", req.ProductID, err))
		}
		if product == nil {
			return nil, models.Money{}, apperrors.NotFound("product %s not found", req.ProductID)
		}

		amount := decimal.NewFromInt(req.Quantity).Mul(product.BasePrice.Decimal)
		total = total.Add(amount)

		lines = append(lines, &models.NoteLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    req.Quantity,
			UnitPrice:   product.BasePrice,
			Amount:      models.NewMoney(amount),
			Position:    i,
		})
	}

	return lines, models.NewMoney(total), nil
}
