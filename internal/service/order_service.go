package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/worlddist/ordering-backend/internal/domain"
	"github.com/worlddist/ordering-backend/internal/repository"
	"gorm.io/gorm"
)

// vatRate is the flat value-added-tax percentage applied to every
// order total. Not configurable per product or region.
var vatRate = decimal.NewFromFloat(0.19)

type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

type OrderItemInput struct {
	ProductID  uint
	Quantity   int
	UnitPrice  decimal.Decimal
	VolumeTier string
}

type CreateOrderInput struct {
	Items           []OrderItemInput
	PaymentMethod   string
	PaymentIntentID string
}

func (s *OrderService) Create(ctx context.Context, userID uint, input CreateOrderInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, domain.Validationf("order must contain at least one item")
	}
	if input.PaymentMethod != domain.PaymentMethodCard && input.PaymentMethod != domain.PaymentMethodBank {
		return nil, domain.Validationf("payment method must be %q or %q", domain.PaymentMethodCard, domain.PaymentMethodBank)
	}

	total := decimal.Zero
	items := make([]domain.OrderItem, 0, len(input.Items))
	for i, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, domain.Validationf("item %d: quantity must be positive", i)
		}
		if item.UnitPrice.IsNegative() {
			return nil, domain.Validationf("item %d: unit price must not be negative", i)
		}
		if item.VolumeTier == "" {
			return nil, domain.Validationf("item %d: volume tier is required", i)
		}

		if _, err := s.productRepo.GetByID(ctx, item.ProductID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.NotFoundf("product %d not found", item.ProductID)
			}
			return nil, err
		}

		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		items = append(items, domain.OrderItem{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			VolumeTier: item.VolumeTier,
		})
	}

	order := &domain.Order{
		UserID:          userID,
		TotalAmount:     total,
		VATAmount:       total.Mul(vatRate).Round(2),
		Status:          domain.OrderStatusPending,
		PaymentMethod:   input.PaymentMethod,
		PaymentIntentID: input.PaymentIntentID,
		Items:           items,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// ListByUser returns the user's orders, most recent first, each with
// its item snapshot.
func (s *OrderService) ListByUser(ctx context.Context, userID uint) ([]*domain.Order, error) {
	return s.orderRepo.GetByUserID(ctx, userID)
}
