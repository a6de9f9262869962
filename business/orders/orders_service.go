package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"jammshop/business/product"
	"jammshop/domain"
	"jammshop/pkg/logger"

	"github.com/google/uuid"
)

type OrdersRepository interface {
	CreateOrder(ctx context.Context, data domain.Orders) (domain.Orders, error)
	GetAllOrders(ctx context.Context) ([]domain.Orders, error)
	GetOrder(ctx context.Context, orderID uint64) (domain.Orders, error)
	GetOrdersByUser(ctx context.Context, userID uint64) ([]domain.Orders, error)
	UpdateOrder(ctx context.Context, data domain.Orders) error
	DeleteOrder(ctx context.Context, orderID uint64) error
}

// PriceCalculator is the checkout-facing contract of the pricing engine.
type PriceCalculator interface {
	CalculatePrice(ctx context.Context, productID uint64, basePrice float64, userID uint64) (domain.PriceQuote, error)
}

type OrdersService struct {
	orderRepo    OrdersRepository
	productsRepo product.ProductRepository
	pricer       PriceCalculator
}

func NewOrdersService(orderRepo OrdersRepository, productsRepo product.ProductRepository, pricer PriceCalculator) *OrdersService {
	return &OrdersService{
		orderRepo:    orderRepo,
		productsRepo: productsRepo,
		pricer:       pricer,
	}
}

// CreateOrder prices the line item through the dynamic pricing engine and
// snapshots the applied adjustments onto the order for later audit.
func (s *OrdersService) CreateOrder(ctx context.Context, data domain.Orders) (domain.Orders, error) {
	if data.Quantity <= 0 {
		return domain.Orders{}, errors.New("quantity must be greater than 0")
	}

	prod, err := s.productsRepo.FindByID(ctx, data.ProductID)
	if err != nil {
		return domain.Orders{}, err
	}

	if prod.Stock < data.Quantity {
		return domain.Orders{}, errors.New("insufficient stock")
	}

	quote, err := s.pricer.CalculatePrice(ctx, data.ProductID, prod.BasePrice, data.UserID)
	if err != nil {
		return domain.Orders{}, fmt.Errorf("failed to price order: %w", err)
	}

	snapshot, err := json.Marshal(quote.Adjustments)
	if err != nil {
		return domain.Orders{}, fmt.Errorf("failed to snapshot adjustments: %w", err)
	}

	data.Reference = uuid.NewString()
	data.BasePrice = prod.BasePrice
	data.PriceEach = quote.Price
	data.Subtotal = quote.Price * float64(data.Quantity)
	data.AppliedAdjustments = snapshot
	data.OrderStatus = "PENDING"
	data.CreatedAt = time.Now()
	data.UpdatedAt = time.Now()

	order, err := s.orderRepo.CreateOrder(ctx, data)
	if err != nil {
		logger.Error("failed to create order", "error", err)
		return domain.Orders{}, err
	}

	logger.Info("order created",
		"order_id", order.ID,
		"product_id", order.ProductID,
		"price_each", order.PriceEach,
		"adjustments", len(quote.Adjustments),
	)

	return order, nil
}

func (s *OrdersService) GetAllOrders(ctx context.Context) ([]domain.Orders, error) {
	return s.orderRepo.GetAllOrders(ctx)
}

func (s *OrdersService) GetOrder(ctx context.Context, orderID uint64) (domain.Orders, error) {
	return s.orderRepo.GetOrder(ctx, orderID)
}

func (s *OrdersService) GetOrdersByUser(ctx context.Context, userID uint64) ([]domain.Orders, error) {
	return s.orderRepo.GetOrdersByUser(ctx, userID)
}

func (s *OrdersService) UpdateOrder(ctx context.Context, data domain.Orders) error {
	return s.orderRepo.UpdateOrder(ctx, data)
}

func (s *OrdersService) DeleteOrder(ctx context.Context, orderID uint64) error {
	return s.orderRepo.DeleteOrder(ctx, orderID)
}
