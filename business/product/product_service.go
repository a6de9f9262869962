package product

import (
	"context"
	"errors"
	"fmt"

	"jammshop/domain"
	"jammshop/pkg/logger"
)

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByCategory(ctx context.Context, categoryID uint64) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uint64) error
}

type productService struct {
	productRepo ProductRepository
}

func NewProductService(productRepo ProductRepository) *productService {
	return &productService{
		productRepo: productRepo,
	}
}

func (s *productService) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		logger.Error("failed to find all products", "error", err)
		return nil, err
	}

	return products, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uint64) (*domain.Product, error) {
	if id == 0 {
		return nil, errors.New("invalid product id")
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find product by id", "id", id, "error", err)
		return nil, err
	}

	return &product, nil
}

func (s *productService) GetProductsByCategory(ctx context.Context, categoryID uint64) ([]domain.Product, error) {
	if categoryID == 0 {
		return nil, errors.New("invalid category id")
	}

	return s.productRepo.FindByCategory(ctx, categoryID)
}

// Stock reports current stock for the inventory pricing evaluator.
func (s *productService) Stock(ctx context.Context, productID uint64) (int, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return 0, err
	}

	return product.Stock, nil
}

func (s *productService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if product.Name == "" {
		return nil, errors.New("product name is required")
	}

	if product.BasePrice <= 0 {
		return nil, errors.New("base price must be greater than 0")
	}

	if product.Stock < 0 {
		return nil, errors.New("stock cannot be negative")
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		logger.Error("failed to create new product", "error", err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	logger.Info("product created", "id", product.ID, "name", product.Name)

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if product.ID == 0 {
		return nil, errors.New("product ID is required")
	}

	if product.Name == "" {
		return nil, errors.New("product name is required")
	}

	if product.BasePrice <= 0 {
		return nil, errors.New("base price must be greater than 0")
	}

	if product.Stock < 0 {
		return nil, errors.New("stock cannot be negative")
	}

	if _, err := s.productRepo.FindByID(ctx, product.ID); err != nil {
		return nil, errors.New("product not found")
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		logger.Error("failed to update product", "error", err)
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	updated, err := s.productRepo.FindByID(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated product: %w", err)
	}

	return &updated, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uint64) error {
	if id == 0 {
		return errors.New("invalid product id")
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return errors.New("product not found")
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete product", "error", err)
		return fmt.Errorf("failed to delete product: %w", err)
	}

	logger.Info("product deleted", "id", id)

	return nil
}
