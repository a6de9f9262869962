package category

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"jammshop/domain"
	"jammshop/pkg/logger"
)

// CategoryRepository contract interface
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	FindByID(ctx context.Context, id uint64) (domain.Category, error)
	FindBySlug(ctx context.Context, slug string) (domain.Category, error)
	FindAll(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id uint64) error
}

type categoryService struct {
	categoryRepo CategoryRepository
}

func NewCategoryService(categoryRepo CategoryRepository) *categoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
	}
}

// Slugify turns a display name into a URL slug ("Vinyles & CD" -> "vinyles-cd").
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

func (s *categoryService) GetAllCategories(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all categories")
		return nil, fmt.Errorf("context error: %w", err)
	}

	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		logger.Error("failed to find all categories", "error", err)
		return nil, err
	}

	return categories, nil
}

func (s *categoryService) GetCategoryBySlug(ctx context.Context, slug string) (domain.Category, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get category by slug")
		return domain.Category{}, fmt.Errorf("context error: %w", err)
	}

	if slug == "" {
		return domain.Category{}, errors.New("invalid category slug")
	}

	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		logger.Error("failed to find category", "slug", slug, "error", err)
		return domain.Category{}, errors.New("category not found")
	}

	return category, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create category")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if category.Name == "" {
		return nil, errors.New("category name is required")
	}
	if category.Slug == "" {
		category.Slug = Slugify(category.Name)
	}
	if category.Slug == "" {
		return nil, errors.New("category name produces an empty slug")
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		logger.Error("failed to create new category", "error", err)
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	logger.Info("category created successfully", "slug", category.Slug)

	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating category")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if category.ID == 0 {
		return nil, errors.New("category ID is required")
	}
	if category.Name == "" {
		return nil, errors.New("category name is required")
	}
	if category.Slug == "" {
		category.Slug = Slugify(category.Name)
	}

	// Verify category exists
	if _, err := s.categoryRepo.FindByID(ctx, category.ID); err != nil {
		logger.Error("category not found", "error", err)
		return nil, errors.New("category not found")
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		logger.Error("failed to update category", "error", err)
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	updatedCategory, err := s.categoryRepo.FindByID(ctx, category.ID)
	if err != nil {
		logger.Error("failed to fetch updated category", "error", err)
		return nil, fmt.Errorf("failed to fetch updated category: %w", err)
	}

	logger.Info("category updated successfully")

	return &updatedCategory, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when deleting category")
		return fmt.Errorf("context error: %w", err)
	}

	if id == 0 {
		return errors.New("invalid category id")
	}

	// Verify category exists
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		logger.Error("category not found", "error", err)
		return errors.New("category not found")
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete category", "error", err)
		return fmt.Errorf("failed to delete category: %w", err)
	}

	logger.Info("category deleted successfully")

	return nil
}
