package service

import (
	"context"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// CategoryService defines the interface for category business logic
type CategoryService interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id int64) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

// Create validates and inserts a new category
func (s *categoryService) Create(ctx context.Context, category *domain.Category) error {
	if strings.TrimSpace(category.Name) == "" {
		return validationError("category name cannot be empty")
	}
	return s.categoryRepo.Create(ctx, category)
}

// GetByID retrieves a category by ID
func (s *categoryService) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	return s.categoryRepo.FindByID(ctx, id)
}

// List retrieves all categories
func (s *categoryService) List(ctx context.Context) ([]*domain.Category, error) {
	return s.categoryRepo.List(ctx)
}

// Update validates the record and replaces it after checking it exists
func (s *categoryService) Update(ctx context.Context, category *domain.Category) error {
	if strings.TrimSpace(category.Name) == "" {
		return validationError("category name cannot be empty")
	}

	if _, err := s.categoryRepo.FindByID(ctx, category.ID); err != nil {
		return err
	}

	return s.categoryRepo.Update(ctx, category)
}

// Delete removes a category by id
func (s *categoryService) Delete(ctx context.Context, id int64) error {
	return s.categoryRepo.Delete(ctx, id)
}
