package service

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// ProductService defines the interface for product business logic
type ProductService interface {
	Add(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
	InStock(ctx context.Context, id int64) (bool, int, error)
	SetStock(ctx context.Context, id int64, quantity int) error
}

type productService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

// Add validates and inserts a new product
func (s *productService) Add(ctx context.Context, product *domain.Product) error {
	if product.Price.IsNegative() {
		return validationError("product price must be non-negative")
	}
	if product.Stock < 0 {
		return validationError("stock quantity cannot be negative")
	}
	return s.productRepo.Create(ctx, product)
}

// GetByID retrieves a product by ID
func (s *productService) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// List retrieves all products
func (s *productService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.productRepo.List(ctx)
}

// ListByCategory retrieves all products within a category
func (s *productService) ListByCategory(ctx context.Context, categoryID int64) ([]*domain.Product, error) {
	return s.productRepo.FindByCategory(ctx, categoryID)
}

// Update validates the record and replaces it after checking it exists
func (s *productService) Update(ctx context.Context, product *domain.Product) error {
	if _, err := s.productRepo.FindByID(ctx, product.ID); err != nil {
		return err
	}
	if product.Price.IsNegative() {
		return validationError("product price must be non-negative")
	}
	if product.Stock < 0 {
		return validationError("stock quantity cannot be negative")
	}
	return s.productRepo.Update(ctx, product)
}

// Delete removes a product by id
func (s *productService) Delete(ctx context.Context, id int64) error {
	return s.productRepo.Delete(ctx, id)
}

// InStock reports whether the product has any stock, with the current count
func (s *productService) InStock(ctx context.Context, id int64) (bool, int, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return false, 0, err
	}
	return product.Stock > 0, product.Stock, nil
}

// SetStock replaces the product's stock level with an absolute quantity
func (s *productService) SetStock(ctx context.Context, id int64, quantity int) error {
	if quantity < 0 {
		return validationError("stock quantity cannot be negative")
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	product.Stock = quantity
	return s.productRepo.Update(ctx, product)
}
