package repository

import (
	"context"
	"testing"

	"storefront/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Seed helpers. Unique columns get a random suffix so tests never collide.

func mustCreateUser(t *testing.T, repo UserRepository) *domain.User {
	t.Helper()
	user := &domain.User{
		Email:        "test-" + uuid.NewString()[:8] + "@example.com",
		PasswordHash: "$2a$10$notarealhashbutlongenoughtostore00000000000000000000",
		FirstName:    "Test",
		LastName:     "User",
		Role:         domain.RoleCustomer,
		IsActive:     true,
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return user
}

func mustCreateCategory(t *testing.T, repo CategoryRepository) *domain.Category {
	t.Helper()
	category := &domain.Category{
		Name:        "Category " + uuid.NewString()[:8],
		Description: "seeded for testing",
	}
	if err := repo.Create(context.Background(), category); err != nil {
		t.Fatalf("seeding category: %v", err)
	}
	return category
}

func mustCreateProduct(t *testing.T, repo ProductRepository, categoryID int64, price string, stock int) *domain.Product {
	t.Helper()
	product := &domain.Product{
		CategoryID: categoryID,
		Name:       "Product " + uuid.NewString()[:8],
		Price:      decimal.RequireFromString(price),
		Stock:      stock,
		SKU:        "SKU-" + uuid.NewString()[:8],
		IsActive:   true,
	}
	if err := repo.Create(context.Background(), product); err != nil {
		t.Fatalf("seeding product: %v", err)
	}
	return product
}

func mustCreateOrder(t *testing.T, repo OrderRepository, userID int64) *domain.Order {
	t.Helper()
	order := &domain.Order{
		UserID:      userID,
		OrderNumber: "ORD-" + uuid.NewString()[:13],
		Status:      domain.OrderStatusPending,
		TotalAmount: decimal.Zero,
	}
	if err := repo.Create(context.Background(), order); err != nil {
		t.Fatalf("seeding order: %v", err)
	}
	return order
}
