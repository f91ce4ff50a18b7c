package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"storefront/internal/client"
	"storefront/internal/transport"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Scripted end-to-end pass against a running API: one resource of each kind
// is created, exercised through its operations, and cleaned up. Any failed
// step aborts the run with a non-zero exit.

func main() {
	_ = godotenv.Load()

	baseURL := os.Getenv("SMOKE_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	api := client.New(baseURL)
	run := runner{failures: 0}

	fmt.Printf("Running smoke pass against %s\n\n", baseURL)

	health, err := api.Health(ctx)
	run.check("health check", err)
	if err == nil {
		fmt.Printf("  status: %s\n", health["status"])
	}

	// Unique suffix so repeated runs never collide on unique columns
	suffix := uuid.NewString()[:8]

	category, err := api.CreateCategory(ctx, transport.CategoryRequest{
		Name:        "Smoke Electronics " + suffix,
		Description: "created by the smoke harness",
	})
	run.check("create category", err)
	run.must(err)

	fetched, err := api.GetCategory(ctx, category.ID)
	run.check("get category", err)
	if err == nil && fetched.Name != category.Name {
		run.fail("get category", fmt.Errorf("name mismatch: got %q want %q", fetched.Name, category.Name))
	}

	price := decimal.RequireFromString("19.99")
	stock := 10
	active := true
	product, err := api.CreateProduct(ctx, transport.ProductRequest{
		CategoryID:  category.ID,
		Name:        "Smoke Widget " + suffix,
		Description: "created by the smoke harness",
		Price:       &price,
		Stock:       &stock,
		SKU:         "SMOKE-" + suffix,
		IsActive:    &active,
	})
	run.check("create product", err)
	run.must(err)

	byCategory, err := api.ListProductsByCategory(ctx, category.ID)
	run.check("list products by category", err)
	if err == nil && len(byCategory) != 1 {
		run.fail("list products by category", fmt.Errorf("got %d products, want 1", len(byCategory)))
	}

	email := fmt.Sprintf("smoke-%s@example.com", suffix)
	user, err := api.CreateUser(ctx, transport.CreateUserRequest{
		Email:     email,
		Password:  "smoke-secret",
		FirstName: "Smoke",
		LastName:  "Tester",
	})
	run.check("create user", err)
	run.must(err)

	_, err = api.Authenticate(ctx, email, "smoke-secret")
	run.check("authenticate with correct password", err)

	_, err = api.Authenticate(ctx, email, "wrong-password")
	if err == nil {
		run.fail("reject wrong password", fmt.Errorf("expected an error, got none"))
	} else {
		run.check("reject wrong password", nil)
	}

	order, err := api.PlaceOrder(ctx, transport.CreateOrderRequest{
		UserID: &user.ID,
		Items: []transport.OrderLineRequest{
			{ProductID: product.ID, Quantity: 3},
		},
	})
	run.check("place order", err)
	run.must(err)

	wantTotal := price.Mul(decimal.NewFromInt(3))
	if !order.TotalAmount.Equal(wantTotal) {
		run.fail("order total", fmt.Errorf("got %s want %s", order.TotalAmount, wantTotal))
	} else {
		run.check("order total", nil)
	}

	stockAfter, err := api.GetStock(ctx, product.ID)
	run.check("get stock after order", err)
	if err == nil && stockAfter.Stock != 7 {
		run.fail("stock decremented", fmt.Errorf("got %d want 7", stockAfter.Stock))
	}

	count, err := api.CountOrdersByUser(ctx, user.ID)
	run.check("count orders by user", err)
	if err == nil && count != 1 {
		run.fail("order count", fmt.Errorf("got %d want 1", count))
	}

	_, err = api.UpdateOrderStatus(ctx, order.ID, "PAID")
	run.check("update order status", err)

	// An order exceeding available stock must be rejected whole
	_, err = api.PlaceOrder(ctx, transport.CreateOrderRequest{
		UserID: &user.ID,
		Items: []transport.OrderLineRequest{
			{ProductID: product.ID, Quantity: 100},
		},
	})
	if err == nil {
		run.fail("reject oversized order", fmt.Errorf("expected an error, got none"))
	} else {
		run.check("reject oversized order", nil)
	}

	// Deleting a product that is still referenced by an order must fail
	err = api.DeleteProduct(ctx, product.ID)
	if err == nil {
		run.fail("protect ordered product from deletion", fmt.Errorf("expected an error, got none"))
	} else {
		run.check("protect ordered product from deletion", nil)
	}

	// Cleanup in dependency order
	run.check("delete order", api.DeleteOrder(ctx, order.ID))
	run.check("delete product", api.DeleteProduct(ctx, product.ID))
	run.check("delete category", api.DeleteCategory(ctx, category.ID))
	run.check("delete user", api.DeleteUser(ctx, user.ID))

	_, err = api.GetUser(ctx, user.ID)
	if client.IsNotFound(err) {
		run.check("deleted user is gone", nil)
	} else {
		run.fail("deleted user is gone", fmt.Errorf("expected 404, got %v", err))
	}

	fmt.Printf("\n%d passed, %d failed\n", run.passed, run.failures)
	if run.failures > 0 {
		os.Exit(1)
	}
}

type runner struct {
	passed   int
	failures int
}

func (r *runner) check(step string, err error) {
	if err != nil {
		r.fail(step, err)
		return
	}
	r.passed++
	fmt.Printf("PASS %s\n", step)
}

func (r *runner) fail(step string, err error) {
	r.failures++
	fmt.Printf("FAIL %s: %v\n", step, err)
}

// must aborts the run when a step the rest of the script depends on failed
func (r *runner) must(err error) {
	if err != nil {
		fmt.Printf("\naborting: prerequisite step failed\n")
		os.Exit(1)
	}
}
