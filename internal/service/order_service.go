package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// OrderLine is one requested product/quantity pair in a placement request
type OrderLine struct {
	ProductID int64
	Quantity  int
}

// OrderService defines the interface for order business logic, including the
// multi-entity placement workflow.
type OrderService interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	Update(ctx context.Context, order *domain.Order) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
	Items(ctx context.Context, orderID int64) ([]*domain.OrderItem, error)

	PlaceOrder(ctx context.Context, userID int64, lines []OrderLine) (*domain.Order, error)
	AddItem(ctx context.Context, orderID, productID int64, quantity int) (*domain.OrderItem, error)
	FinalizeTotal(ctx context.Context, orderID int64) (*domain.Order, error)
}

// orderRepos bundles the repositories the placement workflow touches, so the
// transactional path can rebuild them over one *sql.Tx.
type orderRepos struct {
	users    repository.UserRepository
	orders   repository.OrderRepository
	items    repository.OrderItemRepository
	products repository.ProductRepository
}

type orderService struct {
	db *sql.DB
	orderRepos
}

// NewOrderService creates a new instance of OrderService. db is used to open
// the transaction around PlaceOrder; the repositories serve every other path.
func NewOrderService(
	db *sql.DB,
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
	orderItemRepo repository.OrderItemRepository,
	productRepo repository.ProductRepository,
) OrderService {
	return &orderService{
		db: db,
		orderRepos: orderRepos{
			users:    userRepo,
			orders:   orderRepo,
			items:    orderItemRepo,
			products: productRepo,
		},
	}
}

// Create validates and inserts a bare order shell
func (s *orderService) Create(ctx context.Context, order *domain.Order) error {
	if order.UserID == 0 {
		return validationError("order must have a user ID")
	}

	if _, err := s.users.FindByID(ctx, order.UserID); err != nil {
		return err
	}

	if order.OrderNumber == "" {
		order.OrderNumber = newOrderNumber()
	}
	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}
	if !domain.ValidOrderStatus(order.Status) {
		return validationError("unknown order status %q", order.Status)
	}

	return s.orders.Create(ctx, order)
}

// GetByID retrieves an order by ID
func (s *orderService) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	return s.orders.FindByID(ctx, id)
}

// List retrieves all orders, most recent first
func (s *orderService) List(ctx context.Context) ([]*domain.Order, error) {
	return s.orders.List(ctx)
}

// ListByUser retrieves a user's orders, most recent first
func (s *orderService) ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	return s.orders.FindByUser(ctx, userID)
}

// CountByUser returns how many orders a user has placed
func (s *orderService) CountByUser(ctx context.Context, userID int64) (int, error) {
	return s.orders.CountByUser(ctx, userID)
}

// Update replaces the stored record after checking it exists
func (s *orderService) Update(ctx context.Context, order *domain.Order) error {
	if !domain.ValidOrderStatus(order.Status) {
		return validationError("unknown order status %q", order.Status)
	}

	if _, err := s.orders.FindByID(ctx, order.ID); err != nil {
		return err
	}

	return s.orders.Update(ctx, order)
}

// UpdateStatus reads the order, mutates its status and re-persists the full
// record. This is an update, not a partial patch.
func (s *orderService) UpdateStatus(ctx context.Context, id int64, status string) error {
	if !domain.ValidOrderStatus(status) {
		return validationError("unknown order status %q", status)
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return err
	}

	order.Status = status
	now := time.Now()
	switch status {
	case domain.OrderStatusShipped:
		order.ShippedDate = &now
	case domain.OrderStatusDelivered:
		order.DeliveredDate = &now
	}

	return s.orders.Update(ctx, order)
}

// Delete removes an order by id
func (s *orderService) Delete(ctx context.Context, id int64) error {
	// An order owns its line items, so they go with it
	if err := s.items.DeleteByOrder(ctx, id); err != nil {
		return err
	}
	return s.orders.Delete(ctx, id)
}

// Items returns the order's line items
func (s *orderService) Items(ctx context.Context, orderID int64) ([]*domain.OrderItem, error) {
	if _, err := s.orders.FindByID(ctx, orderID); err != nil {
		return nil, err
	}
	return s.items.FindByOrder(ctx, orderID)
}

// PlaceOrder runs the whole placement workflow inside one transaction:
// order shell, line items, stock decrements and the final total commit or
// roll back together. An unknown product, bad quantity or short stock fails
// the entire order.
func (s *orderService) PlaceOrder(ctx context.Context, userID int64, lines []OrderLine) (*domain.Order, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	txRepos := orderRepos{
		users:    repository.NewUserRepository(tx),
		orders:   repository.NewOrderRepository(tx),
		items:    repository.NewOrderItemRepository(tx),
		products: repository.NewProductRepository(tx),
	}

	order, err := placeOrder(ctx, txRepos, userID, lines)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	return order, nil
}

// placeOrder is the workflow body, factored out so it can run over either a
// transaction or plain repositories.
func placeOrder(ctx context.Context, repos orderRepos, userID int64, lines []OrderLine) (*domain.Order, error) {
	if _, err := repos.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	order := &domain.Order{
		UserID:      userID,
		OrderNumber: newOrderNumber(),
		Status:      domain.OrderStatusPending,
		TotalAmount: decimal.Zero,
	}
	if err := repos.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, line := range lines {
		item, err := addItem(ctx, repos, order.ID, line.ProductID, line.Quantity)
		if err != nil {
			return nil, err
		}
		total = total.Add(item.Subtotal)
	}

	// An order with zero lines is valid and keeps a zero total
	order.TotalAmount = total
	if err := repos.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// AddItem appends one line to an existing order: validates the quantity,
// atomically decrements stock, snapshots the unit price and persists the
// item. The order total is not touched; call FinalizeTotal when done adding.
func (s *orderService) AddItem(ctx context.Context, orderID, productID int64, quantity int) (*domain.OrderItem, error) {
	if _, err := s.orders.FindByID(ctx, orderID); err != nil {
		return nil, err
	}
	return addItem(ctx, s.orderRepos, orderID, productID, quantity)
}

func addItem(ctx context.Context, repos orderRepos, orderID, productID int64, quantity int) (*domain.OrderItem, error) {
	if quantity <= 0 {
		return nil, validationError("quantity must be positive")
	}

	product, err := repos.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := repos.products.DecrementStock(ctx, productID, quantity); err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, validationError("insufficient stock for product %d: %d available", productID, product.Stock)
		}
		return nil, err
	}

	subtotal := product.Price.Mul(decimal.NewFromInt(int64(quantity)))
	item := &domain.OrderItem{
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: product.Price,
		Subtotal:  subtotal,
	}
	if err := repos.items.Create(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// FinalizeTotal recomputes the order total as the sum of its line item
// subtotals and re-persists the order.
func (s *orderService) FinalizeTotal(ctx context.Context, orderID int64) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	items, err := s.items.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal)
	}

	order.TotalAmount = total
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// newOrderNumber generates a time-derived human-facing order number. The
// schema's unique constraint backs uniqueness.
func newOrderNumber() string {
	return fmt.Sprintf("ORD-%d", time.Now().UnixMilli())
}
