package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses
const (
	OrderStatusPending   = "PENDING"
	OrderStatusPaid      = "PAID"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

// ValidOrderStatus reports whether s is one of the known order statuses
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order represents a customer order
type Order struct {
	ID                int64           `json:"id" db:"id"`
	UserID            int64           `json:"user_id" db:"user_id"`
	OrderNumber       string          `json:"order_number" db:"order_number"`
	Status            string          `json:"status" db:"status"`
	TotalAmount       decimal.Decimal `json:"total_amount" db:"total_amount"`
	ShippingAddressID *int64          `json:"shipping_address_id" db:"shipping_address_id"`
	BillingAddressID  *int64          `json:"billing_address_id" db:"billing_address_id"`
	Notes             string          `json:"notes" db:"notes"`
	OrderDate         time.Time       `json:"order_date" db:"order_date"`
	ShippedDate       *time.Time      `json:"shipped_date" db:"shipped_date"`
	DeliveredDate     *time.Time      `json:"delivered_date" db:"delivered_date"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" db:"updated_at"`
}

// OrderItem represents one product line within an order. UnitPrice is a
// snapshot of the product price at the time of sale.
type OrderItem struct {
	ID        int64           `json:"id" db:"id"`
	OrderID   int64           `json:"order_id" db:"order_id"`
	ProductID int64           `json:"product_id" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" db:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal" db:"subtotal"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
