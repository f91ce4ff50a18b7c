package transport

import (
	"net/http"

	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderLineRequest is one product/quantity pair within a placement payload
type OrderLineRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderRequest represents the order creation payload. With items
// present, the whole placement workflow runs transactionally and the total
// is computed server-side; without items a bare order shell is created and
// total_amount is required.
type CreateOrderRequest struct {
	UserID      *int64             `json:"user_id" validate:"required"`
	TotalAmount *decimal.Decimal   `json:"total_amount"`
	Notes       string             `json:"notes"`
	Items       []OrderLineRequest `json:"items" validate:"dive"`
}

// UpdateOrderRequest represents the full-record order update payload
type UpdateOrderRequest struct {
	UserID            int64            `json:"user_id" validate:"required"`
	OrderNumber       string           `json:"order_number" validate:"required"`
	Status            string           `json:"status" validate:"required"`
	TotalAmount       *decimal.Decimal `json:"total_amount" validate:"required"`
	ShippingAddressID *int64           `json:"shipping_address_id"`
	BillingAddressID  *int64           `json:"billing_address_id"`
	Notes             string           `json:"notes"`
}

// UpdateStatusRequest represents the status transition payload
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderCountResponse reports how many orders a user has placed
type OrderCountResponse struct {
	UserID int64 `json:"user_id"`
	Count  int   `json:"count"`
}

// OrderResponse is an order together with its line items
type OrderResponse struct {
	*domain.Order
	Items []*domain.OrderItem `json:"items,omitempty"`
}

// OrderHandler handles HTTP requests for order operations
type OrderHandler struct {
	orderService service.OrderService
	logger       *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/user/{userID}", h.ListByUser)
		r.Get("/user/{userID}/count", h.CountByUser)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		r.Put("/{id}/status", h.UpdateStatus)
	})
}

// Create handles order creation, either a bare shell or a full placement
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(req.Items) > 0 {
		lines := make([]service.OrderLine, 0, len(req.Items))
		for _, item := range req.Items {
			lines = append(lines, service.OrderLine{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}

		order, err := h.orderService.PlaceOrder(r.Context(), *req.UserID, lines)
		if err != nil {
			respondServiceError(w, h.logger, err)
			return
		}

		items, err := h.orderService.Items(r.Context(), order.ID)
		if err != nil {
			respondServiceError(w, h.logger, err)
			return
		}

		h.logger.Info("Order placed",
			zap.Int64("order_id", order.ID),
			zap.String("order_number", order.OrderNumber),
			zap.Int("items", len(items)),
		)
		middleware.RespondWithJSON(w, http.StatusCreated, OrderResponse{Order: order, Items: items})
		return
	}

	if req.TotalAmount == nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "total_amount is required")
		return
	}

	order := &domain.Order{
		UserID:      *req.UserID,
		TotalAmount: *req.TotalAmount,
		Notes:       req.Notes,
	}
	if err := h.orderService.Create(r.Context(), order); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Order created", zap.Int64("order_id", order.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, order)
}

// GetByID handles looking an order up by id, including its line items
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	order, err := h.orderService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	items, err := h.orderService.Items(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, OrderResponse{Order: order, Items: items})
}

// List handles listing all orders, most recent first
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.List(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

// ListByUser handles listing one user's orders
func (h *OrderHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	orders, err := h.orderService.ListByUser(r.Context(), userID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

// CountByUser reports how many orders a user has placed
func (h *OrderHandler) CountByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	count, err := h.orderService.CountByUser(r.Context(), userID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, OrderCountResponse{UserID: userID, Count: count})
}

// Update handles a full-record order update
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	var req UpdateOrderRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order := &domain.Order{
		ID:                id,
		UserID:            req.UserID,
		OrderNumber:       req.OrderNumber,
		Status:            req.Status,
		TotalAmount:       *req.TotalAmount,
		ShippingAddressID: req.ShippingAddressID,
		BillingAddressID:  req.BillingAddressID,
		Notes:             req.Notes,
	}

	if err := h.orderService.Update(r.Context(), order); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, order)
}

// UpdateStatus handles an order status transition
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	var req UpdateStatusRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.orderService.UpdateStatus(r.Context(), id, req.Status); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	order, err := h.orderService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, order)
}

// Delete handles removing an order
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	if err := h.orderService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "order deleted"})
}
