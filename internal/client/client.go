package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/transport"
)

// Client is a typed JSON client for the storefront REST API
type Client struct {
	baseURL string
	http    *http.Client
}

// APIError is a non-2xx response decoded from the API's error envelope
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    map[string]interface{}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an APIError with a 404 status
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// New creates a Client pointed at baseURL, e.g. "http://localhost:8080"
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
		var envelope middleware.ErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr == nil && envelope.Error.Message != "" {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
			apiErr.Details = envelope.Error.Details
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}
	return nil
}

// Health calls the service health endpoint
func (c *Client) Health(ctx context.Context) (map[string]string, error) {
	var health map[string]string
	if err := c.do(ctx, http.MethodGet, "/health", nil, &health); err != nil {
		return nil, err
	}
	return health, nil
}

// CreateUser registers a new user and returns the stored record
func (c *Client) CreateUser(ctx context.Context, req transport.CreateUserRequest) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodPost, "/api/users", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	path := "/api/users/email/" + url.PathEscape(email)
	if err := c.do(ctx, http.MethodGet, path, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int64, req transport.UpdateUserRequest) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/users/%d", id), req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/users/%d", id), nil, nil)
}

// Authenticate checks credentials and returns the matched user
func (c *Client) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	var user domain.User
	req := transport.AuthenticateRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/users/authenticate", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) CreateCategory(ctx context.Context, req transport.CategoryRequest) (*domain.Category, error) {
	var category domain.Category
	if err := c.do(ctx, http.MethodPost, "/api/categories", req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	var category domain.Category
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/categories/%d", id), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	var categories []*domain.Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id int64, req transport.CategoryRequest) (*domain.Category, error) {
	var category domain.Category
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/categories/%d", id), req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/categories/%d", id), nil, nil)
}

func (c *Client) CreateProduct(ctx context.Context, req transport.ProductRequest) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodPost, "/api/products", req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	var products []*domain.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) ListProductsByCategory(ctx context.Context, categoryID int64) ([]*domain.Product, error) {
	var products []*domain.Product
	path := fmt.Sprintf("/api/products/category/%d", categoryID)
	if err := c.do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, req transport.ProductRequest) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/products/%d", id), req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil, nil)
}

// GetStock reports a product's current stock level
func (c *Client) GetStock(ctx context.Context, id int64) (*transport.StockResponse, error) {
	var stock transport.StockResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d/stock", id), nil, &stock); err != nil {
		return nil, err
	}
	return &stock, nil
}

// SetStock replaces a product's stock level with an absolute quantity
func (c *Client) SetStock(ctx context.Context, id int64, quantity int) error {
	req := transport.UpdateStockRequest{Quantity: &quantity}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/products/%d/stock", id), req, nil)
}

// PlaceOrder runs the server-side placement workflow and returns the order
// with its line items and computed total.
func (c *Client) PlaceOrder(ctx context.Context, req transport.CreateOrderRequest) (*transport.OrderResponse, error) {
	var order transport.OrderResponse
	if err := c.do(ctx, http.MethodPost, "/api/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) GetOrder(ctx context.Context, id int64) (*transport.OrderResponse, error) {
	var order transport.OrderResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/orders/%d", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	var orders []*domain.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) ListOrdersByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	var orders []*domain.Order
	path := fmt.Sprintf("/api/orders/user/%d", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) CountOrdersByUser(ctx context.Context, userID int64) (int, error) {
	var count transport.OrderCountResponse
	path := fmt.Sprintf("/api/orders/user/%d/count", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &count); err != nil {
		return 0, err
	}
	return count.Count, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status string) (*domain.Order, error) {
	var order domain.Order
	req := transport.UpdateStatusRequest{Status: status}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/orders/%d/status", id), req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) DeleteOrder(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/orders/%d", id), nil, nil)
}
