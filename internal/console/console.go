package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/service"

	"github.com/shopspring/decimal"
)

// Console is a line-oriented menu client driving the services directly,
// for local operation and testing against a live database.
type Console struct {
	in  *bufio.Scanner
	out io.Writer

	users      service.UserService
	products   service.ProductService
	categories service.CategoryService
	orders     service.OrderService
}

// New creates a Console reading commands from in and printing to out
func New(
	in io.Reader,
	out io.Writer,
	users service.UserService,
	products service.ProductService,
	categories service.CategoryService,
	orders service.OrderService,
) *Console {
	return &Console{
		in:         bufio.NewScanner(in),
		out:        out,
		users:      users,
		products:   products,
		categories: categories,
		orders:     orders,
	}
}

// Run drives the menu loop until the user exits or input ends. Errors from
// any single operation are printed and the loop continues.
func (c *Console) Run(ctx context.Context) {
	fmt.Fprintln(c.out, "===========================================")
	fmt.Fprintln(c.out, "   STOREFRONT CONSOLE")
	fmt.Fprintln(c.out, "===========================================")

	for {
		c.printMenu()
		choice, ok := c.promptInt("Enter your choice: ")
		if !ok {
			return
		}

		if choice == 0 {
			fmt.Fprintln(c.out, "Goodbye!")
			return
		}

		if err := c.dispatch(ctx, choice); err != nil {
			fmt.Fprintf(c.out, "Error: %v\n", err)
		}
	}
}

func (c *Console) printMenu() {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "  1. List all products")
	fmt.Fprintln(c.out, "  2. List products by category")
	fmt.Fprintln(c.out, "  3. Create user")
	fmt.Fprintln(c.out, "  4. Place order")
	fmt.Fprintln(c.out, "  5. View orders for user")
	fmt.Fprintln(c.out, "  6. Update product price/stock")
	fmt.Fprintln(c.out, "  7. Delete product")
	fmt.Fprintln(c.out, "  8. List all categories")
	fmt.Fprintln(c.out, "  9. List all users")
	fmt.Fprintln(c.out, " 10. View order details")
	fmt.Fprintln(c.out, "  0. Exit")
}

func (c *Console) dispatch(ctx context.Context, choice int) error {
	switch choice {
	case 1:
		return c.listProducts(ctx)
	case 2:
		return c.listProductsByCategory(ctx)
	case 3:
		return c.createUser(ctx)
	case 4:
		return c.placeOrder(ctx)
	case 5:
		return c.viewUserOrders(ctx)
	case 6:
		return c.updateProduct(ctx)
	case 7:
		return c.deleteProduct(ctx)
	case 8:
		return c.listCategories(ctx)
	case 9:
		return c.listUsers(ctx)
	case 10:
		return c.viewOrderDetails(ctx)
	default:
		fmt.Fprintln(c.out, "Invalid choice. Please try again.")
		return nil
	}
}

func (c *Console) listProducts(ctx context.Context) error {
	products, err := c.products.List(ctx)
	if err != nil {
		return err
	}

	if len(products) == 0 {
		fmt.Fprintln(c.out, "No products found.")
		return nil
	}

	fmt.Fprintf(c.out, "%-5s %-40s %-12s %-8s %-15s %-6s\n", "ID", "Name", "Price", "Stock", "SKU", "Active")
	for _, p := range products {
		active := "no"
		if p.IsActive {
			active = "yes"
		}
		fmt.Fprintf(c.out, "%-5d %-40s $%-11s %-8d %-15s %-6s\n",
			p.ID, truncate(p.Name, 40), p.Price.StringFixed(2), p.Stock, p.SKU, active)
	}
	fmt.Fprintf(c.out, "Total products: %d\n", len(products))
	return nil
}

func (c *Console) listProductsByCategory(ctx context.Context) error {
	if err := c.listCategories(ctx); err != nil {
		return err
	}

	categoryID, ok := c.promptInt64("Enter category ID: ")
	if !ok {
		return nil
	}

	products, err := c.products.ListByCategory(ctx, categoryID)
	if err != nil {
		return err
	}

	if len(products) == 0 {
		fmt.Fprintln(c.out, "No products found in this category.")
		return nil
	}

	for _, p := range products {
		fmt.Fprintf(c.out, "%-5d %-40s $%-11s %-8d %-15s\n",
			p.ID, truncate(p.Name, 40), p.Price.StringFixed(2), p.Stock, p.SKU)
	}
	return nil
}

func (c *Console) createUser(ctx context.Context) error {
	user := &domain.User{
		Email:     c.promptLine("Email: "),
		FirstName: c.promptLine("First name: "),
		LastName:  c.promptLine("Last name: "),
		Phone:     c.promptLine("Phone: "),
		Role:      strings.ToUpper(strings.TrimSpace(c.promptLine("Role (CUSTOMER/ADMIN) [CUSTOMER]: "))),
		IsActive:  true,
	}
	password := c.promptLine("Password: ")

	if err := c.users.Register(ctx, user, password); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "User created: id=%d email=%s\n", user.ID, user.Email)
	return nil
}

// placeOrder runs the interactive placement loop: an order shell in PENDING,
// then items one at a time until the 0 sentinel. A rejected item is reported
// and the loop continues; accepted items stay committed.
func (c *Console) placeOrder(ctx context.Context) error {
	userID, ok := c.promptInt64("Enter user ID: ")
	if !ok {
		return nil
	}

	user, err := c.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "User: %s %s\n", user.FirstName, user.LastName)

	order := &domain.Order{UserID: userID, TotalAmount: decimal.Zero}
	if err := c.orders.Create(ctx, order); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Order created: %s (id=%d)\n", order.OrderNumber, order.ID)

	for {
		productID, ok := c.promptInt64("Enter product ID (0 to finish): ")
		if !ok || productID == 0 {
			break
		}

		quantity, ok := c.promptInt("Enter quantity: ")
		if !ok {
			break
		}

		item, err := c.orders.AddItem(ctx, order.ID, productID, quantity)
		if err != nil {
			fmt.Fprintf(c.out, "Rejected: %v\n", err)
			continue
		}

		fmt.Fprintf(c.out, "Added: product %d x %d = $%s\n", productID, item.Quantity, item.Subtotal.StringFixed(2))
	}

	finalized, err := c.orders.FinalizeTotal(ctx, order.ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Order placed: %s total $%s\n", finalized.OrderNumber, finalized.TotalAmount.StringFixed(2))
	return nil
}

func (c *Console) viewUserOrders(ctx context.Context) error {
	userID, ok := c.promptInt64("Enter user ID: ")
	if !ok {
		return nil
	}

	user, err := c.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "User: %s %s (%s)\n", user.FirstName, user.LastName, user.Email)

	orders, err := c.orders.ListByUser(ctx, userID)
	if err != nil {
		return err
	}

	if len(orders) == 0 {
		fmt.Fprintln(c.out, "No orders found for this user.")
		return nil
	}

	fmt.Fprintf(c.out, "%-5s %-20s %-12s %-14s %-20s\n", "ID", "Order Number", "Status", "Total", "Date")
	for _, o := range orders {
		fmt.Fprintf(c.out, "%-5d %-20s %-12s $%-13s %-20s\n",
			o.ID, o.OrderNumber, o.Status, o.TotalAmount.StringFixed(2), o.OrderDate.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(c.out, "Total orders: %d\n", len(orders))
	return nil
}

func (c *Console) updateProduct(ctx context.Context) error {
	productID, ok := c.promptInt64("Enter product ID: ")
	if !ok {
		return nil
	}

	product, err := c.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Name: %s\nCurrent price: $%s\nCurrent stock: %d\n",
		product.Name, product.Price.StringFixed(2), product.Stock)

	if raw := strings.TrimSpace(c.promptLine("New price (blank to keep): ")); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("invalid price: %w", err)
		}
		product.Price = price
	}

	if raw := strings.TrimSpace(c.promptLine("New stock (blank to keep): ")); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid stock: %w", err)
		}
		product.Stock = stock
	}

	if err := c.products.Update(ctx, product); err != nil {
		return err
	}

	fmt.Fprintln(c.out, "Product updated.")
	return nil
}

func (c *Console) deleteProduct(ctx context.Context) error {
	productID, ok := c.promptInt64("Enter product ID: ")
	if !ok {
		return nil
	}

	if err := c.products.Delete(ctx, productID); err != nil {
		return err
	}

	fmt.Fprintln(c.out, "Product deleted.")
	return nil
}

func (c *Console) listCategories(ctx context.Context) error {
	categories, err := c.categories.List(ctx)
	if err != nil {
		return err
	}

	if len(categories) == 0 {
		fmt.Fprintln(c.out, "No categories found.")
		return nil
	}

	for _, cat := range categories {
		fmt.Fprintf(c.out, "%-5d %-30s %s\n", cat.ID, cat.Name, truncate(cat.Description, 60))
	}
	return nil
}

func (c *Console) listUsers(ctx context.Context) error {
	users, err := c.users.List(ctx)
	if err != nil {
		return err
	}

	if len(users) == 0 {
		fmt.Fprintln(c.out, "No users found.")
		return nil
	}

	fmt.Fprintf(c.out, "%-5s %-30s %-20s %-10s\n", "ID", "Email", "Name", "Role")
	for _, u := range users {
		fmt.Fprintf(c.out, "%-5d %-30s %-20s %-10s\n",
			u.ID, u.Email, truncate(u.FirstName+" "+u.LastName, 20), u.Role)
	}
	return nil
}

func (c *Console) viewOrderDetails(ctx context.Context) error {
	orderID, ok := c.promptInt64("Enter order ID: ")
	if !ok {
		return nil
	}

	order, err := c.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Order %s  status=%s  total=$%s\n",
		order.OrderNumber, order.Status, order.TotalAmount.StringFixed(2))

	items, err := c.orders.Items(ctx, orderID)
	if err != nil {
		return err
	}

	for _, item := range items {
		fmt.Fprintf(c.out, "  product %-5d x %-4d @ $%-10s = $%s\n",
			item.ProductID, item.Quantity, item.UnitPrice.StringFixed(2), item.Subtotal.StringFixed(2))
	}
	return nil
}

func (c *Console) promptLine(prompt string) string {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		return ""
	}
	return c.in.Text()
}

func (c *Console) promptInt(prompt string) (int, bool) {
	for {
		raw := strings.TrimSpace(c.promptLine(prompt))
		if raw == "" {
			return 0, false
		}
		n, err := strconv.Atoi(raw)
		if err == nil {
			return n, true
		}
		fmt.Fprintln(c.out, "Please enter a number.")
	}
}

func (c *Console) promptInt64(prompt string) (int64, bool) {
	n, ok := c.promptInt(prompt)
	return int64(n), ok
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
