package database

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const migrationsDir = "../../migrations"

func TestMigrationFilesExist(t *testing.T) {
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		t.Fatal("migrations directory does not exist")
	}

	expectedMigrations := []string{
		"00001_create_users_table.sql",
		"00002_create_categories_table.sql",
		"00003_create_products_table.sql",
		"00004_create_orders_table.sql",
		"00005_create_order_items_table.sql",
		"00006_create_updated_at_trigger.sql",
	}

	for _, migration := range expectedMigrations {
		path := filepath.Join(migrationsDir, migration)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Errorf("migration file %s does not exist", migration)
		}
	}
}

func TestMigrationFilesHaveUpAndDown(t *testing.T) {
	files, err := os.ReadDir(migrationsDir)
	if err != nil {
		t.Fatalf("failed to read migrations directory: %v", err)
	}

	sqlFileCount := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		sqlFileCount++
		content, err := os.ReadFile(filepath.Join(migrationsDir, file.Name()))
		if err != nil {
			t.Errorf("failed to read migration file %s: %v", file.Name(), err)
			continue
		}

		contentStr := string(content)
		for _, directive := range []string{
			"-- +goose Up",
			"-- +goose Down",
			"-- +goose StatementBegin",
			"-- +goose StatementEnd",
		} {
			if !strings.Contains(contentStr, directive) {
				t.Errorf("migration file %s missing %q directive", file.Name(), directive)
			}
		}
	}

	if sqlFileCount == 0 {
		t.Error("no SQL migration files found")
	}
}

func TestMigrationFilesCreateExpectedTables(t *testing.T) {
	expectedTables := map[string]string{
		"users":       "00001_create_users_table.sql",
		"categories":  "00002_create_categories_table.sql",
		"products":    "00003_create_products_table.sql",
		"orders":      "00004_create_orders_table.sql",
		"order_items": "00005_create_order_items_table.sql",
	}

	for tableName, migrationFile := range expectedTables {
		content, err := os.ReadFile(filepath.Join(migrationsDir, migrationFile))
		if err != nil {
			t.Errorf("failed to read migration file %s: %v", migrationFile, err)
			continue
		}

		contentStr := string(content)
		if !strings.Contains(contentStr, "CREATE TABLE IF NOT EXISTS "+tableName) {
			t.Errorf("migration file %s does not create table %s", migrationFile, tableName)
		}
		if !strings.Contains(contentStr, "DROP TABLE IF EXISTS "+tableName) {
			t.Errorf("migration file %s does not drop table %s in down section", migrationFile, tableName)
		}
	}
}

func TestUsersTableHasRequiredColumns(t *testing.T) {
	content, err := os.ReadFile(filepath.Join(migrationsDir, "00001_create_users_table.sql"))
	if err != nil {
		t.Fatalf("failed to read users migration: %v", err)
	}

	contentStr := string(content)
	requiredColumns := []string{
		"id BIGSERIAL PRIMARY KEY",
		"email VARCHAR(255) UNIQUE NOT NULL",
		"password_hash VARCHAR",
		"first_name VARCHAR",
		"last_name VARCHAR",
		"phone VARCHAR",
		"role VARCHAR",
		"is_active BOOLEAN",
		"created_at TIMESTAMPTZ",
		"updated_at TIMESTAMPTZ",
	}

	for _, column := range requiredColumns {
		if !strings.Contains(contentStr, column) {
			t.Errorf("users table missing required column definition: %s", column)
		}
	}

	if !strings.Contains(contentStr, "CHECK (role IN ('CUSTOMER', 'ADMIN'))") {
		t.Error("users table missing role check constraint")
	}
}

func TestProductsTableHasConstraints(t *testing.T) {
	content, err := os.ReadFile(filepath.Join(migrationsDir, "00003_create_products_table.sql"))
	if err != nil {
		t.Fatalf("failed to read products migration: %v", err)
	}

	contentStr := string(content)
	for _, fragment := range []string{
		"category_id BIGINT NOT NULL REFERENCES categories(id)",
		"price NUMERIC(10, 2) NOT NULL CHECK (price >= 0)",
		"stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0)",
		"sku VARCHAR(100) UNIQUE NOT NULL",
	} {
		if !strings.Contains(contentStr, fragment) {
			t.Errorf("products table missing: %s", fragment)
		}
	}
}

func TestOrdersTableHasStatusConstraint(t *testing.T) {
	content, err := os.ReadFile(filepath.Join(migrationsDir, "00004_create_orders_table.sql"))
	if err != nil {
		t.Fatalf("failed to read orders migration: %v", err)
	}

	contentStr := string(content)
	for _, status := range []string{"'PENDING'", "'PAID'", "'SHIPPED'", "'DELIVERED'", "'CANCELLED'"} {
		if !strings.Contains(contentStr, status) {
			t.Errorf("orders table status constraint missing value: %s", status)
		}
	}

	if !strings.Contains(contentStr, "order_number VARCHAR(50) UNIQUE NOT NULL") {
		t.Error("orders table missing unique order_number")
	}
}

func TestOrderItemsTableHasQuantityConstraint(t *testing.T) {
	content, err := os.ReadFile(filepath.Join(migrationsDir, "00005_create_order_items_table.sql"))
	if err != nil {
		t.Fatalf("failed to read order_items migration: %v", err)
	}

	contentStr := string(content)
	for _, fragment := range []string{
		"order_id BIGINT NOT NULL REFERENCES orders(id)",
		"product_id BIGINT NOT NULL REFERENCES products(id)",
		"quantity INTEGER NOT NULL CHECK (quantity > 0)",
		"unit_price NUMERIC(10, 2) NOT NULL",
	} {
		if !strings.Contains(contentStr, fragment) {
			t.Errorf("order_items table missing: %s", fragment)
		}
	}
}
