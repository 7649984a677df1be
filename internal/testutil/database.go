package testutil

import (
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// SetupTestDB opens the integration database. It expects a MySQL database
// named 'dekorhouse_test' on localhost:3306 and skips the test otherwise.
func SetupTestDB(t *testing.T) *sqlx.DB {
	dsn := "root:@tcp(localhost:3306)/dekorhouse_test?parseTime=true&loc=UTC&clientFoundRows=true"
	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

func CleanupTestDB(t *testing.T, db *sqlx.DB) {
	if db == nil {
		return
	}

	tables := []string{"order_items", "orders", "cart_items", "colors", "products"}
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

func SetupTestTables(t *testing.T, db *sqlx.DB) {
	createProducts := `
	CREATE TABLE IF NOT EXISTS products (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name_ru VARCHAR(255) NOT NULL,
		name_uz VARCHAR(255) NOT NULL DEFAULT '',
		code VARCHAR(64) NOT NULL,
		price BIGINT NOT NULL,
		old_price BIGINT NULL,
		main_image VARCHAR(512) NULL,
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	createColors := `
	CREATE TABLE IF NOT EXISTS colors (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		product_id BIGINT NOT NULL,
		name_ru VARCHAR(100) NOT NULL,
		name_uz VARCHAR(100) NOT NULL DEFAULT '',
		hex_code VARCHAR(7) NOT NULL DEFAULT '',
		price_modifier BIGINT NOT NULL DEFAULT 0,
		in_stock TINYINT(1) NOT NULL DEFAULT 1,
		FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE
	)`

	createCartItems := `
	CREATE TABLE IF NOT EXISTS cart_items (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		product_id BIGINT NOT NULL,
		color_id BIGINT NULL,
		quantity INT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_cart_user (user_id)
	)`

	createOrders := `
	CREATE TABLE IF NOT EXISTS orders (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		order_number VARCHAR(32) NOT NULL UNIQUE,
		user_id BIGINT NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
		subtotal BIGINT NOT NULL,
		delivery_fee BIGINT NOT NULL DEFAULT 0,
		discount BIGINT NOT NULL DEFAULT 0,
		total BIGINT NOT NULL,
		delivery_type VARCHAR(20) NOT NULL,
		address VARCHAR(512) NULL,
		latitude DOUBLE NULL,
		longitude DOUBLE NULL,
		customer_name VARCHAR(255) NOT NULL,
		customer_phone VARCHAR(32) NOT NULL,
		note TEXT NULL,
		payment_method VARCHAR(20) NOT NULL,
		created_at DATETIME NOT NULL,
		confirmed_at DATETIME NULL,
		shipped_at DATETIME NULL,
		delivered_at DATETIME NULL,
		cancelled_at DATETIME NULL,
		INDEX idx_orders_user (user_id)
	)`

	createOrderItems := `
	CREATE TABLE IF NOT EXISTS order_items (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		order_id BIGINT NOT NULL,
		product_id BIGINT NULL,
		product_name VARCHAR(255) NOT NULL,
		product_code VARCHAR(64) NOT NULL,
		product_image VARCHAR(512) NULL,
		color_name VARCHAR(100) NULL,
		unit_price BIGINT NOT NULL,
		quantity INT NOT NULL,
		total BIGINT NOT NULL,
		FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE,
		INDEX idx_order_items_order (order_id)
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"products", createProducts},
		{"colors", createColors},
		{"cart_items", createCartItems},
		{"orders", createOrders},
		{"order_items", createOrderItems},
	}

	for _, tbl := range tables {
		if _, err := db.Exec(tbl.query); err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}

// InsertProduct seeds a product and returns its id.
func InsertProduct(t *testing.T, db *sqlx.DB, nameRu, code string, price int64, active bool) int64 {
	res, err := db.Exec(
		`INSERT INTO products (name_ru, name_uz, code, price, main_image, is_active) VALUES (?, ?, ?, ?, ?, ?)`,
		nameRu, nameRu+" uz", code, price, "https://cdn.example.com/"+code+".jpg", active,
	)
	if err != nil {
		t.Fatalf("failed to insert product: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read product id: %v", err)
	}
	return id
}

// InsertColor seeds a color variant and returns its id.
func InsertColor(t *testing.T, db *sqlx.DB, productID int64, nameRu string, modifier int64) int64 {
	res, err := db.Exec(
		`INSERT INTO colors (product_id, name_ru, name_uz, price_modifier) VALUES (?, ?, ?, ?)`,
		productID, nameRu, nameRu+" uz", modifier,
	)
	if err != nil {
		t.Fatalf("failed to insert color: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read color id: %v", err)
	}
	return id
}
