package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the integration test database. Expects a local MySQL at
// localhost:3306 with a database named 'orderdesk_test'; tests are skipped
// when it is not reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/orderdesk_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.Ping()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"orders", "message_templates"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the tables the notify repositories read and write.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createOrdersTable := `
	CREATE TABLE IF NOT EXISTS orders (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		order_source VARCHAR(50) NOT NULL DEFAULT 'Shopify',
		order_number VARCHAR(50) NOT NULL,
		subtotal DECIMAL(10,2) DEFAULT 0.00,
		shipping DECIMAL(10,2) DEFAULT 0.00,
		total DECIMAL(10,2) DEFAULT 0.00,
		discount_code VARCHAR(50) DEFAULT '',
		discount_amount DECIMAL(10,2) DEFAULT 0.00,
		quantity INT DEFAULT 1,
		item_name VARCHAR(255) DEFAULT '',
		billing_name VARCHAR(150) DEFAULT '',
		billing_phone VARCHAR(30) DEFAULT '',
		billing_street VARCHAR(255) DEFAULT '',
		billing_city VARCHAR(100) DEFAULT '',
		status VARCHAR(50) DEFAULT 'Pending',
		shipping_status VARCHAR(50) DEFAULT '',
		customer_type VARCHAR(50) DEFAULT '',
		cod_amount DECIMAL(10,2) DEFAULT 0.00,
		courier VARCHAR(100) DEFAULT '',
		tracking_number VARCHAR(100) DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_status (status),
		INDEX idx_order_number (order_number)
	)`

	createTemplatesTable := `
	CREATE TABLE IF NOT EXISTS message_templates (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		category VARCHAR(100) NOT NULL,
		position INT NOT NULL DEFAULT 0,
		fragment TEXT NOT NULL,
		INDEX idx_category (category)
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"orders", createOrdersTable},
		{"message_templates", createTemplatesTable},
	}

	for _, tbl := range tables {
		_, err := db.Exec(tbl.query)
		if err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}
