package migrations

import (
	"database/sql"
	"fmt"
	"time"
)

var tables = []struct {
	name  string
	query string
}{
	{"products", `
		CREATE TABLE IF NOT EXISTS products (
			id INT AUTO_INCREMENT PRIMARY KEY,
			parent_id INT NULL,
			name VARCHAR(255) NOT NULL,
			type VARCHAR(20) NOT NULL,
			regular_price DECIMAL(10,2) NULL,
			sale_price DECIMAL(10,2) NULL,
			INDEX parent_idx (parent_id)
		);
	`},
	{"product_role_prices", `
		CREATE TABLE IF NOT EXISTS product_role_prices (
			product_id INT NOT NULL,
			role VARCHAR(50) NOT NULL,
			price DECIMAL(10,2) NOT NULL,
			PRIMARY KEY (product_id, role),
			FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE
		);
	`},
	{"users", `
		CREATE TABLE IF NOT EXISTS users (
			id INT AUTO_INCREMENT PRIMARY KEY,
			username VARCHAR(50) NOT NULL,
			email VARCHAR(50) NOT NULL UNIQUE,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'customer'
		);
	`},
}

// AutoMigrate creates the service tables if they do not exist, retrying each
// statement up to retries times.
func AutoMigrate(retries int, db *sql.DB) error {
	for _, table := range tables {
		_, err := db.Exec(table.query)
		for i := 0; err != nil && i < retries; i++ {
			time.Sleep(1 * time.Second)
			_, err = db.Exec(table.query)
		}
		if err != nil {
			return fmt.Errorf("migrate %s: %w", table.name, err)
		}
	}
	return nil
}
