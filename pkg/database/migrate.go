package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate creates the schema if it does not exist yet. Statements are
// idempotent, so running at every startup is safe.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username VARCHAR(100) UNIQUE NOT NULL,
			email VARCHAR(150) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(20) NOT NULL CHECK (role IN ('manufacturer', 'distributor', 'seller')),
			company_name VARCHAR(200) NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id UUID PRIMARY KEY,
			name VARCHAR(200) NOT NULL,
			model VARCHAR(100) NOT NULL,
			material VARCHAR(100),
			size VARCHAR(50),
			color VARCHAR(50),
			price NUMERIC(10,2) NOT NULL,
			manufacturer_id UUID REFERENCES users(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS inventory (
			id UUID PRIMARY KEY,
			product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			owner_role VARCHAR(20) NOT NULL CHECK (owner_role IN ('manufacturer', 'distributor', 'seller')),
			quantity INT NOT NULL DEFAULT 0 CHECK (quantity >= 0),
			last_updated TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (product_id, owner_id, owner_role)
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			order_number VARCHAR(100) UNIQUE NOT NULL,
			seller_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			distributor_id UUID REFERENCES users(id) ON DELETE SET NULL,
			customer_name VARCHAR(200) NOT NULL,
			customer_email VARCHAR(150) NOT NULL DEFAULT '',
			total_amount NUMERIC(10,2) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending'
				CHECK (status IN ('pending', 'confirmed', 'processing', 'shipped', 'delivered', 'cancelled')),
			confirmed_by_id UUID REFERENCES users(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			quantity INT NOT NULL,
			unit_price NUMERIC(10,2) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS distributor_sellers (
			distributor_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			seller_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			PRIMARY KEY (distributor_id, seller_id)
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
