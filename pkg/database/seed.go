package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// Seed inserts a demo dataset: one manufacturer, one distributor, and two
// sellers (one unassigned), a small catalog, and starting inventory. It
// is a no-op when any user already exists.
func Seed(ctx context.Context, pool *pgxpool.Pool, password string) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	manufacturer := uuid.New()
	distributor := uuid.New()
	seller := uuid.New()
	sellerUnassigned := uuid.New()

	users := []struct {
		id       uuid.UUID
		username string
		email    string
		role     string
		company  string
	}{
		{manufacturer, "manufacturer1", "mfg@cozycomfort.com", "manufacturer", "Cozy Comfort Manufacturing"},
		{distributor, "distributor1", "dist@cozycomfort.com", "distributor", "Warm Distribution Co"},
		{seller, "seller1", "seller1@cozycomfort.com", "seller", "Snuggle Store"},
		{sellerUnassigned, "seller2", "seller2@cozycomfort.com", "seller", "Blanket Boutique"},
	}
	for _, u := range users {
		_, err := pool.Exec(ctx,
			`INSERT INTO users (id, username, email, password_hash, role, company_name) VALUES ($1, $2, $3, $4, $5, $6)`,
			u.id, u.username, u.email, string(hash), u.role, u.company)
		if err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
	}

	products := []struct {
		id       uuid.UUID
		name     string
		model    string
		material string
		price    string
		stock    int
	}{
		{uuid.New(), "Fleece Blanket", "CC-FL-100", "fleece", "29.99", 500},
		{uuid.New(), "Wool Throw", "CC-WL-200", "wool", "59.50", 300},
		{uuid.New(), "Weighted Blanket", "CC-WT-300", "cotton", "89.00", 150},
	}
	for _, p := range products {
		_, err := pool.Exec(ctx,
			`INSERT INTO products (id, name, model, material, price, manufacturer_id) VALUES ($1, $2, $3, $4, $5, $6)`,
			p.id, p.name, p.model, p.material, p.price, manufacturer)
		if err != nil {
			return fmt.Errorf("seed products: %w", err)
		}
		_, err = pool.Exec(ctx,
			`INSERT INTO inventory (id, product_id, owner_id, owner_role, quantity) VALUES ($1, $2, $3, 'manufacturer', $4)`,
			uuid.New(), p.id, manufacturer, p.stock)
		if err != nil {
			return fmt.Errorf("seed inventory: %w", err)
		}
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO distributor_sellers (distributor_id, seller_id) VALUES ($1, $2)`,
		distributor, seller)
	if err != nil {
		return fmt.Errorf("seed assignments: %w", err)
	}
	return nil
}
