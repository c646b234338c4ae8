package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"cozycomfort/internal/common"
	"cozycomfort/internal/models"
	"cozycomfort/internal/repositories"
	"cozycomfort/pkg/database"
)

// CreateProductInput carries the fields a manufacturer supplies for a new
// catalog item.
type CreateProductInput struct {
	Name         string
	Model        string
	Material     *string
	Size         *string
	Color        *string
	Price        decimal.Decimal
	InitialStock int
}

type ProductService interface {
	// CreateProduct inserts the product and seeds the manufacturer's
	// inventory record in one transaction.
	CreateProduct(ctx context.Context, manufacturerID uuid.UUID, input CreateProductInput) (uuid.UUID, error)
	// UpdateInventory overwrites the manufacturer's own quantity for a
	// product (an absolute value, not a delta).
	UpdateInventory(ctx context.Context, manufacturerID, productID uuid.UUID, quantity int) error
	ListProducts(ctx context.Context) ([]*models.Product, error)
}

type productService struct {
	db repositories.DB
}

func NewProductService(db repositories.DB) ProductService {
	return &productService{db: db}
}

func (s *productService) CreateProduct(ctx context.Context, manufacturerID uuid.UUID, input CreateProductInput) (uuid.UUID, error) {
	if input.Name == "" || input.Model == "" {
		return uuid.Nil, fmt.Errorf("name and model are required: %w", common.ErrValidation)
	}
	if input.Price.IsNegative() {
		return uuid.Nil, fmt.Errorf("price must not be negative: %w", common.ErrValidation)
	}
	if input.InitialStock < 0 {
		return uuid.Nil, fmt.Errorf("initial stock must not be negative: %w", common.ErrValidation)
	}

	productID := uuid.New()
	err := database.WithinTransaction(ctx, s.db, func(tx pgx.Tx) error {
		productRepo := repositories.NewProductRepo(tx)
		inventoryRepo := repositories.NewInventoryRepo(tx)

		product := &models.Product{
			ID:             productID,
			Name:           input.Name,
			Model:          input.Model,
			Material:       input.Material,
			Size:           input.Size,
			Color:          input.Color,
			Price:          input.Price,
			ManufacturerID: &manufacturerID,
		}
		if err := productRepo.Create(ctx, product); err != nil {
			return fmt.Errorf("persist product: %w", err)
		}

		seed := &models.Inventory{
			ID:        uuid.New(),
			ProductID: productID,
			OwnerID:   manufacturerID,
			OwnerRole: models.RoleManufacturer,
			Quantity:  input.InitialStock,
		}
		if err := inventoryRepo.Upsert(ctx, seed); err != nil {
			return fmt.Errorf("seed inventory: %w", err)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return productID, nil
}

func (s *productService) UpdateInventory(ctx context.Context, manufacturerID, productID uuid.UUID, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("quantity must not be negative: %w", common.ErrValidation)
	}

	inventoryRepo := repositories.NewInventoryRepo(s.db)
	rows, err := inventoryRepo.OverwriteQuantity(ctx, productID, manufacturerID, quantity)
	if err != nil {
		return fmt.Errorf("overwrite inventory: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("product not found or quantity is the same: %w", common.ErrNotFound)
	}
	return nil
}

func (s *productService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	return repositories.NewProductRepo(s.db).List(ctx)
}
