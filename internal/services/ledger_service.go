package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"cozycomfort/internal/common"
	"cozycomfort/internal/models"
	"cozycomfort/internal/repositories"
	"cozycomfort/pkg/database"

	"github.com/google/uuid"
)

// LedgerService moves stock between tiers. Every transfer runs inside one
// transaction with the source row locked, so the sum of quantities for a
// product across all owners is invariant and no record goes negative.
type LedgerService interface {
	// OrderFromManufacturer transfers manufacturer stock to the calling
	// distributor.
	OrderFromManufacturer(ctx context.Context, distributorID, productID uuid.UUID, quantity int) error
	// OrderFromDistributor transfers the assigned distributor's stock to
	// the calling seller.
	OrderFromDistributor(ctx context.Context, sellerID, productID uuid.UUID, quantity int) error
	// AssignSeller links a seller to the calling distributor so later
	// transfers and customer orders can resolve the relationship.
	AssignSeller(ctx context.Context, distributorID, sellerID uuid.UUID) error
}

type ledgerService struct {
	db repositories.DB
}

func NewLedgerService(db repositories.DB) LedgerService {
	return &ledgerService{db: db}
}

func (s *ledgerService) OrderFromManufacturer(ctx context.Context, distributorID, productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive: %w", common.ErrValidation)
	}

	return database.WithinTransaction(ctx, s.db, func(tx pgx.Tx) error {
		inventoryRepo := repositories.NewInventoryRepo(tx)

		source, err := inventoryRepo.GetManufacturerForUpdate(ctx, productID)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("insufficient manufacturer stock: %w", common.ErrInsufficientStock)
		}
		if err != nil {
			return fmt.Errorf("lock manufacturer inventory: %w", err)
		}

		return s.transfer(ctx, inventoryRepo, source, distributorID, models.RoleDistributor, quantity)
	})
}

func (s *ledgerService) OrderFromDistributor(ctx context.Context, sellerID, productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive: %w", common.ErrValidation)
	}

	return database.WithinTransaction(ctx, s.db, func(tx pgx.Tx) error {
		assignmentRepo := repositories.NewAssignmentRepo(tx)
		inventoryRepo := repositories.NewInventoryRepo(tx)

		distributorID, err := assignmentRepo.DistributorFor(ctx, sellerID)
		if errors.Is(err, pgx.ErrNoRows) {
			return common.ErrNotAssigned
		}
		if err != nil {
			return fmt.Errorf("resolve distributor: %w", err)
		}

		source, err := inventoryRepo.GetForUpdate(ctx, productID, distributorID, models.RoleDistributor)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("insufficient distributor stock: %w", common.ErrInsufficientStock)
		}
		if err != nil {
			return fmt.Errorf("lock distributor inventory: %w", err)
		}

		return s.transfer(ctx, inventoryRepo, source, sellerID, models.RoleSeller, quantity)
	})
}

func (s *ledgerService) AssignSeller(ctx context.Context, distributorID, sellerID uuid.UUID) error {
	userRepo := repositories.NewUserRepo(s.db)

	user, err := userRepo.GetByID(ctx, sellerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("seller not found: %w", common.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("look up seller: %w", err)
	}
	if user.Role != models.RoleSeller {
		return fmt.Errorf("user %s is not a seller: %w", user.Username, common.ErrValidation)
	}

	assignmentRepo := repositories.NewAssignmentRepo(s.db)
	if err := assignmentRepo.Assign(ctx, distributorID, sellerID); err != nil {
		return fmt.Errorf("assign seller: %w", err)
	}
	return nil
}

// transfer decrements the locked source record and upserts the
// destination. The caller already holds the source row lock, so the
// availability check and the decrement see the same quantity.
func (s *ledgerService) transfer(ctx context.Context, inventoryRepo repositories.InventoryRepository, source *models.Inventory, toOwner uuid.UUID, toRole models.Role, quantity int) error {
	if source.Quantity < quantity {
		return fmt.Errorf("insufficient %s stock: %w", source.OwnerRole, common.ErrInsufficientStock)
	}

	if err := inventoryRepo.Decrement(ctx, source.ProductID, source.OwnerID, quantity); err != nil {
		return fmt.Errorf("decrement source inventory: %w", err)
	}

	destination := &models.Inventory{
		ID:        uuid.New(),
		ProductID: source.ProductID,
		OwnerID:   toOwner,
		OwnerRole: toRole,
		Quantity:  quantity,
	}
	if err := inventoryRepo.Upsert(ctx, destination); err != nil {
		return fmt.Errorf("credit destination inventory: %w", err)
	}
	return nil
}
