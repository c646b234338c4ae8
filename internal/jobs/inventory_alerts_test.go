package jobs

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"cozycomfort/internal/models"
)

type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) Upsert(ctx context.Context, inventory *models.Inventory) error {
	args := m.Called(ctx, inventory)
	return args.Error(0)
}

func (m *MockInventoryRepository) GetForUpdate(ctx context.Context, productID, ownerID uuid.UUID, ownerRole models.Role) (*models.Inventory, error) {
	args := m.Called(ctx, productID, ownerID, ownerRole)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Inventory), args.Error(1)
}

func (m *MockInventoryRepository) GetManufacturerForUpdate(ctx context.Context, productID uuid.UUID) (*models.Inventory, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Inventory), args.Error(1)
}

func (m *MockInventoryRepository) Decrement(ctx context.Context, productID, ownerID uuid.UUID, quantity int) error {
	args := m.Called(ctx, productID, ownerID, quantity)
	return args.Error(0)
}

func (m *MockInventoryRepository) OverwriteQuantity(ctx context.Context, productID, ownerID uuid.UUID, quantity int) (int64, error) {
	args := m.Called(ctx, productID, ownerID, quantity)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventoryRepository) CombinedStock(ctx context.Context, productID, sellerID, distributorID uuid.UUID) (int, error) {
	args := m.Called(ctx, productID, sellerID, distributorID)
	return args.Int(0), args.Error(1)
}

func (m *MockInventoryRepository) ListBelowThreshold(ctx context.Context, threshold int) ([]*models.Inventory, error) {
	args := m.Called(ctx, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Inventory), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context) ([]*models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Product), args.Error(1)
}

func TestLowStockCheck(t *testing.T) {
	ctx := context.Background()
	inventoryRepo := &MockInventoryRepository{}
	productRepo := &MockProductRepository{}
	checker := NewLowStockChecker(inventoryRepo, productRepo, zap.NewNop(), 10)

	productID := uuid.New()
	ownerID := uuid.New()

	inventoryRepo.On("ListBelowThreshold", ctx, 10).Return([]*models.Inventory{
		{ID: uuid.New(), ProductID: productID, OwnerID: ownerID, OwnerRole: models.RoleSeller, Quantity: 3},
	}, nil)
	productRepo.On("GetByID", ctx, productID).Return(&models.Product{ID: productID, Name: "Cloud Blanket"}, nil)

	alerts, err := checker.Check(ctx)
	assert.NoError(t, err)
	assert.Len(t, alerts, 1)
	assert.Equal(t, "Cloud Blanket", alerts[0].ProductName)
	assert.Equal(t, 3, alerts[0].Quantity)
	assert.Equal(t, 10, alerts[0].Threshold)

	inventoryRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
}

func TestLowStockCheck_SkipsUnresolvableProducts(t *testing.T) {
	ctx := context.Background()
	inventoryRepo := &MockInventoryRepository{}
	productRepo := &MockProductRepository{}
	checker := NewLowStockChecker(inventoryRepo, productRepo, zap.NewNop(), 10)

	knownID := uuid.New()
	orphanID := uuid.New()
	ownerID := uuid.New()

	inventoryRepo.On("ListBelowThreshold", ctx, 10).Return([]*models.Inventory{
		{ID: uuid.New(), ProductID: orphanID, OwnerID: ownerID, OwnerRole: models.RoleSeller, Quantity: 1},
		{ID: uuid.New(), ProductID: knownID, OwnerID: ownerID, OwnerRole: models.RoleDistributor, Quantity: 5},
	}, nil)
	productRepo.On("GetByID", ctx, orphanID).Return(nil, assert.AnError)
	productRepo.On("GetByID", ctx, knownID).Return(&models.Product{ID: knownID, Name: "Hearth Throw"}, nil)

	alerts, err := checker.Check(ctx)
	assert.NoError(t, err)
	assert.Len(t, alerts, 1)
	assert.Equal(t, "Hearth Throw", alerts[0].ProductName)
}

func TestLowStockCheck_DefaultThreshold(t *testing.T) {
	inventoryRepo := &MockInventoryRepository{}
	productRepo := &MockProductRepository{}
	checker := NewLowStockChecker(inventoryRepo, productRepo, zap.NewNop(), 0)

	inventoryRepo.On("ListBelowThreshold", mock.Anything, 10).Return([]*models.Inventory{}, nil)

	alerts, err := checker.Check(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, alerts)
}
