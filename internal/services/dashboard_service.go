package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"cozycomfort/internal/common"
	"cozycomfort/internal/models"
	"cozycomfort/internal/repositories"
)

// DashboardService produces the role-scoped read aggregation. Each call
// reflects store state at the time of the query; nothing is cached
// between requests.
type DashboardService interface {
	Dashboard(ctx context.Context, userID uuid.UUID, role models.Role) (interface{}, error)
}

type dashboardService struct {
	dashboardRepo repositories.DashboardRepository
}

func NewDashboardService(dashboardRepo repositories.DashboardRepository) DashboardService {
	return &dashboardService{dashboardRepo: dashboardRepo}
}

func (s *dashboardService) Dashboard(ctx context.Context, userID uuid.UUID, role models.Role) (interface{}, error) {
	switch role {
	case models.RoleManufacturer:
		inventory, err := s.dashboardRepo.ManufacturerInventory(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("manufacturer inventory: %w", err)
		}
		orders, err := s.dashboardRepo.AllOrders(ctx)
		if err != nil {
			return nil, fmt.Errorf("order overview: %w", err)
		}
		return &models.ManufacturerDashboard{Inventory: inventory, Orders: orders}, nil

	case models.RoleDistributor:
		inventory, err := s.dashboardRepo.DistributorInventory(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("distributor inventory: %w", err)
		}
		orders, err := s.dashboardRepo.DistributorOrders(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("distributor orders: %w", err)
		}
		return &models.DistributorDashboard{Inventory: inventory, Orders: orders}, nil

	case models.RoleSeller:
		catalog, err := s.dashboardRepo.SellerCatalog(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("seller catalog: %w", err)
		}
		orders, err := s.dashboardRepo.SellerOrders(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("seller orders: %w", err)
		}
		return &models.SellerDashboard{Products: catalog, Orders: orders}, nil
	}
	return nil, fmt.Errorf("unknown role %q: %w", role, common.ErrUnauthorized)
}
