package handlers

import (
	"github.com/labstack/echo/v4"

	"cozycomfort/internal/common"
	"cozycomfort/internal/services"
)

type DashboardHandlers struct {
	dashboardSvc services.DashboardService
}

func NewDashboardHandlers(dashboardSvc services.DashboardService) *DashboardHandlers {
	return &DashboardHandlers{dashboardSvc: dashboardSvc}
}

// GetDashboard returns the role-scoped dashboard for the authenticated
// user: manufacturers see their inventory and all orders, distributors
// their stock position, sellers their catalog and order history.
func (h *DashboardHandlers) GetDashboard(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.RespondError(c, common.ErrUnauthenticated)
	}
	role, ok := common.GetRoleFromContext(ctx)
	if !ok {
		return common.RespondError(c, common.ErrUnauthenticated)
	}

	data, err := h.dashboardSvc.Dashboard(ctx, userID, role)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondOK(c, "", data)
}
