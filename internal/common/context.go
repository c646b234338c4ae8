package common

import (
	"context"

	"github.com/google/uuid"

	"cozycomfort/internal/models"
)

type contextKey string

const (
	UserIDKey      contextKey = "user_id"
	RoleKey        contextKey = "role"
	CompanyNameKey contextKey = "company_name"
)

// GetUserIDFromContext extracts the authenticated user ID from the
// request context.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetRoleFromContext extracts the authenticated role from the request
// context.
func GetRoleFromContext(ctx context.Context) (models.Role, bool) {
	role, ok := ctx.Value(RoleKey).(models.Role)
	return role, ok
}

// GetCompanyNameFromContext extracts the caller's company name.
func GetCompanyNameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(CompanyNameKey).(string)
	return name, ok
}
