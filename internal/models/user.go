package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of supply-chain tiers. A user's role is fixed at
// creation; there is no role-change operation.
type Role string

const (
	RoleManufacturer Role = "manufacturer"
	RoleDistributor  Role = "distributor"
	RoleSeller       Role = "seller"
)

// ParseRole validates a role string against the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleManufacturer, RoleDistributor, RoleSeller:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r Role) String() string { return string(r) }

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize in JSON
	Role         Role      `json:"role" db:"role"`
	CompanyName  string    `json:"company_name" db:"company_name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
