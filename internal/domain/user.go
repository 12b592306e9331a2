package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is the access level assigned to a platform user
type Role string

const (
	RoleEmployee   Role = "employee"
	RoleSupervisor Role = "supervisor"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// CanReview reports whether the role may apply a human review decision
// over a check-in photo
func (r Role) CanReview() bool {
	switch r {
	case RoleSupervisor, RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
