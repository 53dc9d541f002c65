package storage

import (
	"context"

	"github.com/seamline/backoffice/internal/models"
)

// RoleStorage defines the interface for the role catalog.
type RoleStorage interface {
	CreateRole(ctx context.Context, role *models.Role) error
	// GetRoleByID returns ErrNotFound if absent.
	GetRoleByID(ctx context.Context, id int64) (*models.Role, error)
	// GetRoleByName returns ErrNotFound if absent.
	GetRoleByName(ctx context.Context, name string) (*models.Role, error)
	ListRoles(ctx context.Context, q ListQuery) ([]*models.Role, int, error)
	UpdateRole(ctx context.Context, role *models.Role) error
	DeleteRole(ctx context.Context, id int64) error
}

// UserRoleStorage manages the role set assigned to a user.
type UserRoleStorage interface {
	// GetRolesByUserID returns the user's role links, oldest first.
	// Empty slice when none.
	GetRolesByUserID(ctx context.Context, userID string) ([]*models.UserRole, error)

	// ReplaceRolesForUser reconciles the stored role set with the
	// incoming one by role_id: links absent from items are deleted,
	// new ones inserted, matching rows left untouched. The resulting
	// set is returned.
	ReplaceRolesForUser(ctx context.Context, userID string, items []*models.UserRole) ([]*models.UserRole, error)

	// DeleteRolesByUserID removes all role links of a user.
	// Returns the number of deleted rows.
	DeleteRolesByUserID(ctx context.Context, userID string) (int, error)
}
