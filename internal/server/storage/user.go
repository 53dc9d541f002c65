package storage

import (
	"context"

	"github.com/seamline/backoffice/internal/models"
)

// UserStorage defines the interface for user persistence.
type UserStorage interface {
	// CreateUser creates a new user.
	// Returns ErrUserAlreadyExists if the email is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by normalized email.
	// Returns ErrUserNotFound if absent.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns ErrUserNotFound if absent.
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// ListUsers returns users matching the query plus the unpaged total.
	ListUsers(ctx context.Context, q ListQuery) ([]*models.User, int, error)

	// UpdateUser updates the mutable user fields.
	// Returns ErrUserNotFound if absent.
	UpdateUser(ctx context.Context, user *models.User) error

	// SetOTP stores (or clears, with "") the pending one-time code.
	SetOTP(ctx context.Context, userID, otp string) error

	// SetStatus moves the account to the given status.
	SetStatus(ctx context.Context, userID string, status models.UserStatus) error

	// SetPassword replaces the stored password hash.
	SetPassword(ctx context.Context, userID, passwordHash string) error

	// DeleteUser removes the user and any token row it owns.
	// Returns ErrUserNotFound if absent.
	DeleteUser(ctx context.Context, userID string) error
}
