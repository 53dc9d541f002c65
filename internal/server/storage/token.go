package storage

import (
	"context"

	"github.com/seamline/backoffice/internal/models"
)

// TokenStorage defines the interface for refresh-token persistence.
// The table holds at most one row per user.
type TokenStorage interface {
	// SaveToken stores the refresh token for a user, replacing any
	// existing row for that user in one statement.
	SaveToken(ctx context.Context, token *models.Token) error

	// GetToken retrieves the token row for a user.
	// Returns ErrTokenNotFound if absent.
	GetToken(ctx context.Context, userID string) (*models.Token, error)

	// DeleteToken removes the token row for a user.
	// Returns ErrTokenNotFound if there was no row.
	DeleteToken(ctx context.Context, userID string) error

	// DeleteExpiredTokens removes rows past their expiry.
	// Returns the number of deleted rows.
	DeleteExpiredTokens(ctx context.Context) (int, error)

	// CountUserTokens returns the number of token rows for a user.
	CountUserTokens(ctx context.Context, userID string) (int, error)
}
