package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/seamline/backoffice/internal/models"
	"github.com/seamline/backoffice/internal/server/storage"
)

// SaveToken stores the refresh token for a user. user_id is the
// primary key, so the replace happens in one atomic statement and the
// one-row-per-user invariant cannot be violated by concurrent logins.
func (s *Storage) SaveToken(ctx context.Context, token *models.Token) error {
	query := `
		INSERT OR REPLACE INTO tokens (user_id, refresh_token, expires_at, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		token.UserID,
		token.RefreshToken,
		token.ExpiresAt,
		token.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	return nil
}

// GetToken retrieves the token row for a user.
func (s *Storage) GetToken(ctx context.Context, userID string) (*models.Token, error) {
	query := `
		SELECT user_id, refresh_token, expires_at, created_at
		FROM tokens
		WHERE user_id = ?
	`

	token := &models.Token{}
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&token.UserID,
		&token.RefreshToken,
		&token.ExpiresAt,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	return token, nil
}

// DeleteToken removes the token row for a user.
func (s *Storage) DeleteToken(ctx context.Context, userID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tokens WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrTokenNotFound
	}

	return nil
}

// DeleteExpiredTokens removes rows past their expiry.
func (s *Storage) DeleteExpiredTokens(ctx context.Context) (int, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tokens WHERE expires_at < datetime('now')`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rows), nil
}

// CountUserTokens returns the number of token rows for a user.
func (s *Storage) CountUserTokens(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tokens WHERE user_id = ?`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count tokens: %w", err)
	}
	return count, nil
}
