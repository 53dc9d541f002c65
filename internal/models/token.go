package models

import "time"

// Token is the stored refresh-token row. At most one live row exists
// per user: a new login replaces any previous row.
type Token struct {
	UserID       string    `json:"userID"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	CreatedAt    time.Time `json:"createdAt"`
}
