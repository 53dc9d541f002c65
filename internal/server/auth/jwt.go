package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the token subject. Only the user id is embedded;
// everything else is loaded from storage on each request.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenConfig holds the signing material and lifetimes for both token
// kinds. Access and refresh tokens are signed with separate secrets so
// one can never be presented as the other.
type TokenConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

const tokenIssuer = "seamline-backoffice"

// generateToken signs an HS256 token for userID valid from now for ttl.
func generateToken(secret []byte, userID string, now time.Time, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// verifyToken parses and validates a token against secret, evaluating
// expiry at the provided time. It returns ErrTokenExpired for a good
// signature past its expiry and ErrInvalidToken for anything else.
func verifyToken(secret []byte, tokenString string, now func() time.Time) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithTimeFunc(now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// VerifyAccessToken validates an access token and returns its claims.
func VerifyAccessToken(cfg TokenConfig, tokenString string, now func() time.Time) (*Claims, error) {
	return verifyToken(cfg.AccessSecret, tokenString, now)
}

// VerifyRefreshToken validates a refresh token and returns its claims.
func VerifyRefreshToken(cfg TokenConfig, tokenString string, now func() time.Time) (*Claims, error) {
	return verifyToken(cfg.RefreshSecret, tokenString, now)
}
