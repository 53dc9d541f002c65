package api

import "time"

// LoginRequest is the body of POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginData is returned on successful login: the sanitized user
// plus a fresh access/refresh token pair.
type LoginData struct {
	User         UserData `json:"user"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
}

// UserData is the wire form of a user. The password never appears here.
type UserData struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	Status    string    `json:"status"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RefreshRequest is the body of POST /api/v1/auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshData carries the newly minted access token.
// The refresh token itself is not rotated on refresh.
type RefreshData struct {
	AccessToken string `json:"accessToken"`
}

// LogoutRequest is the body of POST /api/v1/auth/logout.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// VerifyOTPRequest is the body of POST /api/v1/auth/verify-otp/{email}.
type VerifyOTPRequest struct {
	OTP string `json:"otp"`
}
