package auth

import "errors"

// Failure modes of the auth subsystem. Handlers map these to HTTP
// status codes; the messages are user-visible.
var (
	// ErrUserNotFound indicates no account exists for the email or id
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredential indicates a password mismatch
	ErrInvalidCredential = errors.New("invalid password")

	// ErrInvalidToken indicates a malformed or badly signed token
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired indicates a token past its expiry
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenNotFound indicates the refresh token has no live stored row
	ErrTokenNotFound = errors.New("refresh token not found or expired")

	// ErrUserPending indicates the account has not verified its email yet
	ErrUserPending = errors.New("please verify your account")

	// ErrUserDeleted indicates the account has been deleted
	ErrUserDeleted = errors.New("user has been deleted")

	// ErrUserActive indicates the account is already verified
	ErrUserActive = errors.New("the user has already been verified")

	// ErrNoPendingOTP indicates no verification code is awaiting a check
	ErrNoPendingOTP = errors.New("no verification code is pending, please request a new one")

	// ErrOTPMismatch indicates the submitted code is wrong
	ErrOTPMismatch = errors.New("the verification code is incorrect, please try again")
)
