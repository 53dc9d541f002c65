package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// EmailPattern is a pragmatic email shape check: local part, one @,
// dotted domain. Full RFC 5322 validation is not attempted.
var EmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// MaxEmailLen is the longest accepted email address.
const MaxEmailLen = 254

// NormalizeEmail lowercases and trims an email address. Lookups are
// always performed on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks that email is a plausible address.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if len(email) > MaxEmailLen {
		return fmt.Errorf("email must not exceed %d characters", MaxEmailLen)
	}
	if !EmailPattern.MatchString(email) {
		return fmt.Errorf("email is not a valid address")
	}
	return nil
}

// OTPLength is the number of digits in a one-time code.
const OTPLength = 6

// OTPPattern matches a numeric one-time code of OTPLength digits.
var OTPPattern = regexp.MustCompile(`^[0-9]{6}$`)

// ValidateOTP checks that code looks like an emailed one-time code.
func ValidateOTP(code string) error {
	if code == "" {
		return fmt.Errorf("otp cannot be empty")
	}
	if !OTPPattern.MatchString(code) {
		return fmt.Errorf("otp must be exactly %d digits", OTPLength)
	}
	return nil
}

// ValidatePassword enforces the minimal password policy for newly
// created accounts.
func ValidatePassword(password string) error {
	const minPasswordLen = 8

	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLen)
	}
	return nil
}
