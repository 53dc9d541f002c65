package models

import "time"

// Status is the lifecycle state shared by all entities. For accounts,
// pending -> active on OTP verification; deleted is terminal for login
// and OTP flows. Manufacturing entities only use active and deleted.
type Status string

// UserStatus names the account-side use of Status.
type UserStatus = Status

const (
	StatusPending Status = "pending"
	StatusActive  Status = "active"
	StatusDeleted Status = "deleted"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusDeleted:
		return true
	}
	return false
}

// User represents an account in the system.
type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Password  string     `json:"-"` // bcrypt hash; legacy rows may hold plaintext
	FullName  string     `json:"fullName"`
	Avatar    string     `json:"avatar"`
	AccessKey string     `json:"-"`
	Status    UserStatus `json:"status"`
	OTP       string     `json:"-"` // pending one-time code, empty when none
	IsAdmin   bool       `json:"isAdmin"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
