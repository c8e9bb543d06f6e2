package identity

import (
	"strings"
	"time"
)

// Role determines which operations an account may perform.
type Role string

// Status gates login and continued session use.
type Status string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"

	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// User is a registered account.
type User struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash []byte
	Role         Role
	Status       Status
	LastLoginAt  *time.Time
	CreatedAt    time.Time
}

// Profile is the outward representation of a User. It never carries the
// password hash.
type Profile struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"fullName"`
	Role        Role       `json:"role"`
	Status      Status     `json:"status"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Public strips the credential hash for responses.
func (u User) Public() Profile {
	return Profile{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		Role:        u.Role,
		Status:      u.Status,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// NormalizeEmail canonicalizes an email for lookup and uniqueness checks.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidStatus reports whether s is one of the known account statuses.
func ValidStatus(s Status) bool {
	return s == StatusActive || s == StatusInactive
}
