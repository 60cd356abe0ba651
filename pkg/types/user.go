package types

import (
	"strings"
	"time"
)

// User roles.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// User is a login account. The password hash never leaves the storage layer.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the fields required on insert.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return ErrInvalidUsername
	}
	return nil
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
