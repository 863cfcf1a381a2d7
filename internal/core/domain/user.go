package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User models a registered account that can authenticate and receive tokens.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
