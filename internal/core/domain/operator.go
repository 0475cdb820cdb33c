package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

var ErrOperatorNotFound = errors.New("operator not found")
var ErrOperatorExists = errors.New("operator already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// Operator is an authenticated API account. Operators are a separate
// identity space from DirectoryUser: a directory record existing for a
// person does not grant that person API access, and vice versa.
type Operator struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
