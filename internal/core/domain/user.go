package domain

import "time"

// =============================================================================
// User
// =============================================================================

// User represents a registered author.
//
// PasswordHash is opaque (bcrypt) and must never appear in any API
// response, including the creation response.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Bio          *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
