// internal/models/admin.go
package models

import "github.com/google/uuid"

// Admin is a back-office account. Passwords are argon2id hashes, never
// serialized out.
type Admin struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Password string    `json:"-"`
}
