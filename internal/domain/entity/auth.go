package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProviderTypeEmail is the only authentication provider: email + password.
const ProviderTypeEmail = "email"

// Authentication represents a single login credential for a user.
type Authentication struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Provider       string // e.g. "email"
	ProviderUserID string // the email address for the "email" provider
	PasswordHash   string // bcrypt hash, only set for the "email" provider
	CreatedAt      time.Time
}

// RefreshToken represents a long-lived, authorized user session.
// Only a SHA-256 hash of the raw token is stored.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// PasswordResetToken is a single-use token mailed to a user who forgot
// their password. Stored hashed, consumed exactly once.
type PasswordResetToken struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	TokenHash  string
	ExpiresAt  time.Time
	ConsumedAt *time.Time
	CreatedAt  time.Time
}

// Consumed reports whether the token has already been used.
func (t *PasswordResetToken) Consumed() bool {
	return t.ConsumedAt != nil
}

// Usable reports whether the token can still reset a password at the given time.
func (t *PasswordResetToken) Usable(now time.Time) bool {
	return !t.Consumed() && now.Before(t.ExpiresAt)
}
