package repository

import (
	"context"
	"errors"

	"lunchorder/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAuthNotFound is returned when no authentication record matches.
var ErrAuthNotFound = errors.New("authentication not found")

// AuthRepository defines operations for login credentials.
type AuthRepository interface {
	// FindAuthentication looks up a credential by provider and provider-side user ID
	// (the email address for the "email" provider).
	FindAuthentication(ctx context.Context, provider, providerUserID string) (*entity.Authentication, error)

	// CreateAuthentication persists a new credential.
	CreateAuthentication(ctx context.Context, auth *entity.Authentication) error

	// UpdatePasswordHash replaces the stored hash for a user's email credential.
	UpdatePasswordHash(ctx context.Context, userID uuid.UUID, passwordHash string) error

	// UpdateProviderUserID moves a user's email credential to a new address.
	UpdateProviderUserID(ctx context.Context, userID uuid.UUID, providerUserID string) error

	// DeleteByUserID removes all credentials of a user.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
