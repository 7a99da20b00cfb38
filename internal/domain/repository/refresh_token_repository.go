package repository

import (
	"context"
	"errors"

	"lunchorder/internal/domain/entity"

	"github.com/google/uuid"
)

// Refresh-token specific domain errors.
var (
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")
)

// RefreshTokenRepository defines operations for session records.
type RefreshTokenRepository interface {
	// Create persists a new refresh token, representing a user session.
	Create(ctx context.Context, token *entity.RefreshToken) error

	// FindByHash retrieves a token record by its stored hash. Expired
	// records yield ErrRefreshTokenExpired.
	FindByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// DeleteByHash removes a single session (logout).
	DeleteByHash(ctx context.Context, tokenHash string) error

	// DeleteByUserID removes every session of a user.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
