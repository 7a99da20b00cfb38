package repository

import (
	"context"
	"errors"
	"time"

	"lunchorder/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrResetTokenNotFound is returned when no reset token matches the hash.
var ErrResetTokenNotFound = errors.New("password reset token not found")

// PasswordResetRepository defines operations for single-use reset tokens.
type PasswordResetRepository interface {
	// Create persists a new reset token.
	Create(ctx context.Context, token *entity.PasswordResetToken) error

	// FindByHash retrieves a reset token record by its stored hash,
	// consumed or not.
	FindByHash(ctx context.Context, tokenHash string) (*entity.PasswordResetToken, error)

	// Consume marks a token as used at the given time.
	Consume(ctx context.Context, id uuid.UUID, at time.Time) error

	// DeleteByUserID removes all reset tokens of a user.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
