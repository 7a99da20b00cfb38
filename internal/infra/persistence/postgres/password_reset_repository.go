package postgres

import (
	"context"
	"time"

	"lunchorder/internal/domain/entity"
	domainerrors "lunchorder/internal/domain/errors"
	"lunchorder/internal/domain/repository"
	"lunchorder/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// passwordResetRepository implements the domain.PasswordResetRepository interface.
type passwordResetRepository struct {
	db *gorm.DB
}

// NewPasswordResetRepository is the constructor for passwordResetRepository.
func NewPasswordResetRepository(db *gorm.DB) repository.PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

// Create persists a new reset token.
func (repo *passwordResetRepository) Create(ctx context.Context, token *entity.PasswordResetToken) error {
	tokenM := fromResetTokenDomain(token)

	if err := repo.db.WithContext(ctx).Create(tokenM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrResetTokenInvalid.WrapMessage("invalid user reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create password reset token")
	}

	token.ID = tokenM.ID
	token.CreatedAt = tokenM.CreatedAt

	return nil
}

// FindByHash retrieves a reset token record by its stored hash.
func (repo *passwordResetRepository) FindByHash(ctx context.Context, tokenHash string) (*entity.PasswordResetToken, error) {
	var tokenM model.PasswordResetTokenModel
	err := repo.db.WithContext(ctx).First(&tokenM, "token_hash = ?", tokenHash).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrResetTokenNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toResetTokenDomain(&tokenM), nil
}

// Consume marks a token as used at the given time.
func (repo *passwordResetRepository) Consume(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PasswordResetTokenModel{}).
		Where("id = ? AND consumed_at IS NULL", id).
		Update("consumed_at", at)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to consume reset token")
	}
	if result.RowsAffected == 0 {
		return repository.ErrResetTokenNotFound
	}

	return nil
}

// DeleteByUserID removes all reset tokens of a user.
func (repo *passwordResetRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Delete(&model.PasswordResetTokenModel{}, "user_id = ?", userID).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete reset tokens")
	}

	return nil
}

func toResetTokenDomain(m *model.PasswordResetTokenModel) *entity.PasswordResetToken {
	return &entity.PasswordResetToken{
		ID:         m.ID,
		UserID:     m.UserID,
		TokenHash:  m.TokenHash,
		ExpiresAt:  m.ExpiresAt,
		ConsumedAt: m.ConsumedAt,
		CreatedAt:  m.CreatedAt,
	}
}

func fromResetTokenDomain(t *entity.PasswordResetToken) *model.PasswordResetTokenModel {
	return &model.PasswordResetTokenModel{
		ID:         t.ID,
		UserID:     t.UserID,
		TokenHash:  t.TokenHash,
		ExpiresAt:  t.ExpiresAt,
		ConsumedAt: t.ConsumedAt,
		CreatedAt:  t.CreatedAt,
	}
}
