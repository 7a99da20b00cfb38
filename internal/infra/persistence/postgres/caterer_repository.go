package postgres

import (
	"context"

	"lunchorder/internal/domain/entity"
	"lunchorder/internal/domain/repository"
	"lunchorder/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// catererRepository implements the domain.CatererRepository interface.
type catererRepository struct {
	db *gorm.DB
}

// NewCatererRepository is the constructor for catererRepository.
func NewCatererRepository(db *gorm.DB) repository.CatererRepository {
	return &catererRepository{db: db}
}

// List returns all caterers ordered by name.
func (repo *catererRepository) List(ctx context.Context) ([]*entity.Caterer, error) {
	var catererMs []model.CatererModel
	if err := repo.db.WithContext(ctx).Order("name").Find(&catererMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list caterers")
	}

	caterers := make([]*entity.Caterer, len(catererMs))
	for i := range catererMs {
		caterers[i] = toCatererDomain(&catererMs[i])
	}

	return caterers, nil
}

// FindByID retrieves a single caterer.
func (repo *catererRepository) FindByID(ctx context.Context, id int64) (*entity.Caterer, error) {
	var catererM model.CatererModel
	if err := repo.db.WithContext(ctx).First(&catererM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCatererNotFound
		}

		return nil, errors.Wrap(err, "failed to find caterer")
	}

	return toCatererDomain(&catererM), nil
}

func toCatererDomain(m *model.CatererModel) *entity.Caterer {
	return &entity.Caterer{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
