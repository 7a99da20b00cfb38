package postgres

import (
	"context"

	"lunchorder/internal/domain/entity"
	domainerrors "lunchorder/internal/domain/errors"
	"lunchorder/internal/domain/repository"
	"lunchorder/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// weekMenuRepository implements the domain.WeekMenuRepository interface.
type weekMenuRepository struct {
	db *gorm.DB
}

// NewWeekMenuRepository is the constructor for weekMenuRepository.
func NewWeekMenuRepository(db *gorm.DB) repository.WeekMenuRepository {
	return &weekMenuRepository{db: db}
}

// FindByWeek returns all menus of one ISO week joined with the caterer name,
// ordered by weekday then menu number.
func (repo *weekMenuRepository) FindByWeek(ctx context.Context, isoYear, isoWeek int) ([]*entity.WeekMenu, error) {
	var menuMs []model.WeekMenuModel
	err := repo.db.WithContext(ctx).
		Preload("Caterer").
		Where("iso_year = ? AND iso_week = ?", isoYear, isoWeek).
		Order("day_of_week, menu_number").
		Find(&menuMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find week menus")
	}

	menus := make([]*entity.WeekMenu, len(menuMs))
	for i := range menuMs {
		menus[i] = toWeekMenuDomain(&menuMs[i])
	}

	return menus, nil
}

// FindByID retrieves a single menu.
func (repo *weekMenuRepository) FindByID(ctx context.Context, id int64) (*entity.WeekMenu, error) {
	var menuM model.WeekMenuModel
	err := repo.db.WithContext(ctx).Preload("Caterer").First(&menuM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrWeekMenuNotFound
		}

		return nil, errors.Wrap(err, "failed to find week menu")
	}

	return toWeekMenuDomain(&menuM), nil
}

// Upsert inserts the menu or, when its ID is set, updates it.
func (repo *weekMenuRepository) Upsert(ctx context.Context, menu *entity.WeekMenu) error {
	menuM := fromWeekMenuDomain(menu)

	var err error
	if menuM.ID == 0 {
		err = repo.db.WithContext(ctx).Create(menuM).Error
	} else {
		err = repo.db.WithContext(ctx).Save(menuM).Error
	}
	if err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrMenuConflict.WrapMessage("duplicate day and menu number")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("unknown caterer")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to save week menu")
	}

	menu.ID = menuM.ID
	menu.CreatedAt = menuM.CreatedAt
	menu.UpdatedAt = menuM.UpdatedAt

	return nil
}

// DeleteByID removes a single menu row.
func (repo *weekMenuRepository) DeleteByID(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).Delete(&model.WeekMenuModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete week menu")
	}
	if result.RowsAffected == 0 {
		return repository.ErrWeekMenuNotFound
	}

	return nil
}

// DeleteByWeekExcept removes every menu of the week whose ID is not in keepIDs.
func (repo *weekMenuRepository) DeleteByWeekExcept(ctx context.Context, isoYear, isoWeek int, keepIDs []int64) error {
	query := repo.db.WithContext(ctx).
		Where("iso_year = ? AND iso_week = ?", isoYear, isoWeek)
	if len(keepIDs) > 0 {
		query = query.Where("id NOT IN ?", keepIDs)
	}

	if err := query.Delete(&model.WeekMenuModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete removed week menus")
	}

	return nil
}

func toWeekMenuDomain(m *model.WeekMenuModel) *entity.WeekMenu {
	menu := &entity.WeekMenu{
		ID:            m.ID,
		ISOYear:       m.ISOYear,
		ISOWeek:       m.ISOWeek,
		DayOfWeek:     m.DayOfWeek,
		MenuNumber:    m.MenuNumber,
		Description:   m.Description,
		CatererID:     m.CatererID,
		OrderDeadline: m.OrderDeadline,
		Veggie:        m.Veggie,
		Vegan:         m.Vegan,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.Caterer != nil {
		menu.CatererName = m.Caterer.Name
	}

	return menu
}

func fromWeekMenuDomain(menu *entity.WeekMenu) *model.WeekMenuModel {
	return &model.WeekMenuModel{
		ID:            menu.ID,
		ISOYear:       menu.ISOYear,
		ISOWeek:       menu.ISOWeek,
		DayOfWeek:     menu.DayOfWeek,
		MenuNumber:    menu.MenuNumber,
		Description:   menu.Description,
		CatererID:     menu.CatererID,
		OrderDeadline: menu.OrderDeadline,
		Veggie:        menu.Veggie,
		Vegan:         menu.Vegan,
		CreatedAt:     menu.CreatedAt,
		UpdatedAt:     menu.UpdatedAt,
	}
}
