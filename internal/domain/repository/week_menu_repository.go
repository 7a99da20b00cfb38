package repository

import (
	"context"
	"errors"

	"lunchorder/internal/domain/entity"
)

// ErrWeekMenuNotFound is returned when a week menu id does not exist.
var ErrWeekMenuNotFound = errors.New("week menu not found")

// WeekMenuRepository defines operations for weekly menu rows.
type WeekMenuRepository interface {
	// FindByWeek returns all menus of one ISO week joined with the caterer
	// name, ordered by weekday then menu number.
	FindByWeek(ctx context.Context, isoYear, isoWeek int) ([]*entity.WeekMenu, error)

	// FindByID retrieves a single menu.
	FindByID(ctx context.Context, id int64) (*entity.WeekMenu, error)

	// Upsert inserts the menu or, when its ID is set, updates it.
	Upsert(ctx context.Context, menu *entity.WeekMenu) error

	// DeleteByID removes a single menu row.
	DeleteByID(ctx context.Context, id int64) error

	// DeleteByWeekExcept removes every menu of the week whose ID is not in
	// keepIDs. Used by the editor's bulk save to drop removed rows.
	DeleteByWeekExcept(ctx context.Context, isoYear, isoWeek int, keepIDs []int64) error
}
