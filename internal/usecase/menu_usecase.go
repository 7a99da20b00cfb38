package usecase

import (
	"context"
	"time"

	"lunchorder/internal/domain/entity"
)

// WeekMenusInput selects one ISO week. Zero values mean the current week.
type WeekMenusInput struct {
	ISOYear int
	ISOWeek int
}

// WeekMenusOutput is the full menu plan of one week.
type WeekMenusOutput struct {
	ISOYear int
	ISOWeek int
	Monday  time.Time
	Menus   []*entity.WeekMenu
}

// SaveMenuInput is one menu row of the weekly editor. ID is zero for new
// rows.
type SaveMenuInput struct {
	ID            int64
	DayOfWeek     int
	MenuNumber    int
	Description   string
	CatererID     int64
	OrderDeadline time.Time
	Veggie        bool
	Vegan         bool
}

// SaveWeekInput replaces the plan of one ISO week with the given rows.
// Menus existing in the database but absent from Menus are removed.
type SaveWeekInput struct {
	ISOYear int
	ISOWeek int
	Menus   []SaveMenuInput
}

// MenuUsecase defines the menu plan operations: the weekly view shared
// by users and admins, and the editor operations of the admin console.
type MenuUsecase interface {
	WeekMenus(ctx context.Context, input *WeekMenusInput) (*WeekMenusOutput, error)
	Caterers(ctx context.Context) ([]*entity.Caterer, error)
	SaveWeek(ctx context.Context, input *SaveWeekInput) (*WeekMenusOutput, error)
	DeleteMenu(ctx context.Context, menuID int64) error
}
