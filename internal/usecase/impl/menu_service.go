package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "lunchorder/internal/delivery/context"
	"lunchorder/internal/domain/entity"
	domainerrors "lunchorder/internal/domain/errors"
	"lunchorder/internal/domain/repository"
	"lunchorder/internal/isoweek"
	"lunchorder/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// menuService implements the MenuUsecase interface.
type menuService struct {
	txManager    repository.TransactionManager
	weekMenuRepo repository.WeekMenuRepository
	catererRepo  repository.CatererRepository
	now          func() time.Time
	logger       *slog.Logger
}

// MenuServiceParams holds dependencies for menuService, injected by Fx.
type MenuServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	WeekMenuRepo repository.WeekMenuRepository
	CatererRepo  repository.CatererRepository
	Logger       *slog.Logger
}

// NewMenuService is the constructor for menuService.
func NewMenuService(params MenuServiceParams) usecase.MenuUsecase {
	return &menuService{
		txManager:    params.TxManager,
		weekMenuRepo: params.WeekMenuRepo,
		catererRepo:  params.CatererRepo,
		now:          time.Now,
		logger:       params.Logger,
	}
}

func (srv *menuService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// resolveWeek fills in the current ISO week for zero-valued input.
func (srv *menuService) resolveWeek(isoYear, isoWeek int) (int, int) {
	if isoYear == 0 || isoWeek == 0 {
		return isoweek.Current(srv.now())
	}

	return isoYear, isoWeek
}

// WeekMenus returns the menu plan of one ISO week, defaulting to the
// current week.
func (srv *menuService) WeekMenus(ctx context.Context, input *usecase.WeekMenusInput) (*usecase.WeekMenusOutput, error) {
	isoYear, isoWeek := srv.resolveWeek(input.ISOYear, input.ISOWeek)
	if isoWeek < 1 || isoWeek > isoweek.Weeks(isoYear) {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("week out of range")
	}

	menus, err := srv.weekMenuRepo.FindByWeek(ctx, isoYear, isoWeek)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load week menus")
	}

	return &usecase.WeekMenusOutput{
		ISOYear: isoYear,
		ISOWeek: isoWeek,
		Monday:  isoweek.Monday(isoYear, isoWeek),
		Menus:   menus,
	}, nil
}

// Caterers returns all known caterers.
func (srv *menuService) Caterers(ctx context.Context) ([]*entity.Caterer, error) {
	caterers, err := srv.catererRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list caterers")
	}

	return caterers, nil
}

// SaveWeek replaces the plan of one ISO week in a single transaction:
// submitted rows are inserted or updated, rows missing from the
// submission are removed.
func (srv *menuService) SaveWeek(ctx context.Context, input *usecase.SaveWeekInput) (*usecase.WeekMenusOutput, error) {
	isoYear, isoWeek := srv.resolveWeek(input.ISOYear, input.ISOWeek)
	if isoWeek < 1 || isoWeek > isoweek.Weeks(isoYear) {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("week out of range")
	}

	for _, row := range input.Menus {
		if err := validateMenuRow(row); err != nil {
			return nil, err
		}
	}

	srv.log(ctx).Info("Saving week plan",
		slog.Int("isoYear", isoYear),
		slog.Int("isoWeek", isoWeek),
		slog.Int("menus", len(input.Menus)))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		menuRepo := repoFactory.WeekMenuRepo()

		keepIDs := make([]int64, 0, len(input.Menus))
		for _, row := range input.Menus {
			menu := &entity.WeekMenu{
				ID:            row.ID,
				ISOYear:       isoYear,
				ISOWeek:       isoWeek,
				DayOfWeek:     row.DayOfWeek,
				MenuNumber:    row.MenuNumber,
				Description:   row.Description,
				CatererID:     row.CatererID,
				OrderDeadline: row.OrderDeadline,
				Veggie:        row.Veggie,
				Vegan:         row.Vegan,
			}
			if upsertErr := menuRepo.Upsert(ctx, menu); upsertErr != nil {
				return errors.Wrap(upsertErr, "failed to save menu row")
			}
			keepIDs = append(keepIDs, menu.ID)
		}

		// Orders of removed menus go with them via the FK cascade.
		return errors.Wrap(
			menuRepo.DeleteByWeekExcept(ctx, isoYear, isoWeek, keepIDs),
			"failed to remove dropped menu rows",
		)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute week plan transaction",
			slog.Int("isoYear", isoYear),
			slog.Int("isoWeek", isoWeek),
			slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute week plan transaction")
	}

	return srv.WeekMenus(ctx, &usecase.WeekMenusInput{ISOYear: isoYear, ISOWeek: isoWeek})
}

// DeleteMenu removes a single menu row together with its orders.
func (srv *menuService) DeleteMenu(ctx context.Context, menuID int64) error {
	if err := srv.weekMenuRepo.DeleteByID(ctx, menuID); err != nil {
		if errors.Is(err, repository.ErrWeekMenuNotFound) {
			return errors.Wrap(domainerrors.ErrMenuNotFound, "menu not found")
		}

		return errors.Wrap(err, "failed to delete menu")
	}

	srv.log(ctx).Info("Menu deleted", slog.Int64("menuID", menuID))

	return nil
}

func validateMenuRow(row usecase.SaveMenuInput) error {
	if row.DayOfWeek < 1 || row.DayOfWeek > 5 {
		return domainerrors.ErrValidationFailed.WrapMessage("day of week must be between Monday and Friday")
	}
	if row.MenuNumber < 1 {
		return domainerrors.ErrValidationFailed.WrapMessage("menu number must be positive")
	}
	if row.Description == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("description must not be empty")
	}
	if row.CatererID <= 0 {
		return domainerrors.ErrValidationFailed.WrapMessage("caterer is required")
	}
	if row.OrderDeadline.IsZero() {
		return domainerrors.ErrValidationFailed.WrapMessage("order deadline is required")
	}

	return nil
}
