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

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	orderRepo repository.OrderRepository
	now       func() time.Time
	logger    *slog.Logger
}

// OrderServiceParams holds dependencies for orderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	OrderRepo repository.OrderRepository
	Logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		orderRepo: params.OrderRepo,
		now:       time.Now,
		logger:    params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *orderService) resolveWeek(isoYear, isoWeek int) (int, int, error) {
	if isoYear == 0 || isoWeek == 0 {
		year, week := isoweek.Current(srv.now())

		return year, week, nil
	}
	if isoWeek < 1 || isoWeek > isoweek.Weeks(isoYear) {
		return 0, 0, domainerrors.ErrValidationFailed.WrapMessage("week out of range")
	}

	return isoYear, isoWeek, nil
}

// UserOrders returns the requesting user's orders of one ISO week.
func (srv *orderService) UserOrders(ctx context.Context, input *usecase.UserOrdersInput) ([]*entity.Order, error) {
	isoYear, isoWeek, err := srv.resolveWeek(input.ISOYear, input.ISOWeek)
	if err != nil {
		return nil, err
	}

	orders, err := srv.orderRepo.FindByUserAndWeek(ctx, input.UserID, isoYear, isoWeek)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user orders")
	}

	return orders, nil
}

// ToggleOrder places an order for the given menu, or cancels the
// existing one. Both directions are blocked once the menu's deadline has
// passed. Ordering requires a complete profile because name and location
// are snapshotted onto the order.
func (srv *orderService) ToggleOrder(ctx context.Context, input *usecase.ToggleOrderInput) (*usecase.ToggleOrderOutput, error) {
	user, err := srv.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
		}

		return nil, errors.Wrap(err, "failed to find user")
	}
	if !user.ProfileComplete() {
		return nil, domainerrors.ErrProfileIncomplete.WrapMessage("profile incomplete")
	}

	now := srv.now()
	var output *usecase.ToggleOrderOutput

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		menuRepo := repoFactory.WeekMenuRepo()
		orderRepo := repoFactory.OrderRepo()

		menu, findErr := menuRepo.FindByID(ctx, input.WeekMenuID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrWeekMenuNotFound) {
				return domainerrors.ErrMenuNotFound.WrapMessage("menu not found")
			}

			return errors.Wrap(findErr, "failed to find menu")
		}
		if !menu.OrderableAt(now) {
			return domainerrors.ErrOrderDeadlinePassed.WrapMessage("deadline passed")
		}

		existing, findErr := orderRepo.FindByUserAndMenu(ctx, input.UserID, input.WeekMenuID)
		if findErr != nil && !errors.Is(findErr, repository.ErrOrderNotFound) {
			return errors.Wrap(findErr, "failed to find existing order")
		}

		if existing != nil {
			if deleteErr := orderRepo.DeleteByID(ctx, existing.ID); deleteErr != nil {
				return errors.Wrap(deleteErr, "failed to cancel order")
			}
			output = &usecase.ToggleOrderOutput{Ordered: false}

			return nil
		}

		newOrder := &entity.Order{
			WeekMenuID: menu.ID,
			UserID:     &user.ID,
			FirstName:  user.FirstName,
			LastName:   user.LastName,
			Location:   user.Location,
			Status:     entity.OrderStatusPending,
		}
		if createErr := orderRepo.Create(ctx, newOrder); createErr != nil {
			return errors.Wrap(createErr, "failed to create order")
		}
		newOrder.WeekMenu = menu
		output = &usecase.ToggleOrderOutput{Ordered: true, Order: newOrder}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to execute order toggle transaction",
			slog.Any("userID", input.UserID),
			slog.Int64("weekMenuID", input.WeekMenuID),
			slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute order toggle transaction")
	}

	srv.log(ctx).Debug("Order toggled",
		slog.Any("userID", input.UserID),
		slog.Int64("weekMenuID", input.WeekMenuID),
		slog.Bool("ordered", output.Ordered))

	return output, nil
}

// AdminOrders returns the filtered order list of one ISO week.
func (srv *orderService) AdminOrders(ctx context.Context, input *usecase.AdminOrdersInput) ([]*entity.Order, error) {
	isoYear, isoWeek, err := srv.resolveWeek(input.ISOYear, input.ISOWeek)
	if err != nil {
		return nil, err
	}
	if input.DayOfWeek != 0 && (input.DayOfWeek < 1 || input.DayOfWeek > 5) {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("day of week must be between Monday and Friday")
	}
	if input.Location != "" && !input.Location.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown location")
	}

	orders, err := srv.orderRepo.FindByFilter(ctx, repository.OrderFilter{
		ISOYear:   isoYear,
		ISOWeek:   isoWeek,
		DayOfWeek: input.DayOfWeek,
		Search:    input.Search,
		Location:  input.Location,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load orders")
	}

	return orders, nil
}

// DaySummary aggregates the order counts of one weekday per menu number.
func (srv *orderService) DaySummary(ctx context.Context, input *usecase.DaySummaryInput) ([]usecase.DaySummaryRow, error) {
	isoYear, isoWeek, err := srv.resolveWeek(input.ISOYear, input.ISOWeek)
	if err != nil {
		return nil, err
	}
	if input.DayOfWeek < 1 || input.DayOfWeek > 5 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("day of week must be between Monday and Friday")
	}

	counts, err := srv.orderRepo.CountByMenuNumber(ctx, isoYear, isoWeek, input.DayOfWeek)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count orders")
	}

	rows := make([]usecase.DaySummaryRow, len(counts))
	for i, c := range counts {
		rows[i] = usecase.DaySummaryRow{MenuNumber: c.MenuNumber, Count: c.Count}
	}

	return rows, nil
}

// CreateManualOrder records an order on behalf of someone without using
// their account, e.g. phoned-in additions after the deadline. The order
// carries no account link and no deadline check applies.
func (srv *orderService) CreateManualOrder(ctx context.Context, input *usecase.ManualOrderInput) (*entity.Order, error) {
	if input.FirstName == "" && input.LastName == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("name is required")
	}
	if !input.Location.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown location")
	}

	var created *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		menuRepo := repoFactory.WeekMenuRepo()
		orderRepo := repoFactory.OrderRepo()

		menu, findErr := menuRepo.FindByID(ctx, input.WeekMenuID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrWeekMenuNotFound) {
				return domainerrors.ErrMenuNotFound.WrapMessage("menu not found")
			}

			return errors.Wrap(findErr, "failed to find menu")
		}

		newOrder := &entity.Order{
			WeekMenuID: menu.ID,
			FirstName:  input.FirstName,
			LastName:   input.LastName,
			Location:   input.Location,
			Status:     entity.OrderStatusPending,
		}
		if createErr := orderRepo.Create(ctx, newOrder); createErr != nil {
			return errors.Wrap(createErr, "failed to create manual order")
		}
		newOrder.WeekMenu = menu
		created = newOrder

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute manual order transaction")
	}

	srv.log(ctx).Info("Manual order created",
		slog.Int64("orderID", created.ID),
		slog.Int64("weekMenuID", created.WeekMenuID))

	return created, nil
}

// ReleaseOrder marks an order as handed off to the caterer.
func (srv *orderService) ReleaseOrder(ctx context.Context, orderID int64) (*entity.Order, error) {
	return srv.setOrderStatus(ctx, orderID, true)
}

// UnreleaseOrder reverts a release, e.g. after a mistaken click.
func (srv *orderService) UnreleaseOrder(ctx context.Context, orderID int64) (*entity.Order, error) {
	return srv.setOrderStatus(ctx, orderID, false)
}

func (srv *orderService) setOrderStatus(ctx context.Context, orderID int64, release bool) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "order not found")
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	if release {
		order.Release(srv.now())
	} else {
		order.Unrelease()
	}

	if err := srv.orderRepo.UpdateStatus(ctx, order.ID, order.Status, order.ReleasedAt); err != nil {
		return nil, errors.Wrap(err, "failed to update order status")
	}

	srv.log(ctx).Info("Order status changed",
		slog.Int64("orderID", order.ID),
		slog.String("status", string(order.Status)))

	return order, nil
}

// DeleteOrder removes a single order regardless of its state.
func (srv *orderService) DeleteOrder(ctx context.Context, orderID int64) error {
	if err := srv.orderRepo.DeleteByID(ctx, orderID); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return errors.Wrap(domainerrors.ErrOrderNotFound, "order not found")
		}

		return errors.Wrap(err, "failed to delete order")
	}

	srv.log(ctx).Info("Order deleted", slog.Int64("orderID", orderID))

	return nil
}

// DeleteDayOrders removes all orders of one weekday and returns how many
// were affected.
func (srv *orderService) DeleteDayOrders(ctx context.Context, input *usecase.DeleteDayOrdersInput) (int64, error) {
	isoYear, isoWeek, err := srv.resolveWeek(input.ISOYear, input.ISOWeek)
	if err != nil {
		return 0, err
	}
	if input.DayOfWeek < 1 || input.DayOfWeek > 5 {
		return 0, domainerrors.ErrValidationFailed.WrapMessage("day of week must be between Monday and Friday")
	}

	deleted, err := srv.orderRepo.DeleteByWeekday(ctx, isoYear, isoWeek, input.DayOfWeek)
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete day orders")
	}

	srv.log(ctx).Info("Day orders deleted",
		slog.Int("isoYear", isoYear),
		slog.Int("isoWeek", isoWeek),
		slog.Int("dayOfWeek", input.DayOfWeek),
		slog.Int64("deleted", deleted))

	return deleted, nil
}
