package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"lunchorder/internal/domain/entity"
	domainerrors "lunchorder/internal/domain/errors"
	"lunchorder/internal/domain/repository"
	mockRepo "lunchorder/internal/mocks/repository"
	"lunchorder/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type orderServiceMocks struct {
	userRepo  *mockRepo.MockUserRepository
	orderRepo *mockRepo.MockOrderRepository
	menuRepo  *mockRepo.MockWeekMenuRepository
	txOrders  *mockRepo.MockOrderRepository
}

func newOrderService(t *testing.T, now time.Time) (*orderService, *orderServiceMocks) {
	t.Helper()

	mocks := &orderServiceMocks{
		userRepo:  mockRepo.NewMockUserRepository(t),
		orderRepo: mockRepo.NewMockOrderRepository(t),
		menuRepo:  mockRepo.NewMockWeekMenuRepository(t),
	}
	mocks.txOrders = mocks.orderRepo

	txManager := &mockRepo.FakeTransactionManager{
		Factory: &mockRepo.FakeRepositoryFactory{
			WeekMenus: mocks.menuRepo,
			Orders:    mocks.orderRepo,
		},
	}

	service := NewOrderService(OrderServiceParams{
		TxManager: txManager,
		UserRepo:  mocks.userRepo,
		OrderRepo: mocks.orderRepo,
		Logger:    discardLogger(),
	}).(*orderService)
	service.now = func() time.Time { return now }

	return service, mocks
}

func completeUser() *entity.User {
	return &entity.User{
		ID:        uuid.New(),
		Email:     "anna@example.org",
		FirstName: "Anna",
		LastName:  "Ampel",
		Location:  entity.LocationNorth,
		Role:      entity.RoleUser,
	}
}

func TestOrderService_ToggleOrder_CreatesOrder(t *testing.T) {
	now := time.Date(2024, 5, 27, 9, 0, 0, 0, time.UTC)
	service, mocks := newOrderService(t, now)

	ctx := context.Background()
	user := completeUser()
	menu := &entity.WeekMenu{
		ID:            42,
		ISOYear:       2024,
		ISOWeek:       22,
		DayOfWeek:     1,
		MenuNumber:    1,
		Description:   "Linsensuppe",
		OrderDeadline: now.Add(time.Hour),
	}

	mocks.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	mocks.menuRepo.On("FindByID", ctx, menu.ID).Return(menu, nil)
	mocks.orderRepo.On("FindByUserAndMenu", ctx, user.ID, menu.ID).Return(nil, repository.ErrOrderNotFound)
	mocks.orderRepo.On("Create", ctx, mock.AnythingOfType("*entity.Order")).Return(nil)

	output, err := service.ToggleOrder(ctx, &usecase.ToggleOrderInput{UserID: user.ID, WeekMenuID: menu.ID})
	require.NoError(t, err)
	assert.True(t, output.Ordered)
	require.NotNil(t, output.Order)
	assert.Equal(t, "Anna", output.Order.FirstName)
	assert.Equal(t, "Ampel", output.Order.LastName)
	assert.Equal(t, entity.LocationNorth, output.Order.Location)
	assert.Equal(t, entity.OrderStatusPending, output.Order.Status)
	require.NotNil(t, output.Order.UserID)
	assert.Equal(t, user.ID, *output.Order.UserID)
}

func TestOrderService_ToggleOrder_CancelsExistingOrder(t *testing.T) {
	now := time.Date(2024, 5, 27, 9, 0, 0, 0, time.UTC)
	service, mocks := newOrderService(t, now)

	ctx := context.Background()
	user := completeUser()
	menu := &entity.WeekMenu{ID: 42, OrderDeadline: now.Add(time.Hour)}
	existing := &entity.Order{ID: 7, WeekMenuID: menu.ID, UserID: &user.ID}

	mocks.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	mocks.menuRepo.On("FindByID", ctx, menu.ID).Return(menu, nil)
	mocks.orderRepo.On("FindByUserAndMenu", ctx, user.ID, menu.ID).Return(existing, nil)
	mocks.orderRepo.On("DeleteByID", ctx, existing.ID).Return(nil)

	output, err := service.ToggleOrder(ctx, &usecase.ToggleOrderInput{UserID: user.ID, WeekMenuID: menu.ID})
	require.NoError(t, err)
	assert.False(t, output.Ordered)
	assert.Nil(t, output.Order)
}

func TestOrderService_ToggleOrder_DeadlinePassed(t *testing.T) {
	now := time.Date(2024, 5, 27, 9, 0, 0, 0, time.UTC)
	service, mocks := newOrderService(t, now)

	ctx := context.Background()
	user := completeUser()
	menu := &entity.WeekMenu{ID: 42, OrderDeadline: now.Add(-time.Minute)}

	mocks.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	mocks.menuRepo.On("FindByID", ctx, menu.ID).Return(menu, nil)

	_, err := service.ToggleOrder(ctx, &usecase.ToggleOrderInput{UserID: user.ID, WeekMenuID: menu.ID})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderDeadlinePassed))
}

func TestOrderService_ToggleOrder_IncompleteProfile(t *testing.T) {
	now := time.Date(2024, 5, 27, 9, 0, 0, 0, time.UTC)
	service, mocks := newOrderService(t, now)

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "neu@example.org", Role: entity.RoleUser}

	mocks.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	_, err := service.ToggleOrder(ctx, &usecase.ToggleOrderInput{UserID: user.ID, WeekMenuID: 42})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrProfileIncomplete))
}

func TestOrderService_ReleaseAndUnrelease(t *testing.T) {
	now := time.Date(2024, 5, 27, 9, 0, 0, 0, time.UTC)
	service, mocks := newOrderService(t, now)

	ctx := context.Background()
	order := &entity.Order{ID: 7, Status: entity.OrderStatusPending}

	mocks.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
	mocks.orderRepo.On("UpdateStatus", ctx, order.ID, entity.OrderStatusReleased, mock.AnythingOfType("*time.Time")).Return(nil).Once()

	released, err := service.ReleaseOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, released.Released())
	require.NotNil(t, released.ReleasedAt)
	assert.Equal(t, now, *released.ReleasedAt)

	mocks.orderRepo.On("UpdateStatus", ctx, order.ID, entity.OrderStatusPending, (*time.Time)(nil)).Return(nil).Once()

	pending, err := service.UnreleaseOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.False(t, pending.Released())
	assert.Nil(t, pending.ReleasedAt)
}

func TestOrderService_CreateManualOrder_NoDeadlineCheck(t *testing.T) {
	now := time.Date(2024, 5, 27, 14, 0, 0, 0, time.UTC)
	service, mocks := newOrderService(t, now)

	ctx := context.Background()
	// Deadline already passed, manual entries are still accepted.
	menu := &entity.WeekMenu{ID: 42, OrderDeadline: now.Add(-3 * time.Hour)}

	mocks.menuRepo.On("FindByID", ctx, menu.ID).Return(menu, nil)
	mocks.orderRepo.On("Create", ctx, mock.AnythingOfType("*entity.Order")).Return(nil)

	order, err := service.CreateManualOrder(ctx, &usecase.ManualOrderInput{
		WeekMenuID: menu.ID,
		FirstName:  "Bo",
		LastName:   "Beispiel",
		Location:   entity.LocationSouth,
	})
	require.NoError(t, err)
	assert.Nil(t, order.UserID)
	assert.Equal(t, "Bo Beispiel", order.FullName())
}

func TestOrderService_DaySummary(t *testing.T) {
	now := time.Date(2024, 5, 27, 9, 0, 0, 0, time.UTC)
	service, mocks := newOrderService(t, now)

	ctx := context.Background()
	counts := []repository.MenuNumberCount{
		{MenuNumber: 1, Count: 7},
		{MenuNumber: 2, Count: 3},
	}
	mocks.orderRepo.On("CountByMenuNumber", ctx, 2024, 22, 2).Return(counts, nil)

	rows, err := service.DaySummary(ctx, &usecase.DaySummaryInput{ISOYear: 2024, ISOWeek: 22, DayOfWeek: 2})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, usecase.DaySummaryRow{MenuNumber: 1, Count: 7}, rows[0])
	assert.Equal(t, usecase.DaySummaryRow{MenuNumber: 2, Count: 3}, rows[1])
}

func TestOrderService_DeleteDayOrders_RejectsWeekend(t *testing.T) {
	now := time.Date(2024, 5, 27, 9, 0, 0, 0, time.UTC)
	service, _ := newOrderService(t, now)

	_, err := service.DeleteDayOrders(context.Background(), &usecase.DeleteDayOrdersInput{
		ISOYear:   2024,
		ISOWeek:   22,
		DayOfWeek: 6,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestOrderService_DeleteDayOrders(t *testing.T) {
	now := time.Date(2024, 5, 27, 9, 0, 0, 0, time.UTC)
	service, mocks := newOrderService(t, now)

	ctx := context.Background()
	mocks.orderRepo.On("DeleteByWeekday", ctx, 2024, 22, 3).Return(int64(5), nil)

	deleted, err := service.DeleteDayOrders(ctx, &usecase.DeleteDayOrdersInput{ISOYear: 2024, ISOWeek: 22, DayOfWeek: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(5), deleted)
}
