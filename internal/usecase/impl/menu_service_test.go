package impl

import (
	"context"
	"testing"
	"time"

	"lunchorder/internal/domain/entity"
	domainerrors "lunchorder/internal/domain/errors"
	mockRepo "lunchorder/internal/mocks/repository"
	"lunchorder/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type menuServiceMocks struct {
	menuRepo    *mockRepo.MockWeekMenuRepository
	catererRepo *mockRepo.MockCatererRepository
}

func newMenuService(t *testing.T, now time.Time) (*menuService, *menuServiceMocks) {
	t.Helper()

	mocks := &menuServiceMocks{
		menuRepo:    mockRepo.NewMockWeekMenuRepository(t),
		catererRepo: mockRepo.NewMockCatererRepository(t),
	}

	txManager := &mockRepo.FakeTransactionManager{
		Factory: &mockRepo.FakeRepositoryFactory{
			WeekMenus: mocks.menuRepo,
		},
	}

	service := NewMenuService(MenuServiceParams{
		TxManager:    txManager,
		WeekMenuRepo: mocks.menuRepo,
		CatererRepo:  mocks.catererRepo,
		Logger:       discardLogger(),
	}).(*menuService)
	service.now = func() time.Time { return now }

	return service, mocks
}

func TestMenuService_WeekMenus_DefaultsToCurrentWeek(t *testing.T) {
	now := time.Date(2024, 5, 27, 9, 0, 0, 0, time.UTC) // 2024-W22
	service, mocks := newMenuService(t, now)

	ctx := context.Background()
	mocks.menuRepo.On("FindByWeek", ctx, 2024, 22).Return([]*entity.WeekMenu{}, nil)

	output, err := service.WeekMenus(ctx, &usecase.WeekMenusInput{})
	require.NoError(t, err)
	assert.Equal(t, 2024, output.ISOYear)
	assert.Equal(t, 22, output.ISOWeek)
	assert.Equal(t, time.Date(2024, 5, 27, 0, 0, 0, 0, time.UTC), output.Monday)
}

func TestMenuService_WeekMenus_RejectsWeekOutOfRange(t *testing.T) {
	service, _ := newMenuService(t, time.Now())

	// 2024 has 52 ISO weeks.
	_, err := service.WeekMenus(context.Background(), &usecase.WeekMenusInput{ISOYear: 2024, ISOWeek: 53})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestMenuService_SaveWeek_UpsertsAndPrunes(t *testing.T) {
	now := time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)
	service, mocks := newMenuService(t, now)

	ctx := context.Background()
	deadline := time.Date(2024, 5, 27, 8, 30, 0, 0, time.UTC)

	mocks.menuRepo.On("Upsert", ctx, mock.MatchedBy(func(menu *entity.WeekMenu) bool {
		return menu.ISOYear == 2024 && menu.ISOWeek == 22
	})).Run(func(args mock.Arguments) {
		menu := args.Get(1).(*entity.WeekMenu)
		if menu.ID == 0 {
			menu.ID = 100 + int64(menu.MenuNumber)
		}
	}).Return(nil).Twice()
	mocks.menuRepo.On("DeleteByWeekExcept", ctx, 2024, 22, []int64{7, 101}).Return(nil)
	mocks.menuRepo.On("FindByWeek", ctx, 2024, 22).Return([]*entity.WeekMenu{}, nil)

	_, err := service.SaveWeek(ctx, &usecase.SaveWeekInput{
		ISOYear: 2024,
		ISOWeek: 22,
		Menus: []usecase.SaveMenuInput{
			{ID: 7, DayOfWeek: 1, MenuNumber: 2, Description: "Gulasch", CatererID: 1, OrderDeadline: deadline},
			{DayOfWeek: 2, MenuNumber: 1, Description: "Linsensuppe", CatererID: 1, OrderDeadline: deadline},
		},
	})
	require.NoError(t, err)
}

func TestMenuService_SaveWeek_RejectsInvalidRow(t *testing.T) {
	service, _ := newMenuService(t, time.Now())

	cases := []struct {
		name string
		row  usecase.SaveMenuInput
	}{
		{"weekend day", usecase.SaveMenuInput{DayOfWeek: 6, MenuNumber: 1, Description: "x", CatererID: 1, OrderDeadline: time.Now()}},
		{"zero menu number", usecase.SaveMenuInput{DayOfWeek: 1, MenuNumber: 0, Description: "x", CatererID: 1, OrderDeadline: time.Now()}},
		{"empty description", usecase.SaveMenuInput{DayOfWeek: 1, MenuNumber: 1, CatererID: 1, OrderDeadline: time.Now()}},
		{"missing caterer", usecase.SaveMenuInput{DayOfWeek: 1, MenuNumber: 1, Description: "x", OrderDeadline: time.Now()}},
		{"missing deadline", usecase.SaveMenuInput{DayOfWeek: 1, MenuNumber: 1, Description: "x", CatererID: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.SaveWeek(context.Background(), &usecase.SaveWeekInput{
				ISOYear: 2024,
				ISOWeek: 22,
				Menus:   []usecase.SaveMenuInput{tc.row},
			})
			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
		})
	}
}

func TestMenuService_Caterers(t *testing.T) {
	service, mocks := newMenuService(t, time.Now())
	ctx := context.Background()

	caterers := []*entity.Caterer{{ID: 1, Name: "Kantine Nord"}}
	mocks.catererRepo.On("List", ctx).Return(caterers, nil)

	result, err := service.Caterers(ctx)
	require.NoError(t, err)
	assert.Equal(t, caterers, result)
}
