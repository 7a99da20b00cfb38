package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lunchorder/internal/delivery/http/middleware"
	"lunchorder/internal/delivery/http/validator"
	"lunchorder/internal/domain/entity"
	domainerrors "lunchorder/internal/domain/errors"
	"lunchorder/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// stubOrderUsecase satisfies usecase.OrderUsecase with canned results.
type stubOrderUsecase struct {
	toggleOutput *usecase.ToggleOrderOutput
	toggleErr    error
}

func (s *stubOrderUsecase) UserOrders(context.Context, *usecase.UserOrdersInput) ([]*entity.Order, error) {
	return nil, nil
}

func (s *stubOrderUsecase) ToggleOrder(context.Context, *usecase.ToggleOrderInput) (*usecase.ToggleOrderOutput, error) {
	return s.toggleOutput, s.toggleErr
}

func (s *stubOrderUsecase) AdminOrders(context.Context, *usecase.AdminOrdersInput) ([]*entity.Order, error) {
	return nil, nil
}

func (s *stubOrderUsecase) DaySummary(context.Context, *usecase.DaySummaryInput) ([]usecase.DaySummaryRow, error) {
	return nil, nil
}

func (s *stubOrderUsecase) CreateManualOrder(context.Context, *usecase.ManualOrderInput) (*entity.Order, error) {
	return nil, nil
}

func (s *stubOrderUsecase) ReleaseOrder(context.Context, int64) (*entity.Order, error) {
	return nil, nil
}

func (s *stubOrderUsecase) UnreleaseOrder(context.Context, int64) (*entity.Order, error) {
	return nil, nil
}

func (s *stubOrderUsecase) DeleteOrder(context.Context, int64) error {
	return nil
}

func (s *stubOrderUsecase) DeleteDayOrders(context.Context, *usecase.DeleteDayOrdersInput) (int64, error) {
	return 0, nil
}

func newToggleContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()
	req := httptest.NewRequest(http.MethodPost, "/user/orders/toggle", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("userID", uuid.New())

	return c, rec
}

func TestOrderHandler_ToggleOrder_DeadlinePassed(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewOrderHandler(&stubOrderUsecase{
		toggleErr: domainerrors.ErrOrderDeadlinePassed,
	}, logger)

	c, rec := newToggleContext(t, `{"weekMenuId": 42}`)

	err := handler.ToggleOrder(c)
	assert.Error(t, err)

	middleware.NewErrorMiddleware(logger).HandleHTTPError(err, c)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "ORDER_DEADLINE_PASSED")
	assert.Contains(t, rec.Body.String(), "Bestellfrist")
}

func TestOrderHandler_ToggleOrder_Ordered(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewOrderHandler(&stubOrderUsecase{
		toggleOutput: &usecase.ToggleOrderOutput{
			Ordered: true,
			Order: &entity.Order{
				ID:         7,
				WeekMenuID: 42,
				FirstName:  "Anna",
				LastName:   "Ampel",
				Location:   entity.LocationNorth,
				Status:     entity.OrderStatusPending,
			},
		},
	}, logger)

	c, rec := newToggleContext(t, `{"weekMenuId": 42}`)

	err := handler.ToggleOrder(c)
	assert.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ordered":true`)
	assert.Contains(t, rec.Body.String(), "Bestellung gespeichert")
}
