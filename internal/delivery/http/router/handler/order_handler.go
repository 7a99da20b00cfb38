package handler

import (
	"log/slog"
	"net/http"

	"lunchorder/internal/delivery/http/response"
	"lunchorder/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler serves the user's own ordering flow.
type OrderHandler struct {
	uc     usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, logger: logger}
}

// UserOrders returns the authenticated user's orders of one ISO week.
func (h *OrderHandler) UserOrders(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "User identity missing")
	}

	orders, err := h.uc.UserOrders(c.Request().Context(), &usecase.UserOrdersInput{
		UserID:  userID,
		ISOYear: intQueryParam(c, "year"),
		ISOWeek: intQueryParam(c, "week"),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderViews(orders), "")
}

type toggleOrderRequest struct {
	WeekMenuID int64 `json:"weekMenuId" validate:"required"`
}

type toggleOrderResponse struct {
	Ordered bool       `json:"ordered"`
	Order   *orderView `json:"order,omitempty"`
}

// ToggleOrder orders the given menu, or cancels the existing order.
func (h *OrderHandler) ToggleOrder(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "User identity missing")
	}

	var req toggleOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.ToggleOrder(c.Request().Context(), &usecase.ToggleOrderInput{
		UserID:     userID,
		WeekMenuID: req.WeekMenuID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	result := toggleOrderResponse{Ordered: output.Ordered}
	if output.Order != nil {
		view := toOrderView(output.Order)
		result.Order = &view
	}

	message := "Bestellung storniert"
	if output.Ordered {
		message = "Bestellung gespeichert"
	}

	return response.Success(c, http.StatusOK, result, message)
}
