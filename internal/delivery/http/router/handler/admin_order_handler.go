package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"lunchorder/internal/delivery/http/response"
	"lunchorder/internal/domain/entity"
	"lunchorder/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AdminOrderHandler serves the admin order management.
type AdminOrderHandler struct {
	uc     usecase.OrderUsecase
	logger *slog.Logger
}

// NewAdminOrderHandler is the constructor for AdminOrderHandler, injected by Fx.
func NewAdminOrderHandler(uc usecase.OrderUsecase, logger *slog.Logger) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc, logger: logger}
}

// ListOrders returns the filtered order list of one ISO week.
func (h *AdminOrderHandler) ListOrders(c echo.Context) error {
	orders, err := h.uc.AdminOrders(c.Request().Context(), &usecase.AdminOrdersInput{
		ISOYear:   intQueryParam(c, "year"),
		ISOWeek:   intQueryParam(c, "week"),
		DayOfWeek: intQueryParam(c, "day"),
		Search:    c.QueryParam("search"),
		Location:  entity.Location(c.QueryParam("location")),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderViews(orders), "")
}

// DaySummary returns per-menu order counts for one weekday.
func (h *AdminOrderHandler) DaySummary(c echo.Context) error {
	rows, err := h.uc.DaySummary(c.Request().Context(), &usecase.DaySummaryInput{
		ISOYear:   intQueryParam(c, "year"),
		ISOWeek:   intQueryParam(c, "week"),
		DayOfWeek: intQueryParam(c, "day"),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, rows, "")
}

type manualOrderRequest struct {
	WeekMenuID int64  `json:"weekMenuId" validate:"required"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName" validate:"required"`
	Location   string `json:"location" validate:"required"`
}

// CreateManualOrder records an order for someone without an account link.
func (h *AdminOrderHandler) CreateManualOrder(c echo.Context) error {
	var req manualOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.uc.CreateManualOrder(c.Request().Context(), &usecase.ManualOrderInput{
		WeekMenuID: req.WeekMenuID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Location:   entity.Location(req.Location),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toOrderView(order), "Bestellung nachgetragen")
}

// ReleaseOrder marks an order as handed off to the caterer.
func (h *AdminOrderHandler) ReleaseOrder(c echo.Context) error {
	return h.setStatus(c, true)
}

// UnreleaseOrder reverts a release.
func (h *AdminOrderHandler) UnreleaseOrder(c echo.Context) error {
	return h.setStatus(c, false)
}

func (h *AdminOrderHandler) setStatus(c echo.Context, release bool) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order id")
	}

	var order *entity.Order
	if release {
		order, err = h.uc.ReleaseOrder(c.Request().Context(), orderID)
	} else {
		order, err = h.uc.UnreleaseOrder(c.Request().Context(), orderID)
	}
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderView(order), "")
}

// DeleteOrder removes a single order.
func (h *AdminOrderHandler) DeleteOrder(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order id")
	}

	if err := h.uc.DeleteOrder(c.Request().Context(), orderID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Bestellung gelöscht")
}

type deletedCountResponse struct {
	Deleted int64 `json:"deleted"`
}

// DeleteDayOrders removes all orders of one weekday of one ISO week.
func (h *AdminOrderHandler) DeleteDayOrders(c echo.Context) error {
	deleted, err := h.uc.DeleteDayOrders(c.Request().Context(), &usecase.DeleteDayOrdersInput{
		ISOYear:   intQueryParam(c, "year"),
		ISOWeek:   intQueryParam(c, "week"),
		DayOfWeek: intQueryParam(c, "day"),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, deletedCountResponse{Deleted: deleted}, "Bestellungen gelöscht")
}
