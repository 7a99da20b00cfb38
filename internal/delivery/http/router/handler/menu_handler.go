package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"lunchorder/internal/delivery/http/response"
	"lunchorder/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// MenuHandler serves the week plan and the admin menu editor.
type MenuHandler struct {
	uc     usecase.MenuUsecase
	logger *slog.Logger
}

// NewMenuHandler is the constructor for MenuHandler, injected by Fx.
func NewMenuHandler(uc usecase.MenuUsecase, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{uc: uc, logger: logger}
}

// WeekMenus returns the menu plan of the requested ISO week, defaulting
// to the current one.
func (h *MenuHandler) WeekMenus(c echo.Context) error {
	output, err := h.uc.WeekMenus(c.Request().Context(), &usecase.WeekMenusInput{
		ISOYear: intQueryParam(c, "year"),
		ISOWeek: intQueryParam(c, "week"),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toWeekView(output), "")
}

// Caterers returns all caterers for the menu editor.
func (h *MenuHandler) Caterers(c echo.Context) error {
	caterers, err := h.uc.Caterers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, caterers, "")
}

type saveMenuRequest struct {
	ID            int64     `json:"id"`
	DayOfWeek     int       `json:"dayOfWeek" validate:"required,min=1,max=5"`
	MenuNumber    int       `json:"menuNumber" validate:"required,min=1"`
	Description   string    `json:"description" validate:"required"`
	CatererID     int64     `json:"catererId" validate:"required"`
	OrderDeadline time.Time `json:"orderDeadline" validate:"required"`
	Veggie        bool      `json:"veggie"`
	Vegan         bool      `json:"vegan"`
}

type saveWeekRequest struct {
	ISOYear int               `json:"isoYear" validate:"required"`
	ISOWeek int               `json:"isoWeek" validate:"required,min=1,max=53"`
	Menus   []saveMenuRequest `json:"menus" validate:"dive"`
}

// SaveWeek replaces the plan of one ISO week with the submitted rows.
func (h *MenuHandler) SaveWeek(c echo.Context) error {
	var req saveWeekRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid week plan input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	menus := make([]usecase.SaveMenuInput, len(req.Menus))
	for i, row := range req.Menus {
		menus[i] = usecase.SaveMenuInput{
			ID:            row.ID,
			DayOfWeek:     row.DayOfWeek,
			MenuNumber:    row.MenuNumber,
			Description:   row.Description,
			CatererID:     row.CatererID,
			OrderDeadline: row.OrderDeadline,
			Veggie:        row.Veggie,
			Vegan:         row.Vegan,
		}
	}

	output, err := h.uc.SaveWeek(c.Request().Context(), &usecase.SaveWeekInput{
		ISOYear: req.ISOYear,
		ISOWeek: req.ISOWeek,
		Menus:   menus,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toWeekView(output), "Wochenplan gespeichert")
}

// DeleteMenu removes a single menu row together with its orders.
func (h *MenuHandler) DeleteMenu(c echo.Context) error {
	menuID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid menu id")
	}

	if err := h.uc.DeleteMenu(c.Request().Context(), menuID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Menü gelöscht")
}
