package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"lunchorder/internal/domain/entity"
	"lunchorder/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ExportHandler serves the admin download artifacts.
type ExportHandler struct {
	uc     usecase.ExportUsecase
	logger *slog.Logger
}

// NewExportHandler is the constructor for ExportHandler, injected by Fx.
func NewExportHandler(uc usecase.ExportUsecase, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{uc: uc, logger: logger}
}

// OrdersCSV downloads the order list of one ISO week as CSV, narrowed by
// the same day/search/location filters as the admin order table.
func (h *ExportHandler) OrdersCSV(c echo.Context) error {
	file, err := h.uc.OrdersCSV(c.Request().Context(), &usecase.ExportInput{
		ISOYear:   intQueryParam(c, "year"),
		ISOWeek:   intQueryParam(c, "week"),
		DayOfWeek: intQueryParam(c, "day"),
		Search:    c.QueryParam("search"),
		Location:  entity.Location(c.QueryParam("location")),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return writeDownload(c, file)
}

// MenuCardsZip downloads the caterer hand-off bundle of one ISO week.
func (h *ExportHandler) MenuCardsZip(c echo.Context) error {
	file, err := h.uc.MenuCardsZip(c.Request().Context(), &usecase.ExportInput{
		ISOYear: intQueryParam(c, "year"),
		ISOWeek: intQueryParam(c, "week"),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return writeDownload(c, file)
}

func writeDownload(c echo.Context, file *usecase.ExportFile) error {
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, file.Filename))

	return c.Blob(http.StatusOK, file.ContentType, file.Data)
}
