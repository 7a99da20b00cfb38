package impl

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	deliverycontext "lunchorder/internal/delivery/context"
	"lunchorder/internal/domain/entity"
	domainerrors "lunchorder/internal/domain/errors"
	"lunchorder/internal/domain/repository"
	"lunchorder/internal/domain/service"
	"lunchorder/internal/isoweek"
	"lunchorder/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// cardsPerDocument is how many badge cards go into one PDF of the zip
// bundle, matching the two cards per landscape page the renderer draws.
const cardsPerDocument = 2

var weekdayNames = [...]string{"", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag"}

// exportService implements the ExportUsecase interface.
type exportService struct {
	orderRepo repository.OrderRepository
	renderer  service.MenuCardRenderer
	now       func() time.Time
	logger    *slog.Logger
}

// ExportServiceParams holds dependencies for exportService, injected by Fx.
type ExportServiceParams struct {
	fx.In

	OrderRepo repository.OrderRepository
	Renderer  service.MenuCardRenderer
	Logger    *slog.Logger
}

// NewExportService is the constructor for exportService.
func NewExportService(params ExportServiceParams) usecase.ExportUsecase {
	return &exportService{
		orderRepo: params.OrderRepo,
		renderer:  params.Renderer,
		now:       time.Now,
		logger:    params.Logger,
	}
}

func (srv *exportService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *exportService) loadOrders(ctx context.Context, input *usecase.ExportInput, filtered bool) ([]*entity.Order, int, int, error) {
	isoYear, isoWeek := input.ISOYear, input.ISOWeek
	if isoYear == 0 || isoWeek == 0 {
		isoYear, isoWeek = isoweek.Current(srv.now())
	}
	if isoWeek < 1 || isoWeek > isoweek.Weeks(isoYear) {
		return nil, 0, 0, domainerrors.ErrValidationFailed.WrapMessage("week out of range")
	}

	filter := repository.OrderFilter{
		ISOYear: isoYear,
		ISOWeek: isoWeek,
	}
	if filtered {
		filter.DayOfWeek = input.DayOfWeek
		filter.Search = input.Search
		filter.Location = input.Location
	}

	orders, err := srv.orderRepo.FindByFilter(ctx, filter)
	if err != nil {
		return nil, 0, 0, errors.Wrap(err, "failed to load week orders")
	}

	return orders, isoYear, isoWeek, nil
}

// OrdersCSV builds the order list of one ISO week as a semicolon-separated
// CSV, one row per order. Day, search and location filters apply the
// same way as in the admin table.
func (srv *exportService) OrdersCSV(ctx context.Context, input *usecase.ExportInput) (*usecase.ExportFile, error) {
	orders, isoYear, isoWeek, err := srv.loadOrders(ctx, input, true)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	writer.Comma = ';'

	header := []string{"Tag", "Datum", "Menü", "Beschreibung", "Caterer", "Vorname", "Nachname", "Standort", "Status"}
	if err := writer.Write(header); err != nil {
		return nil, errors.Wrap(err, "failed to write csv header")
	}

	for _, order := range orders {
		menu := order.WeekMenu
		if menu == nil {
			continue
		}

		status := "offen"
		if order.Released() {
			status = "freigegeben"
		}

		row := []string{
			weekdayName(menu.DayOfWeek),
			isoweek.DateOfWeekday(isoYear, isoWeek, menu.DayOfWeek).Format("02.01.2006"),
			strconv.Itoa(menu.MenuNumber),
			menu.Description,
			menu.CatererName,
			order.FirstName,
			order.LastName,
			order.Location.String(),
			status,
		}
		if err := writer.Write(row); err != nil {
			return nil, errors.Wrap(err, "failed to write csv row")
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, errors.Wrap(err, "failed to flush csv")
	}

	srv.log(ctx).Info("CSV export built",
		slog.Int("isoYear", isoYear),
		slog.Int("isoWeek", isoWeek),
		slog.Int("orders", len(orders)))

	return &usecase.ExportFile{
		Filename:    fmt.Sprintf("orders_W%d_Y%d.csv", isoWeek, isoYear),
		ContentType: "text/csv",
		Data:        buf.Bytes(),
	}, nil
}

// MenuCardsZip builds the caterer hand-off bundle: badge-style PDF cards
// listing who ordered which dish, one card per weekday, dish and
// location, two cards per PDF, packed into one zip download.
func (srv *exportService) MenuCardsZip(ctx context.Context, input *usecase.ExportInput) (*usecase.ExportFile, error) {
	orders, isoYear, isoWeek, err := srv.loadOrders(ctx, input, false)
	if err != nil {
		return nil, err
	}

	cards := buildMenuCards(orders, isoYear, isoWeek)

	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)

	documentIndex := 0
	for start := 0; start < len(cards); start += cardsPerDocument {
		end := start + cardsPerDocument
		if end > len(cards) {
			end = len(cards)
		}

		data, renderErr := srv.renderer.Render(cards[start:end])
		if renderErr != nil {
			return nil, errors.Wrap(renderErr, "failed to render menu cards")
		}

		documentIndex++
		entry, createErr := zipWriter.Create(fmt.Sprintf("Menüs_%d.pdf", documentIndex))
		if createErr != nil {
			return nil, errors.Wrap(createErr, "failed to create zip entry")
		}
		if _, writeErr := entry.Write(data); writeErr != nil {
			return nil, errors.Wrap(writeErr, "failed to write zip entry")
		}
	}

	if err := zipWriter.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to finalize zip")
	}

	srv.log(ctx).Info("PDF bundle built",
		slog.Int("isoYear", isoYear),
		slog.Int("isoWeek", isoWeek),
		slog.Int("documents", documentIndex))

	return &usecase.ExportFile{
		Filename:    fmt.Sprintf("Export_KW%d_%d.zip", isoWeek, isoYear),
		ContentType: "application/zip",
		Data:        buf.Bytes(),
	}, nil
}

// buildMenuCards collapses the week's orders into one badge card per
// weekday, dish and location. Grouping is keyed, so it does not depend
// on the incoming row order; cards come out sorted by weekday, dish and
// site, names in the order the repository delivers them.
func buildMenuCards(orders []*entity.Order, isoYear, isoWeek int) []entity.MenuCard {
	type cardKey struct {
		dayOfWeek   int
		description string
		location    entity.Location
	}

	namesByKey := map[cardKey][]string{}
	for _, order := range orders {
		menu := order.WeekMenu
		if menu == nil {
			continue
		}

		key := cardKey{dayOfWeek: menu.DayOfWeek, description: menu.Description, location: order.Location}
		namesByKey[key] = append(namesByKey[key], order.FullName())
	}

	locationRank := map[entity.Location]int{}
	for i, location := range entity.AllLocations() {
		locationRank[location] = i
	}

	keys := make([]cardKey, 0, len(namesByKey))
	for key := range namesByKey {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].dayOfWeek != keys[j].dayOfWeek {
			return keys[i].dayOfWeek < keys[j].dayOfWeek
		}
		if keys[i].description != keys[j].description {
			return keys[i].description < keys[j].description
		}

		return locationRank[keys[i].location] < locationRank[keys[j].location]
	})

	cards := make([]entity.MenuCard, 0, len(keys))
	for _, key := range keys {
		date := isoweek.DateOfWeekday(isoYear, isoWeek, key.dayOfWeek).Format("02.01.2006")
		cards = append(cards, entity.MenuCard{
			Title:    key.description,
			Subtitle: fmt.Sprintf("%s, %s / %s", weekdayName(key.dayOfWeek), date, key.location),
			Names:    namesByKey[key],
		})
	}

	return cards
}

func weekdayName(dayOfWeek int) string {
	if dayOfWeek < 1 || dayOfWeek >= len(weekdayNames) {
		return strconv.Itoa(dayOfWeek)
	}

	return weekdayNames[dayOfWeek]
}
