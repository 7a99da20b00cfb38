package impl

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"lunchorder/internal/domain/entity"
	"lunchorder/internal/domain/repository"
	mockRepo "lunchorder/internal/mocks/repository"
	mockSvc "lunchorder/internal/mocks/service"
	"lunchorder/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newExportService(t *testing.T) (*exportService, *mockRepo.MockOrderRepository, *mockSvc.MockMenuCardRenderer) {
	t.Helper()

	orderRepo := mockRepo.NewMockOrderRepository(t)
	renderer := mockSvc.NewMockMenuCardRenderer(t)

	service := NewExportService(ExportServiceParams{
		OrderRepo: orderRepo,
		Renderer:  renderer,
		Logger:    discardLogger(),
	}).(*exportService)
	service.now = func() time.Time { return time.Date(2024, 5, 27, 9, 0, 0, 0, time.UTC) }

	return service, orderRepo, renderer
}

func weekOrder(day int, menuNumber int, description, first, last string, location entity.Location) *entity.Order {
	return &entity.Order{
		WeekMenuID: int64(day*10 + menuNumber),
		FirstName:  first,
		LastName:   last,
		Location:   location,
		Status:     entity.OrderStatusPending,
		WeekMenu: &entity.WeekMenu{
			ID:          int64(day*10 + menuNumber),
			ISOYear:     2024,
			ISOWeek:     22,
			DayOfWeek:   day,
			MenuNumber:  menuNumber,
			Description: description,
			CatererName: "Kantine Nord",
		},
	}
}

func TestExportService_OrdersCSV(t *testing.T) {
	service, orderRepo, _ := newExportService(t)

	ctx := context.Background()
	orders := []*entity.Order{
		weekOrder(1, 1, "Linsensuppe", "Anna", "Ampel", entity.LocationNorth),
		weekOrder(1, 2, "Käsespätzle", "Bo", "Beispiel", entity.LocationSouth),
	}
	orderRepo.On("FindByFilter", ctx, repository.OrderFilter{ISOYear: 2024, ISOWeek: 22}).Return(orders, nil)

	file, err := service.OrdersCSV(ctx, &usecase.ExportInput{ISOYear: 2024, ISOWeek: 22})
	require.NoError(t, err)
	assert.Equal(t, "orders_W22_Y2024.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)

	reader := csv.NewReader(bytes.NewReader(file.Data))
	reader.Comma = ';'
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Tag", "Datum", "Menü", "Beschreibung", "Caterer", "Vorname", "Nachname", "Standort", "Status"}, rows[0])
	assert.Equal(t, []string{"Montag", "27.05.2024", "1", "Linsensuppe", "Kantine Nord", "Anna", "Ampel", "Nordpol", "offen"}, rows[1])
	assert.Equal(t, []string{"Montag", "27.05.2024", "2", "Käsespätzle", "Kantine Nord", "Bo", "Beispiel", "Südpol", "offen"}, rows[2])
}

func TestExportService_OrdersCSV_DefaultsToCurrentWeek(t *testing.T) {
	service, orderRepo, _ := newExportService(t)

	ctx := context.Background()
	orderRepo.On("FindByFilter", ctx, repository.OrderFilter{ISOYear: 2024, ISOWeek: 22}).Return(nil, nil)

	file, err := service.OrdersCSV(ctx, &usecase.ExportInput{})
	require.NoError(t, err)
	assert.Equal(t, "orders_W22_Y2024.csv", file.Filename)
}

func TestExportService_MenuCardsZip_SplitsByLocation(t *testing.T) {
	service, orderRepo, renderer := newExportService(t)

	ctx := context.Background()
	orders := []*entity.Order{
		weekOrder(1, 1, "Linsensuppe", "Anna", "Ampel", entity.LocationNorth),
		weekOrder(1, 1, "Linsensuppe", "Bo", "Beispiel", entity.LocationSouth),
	}
	orderRepo.On("FindByFilter", ctx, repository.OrderFilter{ISOYear: 2024, ISOWeek: 22}).Return(orders, nil)

	var rendered [][]entity.MenuCard
	renderer.On("Render", mock.AnythingOfType("[]entity.MenuCard")).
		Run(func(args mock.Arguments) {
			rendered = append(rendered, args.Get(0).([]entity.MenuCard))
		}).
		Return([]byte("%PDF-fake"), nil)

	file, err := service.MenuCardsZip(ctx, &usecase.ExportInput{ISOYear: 2024, ISOWeek: 22})
	require.NoError(t, err)
	assert.Equal(t, "Export_KW22_2024.zip", file.Filename)
	assert.Equal(t, "application/zip", file.ContentType)

	// One dish on one day: one document with one card per location.
	require.Len(t, rendered, 1)
	cards := rendered[0]
	require.Len(t, cards, 2)
	assert.Equal(t, "Linsensuppe", cards[0].Title)
	assert.Contains(t, cards[0].Subtitle, "Nordpol")
	assert.Equal(t, []string{"Anna Ampel"}, cards[0].Names)
	assert.Contains(t, cards[1].Subtitle, "Südpol")
	assert.Equal(t, []string{"Bo Beispiel"}, cards[1].Names)

	zipReader, err := zip.NewReader(bytes.NewReader(file.Data), int64(len(file.Data)))
	require.NoError(t, err)
	require.Len(t, zipReader.File, 1)
	assert.Equal(t, "Menüs_1.pdf", zipReader.File[0].Name)
}

func TestExportService_MenuCardsZip_ChunksCards(t *testing.T) {
	service, orderRepo, renderer := newExportService(t)

	ctx := context.Background()
	// Five single-site dishes across the week: ceil(5/2) = 3 documents.
	orders := []*entity.Order{
		weekOrder(1, 1, "Linsensuppe", "Anna", "Ampel", entity.LocationNorth),
		weekOrder(1, 2, "Käsespätzle", "Anna", "Ampel", entity.LocationNorth),
		weekOrder(2, 1, "Gulasch", "Anna", "Ampel", entity.LocationNorth),
		weekOrder(3, 1, "Pizza", "Anna", "Ampel", entity.LocationNorth),
		weekOrder(4, 1, "Currywurst", "Anna", "Ampel", entity.LocationNorth),
	}
	orderRepo.On("FindByFilter", ctx, repository.OrderFilter{ISOYear: 2024, ISOWeek: 22}).Return(orders, nil)
	renderer.On("Render", mock.AnythingOfType("[]entity.MenuCard")).Return([]byte("%PDF-fake"), nil).Times(3)

	file, err := service.MenuCardsZip(ctx, &usecase.ExportInput{ISOYear: 2024, ISOWeek: 22})
	require.NoError(t, err)

	zipReader, err := zip.NewReader(bytes.NewReader(file.Data), int64(len(file.Data)))
	require.NoError(t, err)
	require.Len(t, zipReader.File, 3)
	names := []string{zipReader.File[0].Name, zipReader.File[1].Name, zipReader.File[2].Name}
	assert.Equal(t, []string{"Menüs_1.pdf", "Menüs_2.pdf", "Menüs_3.pdf"}, names)
}

func TestExportService_MenuCardsZip_TwoCardsPerDocument(t *testing.T) {
	service, orderRepo, renderer := newExportService(t)

	ctx := context.Background()
	// Two dishes at two sites each: four cards, never more than two per PDF.
	orders := []*entity.Order{
		weekOrder(1, 1, "Linsensuppe", "Anna", "Ampel", entity.LocationNorth),
		weekOrder(1, 1, "Linsensuppe", "Bo", "Beispiel", entity.LocationSouth),
		weekOrder(1, 2, "Käsespätzle", "Carla", "Chaos", entity.LocationNorth),
		weekOrder(1, 2, "Käsespätzle", "Dora", "Direkt", entity.LocationSouth),
	}
	orderRepo.On("FindByFilter", ctx, repository.OrderFilter{ISOYear: 2024, ISOWeek: 22}).Return(orders, nil)

	var rendered [][]entity.MenuCard
	renderer.On("Render", mock.AnythingOfType("[]entity.MenuCard")).
		Run(func(args mock.Arguments) {
			rendered = append(rendered, args.Get(0).([]entity.MenuCard))
		}).
		Return([]byte("%PDF-fake"), nil)

	file, err := service.MenuCardsZip(ctx, &usecase.ExportInput{ISOYear: 2024, ISOWeek: 22})
	require.NoError(t, err)

	require.Len(t, rendered, 2)
	for _, cards := range rendered {
		assert.LessOrEqual(t, len(cards), 2)
	}

	zipReader, err := zip.NewReader(bytes.NewReader(file.Data), int64(len(file.Data)))
	require.NoError(t, err)
	require.Len(t, zipReader.File, 2)
}

func TestBuildMenuCards_EachNameOnce(t *testing.T) {
	orders := []*entity.Order{
		weekOrder(1, 1, "Linsensuppe", "Anna", "Ampel", entity.LocationNorth),
		weekOrder(1, 1, "Linsensuppe", "Carla", "Chaos", entity.LocationNorth),
		weekOrder(1, 1, "Linsensuppe", "Bo", "Beispiel", entity.LocationSouth),
		weekOrder(2, 1, "Gulasch", "Anna", "Ampel", entity.LocationNorth),
	}

	cards := buildMenuCards(orders, 2024, 22)
	require.Len(t, cards, 3)

	seen := map[string]int{}
	for _, card := range cards {
		for _, name := range card.Names {
			seen[card.Title+"/"+name]++
		}
	}
	for key, count := range seen {
		assert.Equal(t, 1, count, "name listed more than once: %s", key)
	}
	assert.Len(t, seen, 4)
}

func TestBuildMenuCards_MergesSameDishAcrossMenuNumbers(t *testing.T) {
	// The same dish offered twice on one day, with another menu number in
	// between, still yields a single card per site.
	orders := []*entity.Order{
		weekOrder(1, 1, "Linsensuppe", "Anna", "Ampel", entity.LocationNorth),
		weekOrder(1, 2, "Käsespätzle", "Bo", "Beispiel", entity.LocationNorth),
		weekOrder(1, 3, "Linsensuppe", "Carla", "Chaos", entity.LocationNorth),
	}

	cards := buildMenuCards(orders, 2024, 22)
	require.Len(t, cards, 2)

	assert.Equal(t, "Käsespätzle", cards[0].Title)
	assert.Equal(t, "Linsensuppe", cards[1].Title)
	assert.ElementsMatch(t, []string{"Anna Ampel", "Carla Chaos"}, cards[1].Names)
}

func TestBuildMenuCards_SubtitleCarriesDate(t *testing.T) {
	orders := []*entity.Order{
		weekOrder(3, 1, "Pizza", "Anna", "Ampel", entity.LocationNorth),
	}

	cards := buildMenuCards(orders, 2024, 22)
	require.Len(t, cards, 1)

	subtitle := cards[0].Subtitle
	assert.True(t, strings.HasPrefix(subtitle, "Mittwoch, 29.05.2024"), subtitle)
}
