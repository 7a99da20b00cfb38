package usecase

import (
	"context"

	"lunchorder/internal/domain/entity"
)

// ExportInput selects the ISO week to export. Day, search and location
// narrow the CSV the same way they narrow the admin order table; the
// PDF bundle ignores them and always covers the whole week.
type ExportInput struct {
	ISOYear   int
	ISOWeek   int
	DayOfWeek int
	Search    string
	Location  entity.Location
}

// ExportFile is a finished download artifact.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportUsecase builds the admin download artifacts: the order list as
// CSV and the caterer menu cards as a zip of PDFs.
type ExportUsecase interface {
	OrdersCSV(ctx context.Context, input *ExportInput) (*ExportFile, error)
	MenuCardsZip(ctx context.Context, input *ExportInput) (*ExportFile, error)
}
