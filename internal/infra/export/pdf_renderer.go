// Package export renders admin export artifacts: the badge-style menu
// cards handed to the caterers as PDF.
package export

import (
	"bytes"

	"lunchorder/config"
	"lunchorder/internal/domain/entity"
	"lunchorder/internal/domain/service"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"
)

const (
	pageMargin  = 10.0
	cardGap     = 8.0
	titleSize   = 22.0
	nameSize    = 14.0
	footerSize  = 9.0
	lineHeight  = 8.0
	titleHeight = 11.0
)

// fpdfCardRenderer draws up to two menu cards side by side on one
// landscape A4 page.
type fpdfCardRenderer struct {
	footerText string
}

// NewCardRenderer is the constructor for fpdfCardRenderer.
func NewCardRenderer(cfg *config.Config) service.MenuCardRenderer {
	footerText := ""
	if cfg.Export != nil {
		footerText = cfg.Export.FooterText
	}

	return &fpdfCardRenderer{footerText: footerText}
}

// Render produces one PDF document containing the given cards, two per page.
func (r *fpdfCardRenderer) Render(cards []entity.MenuCard) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)

	translate := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, pageH := pdf.GetPageSize()
	cardW := (pageW - 2*pageMargin - cardGap) / 2
	cardH := pageH - 2*pageMargin

	if len(cards) == 0 {
		pdf.AddPage()
	}

	for i := 0; i < len(cards); i += 2 {
		pdf.AddPage()

		r.drawCard(pdf, translate, cards[i], pageMargin, cardW, cardH)
		if i+1 < len(cards) {
			r.drawCard(pdf, translate, cards[i+1], pageMargin+cardW+cardGap, cardW, cardH)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "failed to render menu cards")
	}

	return buf.Bytes(), nil
}

func (r *fpdfCardRenderer) drawCard(pdf *gofpdf.Fpdf, translate func(string) string, card entity.MenuCard, x, w, h float64) {
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.4)
	pdf.Rect(x, pageMargin, w, h, "D")

	inner := x + 6
	innerW := w - 12
	y := pageMargin + 10

	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.SetXY(inner, y)
	pdf.MultiCell(innerW, titleHeight, translate(card.Title), "", "C", false)
	y = pdf.GetY() + 2

	if card.Subtitle != "" {
		pdf.SetFont("Helvetica", "", nameSize)
		pdf.SetXY(inner, y)
		pdf.CellFormat(innerW, lineHeight, translate(card.Subtitle), "", 0, "C", false, 0, "")
		y += lineHeight + 2
	}

	pdf.SetFont("Helvetica", "", nameSize)
	pdf.SetXY(inner, y)
	pdf.CellFormat(innerW, lineHeight, "* * *", "", 0, "C", false, 0, "")
	y += lineHeight + 4

	for _, name := range card.Names {
		pdf.SetXY(inner, y)
		pdf.CellFormat(innerW, lineHeight, translate(name), "", 0, "C", false, 0, "")
		y += lineHeight
	}

	if r.footerText != "" {
		pdf.SetFont("Helvetica", "I", footerSize)
		pdf.SetXY(inner, pageMargin+h-12)
		pdf.CellFormat(innerW, lineHeight, translate(r.footerText), "", 0, "C", false, 0, "")
	}
}
