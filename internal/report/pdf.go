package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/osintkit/phone-intel/internal/domain"
)

// PDF renders lookup rows as a paginated PDF document.
func PDF(rows []*domain.CompositeLookupResult) ([]byte, error) {
	doc := fpdf.New("P", "mm", "Letter", "")
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.Cell(0, 10, "Phone Lookup Report")
	doc.Ln(14)

	doc.SetFont("Helvetica", "", 10)
	for _, res := range rows {
		r := flatten(res)

		doc.Cell(0, 5, fmt.Sprintf("Number: %s - %s / %s", r.Number, r.Country, r.Carrier))
		doc.Ln(5)
		doc.Cell(0, 5, fmt.Sprintf("Location: %s | Score: %.1f (%s)", r.Location, r.Score, r.Label))
		doc.Ln(8)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf report: %w", err)
	}
	return buf.Bytes(), nil
}
