package extract

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
)

// FromPDF extracts phone numbers from a PDF document. Pages that fail
// text extraction are skipped individually; a wholly unparsable
// document yields an empty set, never an error.
func FromPDF(data []byte) (numbers []string) {
	// The parser panics on some malformed inputs; treat those the same
	// as an unreadable document.
	defer func() {
		if recover() != nil {
			numbers = nil
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, text)
	}

	return Numbers(strings.Join(pages, "\n"))
}
