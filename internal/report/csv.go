package report

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/osintkit/phone-intel/internal/domain"
)

var csvHeader = []string{"number", "country", "carrier", "location", "score", "label", "last_lookup_ts"}

// CSV renders lookup rows as a CSV document, one row per number, in
// the order given.
func CSV(rows []*domain.CompositeLookupResult) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write(csvHeader)
	for _, res := range rows {
		r := flatten(res)
		w.Write([]string{
			r.Number,
			r.Country,
			r.Carrier,
			r.Location,
			strconv.FormatFloat(r.Score, 'f', 1, 64),
			r.Label,
			strconv.FormatInt(res.LastLookupTS, 10),
		})
	}
	w.Flush()

	return buf.Bytes()
}
