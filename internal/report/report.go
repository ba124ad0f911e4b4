// Package report renders aggregated lookup rows into export payloads.
// Renderers are pure functions over already-aggregated data; they never
// touch the lookup pipeline.
package report

import (
	"github.com/tidwall/gjson"

	"github.com/osintkit/phone-intel/internal/domain"
)

// row flattens one composite result to the fields both renderers print.
type row struct {
	Number   string
	Country  string
	Carrier  string
	Location string
	Score    float64
	Label    string
}

func flatten(res *domain.CompositeLookupResult) row {
	nv := res.Provider("numverify")

	r := row{
		Number: res.Number,
		Score:  res.Reputation.Score,
		Label:  string(res.Reputation.Label),
	}
	if nv.Status == domain.StatusOK {
		r.Country = gjson.GetBytes(nv.Data, "country_name").String()
		r.Carrier = gjson.GetBytes(nv.Data, "carrier").String()
		r.Location = gjson.GetBytes(nv.Data, "location").String()
	}
	return r
}
