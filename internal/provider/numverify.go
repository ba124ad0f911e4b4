package provider

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/osintkit/phone-intel/internal/domain"
	"github.com/osintkit/phone-intel/internal/platform/cache"
	"github.com/osintkit/phone-intel/internal/platform/metrics"
)

const numverifyDefaultURL = "http://apilayer.net/api/validate"

// Numverify validates numbers against the apilayer NumVerify API. Its
// payload carries the line_type, carrier, country and location fields
// the heuristics and the geocoder consume.
type Numverify struct {
	// BaseURL is overridable for tests.
	BaseURL string

	apiKey string
	httpSource
}

func NewNumverify(apiKey string, store cache.Store, logger *zap.Logger, m *metrics.Metrics) *Numverify {
	return &Numverify{
		BaseURL: numverifyDefaultURL,
		apiKey:  apiKey,
		httpSource: httpSource{
			source:  "numverify",
			cache:   store,
			client:  newHTTPClient(),
			logger:  logger,
			metrics: m,
		},
	}
}

func (n *Numverify) Source() string { return "numverify" }

func (n *Numverify) Lookup(ctx context.Context, number string) domain.ProviderResult {
	if n.apiKey == "" {
		return domain.UnconfiguredResult(n.source)
	}

	params := url.Values{}
	params.Set("access_key", n.apiKey)
	params.Set("number", number)

	return n.fetchCached(ctx, number, n.BaseURL+"?"+params.Encode(), checkNumverify)
}

// checkNumverify rejects API-level failures, which NumVerify reports
// with HTTP 200 and a success:false envelope.
func checkNumverify(body []byte) error {
	if success := gjson.GetBytes(body, "success"); success.Exists() && !success.Bool() {
		info := gjson.GetBytes(body, "error.info").String()
		if info == "" {
			info = "request rejected"
		}
		return fmt.Errorf("numverify: %s", info)
	}
	return nil
}
