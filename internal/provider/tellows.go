package provider

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	"github.com/osintkit/phone-intel/internal/domain"
	"github.com/osintkit/phone-intel/internal/platform/cache"
	"github.com/osintkit/phone-intel/internal/platform/metrics"
)

const tellowsDefaultURL = "https://www.tellows.de/basic/num"

// Tellows queries the tellows community score for a number. Scores run
// 1 (trustworthy) to 9 (untrustworthy); the aggregator rescales them.
type Tellows struct {
	// BaseURL is overridable for tests.
	BaseURL string

	apiKey string
	httpSource
}

func NewTellows(apiKey string, store cache.Store, logger *zap.Logger, m *metrics.Metrics) *Tellows {
	return &Tellows{
		BaseURL: tellowsDefaultURL,
		apiKey:  apiKey,
		httpSource: httpSource{
			source:  "tellows",
			cache:   store,
			client:  newHTTPClient(),
			logger:  logger,
			metrics: m,
		},
	}
}

func (t *Tellows) Source() string { return "tellows" }

func (t *Tellows) Lookup(ctx context.Context, number string) domain.ProviderResult {
	if t.apiKey == "" {
		return domain.UnconfiguredResult(t.source)
	}

	params := url.Values{}
	params.Set("json", "1")
	params.Set("apikey", t.apiKey)

	endpoint := t.BaseURL + "/" + url.PathEscape(number) + "?" + params.Encode()
	return t.fetchCached(ctx, number, endpoint, nil)
}
