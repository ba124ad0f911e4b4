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

const fraudScoreDefaultURL = "https://www.ipqualityscore.com/api/json/phone"

// FraudScore queries a phone fraud-scoring API. The aggregator reads
// the numeric fraud_score field from its payload; everything else is
// passed through untouched.
type FraudScore struct {
	// BaseURL is overridable for tests.
	BaseURL string

	apiKey string
	httpSource
}

func NewFraudScore(apiKey string, store cache.Store, logger *zap.Logger, m *metrics.Metrics) *FraudScore {
	return &FraudScore{
		BaseURL: fraudScoreDefaultURL,
		apiKey:  apiKey,
		httpSource: httpSource{
			source:  "fraudscore",
			cache:   store,
			client:  newHTTPClient(),
			logger:  logger,
			metrics: m,
		},
	}
}

func (f *FraudScore) Source() string { return "fraudscore" }

func (f *FraudScore) Lookup(ctx context.Context, number string) domain.ProviderResult {
	if f.apiKey == "" {
		return domain.UnconfiguredResult(f.source)
	}

	endpoint := f.BaseURL + "/" + url.PathEscape(f.apiKey) + "/" + url.PathEscape(number)
	return f.fetchCached(ctx, number, endpoint, func(body []byte) error {
		if success := gjson.GetBytes(body, "success"); success.Exists() && !success.Bool() {
			return fmt.Errorf("fraudscore: %s", gjson.GetBytes(body, "message").String())
		}
		return nil
	})
}
