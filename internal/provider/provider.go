package provider

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/osintkit/phone-intel/internal/domain"
	"github.com/osintkit/phone-intel/internal/platform/cache"
	"github.com/osintkit/phone-intel/internal/platform/metrics"
)

// requestTimeout bounds every outbound call. Exceeding it is a
// transport failure, not a hang.
const requestTimeout = 8 * time.Second

// Client is a per-source lookup adapter. Lookup never returns a Go
// error: configuration absence and transport failures come back as the
// corresponding ProviderResult variant.
type Client interface {
	Source() string
	Lookup(ctx context.Context, number string) domain.ProviderResult
}

func newHTTPClient() *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.HTTPClient.Timeout = requestTimeout
	client.Logger = nil
	return client
}

// httpSource carries the machinery shared by all HTTP-backed adapters:
// a cache guard keyed "<source>:<number>", the retrying client, and
// instrumentation. Only successful payloads are cached.
type httpSource struct {
	source  string
	cache   cache.Store
	client  *retryablehttp.Client
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func (h *httpSource) fetchCached(ctx context.Context, number, url string, check func([]byte) error) domain.ProviderResult {
	key := cache.Key(h.source, number)
	if data, ok := h.cache.Get(ctx, key); ok {
		h.metrics.IncrementProviderCall(h.source, "cache_hit")
		return domain.OKResult(h.source, data)
	}

	body, err := h.get(ctx, url)
	if err == nil && check != nil {
		err = check(body)
	}
	if err != nil {
		h.logger.Warn("provider call failed",
			zap.String("source", h.source),
			zap.String("number", number),
			zap.Error(err))
		h.metrics.IncrementProviderCall(h.source, string(domain.StatusError))
		return domain.ErrorResult(h.source, err)
	}

	h.cache.Set(ctx, key, body)
	h.metrics.IncrementProviderCall(h.source, string(domain.StatusOK))
	return domain.OKResult(h.source, body)
}

func (h *httpSource) get(ctx context.Context, url string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", h.source, err)
	}

	start := time.Now()
	resp, err := h.client.Do(req)
	h.metrics.ObserveProviderLatency(h.source, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w", h.source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("%s: unexpected status %d", h.source, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", h.source, err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%s: malformed JSON response", h.source)
	}
	return body, nil
}
