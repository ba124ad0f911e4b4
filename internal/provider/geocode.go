package provider

import (
	"context"
	"io"
	"net/url"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/osintkit/phone-intel/internal/domain"
)

const openCageDefaultURL = "https://api.opencagedata.com/geocode/v1/json"

// Geocoder resolves a free-text location to coordinates via OpenCage.
// It is strictly best-effort: no key, no match, or transport trouble
// all yield nil, never an aborted lookup.
type Geocoder struct {
	// BaseURL is overridable for tests.
	BaseURL string

	apiKey string
	client *retryablehttp.Client
	logger *zap.Logger
}

func NewGeocoder(apiKey string, logger *zap.Logger) *Geocoder {
	return &Geocoder{
		BaseURL: openCageDefaultURL,
		apiKey:  apiKey,
		client:  newHTTPClient(),
		logger:  logger,
	}
}

func (g *Geocoder) Geocode(ctx context.Context, city, country string) *domain.Coordinates {
	if g.apiKey == "" || city == "" {
		return nil
	}

	query := city
	if country != "" {
		query = city + ", " + country
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("key", g.apiKey)
	params.Set("limit", "1")

	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", g.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Debug("geocode request failed", zap.String("query", query), zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}

	geometry := gjson.GetBytes(body, "results.0.geometry")
	if !geometry.Exists() {
		return nil
	}

	return &domain.Coordinates{
		Lat: geometry.Get("lat").Float(),
		Lng: geometry.Get("lng").Float(),
	}
}
