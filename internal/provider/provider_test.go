package provider_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/osintkit/phone-intel/internal/domain"
	"github.com/osintkit/phone-intel/internal/platform/cache"
	"github.com/osintkit/phone-intel/internal/provider"
)

func TestNumverifyUnconfiguredWithoutKey(t *testing.T) {
	n := provider.NewNumverify("", cache.NewMemoryStore(time.Hour), zap.NewNop(), nil)

	res := n.Lookup(context.Background(), "+56912345678")

	assert.Equal(t, domain.StatusUnconfigured, res.Status)
	assert.Equal(t, "numverify", res.Source)
	assert.Empty(t, res.Err)
}

func TestNumverifySuccessPassesPayloadThrough(t *testing.T) {
	payload := `{"valid":true,"line_type":"mobile","carrier":"Entel","country_name":"Chile","location":"Santiago"}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "+56912345678", r.URL.Query().Get("number"))
		assert.Equal(t, "test-key", r.URL.Query().Get("access_key"))
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	n := provider.NewNumverify("test-key", cache.NewMemoryStore(time.Hour), zap.NewNop(), nil)
	n.BaseURL = srv.URL

	res := n.Lookup(context.Background(), "+56912345678")

	require.Equal(t, domain.StatusOK, res.Status)
	assert.JSONEq(t, payload, string(res.Data))
}

func TestNumverifySecondLookupServedFromCache(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"valid":true,"line_type":"landline"}`))
	}))
	defer srv.Close()

	n := provider.NewNumverify("test-key", cache.NewMemoryStore(time.Hour), zap.NewNop(), nil)
	n.BaseURL = srv.URL

	first := n.Lookup(context.Background(), "+14155552671")
	second := n.Lookup(context.Background(), "+14155552671")

	assert.Equal(t, 1, hits, "second call must be cache-guarded")
	assert.Equal(t, first.Data, second.Data)
}

func TestNumverifyAPILevelFailureIsErrorMarker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error":{"info":"invalid access key"}}`))
	}))
	defer srv.Close()

	n := provider.NewNumverify("bad-key", cache.NewMemoryStore(time.Hour), zap.NewNop(), nil)
	n.BaseURL = srv.URL

	res := n.Lookup(context.Background(), "+14155552671")

	assert.Equal(t, domain.StatusError, res.Status)
	assert.Contains(t, res.Err, "invalid access key")
}

func TestNumverifyHTTPFailureIsErrorMarker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	n := provider.NewNumverify("test-key", cache.NewMemoryStore(time.Hour), zap.NewNop(), nil)
	n.BaseURL = srv.URL

	res := n.Lookup(context.Background(), "+14155552671")

	assert.Equal(t, domain.StatusError, res.Status)
	assert.NotEmpty(t, res.Err)
}

func TestNumverifyErrorsAreNotCached(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		// 400 is not retried by the client, so each Lookup is one hit.
		if hits == 1 {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"valid":true}`))
	}))
	defer srv.Close()

	n := provider.NewNumverify("test-key", cache.NewMemoryStore(time.Hour), zap.NewNop(), nil)
	n.BaseURL = srv.URL

	first := n.Lookup(context.Background(), "+14155552671")
	assert.Equal(t, domain.StatusError, first.Status)

	second := n.Lookup(context.Background(), "+14155552671")
	assert.Equal(t, domain.StatusOK, second.Status)
}

func TestFraudScoreUnconfiguredWithoutKey(t *testing.T) {
	f := provider.NewFraudScore("", cache.NewMemoryStore(time.Hour), zap.NewNop(), nil)

	res := f.Lookup(context.Background(), "+14155552671")

	assert.Equal(t, domain.StatusUnconfigured, res.Status)
}

func TestFraudScoreSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"fraud_score":85}`))
	}))
	defer srv.Close()

	f := provider.NewFraudScore("test-key", cache.NewMemoryStore(time.Hour), zap.NewNop(), nil)
	f.BaseURL = srv.URL

	res := f.Lookup(context.Background(), "+14155552671")

	require.Equal(t, domain.StatusOK, res.Status)
	assert.Contains(t, string(res.Data), "fraud_score")
}

func TestTwilioAlwaysUnconfigured(t *testing.T) {
	res := provider.NewTwilio().Lookup(context.Background(), "+14155552671")

	assert.Equal(t, domain.StatusUnconfigured, res.Status)
	assert.Equal(t, "twilio_not_configured", res.Note)
}

func TestGeocoderBestEffort(t *testing.T) {
	t.Run("no key yields nil", func(t *testing.T) {
		g := provider.NewGeocoder("", zap.NewNop())
		assert.Nil(t, g.Geocode(context.Background(), "Santiago", "Chile"))
	})

	t.Run("empty city yields nil", func(t *testing.T) {
		g := provider.NewGeocoder("test-key", zap.NewNop())
		assert.Nil(t, g.Geocode(context.Background(), "", "Chile"))
	})

	t.Run("match yields coordinates", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Santiago, Chile", r.URL.Query().Get("q"))
			w.Write([]byte(`{"results":[{"geometry":{"lat":-33.45,"lng":-70.66}}]}`))
		}))
		defer srv.Close()

		g := provider.NewGeocoder("test-key", zap.NewNop())
		g.BaseURL = srv.URL

		coords := g.Geocode(context.Background(), "Santiago", "Chile")
		require.NotNil(t, coords)
		assert.Equal(t, -33.45, coords.Lat)
		assert.Equal(t, -70.66, coords.Lng)
	})

	t.Run("no match yields nil", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results":[]}`))
		}))
		defer srv.Close()

		g := provider.NewGeocoder("test-key", zap.NewNop())
		g.BaseURL = srv.URL

		assert.Nil(t, g.Geocode(context.Background(), "Nowhereville", ""))
	})
}
