package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/osintkit/phone-intel/internal/domain"
	"github.com/osintkit/phone-intel/internal/extract"
	"github.com/osintkit/phone-intel/internal/platform/cache"
	"github.com/osintkit/phone-intel/internal/platform/metrics"
	"github.com/osintkit/phone-intel/internal/provider"
	"github.com/osintkit/phone-intel/internal/reputation"
)

const (
	// compositeNamespace prefixes cache keys for fully aggregated results,
	// keeping them apart from the per-source payload cache.
	compositeNamespace = "composite"

	// batchConcurrency bounds parallel composite lookups in a batch. Each
	// lookup already fans out to every provider internally.
	batchConcurrency = 4

	defaultHistoryLimit = 100
)

var ErrMissingNumber = errors.New("phone number is required")

// intelService is the concrete implementation of the Service interface.
// It is unexported (starts with lowercase) to force usage of the Interface.
type intelService struct {
	repo       Repository
	cache      cache.Store
	clients    []provider.Client
	geocoder   *provider.Geocoder
	saltSecret string
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewService is the constructor.
// It initializes the logic layer with its necessary dependencies.
func NewService(
	repo Repository,
	store cache.Store,
	clients []provider.Client,
	geocoder *provider.Geocoder,
	salt string,
	logger *zap.Logger,
	m *metrics.Metrics,
) Service {
	return &intelService{
		repo:       repo,
		cache:      store,
		clients:    clients,
		geocoder:   geocoder,
		saltSecret: salt,
		logger:     logger,
		metrics:    m,
	}
}

// Lookup resolves one number end to end: cache check, provider fan-out,
// reputation fusion, geocoding, persistence, cache write.
func (s *intelService) Lookup(ctx context.Context, phoneNumber string) (*domain.CompositeLookupResult, error) {
	phoneNumber = strings.TrimSpace(phoneNumber)
	if phoneNumber == "" {
		return nil, ErrMissingNumber
	}

	// Raw fallback keeps non-canonical inputs resolvable; providers see
	// the same string the cache is keyed on.
	canonical, _ := extract.Canonicalize(phoneNumber)

	key := cache.Key(compositeNamespace, canonical)
	if data, ok := s.cache.Get(ctx, key); ok {
		var cached domain.CompositeLookupResult
		if err := json.Unmarshal(data, &cached); err == nil {
			s.metrics.IncrementLookup("cache_hit")
			return &cached, nil
		}
		s.logger.Warn("discarding corrupt cache entry", zap.String("key", key))
	}

	results := make([]domain.ProviderResult, len(s.clients))
	var g errgroup.Group
	for i, client := range s.clients {
		g.Go(func() error {
			results[i] = client.Lookup(ctx, canonical)
			return nil
		})
	}
	g.Wait()

	providers := make(map[string]domain.ProviderResult, len(results))
	for _, res := range results {
		providers[res.Source] = res
	}

	composite := &domain.CompositeLookupResult{
		Number:       canonical,
		Providers:    providers,
		LastLookupTS: time.Now().Unix(),
	}

	count, err := s.repo.CountReports(ctx, canonical)
	if err != nil {
		s.logger.Warn("report count unavailable", zap.String("number", canonical), zap.Error(err))
		count = 0
	}
	composite.UserReportCount = count

	composite.Reputation = reputation.Aggregate(
		composite.Provider("numverify"),
		composite.Provider("fraudscore"),
		composite.Provider("tellows"),
		count,
	)

	composite.Coordinates = s.geocode(ctx, composite.Provider("numverify"))

	if err := s.repo.SaveLookup(ctx, composite); err != nil {
		s.logger.Warn("lookup persistence failed", zap.String("number", canonical), zap.Error(err))
	}

	if data, err := json.Marshal(composite); err == nil {
		s.cache.Set(ctx, key, data)
	}

	s.metrics.IncrementLookup("resolved")
	return composite, nil
}

// geocode derives coordinates from the validation payload. Best-effort:
// any missing piece yields nil coordinates, never a failed lookup.
func (s *intelService) geocode(ctx context.Context, numverify domain.ProviderResult) *domain.Coordinates {
	if s.geocoder == nil || numverify.Status != domain.StatusOK {
		return nil
	}

	city := gjson.GetBytes(numverify.Data, "location").String()
	country := gjson.GetBytes(numverify.Data, "country_name").String()
	return s.geocoder.Geocode(ctx, city, country)
}

// BatchLookup resolves many numbers with bounded concurrency. A number
// that fails is logged and skipped; the rest of the batch proceeds.
func (s *intelService) BatchLookup(ctx context.Context, phoneNumbers []string) (*domain.BatchResult, error) {
	slots := make([]*domain.CompositeLookupResult, len(phoneNumbers))

	var g errgroup.Group
	g.SetLimit(batchConcurrency)
	for i, number := range phoneNumbers {
		g.Go(func() error {
			res, err := s.Lookup(ctx, number)
			if err != nil {
				s.logger.Warn("batch entry skipped", zap.String("number", number), zap.Error(err))
				return nil
			}
			slots[i] = res
			return nil
		})
	}
	g.Wait()

	results := make([]*domain.CompositeLookupResult, 0, len(slots))
	for _, res := range slots {
		if res != nil {
			results = append(results, res)
		}
	}

	return &domain.BatchResult{Count: len(results), Results: results}, nil
}

// LookupDocument extracts phone numbers from a PDF and resolves each.
func (s *intelService) LookupDocument(ctx context.Context, pdfData []byte) (*domain.DocumentResult, error) {
	numbers := extract.FromPDF(pdfData)

	batch, err := s.BatchLookup(ctx, numbers)
	if err != nil {
		return nil, err
	}

	return &domain.DocumentResult{
		Count:   batch.Count,
		Numbers: numbers,
		Results: batch.Results,
	}, nil
}

func (s *intelService) History(ctx context.Context, filter HistoryFilter) ([]*domain.CompositeLookupResult, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultHistoryLimit
	}
	return s.repo.History(ctx, filter)
}

func (s *intelService) LookupsByNumbers(ctx context.Context, phoneNumbers []string) ([]*domain.CompositeLookupResult, error) {
	if len(phoneNumbers) == 0 {
		return nil, nil
	}
	return s.repo.LookupsByNumbers(ctx, phoneNumbers)
}

func (s *intelService) SaveFavorite(ctx context.Context, phoneNumber, note string) error {
	phoneNumber = strings.TrimSpace(phoneNumber)
	if phoneNumber == "" {
		return ErrMissingNumber
	}

	canonical, _ := extract.Canonicalize(phoneNumber)
	return s.repo.UpsertFavorite(ctx, &domain.Favorite{
		Number:    canonical,
		Note:      note,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *intelService) RemoveFavorite(ctx context.Context, phoneNumber string) error {
	phoneNumber = strings.TrimSpace(phoneNumber)
	if phoneNumber == "" {
		return ErrMissingNumber
	}

	canonical, _ := extract.Canonicalize(phoneNumber)
	return s.repo.DeleteFavorite(ctx, canonical)
}

func (s *intelService) Favorites(ctx context.Context) ([]*domain.Favorite, error) {
	return s.repo.ListFavorites(ctx)
}
