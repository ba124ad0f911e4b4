package service

import (
	"context"

	"github.com/osintkit/phone-intel/internal/domain"
)

type Service interface {
	Lookup(ctx context.Context, phoneNumber string) (*domain.CompositeLookupResult, error)

	BatchLookup(ctx context.Context, phoneNumbers []string) (*domain.BatchResult, error)

	LookupDocument(ctx context.Context, pdfData []byte) (*domain.DocumentResult, error)

	History(ctx context.Context, filter HistoryFilter) ([]*domain.CompositeLookupResult, error)

	LookupsByNumbers(ctx context.Context, phoneNumbers []string) ([]*domain.CompositeLookupResult, error)

	IngestReport(ctx context.Context, rawPhone, rawReporter, category, comment string) error

	ReportsFor(ctx context.Context, phoneNumber string) ([]*domain.Report, error)

	SaveFavorite(ctx context.Context, phoneNumber, note string) error

	RemoveFavorite(ctx context.Context, phoneNumber string) error

	Favorites(ctx context.Context) ([]*domain.Favorite, error)
}
