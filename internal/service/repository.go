package service

import (
	"context"

	"github.com/osintkit/phone-intel/internal/domain"
)

// HistoryFilter narrows a history query. Zero values mean "any";
// Limit <= 0 falls back to the repository default.
type HistoryFilter struct {
	Country string
	Carrier string
	Limit   int
}

type Repository interface {
	SaveLookup(ctx context.Context, res *domain.CompositeLookupResult) error

	History(ctx context.Context, filter HistoryFilter) ([]*domain.CompositeLookupResult, error)

	LookupsByNumbers(ctx context.Context, phoneNumbers []string) ([]*domain.CompositeLookupResult, error)

	SaveReport(ctx context.Context, r *domain.Report) error

	GetReports(ctx context.Context, phoneNumber string) ([]*domain.Report, error)

	CountReports(ctx context.Context, phoneNumber string) (int, error)

	UpsertFavorite(ctx context.Context, f *domain.Favorite) error

	DeleteFavorite(ctx context.Context, phoneNumber string) error

	ListFavorites(ctx context.Context) ([]*domain.Favorite, error)
}
