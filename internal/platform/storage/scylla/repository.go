package scylla

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/osintkit/phone-intel/internal/domain"
	"github.com/osintkit/phone-intel/internal/service"
)

// reportTTLSeconds expires raw reports after ~18 months so stale
// reports stop feeding reputation counts.
const reportTTLSeconds = 47304000

type scyllaRepository struct {
	session *gocql.Session
}

func NewScyllaRepository(session *gocql.Session) service.Repository {
	return &scyllaRepository{
		session: session,
	}
}

func Connect(keyspace string, hosts ...string) (*gocql.Session, error) {
	cluster := gocql.NewCluster(hosts...)
	cluster.Keyspace = keyspace
	cluster.Consistency = gocql.Quorum
	cluster.ProtoVersion = 4
	cluster.Timeout = 5 * time.Second
	cluster.ConnectTimeout = 5 * time.Second

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to scylla: %w", err)
	}

	log.Println("✅ Connected to ScyllaDB")
	return session, nil
}

// SaveLookup stores the aggregated record twice: an upsert into lookups
// (latest state per number, what exports read) and an append into
// lookup_history, alongside the few columns history queries filter on.
func (r *scyllaRepository) SaveLookup(ctx context.Context, res *domain.CompositeLookupResult) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("scylla: failed to encode lookup: %w", err)
	}

	var country, carrier string
	if nv := res.Provider("numverify"); nv.Status == domain.StatusOK {
		country = gjson.GetBytes(nv.Data, "country_name").String()
		carrier = gjson.GetBytes(nv.Data, "carrier").String()
	}

	latest := `
        INSERT INTO lookups (number, country, carrier, score, label, payload, last_lookup_ts)
        VALUES (?, ?, ?, ?, ?, ?, ?)`

	err = r.session.Query(latest,
		res.Number,
		country,
		carrier,
		res.Reputation.Score,
		string(res.Reputation.Label),
		string(payload),
		res.LastLookupTS,
	).WithContext(ctx).Exec()

	if err != nil {
		return fmt.Errorf("scylla: failed to save lookup: %w", err)
	}

	history := `
        INSERT INTO lookup_history (number, looked_up_at, country, carrier, payload)
        VALUES (?, ?, ?, ?, ?)`

	err = r.session.Query(history,
		res.Number,
		gocql.UUIDFromTime(time.Unix(res.LastLookupTS, 0)),
		country,
		carrier,
		string(payload),
	).WithContext(ctx).Exec()

	if err != nil {
		return fmt.Errorf("scylla: failed to append lookup history: %w", err)
	}

	return nil
}

func (r *scyllaRepository) History(ctx context.Context, filter service.HistoryFilter) ([]*domain.CompositeLookupResult, error) {
	query := "SELECT payload FROM lookup_history"
	var args []interface{}

	// Country and carrier are plain columns, so filtered scans need
	// ALLOW FILTERING. Acceptable at this table's cardinality.
	switch {
	case filter.Country != "" && filter.Carrier != "":
		query += " WHERE country = ? AND carrier = ? LIMIT ? ALLOW FILTERING"
		args = append(args, filter.Country, filter.Carrier, filter.Limit)
	case filter.Country != "":
		query += " WHERE country = ? LIMIT ? ALLOW FILTERING"
		args = append(args, filter.Country, filter.Limit)
	case filter.Carrier != "":
		query += " WHERE carrier = ? LIMIT ? ALLOW FILTERING"
		args = append(args, filter.Carrier, filter.Limit)
	default:
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	iter := r.session.Query(query, args...).WithContext(ctx).Iter()

	results, err := decodeLookups(iter)
	if err != nil {
		return nil, fmt.Errorf("scylla: failed to iterate history: %w", err)
	}
	return results, nil
}

func (r *scyllaRepository) LookupsByNumbers(ctx context.Context, phoneNumbers []string) ([]*domain.CompositeLookupResult, error) {
	query := "SELECT payload FROM lookups WHERE number IN ?"

	iter := r.session.Query(query, phoneNumbers).WithContext(ctx).Iter()

	results, err := decodeLookups(iter)
	if err != nil {
		return nil, fmt.Errorf("scylla: failed to fetch lookups: %w", err)
	}
	return results, nil
}

func decodeLookups(iter *gocql.Iter) ([]*domain.CompositeLookupResult, error) {
	var results []*domain.CompositeLookupResult
	var payload string

	for iter.Scan(&payload) {
		var res domain.CompositeLookupResult
		if err := json.Unmarshal([]byte(payload), &res); err != nil {
			continue
		}
		results = append(results, &res)
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *scyllaRepository) SaveReport(ctx context.Context, report *domain.Report) error {
	query := `
        INSERT INTO reports (id, phone_number, country_code, reporter_hash, category, comment, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?) USING TTL ?`

	err := r.session.Query(query,
		report.ID.String(),
		report.PhoneNumber,
		report.CountryCode,
		report.ReporterHash,
		string(report.Category),
		report.Comment,
		report.CreatedAt,
		reportTTLSeconds,
	).WithContext(ctx).Exec()

	if err != nil {
		return fmt.Errorf("scylla: failed to save report: %w", err)
	}

	return nil
}

func (r *scyllaRepository) CountReports(ctx context.Context, phoneNumber string) (int, error) {
	query := "SELECT COUNT(*) FROM reports WHERE phone_number = ?"

	var count int
	err := r.session.Query(query, phoneNumber).WithContext(ctx).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("scylla: failed to count reports: %w", err)
	}

	return count, nil
}

// GetReports returns the raw reports for a number, newest first.
func (r *scyllaRepository) GetReports(ctx context.Context, phoneNumber string) ([]*domain.Report, error) {
	query := `SELECT id, phone_number, country_code, reporter_hash, category, comment, created_at
	          FROM reports WHERE phone_number = ?`

	iter := r.session.Query(query, phoneNumber).WithContext(ctx).Iter()

	var reports []*domain.Report
	var id gocql.UUID
	var phone, country, hash, catStr, comment string
	var createdAt time.Time

	for iter.Scan(&id, &phone, &country, &hash, &catStr, &comment, &createdAt) {
		parsedID, _ := uuid.Parse(id.String())
		reports = append(reports, &domain.Report{
			ID:           parsedID,
			PhoneNumber:  phone,
			CountryCode:  country,
			ReporterHash: hash,
			Category:     domain.ReportCategory(catStr),
			Comment:      comment,
			CreatedAt:    createdAt,
		})
	}

	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("scylla: failed to iterate reports: %w", err)
	}

	return reports, nil
}

func (r *scyllaRepository) UpsertFavorite(ctx context.Context, f *domain.Favorite) error {
	query := `
        INSERT INTO favorites (number, note, created_at)
        VALUES (?, ?, ?)`

	err := r.session.Query(query, f.Number, f.Note, f.CreatedAt).WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("scylla: failed to upsert favorite: %w", err)
	}

	return nil
}

func (r *scyllaRepository) DeleteFavorite(ctx context.Context, phoneNumber string) error {
	err := r.session.Query("DELETE FROM favorites WHERE number = ?", phoneNumber).WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("scylla: failed to delete favorite: %w", err)
	}

	return nil
}

func (r *scyllaRepository) ListFavorites(ctx context.Context) ([]*domain.Favorite, error) {
	iter := r.session.Query("SELECT number, note, created_at FROM favorites").WithContext(ctx).Iter()

	var favorites []*domain.Favorite
	var number, note string
	var createdAt time.Time

	for iter.Scan(&number, &note, &createdAt) {
		favorites = append(favorites, &domain.Favorite{
			Number:    number,
			Note:      note,
			CreatedAt: createdAt,
		})
	}

	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("scylla: failed to iterate favorites: %w", err)
	}

	return favorites, nil
}
