package domain

import "encoding/json"

// ProviderStatus tags a provider result as exactly one of three shapes.
// Callers switch on the status instead of probing for optional keys.
type ProviderStatus string

// ReputationLabel classifies a fused score for human consumption.
type ReputationLabel string

const (
	// StatusOK means Data carries the provider's raw payload, unmodified.
	StatusOK ProviderStatus = "ok"

	// StatusUnconfigured is a first-class steady state: the source has no
	// credential and was intentionally skipped.
	StatusUnconfigured ProviderStatus = "unconfigured"

	// StatusError covers transport and parse failures. Err holds a short
	// diagnostic; the lookup proceeds with the remaining sources.
	StatusError ProviderStatus = "error"
)

const (
	LabelClean      ReputationLabel = "clean"      // score < 40
	LabelSuspicious ReputationLabel = "suspicious" // 40 <= score < 75
	LabelSpam       ReputationLabel = "spam"       // score >= 75
)

// ProviderResult is the tagged variant returned by every source adapter.
type ProviderResult struct {
	Source string          `json:"source"`
	Status ProviderStatus  `json:"status"`
	Data   json.RawMessage `json:"data,omitempty"`
	Note   string          `json:"note,omitempty"`
	Err    string          `json:"error,omitempty"`
}

// OKResult wraps a raw provider payload.
func OKResult(source string, data []byte) ProviderResult {
	return ProviderResult{Source: source, Status: StatusOK, Data: data}
}

// UnconfiguredResult marks a source that is disabled by configuration.
func UnconfiguredResult(source string) ProviderResult {
	return ProviderResult{Source: source, Status: StatusUnconfigured, Note: source + "_not_configured"}
}

// ErrorResult marks a transport or parse failure for one source.
func ErrorResult(source string, err error) ProviderResult {
	return ProviderResult{Source: source, Status: StatusError, Err: err.Error()}
}

// SourceScore is one entry of a reputation breakdown: the raw score a
// source contributed and its original, non-renormalized weight.
type SourceScore struct {
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
}

// ReputationResult is the fused 0..100 score with its audit trail.
// Label is a deterministic function of Score.
type ReputationResult struct {
	Score     float64                `json:"score"`
	Label     ReputationLabel        `json:"label"`
	Breakdown map[string]SourceScore `json:"breakdown"`
}

// Coordinates is a best-effort geocode of the provider-reported location.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CompositeLookupResult is the fully aggregated record for one number.
// It is created once per resolution and never mutated afterwards;
// callers that need fresh data re-run the lookup.
type CompositeLookupResult struct {
	Number          string                    `json:"number"`
	Providers       map[string]ProviderResult `json:"providers"`
	UserReportCount int                       `json:"user_report_count"`
	Reputation      ReputationResult          `json:"reputation"`
	Coordinates     *Coordinates              `json:"coordinates,omitempty"`
	LastLookupTS    int64                     `json:"last_lookup_ts"`
}

// Provider returns the slot for a source, or an unconfigured marker if
// the orchestrator never ran that source.
func (c *CompositeLookupResult) Provider(source string) ProviderResult {
	if r, ok := c.Providers[source]; ok {
		return r
	}
	return UnconfiguredResult(source)
}

// BatchResult reports per-number outcomes for whatever succeeded.
type BatchResult struct {
	Count   int                      `json:"count"`
	Results []*CompositeLookupResult `json:"results"`
}

// DocumentResult is a batch result plus the numbers recovered from the
// uploaded document, in first-seen order.
type DocumentResult struct {
	Count   int                      `json:"count"`
	Numbers []string                 `json:"numbers"`
	Results []*CompositeLookupResult `json:"results"`
}
