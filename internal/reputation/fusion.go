package reputation

import (
	"math"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/osintkit/phone-intel/internal/domain"
)

// Fixed fusion weights per source. Absent sources are excluded from
// both numerator and denominator, never counted as zero.
const (
	weightHeuristics  = 0.7
	weightFraudScore  = 0.2
	weightTellows     = 0.1
	weightUserReports = 0.3
)

// Source is one reputation signal entering the fusion.
type Source struct {
	Name   string
	Score  float64 // 0..100
	Weight float64 // > 0, original (non-renormalized)
}

// Fuse computes the weighted mean of the given sources with weights
// renormalized to sum to 1, rounds to one decimal, and labels the
// result. Duplicate source names beyond the first are ignored.
func Fuse(sources []Source) domain.ReputationResult {
	breakdown := make(map[string]domain.SourceScore, len(sources))

	var weighted, totalWeight float64
	for _, src := range sources {
		if _, dup := breakdown[src.Name]; dup {
			continue
		}
		breakdown[src.Name] = domain.SourceScore{Score: src.Score, Weight: src.Weight}
		weighted += src.Score * src.Weight
		totalWeight += src.Weight
	}

	var overall float64
	if totalWeight > 0 {
		overall = weighted / totalWeight
	}
	overall = math.Round(overall*10) / 10

	return domain.ReputationResult{
		Score:     overall,
		Label:     Label(overall),
		Breakdown: breakdown,
	}
}

// Label maps a fused score to its classification. Monotonic in score.
func Label(score float64) domain.ReputationLabel {
	switch {
	case score >= 75:
		return domain.LabelSpam
	case score >= 40:
		return domain.LabelSuspicious
	default:
		return domain.LabelClean
	}
}

// Aggregate fuses whatever sources are available for one number.
// Heuristics always contribute, even over an absent validation payload.
// Secondary sources contribute only when their payload carries a
// recognizable numeric score; malformed fields are silently excluded.
func Aggregate(numverify, fraud, tellows domain.ProviderResult, userReportCount int) domain.ReputationResult {
	var payload []byte
	if numverify.Status == domain.StatusOK {
		payload = numverify.Data
	}

	sources := []Source{
		{Name: "heuristics", Score: HeuristicScore(payload), Weight: weightHeuristics},
	}

	if fraud.Status == domain.StatusOK {
		if f, ok := numericField(fraud.Data, "fraud_score"); ok {
			sources = append(sources, Source{Name: "fraudscore", Score: f, Weight: weightFraudScore})
		}
	}

	if tellows.Status == domain.StatusOK {
		if raw, ok := numericField(tellows.Data, "score"); ok {
			// Tellows scores run 1..9; rescale to 0..100.
			sources = append(sources, Source{
				Name:   "tellows",
				Score:  (raw - 1.0) / 8.0 * 100.0,
				Weight: weightTellows,
			})
		}
	}

	if userReportCount > 0 {
		sources = append(sources, Source{
			Name:   "user_reports",
			Score:  math.Min(90, float64(userReportCount)*30),
			Weight: weightUserReports,
		})
	}

	return Fuse(sources)
}

// numericField extracts a float from a JSON field, accepting numbers
// and numeric strings, which is how upstream APIs deliver scores.
func numericField(payload []byte, path string) (float64, bool) {
	v := gjson.GetBytes(payload, path)
	switch v.Type {
	case gjson.Number:
		return v.Float(), true
	case gjson.String:
		f, err := strconv.ParseFloat(v.Str, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
