package reputation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osintkit/phone-intel/internal/domain"
	"github.com/osintkit/phone-intel/internal/reputation"
)

func TestFuseSingleSourceEqualsItsScore(t *testing.T) {
	res := reputation.Fuse([]reputation.Source{
		{Name: "heuristics", Score: 62.5, Weight: 0.7},
	})

	assert.Equal(t, 62.5, res.Score, "renormalized weight of a lone source is 1.0")
	assert.Equal(t, domain.LabelSuspicious, res.Label)
	assert.Equal(t, 0.7, res.Breakdown["heuristics"].Weight, "breakdown keeps the original weight")
}

func TestFuseTwoSourceExample(t *testing.T) {
	res := reputation.Fuse([]reputation.Source{
		{Name: "heuristics", Score: 30, Weight: 0.7},
		{Name: "fraudscore", Score: 80, Weight: 0.2},
	})

	// (30*0.7 + 80*0.2) / 0.9 = 370/9 = 41.111..., rounded to one decimal.
	assert.Equal(t, 41.1, res.Score)
	assert.Equal(t, domain.LabelSuspicious, res.Label)

	require.Len(t, res.Breakdown, 2)
	assert.Equal(t, domain.SourceScore{Score: 30, Weight: 0.7}, res.Breakdown["heuristics"])
	assert.Equal(t, domain.SourceScore{Score: 80, Weight: 0.2}, res.Breakdown["fraudscore"])
}

func TestFuseDuplicateSourceNamesIgnored(t *testing.T) {
	res := reputation.Fuse([]reputation.Source{
		{Name: "heuristics", Score: 10, Weight: 0.7},
		{Name: "heuristics", Score: 90, Weight: 0.7},
	})

	assert.Equal(t, 10.0, res.Score)
	assert.Len(t, res.Breakdown, 1)
}

func TestLabelBoundaries(t *testing.T) {
	cases := []struct {
		score    float64
		expected domain.ReputationLabel
	}{
		{74.9, domain.LabelSuspicious},
		{75.0, domain.LabelSpam},
		{39.9, domain.LabelClean},
		{40.0, domain.LabelSuspicious},
		{0, domain.LabelClean},
		{100, domain.LabelSpam},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, reputation.Label(tc.score), "score %.1f", tc.score)
	}
}

func TestAggregateAllSources(t *testing.T) {
	numverify := domain.OKResult("numverify", []byte(`{"line_type":"voip","carrier":"CloudCalls"}`))
	fraud := domain.OKResult("fraudscore", []byte(`{"fraud_score":85}`))
	tellows := domain.OKResult("tellows", []byte(`{"score":9}`))

	res := reputation.Aggregate(numverify, fraud, tellows, 2)

	require.Len(t, res.Breakdown, 4)
	assert.Equal(t, 45.0, res.Breakdown["heuristics"].Score)
	assert.Equal(t, 85.0, res.Breakdown["fraudscore"].Score)
	assert.Equal(t, 100.0, res.Breakdown["tellows"].Score, "tellows 9 rescales to 100")
	assert.Equal(t, 60.0, res.Breakdown["user_reports"].Score, "2 reports * 30")

	// (45*0.7 + 85*0.2 + 100*0.1 + 60*0.3) / 1.3 = 76.5/1.3 = 58.846...
	assert.Equal(t, 58.8, res.Score)
	assert.Equal(t, domain.LabelSuspicious, res.Label)
}

func TestAggregateUserReportScoreCapsAt90(t *testing.T) {
	res := reputation.Aggregate(
		domain.UnconfiguredResult("numverify"),
		domain.UnconfiguredResult("fraudscore"),
		domain.UnconfiguredResult("tellows"),
		10,
	)

	assert.Equal(t, 90.0, res.Breakdown["user_reports"].Score)
}

func TestAggregateMalformedScoreFieldExcluded(t *testing.T) {
	fraud := domain.OKResult("fraudscore", []byte(`{"fraud_score":"n/a"}`))

	res := reputation.Aggregate(
		domain.UnconfiguredResult("numverify"),
		fraud,
		domain.UnconfiguredResult("tellows"),
		0,
	)

	_, present := res.Breakdown["fraudscore"]
	assert.False(t, present, "non-numeric score field must be excluded, not treated as zero")
	assert.Equal(t, 30.0, res.Score, "heuristics floor remains the only source")
}

func TestAggregateNumericStringScoreAccepted(t *testing.T) {
	fraud := domain.OKResult("fraudscore", []byte(`{"fraud_score":"80"}`))

	res := reputation.Aggregate(
		domain.UnconfiguredResult("numverify"),
		fraud,
		domain.UnconfiguredResult("tellows"),
		0,
	)

	assert.Equal(t, 80.0, res.Breakdown["fraudscore"].Score)
	assert.Equal(t, 41.1, res.Score)
}

func TestAggregateZeroConfiguredProviders(t *testing.T) {
	res := reputation.Aggregate(
		domain.UnconfiguredResult("numverify"),
		domain.UnconfiguredResult("fraudscore"),
		domain.UnconfiguredResult("tellows"),
		0,
	)

	require.Len(t, res.Breakdown, 1)
	assert.Equal(t, 30.0, res.Score)
	assert.Equal(t, domain.LabelClean, res.Label)
}
