package reputation

import (
	"strings"

	"github.com/tidwall/gjson"
)

// lineTypeScores maps line-type keywords to base scores. When several
// keywords match, the highest score wins; scores are never summed.
var lineTypeScores = []struct {
	keyword string
	score   float64
}{
	{"premium rate", 90},
	{"premium_rate", 90},
	{"satellite", 80},
	{"voip", 45},
	{"unknown", 30},
	{"mobile", 10},
	{"landline", 5},
}

// suspiciousCarrierKeywords raise the score to at least 70 when found
// in the carrier name.
var suspiciousCarrierKeywords = []string{"premium", "scam", "telemarketing", "spam"}

// badPrefixIncrements adds a bounded increment for known-bad number
// prefixes, capped at 100. The rule only ever raises the score.
var badPrefixIncrements = map[string]float64{
	"+91140": 30,
}

// HeuristicScore derives a 0..100 score from a single validation
// payload. It is a pure function of the payload: an empty or nil
// payload yields the blank-line-type floor of 30.
func HeuristicScore(payload []byte) float64 {
	lineType := strings.ToLower(gjson.GetBytes(payload, "line_type").String())
	carrier := strings.ToLower(gjson.GetBytes(payload, "carrier").String())

	score := 0.0
	if lineType == "" {
		score = 30
	}
	for _, lt := range lineTypeScores {
		if strings.Contains(lineType, lt.keyword) && lt.score > score {
			score = lt.score
		}
	}

	for _, kw := range suspiciousCarrierKeywords {
		if strings.Contains(carrier, kw) && score < 70 {
			score = 70
		}
	}

	e164 := gjson.GetBytes(payload, "international").String()
	if e164 == "" {
		e164 = gjson.GetBytes(payload, "e164").String()
	}
	for prefix, inc := range badPrefixIncrements {
		if strings.HasPrefix(e164, prefix) {
			score += inc
			if score > 100 {
				score = 100
			}
		}
	}

	return score
}
