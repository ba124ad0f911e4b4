package extract

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// candidateRe matches phone-number-shaped substrings: an optional plus,
// then digits mixed with common separators. Deliberately loose; the
// canonicalization step sorts real numbers from noise.
var candidateRe = regexp.MustCompile(`\+?\(?\d[\d\s().\-]{5,}\d`)

// segmentRe splits a merged candidate on wide whitespace gaps. Adjacent
// numbers separated only by spaces fuse into one regex match; the gap
// of two or more spaces is the seam to retry on.
var segmentRe = regexp.MustCompile(`\s{2,}`)

// Canonicalize converts one phone-number-like string to E.164. The
// second return reports success; on failure the trimmed input comes
// back unchanged so callers can keep the raw candidate.
func Canonicalize(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)

	num, err := phonenumbers.Parse(trimmed, "")
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return trimmed, false
	}
	return phonenumbers.Format(num, phonenumbers.E164), true
}

// Numbers locates phone numbers in unconstrained text and returns them
// canonicalized where possible, raw where not, de-duplicated in
// first-seen order. Extraction favors recall: a matched substring that
// fails canonicalization is surfaced as-is rather than dropped.
//
// Dedup keys on the emitted string, so a canonical form and a raw
// fallback of the same physical number stay separate entries. That
// mirrors the upstream data sources, which never merge the two either.
func Numbers(text string) []string {
	if text == "" {
		return nil
	}

	seen := make(map[string]bool)
	var out []string
	for _, match := range candidateRe.FindAllString(text, -1) {
		for _, candidate := range resolve(match) {
			if candidate == "" || seen[candidate] {
				continue
			}
			seen[candidate] = true
			out = append(out, candidate)
		}
	}
	return out
}

// resolve canonicalizes one regex match. When the whole match fails,
// sub-segments split on wide gaps are retried, so two numbers fused by
// whitespace come back as two entries; a match with no canonicalizable
// segment stays one raw fallback.
func resolve(match string) []string {
	if canonical, ok := Canonicalize(match); ok {
		return []string{canonical}
	}

	segments := segmentRe.Split(match, -1)
	if len(segments) > 1 {
		resolved := make([]string, 0, len(segments))
		anyCanonical := false
		for _, seg := range segments {
			candidate, ok := Canonicalize(seg)
			if ok {
				anyCanonical = true
			}
			if candidate != "" {
				resolved = append(resolved, candidate)
			}
		}
		if anyCanonical {
			return resolved
		}
	}

	return []string{strings.TrimSpace(match)}
}
