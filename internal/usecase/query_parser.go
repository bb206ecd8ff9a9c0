package usecase

import (
	"strconv"
	"strings"

	"github.com/matchasource/backend/internal/domain"
)

// QueryParser turns free-text buyer queries into structured constraints using the
// static lexicon tables. It is pure and total: any input string produces a result.
type QueryParser struct{}

// NewQueryParser creates a new query parser
func NewQueryParser() *QueryParser {
	return &QueryParser{}
}

// Parse extracts structured constraints from a free-text query.
// Matching is case-insensitive; an empty or unrecognized query yields an
// all-empty ParsedQuery, never an error.
func (p *QueryParser) Parse(text string) domain.ParsedQuery {
	var q domain.ParsedQuery

	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return q
	}

	// Words belonging to matched dictionary keywords; residual keyword
	// collection skips them later.
	consumed := make(map[string]bool)

	// Dictionary scans: every keyword is checked as a substring, deduplicated
	// by canonical value so "uji kyoto uji" yields one region.
	for _, e := range regionLexicon {
		if strings.Contains(normalized, e.Keyword) {
			q.Regions = appendUnique(q.Regions, e.Canonical)
			markConsumed(consumed, e.Keyword)
		}
	}
	for _, e := range gradeLexicon {
		if strings.Contains(normalized, e.Keyword) {
			q.Grades = appendUnique(q.Grades, e.Canonical)
			markConsumed(consumed, e.Keyword)
		}
	}
	for _, e := range certificationLexicon {
		if strings.Contains(normalized, e.Keyword) {
			q.Certifications = appendUnique(q.Certifications, e.Canonical)
			markConsumed(consumed, e.Keyword)
		}
	}

	q.DestinationCountry = parseDestination(normalized, consumed)

	applyFirstMatch(quantityPatterns, normalized, &q)
	applyFirstMatch(leadTimePatterns, normalized, &q)
	applyFirstMatch(pricePatterns, normalized, &q)

	q.Keywords = residualKeywords(normalized, consumed)

	return q
}

// parseDestination resolves the destination country. The directional phrase
// ("ship to X") is tried first; the fallback scans the whole text for country
// keywords as whole words, skipping keywords that double as region names.
func parseDestination(text string, consumed map[string]bool) string {
	if m := destinationPattern.FindStringSubmatch(text); m != nil {
		phrase := m[1]
		for _, e := range countryLexicon {
			if strings.Contains(phrase, e.Keyword) {
				markConsumed(consumed, e.Keyword)
				return e.Canonical
			}
		}
	}

	for i, e := range countryLexicon {
		if regionKeywordSet[e.Keyword] {
			continue
		}
		if countryWordRegexes[i].MatchString(text) {
			markConsumed(consumed, e.Keyword)
			return e.Canonical
		}
	}

	return ""
}

// applyFirstMatch runs one ordered pattern list; the first matching pattern wins
// and the scan stops for that category.
func applyFirstMatch(patterns []numericPattern, text string, q *domain.ParsedQuery) {
	for _, p := range patterns {
		if m := p.re.FindStringSubmatch(text); m != nil {
			p.apply(q, m)
			return
		}
	}
}

// residualKeywords collects the leftover search terms: whitespace tokens that are
// not stop words, not numeric or currency-prefixed, and not part of any matched
// lexicon keyword. Insertion order is preserved, duplicates dropped.
func residualKeywords(text string, consumed map[string]bool) []string {
	var keywords []string
	seen := make(map[string]bool)

	for _, raw := range strings.Fields(text) {
		token := strings.Trim(raw, ",.!?;:'\"()")
		if len(token) <= 1 {
			continue
		}
		if strings.HasPrefix(token, "$") || startsWithDigit(token) {
			continue
		}
		if queryStopWords[token] || consumed[token] || seen[token] {
			continue
		}
		keywords = append(keywords, token)
		seen[token] = true
	}

	return keywords
}

// markConsumed records every word of a matched lexicon keyword
func markConsumed(consumed map[string]bool, keyword string) {
	for _, w := range strings.Fields(keyword) {
		consumed[w] = true
	}
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

// appendUnique appends v unless it is already present
func appendUnique(values []string, v string) []string {
	for _, existing := range values {
		if existing == v {
			return values
		}
	}
	return append(values, v)
}

func parseFloatPtr(s string) *float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseDaysPtr(s string, multiplier int) *int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	days := v * multiplier
	return &days
}

func applyApproxPrice(q *domain.ParsedQuery, s string) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return
	}
	low := v * approxPriceLowFactor
	high := v * approxPriceHighFactor
	q.PriceMin = &low
	q.PriceMax = &high
}
