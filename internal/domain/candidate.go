package domain

import "time"

// Candidate is a denormalized snapshot of one sellable product as returned by the
// catalog service. It carries everything scoring needs; it is never mutated.
type Candidate struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	SellerName     string    `json:"sellerName"`
	SellerVerified bool      `json:"sellerVerified"`
	Grade          string    `json:"grade"`
	OriginRegion   string    `json:"originRegion"`
	MOQKg          float64   `json:"moqKg"`
	LeadTimeDays   int       `json:"leadTimeDays"`
	LowestPrice    *float64  `json:"lowestPrice,omitempty"` // lowest unit price in USD/kg, nil when no price tier exists
	Certifications []string  `json:"certifications,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Match rules a Reason can be tagged with.
const (
	RuleExactMatch    = "exact_match"
	RuleArrayContains = "array_contains"
	RuleLessOrEqual   = "less_than_or_equal"
	RuleRangeContains = "range_contains"
	RuleSubstring     = "substring_match"
)

// Reason is an auditable claim that a specific candidate attribute satisfied a
// specific constraint. MatchedValue always quotes the candidate's real data.
type Reason struct {
	Field        string `json:"field"`
	MatchedValue string `json:"matchedValue"`
	MatchRule    string `json:"matchRule"`
}

// ScoredResult pairs a candidate with its relevance score and the reasons behind it.
type ScoredResult struct {
	Candidate Candidate `json:"candidate"`
	Score     float64   `json:"score"`
	Reasons   []Reason  `json:"reasons"`
}

// SearchResponse is the final, paginated search result.
type SearchResponse struct {
	Results       []ScoredResult `json:"results"`
	Total         int            `json:"total"`
	Page          int            `json:"page"`
	Limit         int            `json:"limit"`
	ExecutionTime int64          `json:"executionTime"` // milliseconds
	ParsedQuery   ParsedQuery    `json:"parsedQuery"`
	Suggestion    string         `json:"suggestion,omitempty"`
}
