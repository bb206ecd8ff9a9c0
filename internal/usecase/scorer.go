package usecase

import (
	"strconv"
	"strings"
	"time"

	"github.com/matchasource/backend/internal/domain"
)

// Default point values for the scoring rule table
const (
	defaultRegionWeight        = 30.0 // origin region exact match
	defaultGradeWeight         = 25.0 // grade exact match
	defaultCertificationWeight = 15.0 // per matched candidate certification
	defaultMOQWeight           = 10.0 // MOQ at or under the requested ceiling
	defaultLeadTimeWeight      = 10.0 // lead time at or under the requested ceiling
	defaultPriceWeight         = 10.0 // price inside the requested range
	defaultKeywordWeight       = 5.0  // per keyword hit on name/seller
	defaultVerifiedSellerBonus = 8.0  // flat bonus for verified sellers
	defaultRecencyBonus        = 5.0  // flat bonus for recently listed products
	defaultRecencyWindowDays   = 30
)

// Reason field labels
const (
	fieldRegion        = "region"
	fieldGrade         = "grade"
	fieldCertification = "certification"
	fieldMOQ           = "moq"
	fieldLeadTime      = "leadTime"
	fieldPrice         = "price"
	fieldKeyword       = "keyword"
)

// ScoringWeights holds the tunable point values for every scoring rule.
type ScoringWeights struct {
	RegionMatch        float64
	GradeMatch         float64
	CertificationMatch float64
	MOQFit             float64
	LeadTimeFit        float64
	PriceFit           float64
	KeywordMatch       float64
	VerifiedSeller     float64
	Recency            float64
	RecencyWindowDays  int
}

// DefaultScoringWeights returns the standard rule weights
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		RegionMatch:        defaultRegionWeight,
		GradeMatch:         defaultGradeWeight,
		CertificationMatch: defaultCertificationWeight,
		MOQFit:             defaultMOQWeight,
		LeadTimeFit:        defaultLeadTimeWeight,
		PriceFit:           defaultPriceWeight,
		KeywordMatch:       defaultKeywordWeight,
		VerifiedSeller:     defaultVerifiedSellerBonus,
		Recency:            defaultRecencyBonus,
		RecencyWindowDays:  defaultRecencyWindowDays,
	}
}

// Scorer computes a deterministic relevance score with auditable reasons.
// A Reason is appended only when the constraint was actually present and the
// candidate's real attribute satisfies it; the matched value always quotes the
// candidate's own data.
type Scorer struct {
	weights ScoringWeights
	now     func() time.Time
}

// NewScorer creates a scorer with the given weights
func NewScorer(weights ScoringWeights) *Scorer {
	if weights.RecencyWindowDays <= 0 {
		weights.RecencyWindowDays = defaultRecencyWindowDays
	}
	return &Scorer{
		weights: weights,
		now:     time.Now,
	}
}

// Score evaluates one candidate against the effective constraints.
// The result is never negative; missing optional candidate data simply yields no
// contribution for that category.
func (s *Scorer) Score(candidate domain.Candidate, constraints domain.EffectiveConstraints) (float64, []domain.Reason) {
	var score float64
	var reasons []domain.Reason

	if len(constraints.Regions) > 0 && containsString(constraints.Regions, candidate.OriginRegion) {
		score += s.weights.RegionMatch
		reasons = append(reasons, domain.Reason{
			Field:        fieldRegion,
			MatchedValue: candidate.OriginRegion,
			MatchRule:    domain.RuleExactMatch,
		})
	}

	if len(constraints.Grades) > 0 && containsString(constraints.Grades, candidate.Grade) {
		score += s.weights.GradeMatch
		reasons = append(reasons, domain.Reason{
			Field:        fieldGrade,
			MatchedValue: candidate.Grade,
			MatchRule:    domain.RuleExactMatch,
		})
	}

	// Each matched candidate certification contributes once, and the reason
	// carries the candidate's literal certification string, never the
	// canonical constraint label.
	if len(constraints.Certifications) > 0 {
		for _, cert := range candidate.Certifications {
			if certificationMatches(cert, constraints.Certifications) {
				score += s.weights.CertificationMatch
				reasons = append(reasons, domain.Reason{
					Field:        fieldCertification,
					MatchedValue: cert,
					MatchRule:    domain.RuleArrayContains,
				})
			}
		}
	}

	if constraints.MOQMax != nil && candidate.MOQKg <= *constraints.MOQMax {
		score += s.weights.MOQFit
		reasons = append(reasons, domain.Reason{
			Field:        fieldMOQ,
			MatchedValue: strconv.FormatFloat(candidate.MOQKg, 'f', -1, 64),
			MatchRule:    domain.RuleLessOrEqual,
		})
	}

	if constraints.LeadTimeMax != nil && candidate.LeadTimeDays <= *constraints.LeadTimeMax {
		score += s.weights.LeadTimeFit
		reasons = append(reasons, domain.Reason{
			Field:        fieldLeadTime,
			MatchedValue: strconv.Itoa(candidate.LeadTimeDays),
			MatchRule:    domain.RuleLessOrEqual,
		})
	}

	if candidate.LowestPrice != nil && priceWithinRange(*candidate.LowestPrice, constraints.PriceMin, constraints.PriceMax) {
		score += s.weights.PriceFit
		reasons = append(reasons, domain.Reason{
			Field:        fieldPrice,
			MatchedValue: strconv.FormatFloat(*candidate.LowestPrice, 'f', -1, 64),
			MatchRule:    domain.RuleRangeContains,
		})
	}

	if len(constraints.Keywords) > 0 {
		nameLower := strings.ToLower(candidate.Name)
		sellerLower := strings.ToLower(candidate.SellerName)
		for _, kw := range constraints.Keywords {
			if strings.Contains(nameLower, kw) || strings.Contains(sellerLower, kw) {
				score += s.weights.KeywordMatch
				reasons = append(reasons, domain.Reason{
					Field:        fieldKeyword,
					MatchedValue: kw,
					MatchRule:    domain.RuleSubstring,
				})
			}
		}
	}

	// Flat bonuses contribute score without reasons: no constraint backs them,
	// so a Reason would claim a match that was never requested.
	if candidate.SellerVerified {
		score += s.weights.VerifiedSeller
	}
	recencyCutoff := s.now().AddDate(0, 0, -s.weights.RecencyWindowDays)
	if candidate.CreatedAt.After(recencyCutoff) {
		score += s.weights.Recency
	}

	if score < 0 {
		score = 0
	}

	return score, reasons
}

// certificationMatches reports whether a candidate certification satisfies any
// requested certification, using a case-insensitive substring check in either
// direction ("organic" matches "JAS Organic" and vice versa).
func certificationMatches(candidateCert string, requested []string) bool {
	certLower := strings.ToLower(candidateCert)
	for _, req := range requested {
		reqLower := strings.ToLower(req)
		if strings.Contains(certLower, reqLower) || strings.Contains(reqLower, certLower) {
			return true
		}
	}
	return false
}

// priceWithinRange checks a price against optional bounds. With neither bound
// set there is no price constraint, so nothing matches.
func priceWithinRange(price float64, min, max *float64) bool {
	if min == nil && max == nil {
		return false
	}
	if min != nil && price < *min {
		return false
	}
	if max != nil && price > *max {
		return false
	}
	return true
}

func containsString(values []string, v string) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}
