package usecase

import (
	"strings"

	"github.com/matchasource/backend/internal/domain"
)

// Heuristic thresholds for "overly tight" numeric constraints. Typical listings
// start around 1 kg MOQ, two weeks lead time, and $10/kg.
const (
	typicalMOQCeilingKg = 100.0
	typicalLeadTimeDays = 14
	typicalPriceFloor   = 10.0
	maxSuggestionParts  = 2
)

// suggestionGeneric is returned when no heuristic applies
const suggestionGeneric = "Try broadening your search with fewer filters or more general keywords"

// suggestionCheck inspects the active constraints and, when it applies, returns
// one human-readable hint. Checks run in order; the first two hits are kept.
type suggestionCheck func(c domain.EffectiveConstraints) (string, bool)

// suggestionChecks is the ordered heuristic list for empty result sets.
var suggestionChecks = []suggestionCheck{
	func(c domain.EffectiveConstraints) (string, bool) {
		if len(c.Regions) > 0 {
			return "Try removing the origin region filter to see products from all growing areas", true
		}
		return "", false
	},
	func(c domain.EffectiveConstraints) (string, bool) {
		if len(c.Certifications) > 0 {
			return "Not all products list certifications; relaxing the certification filter may help", true
		}
		return "", false
	},
	func(c domain.EffectiveConstraints) (string, bool) {
		if c.MOQMax != nil && *c.MOQMax < typicalMOQCeilingKg {
			return "Many suppliers set minimum orders above your limit; most listings start between 1 and 100 kg", true
		}
		return "", false
	},
	func(c domain.EffectiveConstraints) (string, bool) {
		if c.LeadTimeMax != nil && *c.LeadTimeMax < typicalLeadTimeDays {
			return "Lead times under two weeks are rare; typical production runs take 2-4 weeks", true
		}
		return "", false
	},
	func(c domain.EffectiveConstraints) (string, bool) {
		if c.PriceMax != nil && *c.PriceMax < typicalPriceFloor {
			return "Your price ceiling is below typical wholesale rates; ceremonial grades usually start around $10/kg", true
		}
		return "", false
	},
}

// BuildSuggestion produces a short hint for an empty result set, derived from
// which constraints were active. At most the first two applicable suggestions
// are joined by ". "; if none applies, a generic broadening hint is returned.
func BuildSuggestion(constraints domain.EffectiveConstraints) string {
	var parts []string
	for _, check := range suggestionChecks {
		if hint, ok := check(constraints); ok {
			parts = append(parts, hint)
			if len(parts) == maxSuggestionParts {
				break
			}
		}
	}

	if len(parts) == 0 {
		return suggestionGeneric
	}
	return strings.Join(parts, ". ")
}
