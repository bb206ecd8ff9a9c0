package usecase

import (
	"testing"
	"time"

	"github.com/matchasource/backend/internal/domain"
)

// oldListing is well outside any recency window, so tests that are not about
// recency get no accidental bonus.
var oldListing = time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)

func newTestScorer() *Scorer {
	return NewScorer(DefaultScoringWeights())
}

func baseCandidate() domain.Candidate {
	return domain.Candidate{
		ID:           "cand-1",
		Name:         "Stone-Milled Ceremonial Matcha",
		SellerName:   "Uji Tea Collective",
		Grade:        "CEREMONIAL",
		OriginRegion: "Uji, Kyoto",
		MOQKg:        15,
		LeadTimeDays: 10,
		CreatedAt:    oldListing,
	}
}

func TestScore_NoConstraints(t *testing.T) {
	s := newTestScorer()

	score, reasons := s.Score(baseCandidate(), domain.EffectiveConstraints{})

	if score != 0 {
		t.Errorf("score = %v, want 0 for unverified old candidate with no constraints", score)
	}
	if len(reasons) != 0 {
		t.Errorf("reasons = %v, want none", reasons)
	}
}

func TestScore_RegionMatch(t *testing.T) {
	s := newTestScorer()
	constraints := domain.EffectiveConstraints{Regions: []string{"Uji, Kyoto"}}

	t.Run("matching region scores with reason", func(t *testing.T) {
		score, reasons := s.Score(baseCandidate(), constraints)
		if score != defaultRegionWeight {
			t.Errorf("score = %v, want %v", score, defaultRegionWeight)
		}
		assertSingleReason(t, reasons, fieldRegion, "Uji, Kyoto", domain.RuleExactMatch)
	})

	t.Run("different region scores nothing", func(t *testing.T) {
		c := baseCandidate()
		c.OriginRegion = "Shizuoka"
		score, reasons := s.Score(c, constraints)
		if score != 0 || len(reasons) != 0 {
			t.Errorf("score = %v, reasons = %v, want 0 and none", score, reasons)
		}
	})

	t.Run("no region constraint means no region reason", func(t *testing.T) {
		_, reasons := s.Score(baseCandidate(), domain.EffectiveConstraints{})
		for _, r := range reasons {
			if r.Field == fieldRegion {
				t.Errorf("unexpected region reason %+v without a region constraint", r)
			}
		}
	})
}

func TestScore_GradeMatch(t *testing.T) {
	s := newTestScorer()

	score, reasons := s.Score(baseCandidate(), domain.EffectiveConstraints{Grades: []string{"CEREMONIAL"}})

	if score != defaultGradeWeight {
		t.Errorf("score = %v, want %v", score, defaultGradeWeight)
	}
	assertSingleReason(t, reasons, fieldGrade, "CEREMONIAL", domain.RuleExactMatch)
}

func TestScore_Certifications(t *testing.T) {
	s := newTestScorer()

	t.Run("each matched certification contributes once", func(t *testing.T) {
		c := baseCandidate()
		c.Certifications = []string{"JAS Organic", "USDA Organic", "Halal"}

		score, reasons := s.Score(c, domain.EffectiveConstraints{Certifications: []string{"organic"}})

		if score != 2*defaultCertificationWeight {
			t.Errorf("score = %v, want %v", score, 2*defaultCertificationWeight)
		}
		if len(reasons) != 2 {
			t.Fatalf("reasons = %v, want 2", reasons)
		}
		// Reasons quote the candidate's literal certification strings, not the
		// requested canonical label.
		if reasons[0].MatchedValue != "JAS Organic" || reasons[1].MatchedValue != "USDA Organic" {
			t.Errorf("matched values = %q, %q, want candidate's own strings", reasons[0].MatchedValue, reasons[1].MatchedValue)
		}
		for _, r := range reasons {
			if r.Field != fieldCertification || r.MatchRule != domain.RuleArrayContains {
				t.Errorf("reason = %+v, want field %q rule %q", r, fieldCertification, domain.RuleArrayContains)
			}
		}
	})

	t.Run("candidate without certifications scores nothing", func(t *testing.T) {
		score, reasons := s.Score(baseCandidate(), domain.EffectiveConstraints{Certifications: []string{"organic"}})
		if score != 0 || len(reasons) != 0 {
			t.Errorf("score = %v, reasons = %v, want 0 and none", score, reasons)
		}
	})

	t.Run("match is case-insensitive in either direction", func(t *testing.T) {
		c := baseCandidate()
		c.Certifications = []string{"ORGANIC"}
		_, reasons := s.Score(c, domain.EffectiveConstraints{Certifications: []string{"jas organic"}})
		if len(reasons) != 1 || reasons[0].MatchedValue != "ORGANIC" {
			t.Errorf("reasons = %v, want one reason quoting ORGANIC", reasons)
		}
	})
}

func TestScore_MOQFit(t *testing.T) {
	s := newTestScorer()
	ceiling := 20.0
	constraints := domain.EffectiveConstraints{MOQMax: &ceiling}

	t.Run("moq under ceiling scores", func(t *testing.T) {
		score, reasons := s.Score(baseCandidate(), constraints)
		if score != defaultMOQWeight {
			t.Errorf("score = %v, want %v", score, defaultMOQWeight)
		}
		assertSingleReason(t, reasons, fieldMOQ, "15", domain.RuleLessOrEqual)
	})

	t.Run("moq equal to ceiling scores", func(t *testing.T) {
		c := baseCandidate()
		c.MOQKg = 20
		score, _ := s.Score(c, constraints)
		if score != defaultMOQWeight {
			t.Errorf("score = %v, want %v", score, defaultMOQWeight)
		}
	})

	t.Run("moq above ceiling scores nothing", func(t *testing.T) {
		c := baseCandidate()
		c.MOQKg = 25
		score, reasons := s.Score(c, constraints)
		if score != 0 || len(reasons) != 0 {
			t.Errorf("score = %v, reasons = %v, want 0 and none", score, reasons)
		}
	})
}

func TestScore_LeadTimeFit(t *testing.T) {
	s := newTestScorer()
	ceiling := 14
	constraints := domain.EffectiveConstraints{LeadTimeMax: &ceiling}

	t.Run("lead time under ceiling scores", func(t *testing.T) {
		score, reasons := s.Score(baseCandidate(), constraints)
		if score != defaultLeadTimeWeight {
			t.Errorf("score = %v, want %v", score, defaultLeadTimeWeight)
		}
		assertSingleReason(t, reasons, fieldLeadTime, "10", domain.RuleLessOrEqual)
	})

	t.Run("lead time above ceiling scores nothing", func(t *testing.T) {
		c := baseCandidate()
		c.LeadTimeDays = 21
		score, reasons := s.Score(c, constraints)
		if score != 0 || len(reasons) != 0 {
			t.Errorf("score = %v, reasons = %v, want 0 and none", score, reasons)
		}
	})
}

func TestScore_PriceFit(t *testing.T) {
	s := newTestScorer()
	low, high := 15.0, 25.0

	t.Run("price inside range scores", func(t *testing.T) {
		c := baseCandidate()
		price := 20.0
		c.LowestPrice = &price
		score, reasons := s.Score(c, domain.EffectiveConstraints{PriceMin: &low, PriceMax: &high})
		if score != defaultPriceWeight {
			t.Errorf("score = %v, want %v", score, defaultPriceWeight)
		}
		assertSingleReason(t, reasons, fieldPrice, "20", domain.RuleRangeContains)
	})

	t.Run("price outside range scores nothing", func(t *testing.T) {
		c := baseCandidate()
		price := 30.0
		c.LowestPrice = &price
		score, reasons := s.Score(c, domain.EffectiveConstraints{PriceMin: &low, PriceMax: &high})
		if score != 0 || len(reasons) != 0 {
			t.Errorf("score = %v, reasons = %v, want 0 and none", score, reasons)
		}
	})

	t.Run("max-only bound works", func(t *testing.T) {
		c := baseCandidate()
		price := 10.0
		c.LowestPrice = &price
		score, _ := s.Score(c, domain.EffectiveConstraints{PriceMax: &high})
		if score != defaultPriceWeight {
			t.Errorf("score = %v, want %v", score, defaultPriceWeight)
		}
	})

	t.Run("missing price never scores and never panics", func(t *testing.T) {
		score, reasons := s.Score(baseCandidate(), domain.EffectiveConstraints{PriceMax: &high})
		if score != 0 || len(reasons) != 0 {
			t.Errorf("score = %v, reasons = %v, want 0 and none", score, reasons)
		}
	})
}

func TestScore_KeywordMatch(t *testing.T) {
	s := newTestScorer()

	t.Run("keyword in product name scores", func(t *testing.T) {
		score, reasons := s.Score(baseCandidate(), domain.EffectiveConstraints{Keywords: []string{"matcha"}})
		if score != defaultKeywordWeight {
			t.Errorf("score = %v, want %v", score, defaultKeywordWeight)
		}
		assertSingleReason(t, reasons, fieldKeyword, "matcha", domain.RuleSubstring)
	})

	t.Run("keyword in seller name scores", func(t *testing.T) {
		score, _ := s.Score(baseCandidate(), domain.EffectiveConstraints{Keywords: []string{"collective"}})
		if score != defaultKeywordWeight {
			t.Errorf("score = %v, want %v", score, defaultKeywordWeight)
		}
	})

	t.Run("each keyword contributes separately", func(t *testing.T) {
		score, reasons := s.Score(baseCandidate(), domain.EffectiveConstraints{Keywords: []string{"matcha", "collective", "nonexistent"}})
		if score != 2*defaultKeywordWeight {
			t.Errorf("score = %v, want %v", score, 2*defaultKeywordWeight)
		}
		if len(reasons) != 2 {
			t.Errorf("reasons = %v, want 2", reasons)
		}
	})
}

func TestScore_Bonuses(t *testing.T) {
	s := newTestScorer()

	t.Run("verified seller bonus has no reason", func(t *testing.T) {
		c := baseCandidate()
		c.SellerVerified = true
		score, reasons := s.Score(c, domain.EffectiveConstraints{})
		if score != defaultVerifiedSellerBonus {
			t.Errorf("score = %v, want %v", score, defaultVerifiedSellerBonus)
		}
		if len(reasons) != 0 {
			t.Errorf("reasons = %v, want none for a bonus", reasons)
		}
	})

	t.Run("recent listing bonus has no reason", func(t *testing.T) {
		fixed := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
		s := NewScorer(DefaultScoringWeights())
		s.now = func() time.Time { return fixed }

		c := baseCandidate()
		c.CreatedAt = fixed.AddDate(0, 0, -10)
		score, reasons := s.Score(c, domain.EffectiveConstraints{})
		if score != defaultRecencyBonus {
			t.Errorf("score = %v, want %v", score, defaultRecencyBonus)
		}
		if len(reasons) != 0 {
			t.Errorf("reasons = %v, want none for a bonus", reasons)
		}
	})

	t.Run("listing outside the window gets no bonus", func(t *testing.T) {
		fixed := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
		s := NewScorer(DefaultScoringWeights())
		s.now = func() time.Time { return fixed }

		c := baseCandidate()
		c.CreatedAt = fixed.AddDate(0, 0, -45)
		score, _ := s.Score(c, domain.EffectiveConstraints{})
		if score != 0 {
			t.Errorf("score = %v, want 0", score)
		}
	})
}

func TestScore_CombinedRules(t *testing.T) {
	s := newTestScorer()

	c := baseCandidate()
	c.Certifications = []string{"JAS Organic"}
	c.SellerVerified = true
	ceiling := 20.0

	score, reasons := s.Score(c, domain.EffectiveConstraints{
		Regions:        []string{"Uji, Kyoto"},
		Grades:         []string{"CEREMONIAL"},
		Certifications: []string{"organic"},
		MOQMax:         &ceiling,
		Keywords:       []string{"matcha"},
	})

	want := defaultRegionWeight + defaultGradeWeight + defaultCertificationWeight +
		defaultMOQWeight + defaultKeywordWeight + defaultVerifiedSellerBonus
	if score != want {
		t.Errorf("score = %v, want %v", score, want)
	}
	if len(reasons) != 5 {
		t.Errorf("got %d reasons, want 5 (verified bonus carries none)", len(reasons))
	}
}

func TestScore_Deterministic(t *testing.T) {
	s := newTestScorer()
	c := baseCandidate()
	c.Certifications = []string{"JAS Organic", "Halal"}
	ceiling := 20.0
	constraints := domain.EffectiveConstraints{
		Regions:        []string{"Uji, Kyoto"},
		Certifications: []string{"organic", "halal"},
		MOQMax:         &ceiling,
	}

	firstScore, firstReasons := s.Score(c, constraints)
	for i := 0; i < 10; i++ {
		score, reasons := s.Score(c, constraints)
		if score != firstScore {
			t.Fatalf("score varied between runs: %v vs %v", score, firstScore)
		}
		if len(reasons) != len(firstReasons) {
			t.Fatalf("reason count varied between runs: %d vs %d", len(reasons), len(firstReasons))
		}
		for j := range reasons {
			if reasons[j] != firstReasons[j] {
				t.Fatalf("reason order varied: %+v vs %+v", reasons[j], firstReasons[j])
			}
		}
	}
}

func assertSingleReason(t *testing.T, reasons []domain.Reason, field, value, rule string) {
	t.Helper()
	if len(reasons) != 1 {
		t.Fatalf("reasons = %v, want exactly one", reasons)
	}
	r := reasons[0]
	if r.Field != field || r.MatchedValue != value || r.MatchRule != rule {
		t.Errorf("reason = %+v, want {%s %s %s}", r, field, value, rule)
	}
}
