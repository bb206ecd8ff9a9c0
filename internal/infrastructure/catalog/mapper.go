package catalog

import "github.com/matchasource/backend/internal/domain"

// mapToCandidate converts one catalog product row to the domain candidate model
func mapToCandidate(p productDTO) domain.Candidate {
	return domain.Candidate{
		ID:             p.ID,
		Name:           p.Name,
		SellerName:     p.Seller.Name,
		SellerVerified: p.Seller.Verified,
		Grade:          p.Grade,
		OriginRegion:   p.OriginRegion,
		MOQKg:          p.MOQKg,
		LeadTimeDays:   p.LeadTimeDays,
		LowestPrice:    p.LowestPrice,
		Certifications: p.Certifications,
		CreatedAt:      p.CreatedAt,
	}
}

// mapToCandidates converts a catalog result page, preserving order
func mapToCandidates(items []productDTO) []domain.Candidate {
	candidates := make([]domain.Candidate, 0, len(items))
	for _, item := range items {
		candidates = append(candidates, mapToCandidate(item))
	}
	return candidates
}

// buildSearchRequest translates the effective constraints into the catalog
// service's predicate shape
func buildSearchRequest(c domain.EffectiveConstraints, skip, take int) searchRequestDTO {
	return searchRequestDTO{
		Keywords:           c.Keywords,
		Regions:            c.Regions,
		Grades:             c.Grades,
		Certifications:     c.Certifications,
		MOQMin:             c.MOQMin,
		MOQMax:             c.MOQMax,
		LeadTimeMin:        c.LeadTimeMin,
		LeadTimeMax:        c.LeadTimeMax,
		PriceMin:           c.PriceMin,
		PriceMax:           c.PriceMax,
		DestinationCountry: c.DestinationCountry,
		Skip:               skip,
		Take:               take,
	}
}
