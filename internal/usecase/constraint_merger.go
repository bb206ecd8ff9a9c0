package usecase

import "github.com/matchasource/backend/internal/domain"

// MergeConstraints combines the parsed query with the caller's explicit filters
// into one effective constraint set.
//
// Set-valued fields (regions, grades, certifications) are unioned: facets typed
// into the query and facets picked in the UI are complementary. Scalar range
// fields and the destination country follow last-writer-wins: an explicit value
// overrides whatever the parser found, since it comes from a control the caller
// just set.
func MergeConstraints(parsed domain.ParsedQuery, filters *domain.Filters, explicitDestination string) domain.EffectiveConstraints {
	c := domain.EffectiveConstraints{
		Keywords:           parsed.Keywords,
		Regions:            parsed.Regions,
		Grades:             parsed.Grades,
		Certifications:     parsed.Certifications,
		MOQMax:             parsed.MOQMax,
		MOQMin:             parsed.MOQMin,
		LeadTimeMax:        parsed.LeadTimeMax,
		PriceMin:           parsed.PriceMin,
		PriceMax:           parsed.PriceMax,
		DestinationCountry: parsed.DestinationCountry,
	}

	if filters != nil {
		for _, v := range filters.Origins {
			c.Regions = appendUnique(c.Regions, v)
		}
		for _, v := range filters.Grades {
			c.Grades = appendUnique(c.Grades, v)
		}
		for _, v := range filters.Certifications {
			c.Certifications = appendUnique(c.Certifications, v)
		}

		if filters.MOQMin != nil {
			c.MOQMin = filters.MOQMin
		}
		if filters.MOQMax != nil {
			c.MOQMax = filters.MOQMax
		}
		if filters.LeadTimeMin != nil {
			c.LeadTimeMin = filters.LeadTimeMin
		}
		if filters.LeadTimeMax != nil {
			c.LeadTimeMax = filters.LeadTimeMax
		}
		if filters.PriceMin != nil {
			c.PriceMin = filters.PriceMin
		}
		if filters.PriceMax != nil {
			c.PriceMax = filters.PriceMax
		}
	}

	if explicitDestination != "" {
		c.DestinationCountry = explicitDestination
	}

	return c
}
