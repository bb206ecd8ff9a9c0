package domain

// ParsedQuery is the structured interpretation of a free-text search query.
// Every field comes from an explicit lexical match in the input; nothing is inferred.
type ParsedQuery struct {
	Keywords           []string `json:"keywords,omitempty"`
	Regions            []string `json:"regions,omitempty"`
	Grades             []string `json:"grades,omitempty"`
	Certifications     []string `json:"certifications,omitempty"`
	MOQMax             *float64 `json:"moqMax,omitempty"`
	MOQMin             *float64 `json:"moqMin,omitempty"`
	LeadTimeMax        *int     `json:"leadTimeMax,omitempty"` // days
	PriceMin           *float64 `json:"priceMin,omitempty"`
	PriceMax           *float64 `json:"priceMax,omitempty"`
	DestinationCountry string   `json:"destinationCountry,omitempty"` // ISO-2
}

// Filters are the explicit facet filters a caller can supply alongside the query.
type Filters struct {
	Grades         []string `json:"grades,omitempty"`
	Origins        []string `json:"origins,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	MOQMin         *float64 `json:"moqMin,omitempty"`
	MOQMax         *float64 `json:"moqMax,omitempty"`
	LeadTimeMin    *int     `json:"leadTimeMin,omitempty"`
	LeadTimeMax    *int     `json:"leadTimeMax,omitempty"`
	PriceMin       *float64 `json:"priceMin,omitempty"`
	PriceMax       *float64 `json:"priceMax,omitempty"`
}

// EffectiveConstraints is the merged constraint set handed to the candidate
// supplier and the scorer. Same shape as ParsedQuery; set fields are the union of
// parsed and explicit values, scalar fields follow explicit overrides.
type EffectiveConstraints struct {
	Keywords           []string
	Regions            []string
	Grades             []string
	Certifications     []string
	MOQMax             *float64
	MOQMin             *float64
	LeadTimeMin        *int
	LeadTimeMax        *int
	PriceMin           *float64
	PriceMax           *float64
	DestinationCountry string
}

// SearchInput is a search request as received from the transport layer.
type SearchInput struct {
	Query              string   `json:"query" binding:"required"`
	DestinationCountry string   `json:"destinationCountry,omitempty"`
	Filters            *Filters `json:"filters,omitempty"`
	Page               int      `json:"page,omitempty"`
	Limit              int      `json:"limit,omitempty"`
}
