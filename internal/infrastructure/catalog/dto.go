package catalog

import "time"

// searchRequestDTO is the predicate sent to the catalog service. All constraint
// fields are hard filters on its side; skip/take page through matches ordered by
// recency.
type searchRequestDTO struct {
	Keywords           []string `json:"keywords,omitempty"`
	Regions            []string `json:"regions,omitempty"`
	Grades             []string `json:"grades,omitempty"`
	Certifications     []string `json:"certifications,omitempty"`
	MOQMin             *float64 `json:"moqMin,omitempty"`
	MOQMax             *float64 `json:"moqMax,omitempty"`
	LeadTimeMin        *int     `json:"leadTimeMin,omitempty"`
	LeadTimeMax        *int     `json:"leadTimeMax,omitempty"`
	PriceMin           *float64 `json:"priceMin,omitempty"`
	PriceMax           *float64 `json:"priceMax,omitempty"`
	DestinationCountry string   `json:"destinationCountry,omitempty"`
	Skip               int      `json:"skip"`
	Take               int      `json:"take"`
}

// sellerDTO mirrors the catalog service's embedded seller record
type sellerDTO struct {
	Name     string `json:"name"`
	Verified bool   `json:"verified"`
}

// productDTO mirrors one product row from the catalog service
type productDTO struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Seller         sellerDTO `json:"seller"`
	Grade          string    `json:"grade"`
	OriginRegion   string    `json:"originRegion"`
	MOQKg          float64   `json:"moqKg"`
	LeadTimeDays   int       `json:"leadTimeDays"`
	LowestPrice    *float64  `json:"lowestPrice,omitempty"`
	Certifications []string  `json:"certifications,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// searchResponseDTO is the catalog service's search reply. Total counts every
// product matching the predicate, independent of skip/take.
type searchResponseDTO struct {
	Items []productDTO `json:"items"`
	Total int          `json:"total"`
}
