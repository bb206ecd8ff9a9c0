package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching serialized values
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CandidateSupplier defines the interface for fetching candidates from the catalog.
// FetchCandidates applies the constraint set as a hard pre-filter and returns up to
// take (plus a small over-fetch margin) candidates ordered by recency, together with
// the total number of products matching the predicate.
type CandidateSupplier interface {
	FetchCandidates(ctx context.Context, constraints EffectiveConstraints, skip, take int) ([]Candidate, int, error)
}
