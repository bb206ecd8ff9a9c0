package domain

import "errors"

var (
	// ErrInvalidQuery is returned when the search query is empty after trimming
	ErrInvalidQuery = errors.New("search query is required")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCatalogUnavailable is returned when the catalog service request fails
	ErrCatalogUnavailable = errors.New("catalog service request failed")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")
)
