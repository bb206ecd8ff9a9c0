package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/matchasource/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)

	// sanitizeStripRegex removes characters that break downstream matching;
	// comparison operators are rewritten to words before this runs.
	sanitizeStripRegex = regexp.MustCompile("[<>{}|\\\\^~\\[\\]`]")
)

const (
	maxQueryLength   = 500
	defaultPage      = 1
	defaultLimit     = 20
	defaultMaxLimit  = 100
	defaultOverfetch = 10
	defaultCacheTTL  = 5 * time.Minute
)

// SearchServiceConfig holds configuration for the search service
type SearchServiceConfig struct {
	CacheTTL     time.Duration
	DefaultLimit int
	MaxLimit     int
	Overfetch    int
	Weights      ScoringWeights
}

// SearchService runs the full search pipeline: sanitize, parse, merge, fetch
// candidates, score, rank, and suggest when nothing matched. The service itself
// is stateless per request; the only shared state is the read-only lexicon and
// the injected cache.
type SearchService struct {
	supplier     domain.CandidateSupplier
	cache        domain.CacheRepository
	parser       *QueryParser
	scorer       *Scorer
	logger       *zap.Logger
	cacheTTL     time.Duration
	defaultLimit int
	maxLimit     int
	overfetch    int
}

// NewSearchService creates a search service with its dependencies.
// The cache is optional; a nil cache disables response caching.
func NewSearchService(
	supplier domain.CandidateSupplier,
	cache domain.CacheRepository,
	config SearchServiceConfig,
	logger *zap.Logger,
) *SearchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.CacheTTL <= 0 {
		config.CacheTTL = defaultCacheTTL
	}
	if config.DefaultLimit <= 0 {
		config.DefaultLimit = defaultLimit
	}
	if config.MaxLimit <= 0 {
		config.MaxLimit = defaultMaxLimit
	}
	if config.Overfetch <= 0 {
		config.Overfetch = defaultOverfetch
	}
	if config.Weights == (ScoringWeights{}) {
		config.Weights = DefaultScoringWeights()
	}

	return &SearchService{
		supplier:     supplier,
		cache:        cache,
		parser:       NewQueryParser(),
		scorer:       NewScorer(config.Weights),
		logger:       logger,
		cacheTTL:     config.CacheTTL,
		defaultLimit: config.DefaultLimit,
		maxLimit:     config.MaxLimit,
		overfetch:    config.Overfetch,
	}
}

// Search executes one search request.
// Flow: validate -> sanitize -> parse -> merge -> cache check -> fetch
// candidates -> score -> rank -> suggest if empty.
func (s *SearchService) Search(ctx context.Context, input domain.SearchInput) (*domain.SearchResponse, error) {
	start := time.Now()

	if strings.TrimSpace(input.Query) == "" {
		return nil, domain.ErrInvalidQuery
	}

	page := input.Page
	if page < 1 {
		page = defaultPage
	}
	limit := input.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	sanitized := SanitizeQuery(input.Query)
	parsed := s.parser.Parse(sanitized)
	constraints := MergeConstraints(parsed, input.Filters, input.DestinationCountry)

	cacheKey := s.generateCacheKey(sanitized, input, page, limit)
	if cached := s.getFromCache(ctx, cacheKey); cached != nil {
		cached.ExecutionTime = time.Since(start).Milliseconds()
		return cached, nil
	}

	skip := (page - 1) * limit
	candidates, total, err := s.supplier.FetchCandidates(ctx, constraints, skip, limit+s.overfetch)
	if err != nil {
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}

	scored := make([]domain.ScoredResult, 0, len(candidates))
	for _, candidate := range candidates {
		score, reasons := s.scorer.Score(candidate, constraints)
		scored = append(scored, domain.ScoredResult{
			Candidate: candidate,
			Score:     score,
			Reasons:   reasons,
		})
	}

	ranked := RankResults(scored, limit)

	response := &domain.SearchResponse{
		Results:     ranked,
		Total:       total,
		Page:        page,
		Limit:       limit,
		ParsedQuery: parsed,
	}
	if len(ranked) == 0 {
		response.Suggestion = BuildSuggestion(constraints)
	}

	s.setInCache(ctx, cacheKey, response)

	response.ExecutionTime = time.Since(start).Milliseconds()

	s.logger.Debug("search completed",
		zap.String("query", sanitized),
		zap.Int("results", len(ranked)),
		zap.Int("total", total),
		zap.Int64("execution_ms", response.ExecutionTime),
	)

	return response, nil
}

// SanitizeQuery rewrites comparison operators to words and strips unsafe
// characters before any lexical matching runs. "<20kg" and "under 20kg" parse
// identically afterwards. The query is capped at 500 characters.
func SanitizeQuery(query string) string {
	query = strings.ReplaceAll(query, "<=", " under ")
	query = strings.ReplaceAll(query, ">=", " over ")
	query = strings.ReplaceAll(query, "<", " under ")
	query = strings.ReplaceAll(query, ">", " over ")

	query = sanitizeStripRegex.ReplaceAllString(query, "")
	query = strings.TrimSpace(query)

	// Truncate by runes, not bytes, so a multi-byte character is never split
	if runes := []rune(query); len(runes) > maxQueryLength {
		query = string(runes[:maxQueryLength])
	}

	return query
}

// generateCacheKey creates a normalized cache key for one search request.
// Format: "search:{normalized_query}:{destination}:{filters_json}:{page}:{limit}"
// The key is built from the sanitized query, after comparison operators have been
// rewritten to words: stripping them from the raw query would collapse "<20kg"
// and ">20kg" into the same key.
func (s *SearchService) generateCacheKey(sanitizedQuery string, input domain.SearchInput, page, limit int) string {
	normalized := normalizeForCacheKey(sanitizedQuery)
	filtersJSON, _ := json.Marshal(input.Filters)
	return fmt.Sprintf("search:%s:%s:%s:%d:%d", normalized, input.DestinationCountry, filtersJSON, page, limit)
}

// normalizeForCacheKey normalizes a string for use as cache key component.
// Converts to lowercase, removes special characters, and trims whitespace.
func normalizeForCacheKey(v string) string {
	if v == "" {
		return ""
	}
	result := strings.ToLower(v)
	result = nonAlphanumericRegex.ReplaceAllString(result, "")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// getFromCache retrieves a cached response; any failure reads as a miss.
func (s *SearchService) getFromCache(ctx context.Context, key string) *domain.SearchResponse {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil
	}
	var response domain.SearchResponse
	if err := json.Unmarshal(data, &response); err != nil {
		s.logger.Warn("discarding undecodable cached response", zap.String("key", key), zap.Error(err))
		return nil
	}
	return &response
}

// setInCache stores a response; caching failures are logged, not propagated.
func (s *SearchService) setInCache(ctx context.Context, key string, response *domain.SearchResponse) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(response)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache search response", zap.String("key", key), zap.Error(err))
	}
}
