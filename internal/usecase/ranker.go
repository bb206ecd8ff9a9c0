package usecase

import (
	"sort"

	"github.com/matchasource/backend/internal/domain"
)

// RankResults orders scored candidates by score descending and truncates to
// limit. The sort is stable: candidates with equal scores keep the supplier's
// original relative order (recency), and no secondary sort key is introduced.
// Truncation happens after sorting so the page always holds the best results.
func RankResults(results []domain.ScoredResult, limit int) []domain.ScoredResult {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	return results
}
