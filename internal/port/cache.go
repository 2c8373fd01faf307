package port

import "codemap/internal/domain"

// ResultCache stores search result sets keyed by query string.
// Implementations own deep copies of everything they store; cached
// results must stay valid while the live index mutates underneath.
type ResultCache interface {
	Get(query string) ([]domain.SearchResult, bool)
	Put(query string, results []domain.SearchResult)
	InvalidateAll()
	InvalidateFile(path string)
	Stats() domain.CacheStats
}
