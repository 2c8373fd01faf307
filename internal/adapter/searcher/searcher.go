package searcher

import (
	"math"
	"sort"
	"strings"

	"codemap/internal/domain"
)

// Scoring tiers. Exact matches are absolute scores; the lower tiers
// are additive bonuses stacked with the fuzzy subsequence score.
const (
	scoreExact         = 100.0
	scoreExactFold     = 90.0
	bonusPrefix        = 50.0
	bonusPrefixFold    = 40.0
	bonusSubstring     = 30.0
	bonusSubstringFold = 20.0

	// Results whose scores differ by less than this window are
	// tie-broken by file modification time, newest first.
	tieBreakWindow = 5.0
)

// Task-relevance weights per matched keyword.
const (
	taskWeightName      = 2.0
	taskWeightSignature = 1.0
	taskWeightPath      = 0.5
)

// Searcher ranks symbols across a slice of indexed files. It is a pure
// in-memory algorithm with no state of its own.
type Searcher struct{}

// New creates a Searcher.
func New() *Searcher {
	return &Searcher{}
}

// Search scores every symbol against the query and returns the top
// maxResults, ordered by score descending with near-equal scores
// tie-broken by file modification time descending. Symbols scoring
// zero are excluded.
func (s *Searcher) Search(files []domain.IndexedFile, query string, maxResults int) []domain.SearchResult {
	if query == "" {
		return nil
	}

	var results []domain.SearchResult
	for i := range files {
		file := &files[i]
		for _, sym := range file.Symbols {
			score := ScoreSymbol(sym.Name, query)
			if score <= 0 {
				continue
			}
			results = append(results, domain.SearchResult{
				FilePath:    file.Path,
				Symbol:      sym,
				Score:       score,
				FileModTime: file.ModTime,
			})
		}
	}

	SortResults(results)

	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// ScoreSymbol computes the relevance of one symbol name for a query.
func ScoreSymbol(name, query string) float64 {
	if name == query {
		return scoreExact
	}
	if strings.EqualFold(name, query) {
		return scoreExactFold
	}

	var score float64
	lowerName := strings.ToLower(name)
	lowerQuery := strings.ToLower(query)

	if strings.HasPrefix(name, query) {
		score += bonusPrefix
	} else if strings.HasPrefix(lowerName, lowerQuery) {
		score += bonusPrefixFold
	}

	if strings.Contains(name, query) {
		score += bonusSubstring
	} else if strings.Contains(lowerName, lowerQuery) {
		score += bonusSubstringFold
	}

	score += fuzzyScore(lowerName, lowerQuery)
	return score
}

// fuzzyScore matches query as a subsequence of name: 1 point per
// matched character plus 1 for each character consecutive with the
// previous match. A query that cannot be fully matched in order
// contributes nothing.
func fuzzyScore(name, query string) float64 {
	if query == "" {
		return 0
	}

	score := 0.0
	prev := -2
	qi := 0
	for ni := 0; ni < len(name) && qi < len(query); ni++ {
		if name[ni] != query[qi] {
			continue
		}
		score++
		if ni == prev+1 {
			score++
		}
		prev = ni
		qi++
	}
	if qi < len(query) {
		return 0
	}
	return score
}

// SortResults orders results by the ranking invariant: score
// descending, with scores inside the tie-break window ordered by file
// modification time descending so fresher files surface first.
func SortResults(results []domain.SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if math.Abs(a.Score-b.Score) < tieBreakWindow {
			return a.FileModTime > b.FileModTime
		}
		return a.Score > b.Score
	})
}

// SearchByKind returns every symbol of the given kind, unscored.
func (s *Searcher) SearchByKind(files []domain.IndexedFile, kind domain.SymbolKind) []domain.SearchResult {
	var results []domain.SearchResult
	for i := range files {
		file := &files[i]
		for _, sym := range file.Symbols {
			if sym.Kind != kind {
				continue
			}
			results = append(results, domain.SearchResult{
				FilePath:    file.Path,
				Symbol:      sym,
				FileModTime: file.ModTime,
			})
		}
	}
	return results
}

// FindExact returns the first symbol whose name matches exactly, in
// file iteration order, or false when none matches.
func (s *Searcher) FindExact(files []domain.IndexedFile, name string) (domain.SearchResult, bool) {
	for i := range files {
		file := &files[i]
		for _, sym := range file.Symbols {
			if sym.Name == name {
				return domain.SearchResult{
					FilePath:    file.Path,
					Symbol:      sym,
					Score:       scoreExact,
					FileModTime: file.ModTime,
				}, true
			}
		}
	}
	return domain.SearchResult{}, false
}

// FindImporters returns the paths of files whose import list contains
// the module name as a substring.
func (s *Searcher) FindImporters(files []domain.IndexedFile, moduleName string) []string {
	var paths []string
	for i := range files {
		file := &files[i]
		for _, imp := range file.Imports {
			if strings.Contains(imp, moduleName) {
				paths = append(paths, file.Path)
				break
			}
		}
	}
	return paths
}

// FileScore pairs a file path with its task-relevance score.
type FileScore struct {
	Path  string
	Score float64
}

// ContextForTask ranks files by relevance to a free-text task
// description. Each extracted keyword contributes once per file: 2
// points when it fuzzy-matches a symbol name, 1 for a signature match
// and 0.5 for a match against the path itself. Zero-score files are
// excluded; the top maxFiles paths are returned.
func (s *Searcher) ContextForTask(files []domain.IndexedFile, description string, maxFiles int) []FileScore {
	keywords := Keywords(description)
	if len(keywords) == 0 {
		return nil
	}

	var scored []FileScore
	for i := range files {
		file := &files[i]
		lowerPath := strings.ToLower(file.Path)

		var total float64
		for _, kw := range keywords {
			lowerKw := strings.ToLower(kw)

			nameHit := false
			sigHit := false
			for _, sym := range file.Symbols {
				if !nameHit && fuzzyScore(strings.ToLower(sym.Name), lowerKw) > 0 {
					nameHit = true
				}
				if !sigHit && sym.Signature != "" &&
					strings.Contains(strings.ToLower(sym.Signature), lowerKw) {
					sigHit = true
				}
				if nameHit && sigHit {
					break
				}
			}

			if nameHit {
				total += taskWeightName
			}
			if sigHit {
				total += taskWeightSignature
			}
			if strings.Contains(lowerPath, lowerKw) {
				total += taskWeightPath
			}
		}

		if total > 0 {
			scored = append(scored, FileScore{Path: file.Path, Score: total})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if maxFiles > 0 && len(scored) > maxFiles {
		scored = scored[:maxFiles]
	}
	return scored
}
