package usecase

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"codemap/internal/adapter/fs"
	"codemap/internal/adapter/searcher"
	"codemap/internal/domain"
	"codemap/internal/port"
)

// ProgressFunc reports build progress to the CLI layer.
type ProgressFunc func(processed, total int, currentFile string)

// Index owns the live collection of indexed files and fronts every
// search through the result cache.
//
// Index is not internally synchronized: callers running builds,
// updates and searches from multiple goroutines must serialize access
// themselves (single-writer discipline from the watcher is the
// intended shape). The cache is the only component safe for concurrent
// use on its own.
type Index struct {
	walker   port.FileWalker
	parser   port.Parser
	searcher *searcher.Searcher
	cache    port.ResultCache
	log      *slog.Logger

	workers int

	files       []domain.IndexedFile
	root        string
	lastUpdated time.Time
}

// NewIndex wires the coordinator. Workers bounds the parallel parse
// stage of Build; values below 1 fall back to the CPU count.
func NewIndex(walker port.FileWalker, parser port.Parser, s *searcher.Searcher, cache port.ResultCache, workers int, log *slog.Logger) *Index {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Index{
		walker:   walker,
		parser:   parser,
		searcher: s,
		cache:    cache,
		workers:  workers,
		log:      log,
	}
}

// BuildResult summarizes a full index build.
type BuildResult struct {
	FilesIndexed int
	FilesFailed  int
	TotalSymbols int
	Errors       []string
	Duration     time.Duration
}

// Build runs the walker over root and parses every discovered file,
// replacing the current collection. Parse failures for individual
// files are logged and skipped, never fatal; only the walk itself can
// abort the build. The cache is cleared afterward.
func (idx *Index) Build(root string, progress ProgressFunc) (*BuildResult, error) {
	start := time.Now()

	infos, err := idx.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	result := &BuildResult{}
	parsed := make([]*domain.IndexedFile, len(infos))

	var mu sync.Mutex
	processed := 0

	var g errgroup.Group
	g.SetLimit(idx.workers)
	for i, info := range infos {
		i, info := i, info
		g.Go(func() error {
			file, err := idx.parser.ParseFile(info.Path, info.Language)

			mu.Lock()
			defer mu.Unlock()
			processed++
			if err != nil {
				idx.log.Warn("skipping file", "path", info.Path, "error", err)
				result.FilesFailed++
				result.Errors = append(result.Errors, err.Error())
			} else {
				parsed[i] = &file
			}
			if progress != nil {
				progress(processed, len(infos), info.Path)
			}
			return nil
		})
	}
	// Workers never return errors; per-file failures are collected
	// above so one bad file cannot abort the batch.
	_ = g.Wait()

	files := make([]domain.IndexedFile, 0, len(infos))
	for _, f := range parsed {
		if f == nil {
			continue
		}
		files = append(files, *f)
		result.TotalSymbols += len(f.Symbols)
	}
	result.FilesIndexed = len(files)
	result.Duration = time.Since(start)

	idx.files = files
	idx.root = root
	idx.lastUpdated = time.Now()
	idx.cache.InvalidateAll()

	return result, nil
}

// UpdateFile re-parses one file, replacing an existing entry for the
// path or appending a new one. The error from a failed parse
// propagates to the caller; cached results touching the path are
// always invalidated.
func (idx *Index) UpdateFile(path string) error {
	file, err := idx.parser.ParseFile(path, fs.DetectLanguage(path))
	if err != nil {
		return err
	}

	replaced := false
	for i := range idx.files {
		if idx.files[i].Path == path {
			idx.files[i] = file
			replaced = true
			break
		}
	}
	if !replaced {
		idx.files = append(idx.files, file)
	}

	idx.lastUpdated = time.Now()
	idx.cache.InvalidateFile(path)
	return nil
}

// RemoveFile drops the entry for path. Removing an absent path is a
// defined no-op, not an error.
func (idx *Index) RemoveFile(path string) {
	for i := range idx.files {
		if idx.files[i].Path == path {
			idx.files = append(idx.files[:i], idx.files[i+1:]...)
			idx.lastUpdated = time.Now()
			idx.cache.InvalidateFile(path)
			return
		}
	}
}

// ContainsFile reports whether a path is currently indexed.
func (idx *Index) ContainsFile(path string) bool {
	for i := range idx.files {
		if idx.files[i].Path == path {
			return true
		}
	}
	return false
}

// Search serves a query through the cache. A hit returns up to
// maxResults cached items; a miss runs the searcher and caches
// non-empty result sets only, so a file added moments later is not
// shadowed by a cached empty answer.
func (idx *Index) Search(query string, maxResults int) []domain.SearchResult {
	if cached, ok := idx.cache.Get(query); ok {
		if maxResults > 0 && len(cached) > maxResults {
			cached = cached[:maxResults]
		}
		return cached
	}

	results := idx.searcher.Search(idx.files, query, maxResults)
	if len(results) > 0 {
		idx.cache.Put(query, results)
	}
	return results
}

// SearchByKind returns every indexed symbol of one kind.
func (idx *Index) SearchByKind(kind domain.SymbolKind) []domain.SearchResult {
	return idx.searcher.SearchByKind(idx.files, kind)
}

// FindExact returns the first symbol with exactly the given name.
func (idx *Index) FindExact(name string) (domain.SearchResult, bool) {
	return idx.searcher.FindExact(idx.files, name)
}

// FindImporters returns paths of files importing the named module.
func (idx *Index) FindImporters(moduleName string) []string {
	return idx.searcher.FindImporters(idx.files, moduleName)
}

// ContextForTask ranks indexed files by relevance to a task
// description.
func (idx *Index) ContextForTask(description string, maxFiles int) []searcher.FileScore {
	return idx.searcher.ContextForTask(idx.files, description, maxFiles)
}

// Paths returns the indexed file paths in collection order.
func (idx *Index) Paths() []string {
	paths := make([]string, len(idx.files))
	for i := range idx.files {
		paths[i] = idx.files[i].Path
	}
	return paths
}

// Stats derives aggregate counters from the live collection.
func (idx *Index) Stats() domain.IndexStats {
	stats := domain.IndexStats{
		TotalFiles:      len(idx.files),
		FilesByLanguage: make(map[domain.Language]int),
		LastUpdated:     idx.lastUpdated,
	}

	for i := range idx.files {
		f := &idx.files[i]
		stats.TotalSymbols += len(f.Symbols)
		stats.FilesByLanguage[f.Language]++
		stats.EstimatedBytes += estimateSize(f)
	}
	return stats
}

// CacheStats exposes the cache counters for the stats command.
func (idx *Index) CacheStats() domain.CacheStats {
	return idx.cache.Stats()
}

// PrintStats writes a human-readable stats block.
func (idx *Index) PrintStats(w io.Writer) {
	stats := idx.Stats()
	cacheStats := idx.cache.Stats()

	fmt.Fprintf(w, "Indexed files:   %d\n", stats.TotalFiles)
	fmt.Fprintf(w, "Symbols:         %d\n", stats.TotalSymbols)
	fmt.Fprintf(w, "Estimated size:  %.1f KiB\n", float64(stats.EstimatedBytes)/1024)
	if !stats.LastUpdated.IsZero() {
		fmt.Fprintf(w, "Last updated:    %s\n", stats.LastUpdated.Format(time.RFC3339))
	}

	langs := make([]string, 0, len(stats.FilesByLanguage))
	for lang := range stats.FilesByLanguage {
		langs = append(langs, string(lang))
	}
	sort.Strings(langs)
	for _, lang := range langs {
		fmt.Fprintf(w, "  %-12s %d\n", lang, stats.FilesByLanguage[domain.Language(lang)])
	}

	fmt.Fprintf(w, "Cache:           %d entries, %d hits, %d misses (%.0f%% hit rate)\n",
		cacheStats.Entries, cacheStats.Hits, cacheStats.Misses, cacheStats.HitRate*100)
}

// estimateSize approximates the in-memory footprint of one entry.
func estimateSize(f *domain.IndexedFile) int64 {
	size := int64(len(f.Path))
	for _, s := range f.Symbols {
		size += int64(len(s.Name) + len(s.Signature) + len(s.Doc) + 32)
	}
	for _, imp := range f.Imports {
		size += int64(len(imp))
	}
	for _, exp := range f.Exports {
		size += int64(len(exp))
	}
	return size
}
