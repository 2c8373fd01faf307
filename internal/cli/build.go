package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"codemap/internal/adapter/cache"
	"codemap/internal/adapter/fs"
	"codemap/internal/adapter/parser"
	"codemap/internal/adapter/searcher"
	"codemap/internal/usecase"
)

// resolveTarget picks the directory to index: the positional argument
// if given, otherwise the configured root.
func resolveTarget(args []string) (string, error) {
	path := GetRootDir()
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return "", fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", path)
	}
	return path, nil
}

// newIndex assembles the coordinator from the configured adapters.
// The index is in-memory only, so every command starts from an empty
// one and builds it before use.
func newIndex() *usecase.Index {
	c := GetConfig()
	walker := fs.NewWalker(c.Index.Excludes)
	p := parser.New(c.Index.MaxFileSize)
	resultCache := cache.New(c.Cache.MaxEntries, time.Duration(c.Cache.TTLSeconds)*time.Second)
	return usecase.NewIndex(walker, p, searcher.New(), resultCache, c.Index.Workers, logger)
}

// buildIndex builds a fresh index over path without progress output.
// Commands that want a progress bar (index, watch) drive Build
// themselves.
func buildIndex(path string) (*usecase.Index, *usecase.BuildResult, error) {
	idx := newIndex()
	result, err := idx.Build(path, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("indexing failed: %w", err)
	}
	return idx, result, nil
}
