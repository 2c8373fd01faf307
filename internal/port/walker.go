package port

import "codemap/internal/domain"

// FileWalker enumerates candidate source files under a root directory.
type FileWalker interface {
	Walk(root string) ([]FileInfo, error)
}

// FileInfo describes one file discovered by a walk.
type FileInfo struct {
	Path     string
	Language domain.Language
	ModTime  int64
	Size     int64
}
