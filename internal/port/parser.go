package port

import "codemap/internal/domain"

// Parser reads a source file and extracts its symbol metadata.
// A failed parse of one file must be treated as non-fatal by
// callers iterating over a batch.
type Parser interface {
	ParseFile(path string, lang domain.Language) (domain.IndexedFile, error)
}
