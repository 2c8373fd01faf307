package parser

import (
	"errors"
	"fmt"
	"hash/fnv"
	"os"
	"strings"

	"codemap/internal/domain"
)

// MaxFileSize is the hard per-file ceiling. Files above it are treated
// like parse failures: skipped during a build, surfaced on direct calls.
const MaxFileSize = 10 << 20 // 10 MiB

// ErrFileTooLarge marks a file rejected by the size ceiling.
var ErrFileTooLarge = errors.New("file exceeds size limit")

// ParseError wraps the underlying I/O or size error for one file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// lineResult is what a scanner extracted from a single line.
type lineResult struct {
	symbols []domain.Symbol
	imports []string
	exports []string
}

// lineScanner extracts symbols from one line of source. This is
// deliberately line-oriented substring scanning, not a grammar:
// multi-line declarations are missed and malformed lines are skipped
// without error.
type lineScanner interface {
	// comment reports whether the trimmed line is a comment, returning
	// any doc text it contributes to the next declaration.
	comment(trimmed string) (string, bool)

	// scan extracts symbols and imports from one line.
	scan(raw, trimmed string) lineResult
}

// Parser extracts symbol metadata from source files.
type Parser struct {
	maxFileSize int64
}

// New creates a Parser. A non-positive maxFileSize falls back to
// MaxFileSize.
func New(maxFileSize int64) *Parser {
	if maxFileSize <= 0 {
		maxFileSize = MaxFileSize
	}
	return &Parser{maxFileSize: maxFileSize}
}

// ParseFile reads one file and extracts its symbols, imports and
// content hash. It fails with a ParseError if the file cannot be
// opened or exceeds the size limit. An unsupported language still yields
// an IndexedFile carrying path and metadata, with empty symbol lists.
func (p *Parser) ParseFile(path string, lang domain.Language) (domain.IndexedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.IndexedFile{}, &ParseError{Path: path, Err: err}
	}
	if info.Size() > p.maxFileSize {
		return domain.IndexedFile{}, &ParseError{Path: path, Err: ErrFileTooLarge}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.IndexedFile{}, &ParseError{Path: path, Err: err}
	}

	file := domain.IndexedFile{
		Path:     path,
		Language: lang,
		ModTime:  info.ModTime().Unix(),
		Hash:     contentHash(data),
	}

	sc := scannerFor(lang)
	if sc == nil {
		return file, nil
	}

	var pendingDoc []string
	for i, raw := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(raw)

		if doc, ok := sc.comment(trimmed); ok {
			if doc != "" {
				pendingDoc = append(pendingDoc, doc)
			}
			continue
		}

		res := sc.scan(raw, trimmed)
		for j := range res.symbols {
			sym := &res.symbols[j]
			sym.Line = i + 1
			if col := strings.Index(raw, sym.Name); col >= 0 {
				sym.Column = col + 1
			} else {
				sym.Column = 1
			}
			if j == 0 && len(pendingDoc) > 0 {
				sym.Doc = strings.Join(pendingDoc, " ")
			}
		}

		file.Symbols = append(file.Symbols, res.symbols...)
		file.Imports = append(file.Imports, res.imports...)
		file.Exports = append(file.Exports, res.exports...)

		if trimmed != "" {
			pendingDoc = nil
		}
	}

	return file, nil
}

// scannerFor selects the line scanner for a language. The set is
// closed: supporting a new language means adding one implementation
// here.
func scannerFor(lang domain.Language) lineScanner {
	switch lang {
	case domain.LangGo:
		return goScanner{}
	case domain.LangRust:
		return rustScanner{}
	case domain.LangZig:
		return zigScanner{}
	case domain.LangPython:
		return pythonScanner{}
	case domain.LangJavaScript:
		return jsScanner{typescript: false}
	case domain.LangTypeScript:
		return jsScanner{typescript: true}
	case domain.LangC:
		return cScanner{cpp: false}
	case domain.LangCPP:
		return cScanner{cpp: true}
	case domain.LangJava:
		return javaScanner{}
	default:
		return nil
	}
}

// contentHash is a fast non-cryptographic hash of the file content,
// kept for change detection.
func contentHash(data []byte) uint64 {
	h := fnv.New64a()
	h.Write(data)
	return h.Sum64()
}
