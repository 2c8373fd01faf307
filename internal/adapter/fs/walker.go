package fs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"codemap/internal/domain"
	"codemap/internal/port"
)

// DefaultIgnores excludes version-control, dependency and build-output
// directories from indexing.
var DefaultIgnores = []string{
	"**/.git/**",
	"**/.svn/**",
	"**/.hg/**",
	"**/node_modules/**",
	"**/vendor/**",
	"**/target/**",
	"**/zig-out/**",
	"**/zig-cache/**",
	"**/dist/**",
	"**/build/**",
	"**/__pycache__/**",
	"**/.venv/**",
	"**/venv/**",
	"**/.idea/**",
	"**/.vscode/**",
}

// Walker enumerates source files with a recognized language, skipping
// paths matched by the configured ignore patterns.
type Walker struct {
	ignores []string
}

// NewWalker creates a Walker. An empty pattern list falls back to
// DefaultIgnores; pass explicit patterns to override.
func NewWalker(ignores []string) *Walker {
	if len(ignores) == 0 {
		ignores = DefaultIgnores
	}
	return &Walker{ignores: ignores}
}

// Walk recursively collects files under root whose extension maps to a
// known language. Entries that cannot be opened due to permissions are
// skipped; any other I/O error aborts the walk. Order follows directory
// iteration and carries no guarantee.
func (w *Walker) Walk(root string) ([]port.FileInfo, error) {
	var files []port.FileInfo

	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsPermission(err) {
				if info != nil && info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if info.IsDir() {
			if w.Ignored(relPath + "/") {
				return filepath.SkipDir
			}
			return nil
		}

		if w.Ignored(relPath) {
			return nil
		}

		lang := DetectLanguage(path)
		if lang == domain.LangUnknown {
			return nil
		}

		files = append(files, port.FileInfo{
			Path:     path,
			Language: lang,
			ModTime:  info.ModTime().Unix(),
			Size:     info.Size(),
		})
		return nil
	})

	return files, err
}

// Ignored reports whether a slash-separated relative path matches any
// configured ignore pattern.
func (w *Walker) Ignored(relPath string) bool {
	for _, pattern := range w.ignores {
		matched, err := doublestar.Match(pattern, relPath)
		if err == nil && matched {
			return true
		}
	}
	return false
}

// DetectLanguage maps a file extension to a language tag. Unknown
// extensions yield LangUnknown and are not indexed.
func DetectLanguage(path string) domain.Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".go":
		return domain.LangGo
	case ".rs":
		return domain.LangRust
	case ".zig":
		return domain.LangZig
	case ".py":
		return domain.LangPython
	case ".js", ".jsx", ".mjs":
		return domain.LangJavaScript
	case ".ts", ".tsx":
		return domain.LangTypeScript
	case ".c", ".h":
		return domain.LangC
	case ".cpp", ".cc", ".cxx", ".hpp":
		return domain.LangCPP
	case ".java":
		return domain.LangJava
	default:
		return domain.LangUnknown
	}
}
