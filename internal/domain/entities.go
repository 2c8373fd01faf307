package domain

import "time"

// Language identifies the source language of an indexed file,
// derived from its extension.
type Language string

const (
	LangGo         Language = "go"
	LangRust       Language = "rust"
	LangZig        Language = "zig"
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangC          Language = "c"
	LangCPP        Language = "cpp"
	LangJava       Language = "java"
	LangUnknown    Language = "unknown"
)

// SymbolKind classifies an extracted code entity.
type SymbolKind string

const (
	KindFunction  SymbolKind = "function"
	KindStruct    SymbolKind = "struct"
	KindEnum      SymbolKind = "enum"
	KindConstant  SymbolKind = "constant"
	KindVariable  SymbolKind = "variable"
	KindClass     SymbolKind = "class"
	KindMethod    SymbolKind = "method"
	KindInterface SymbolKind = "interface"
	KindTypeAlias SymbolKind = "type-alias"
	KindModule    SymbolKind = "module"
)

// Icon returns the single-rune display icon for a symbol kind.
func (k SymbolKind) Icon() string {
	switch k {
	case KindFunction:
		return "ƒ"
	case KindStruct:
		return "⬡"
	case KindEnum:
		return "⊞"
	case KindConstant:
		return "π"
	case KindVariable:
		return "x"
	case KindClass:
		return "⬢"
	case KindMethod:
		return "m"
	case KindInterface:
		return "◈"
	case KindTypeAlias:
		return "τ"
	case KindModule:
		return "▣"
	default:
		return "?"
	}
}

// Symbol is one discovered code entity within a source file.
// Line and Column are 1-based.
type Symbol struct {
	Name      string
	Kind      SymbolKind
	Line      int
	Column    int
	Signature string
	Doc       string
}

// IndexedFile holds the extracted metadata for one source file.
// Path is the unique identity key within an index.
type IndexedFile struct {
	Path     string
	Language Language
	Symbols  []Symbol
	Imports  []string
	Exports  []string
	ModTime  int64
	Hash     uint64
}

// SearchResult is a scored view of one symbol produced by a search.
// FileModTime is copied from the owning file and used only for
// tie-breaking near-equal scores.
type SearchResult struct {
	FilePath    string
	Symbol      Symbol
	Score       float64
	FileModTime int64
}

// IndexStats aggregates counters over the live index. Derived on
// demand, never persisted.
type IndexStats struct {
	TotalFiles      int
	TotalSymbols    int
	FilesByLanguage map[Language]int
	EstimatedBytes  int64
	LastUpdated     time.Time
}

// CacheStats is a read-only snapshot of result-cache counters.
type CacheStats struct {
	Entries int
	Hits    uint64
	Misses  uint64
	HitRate float64
}
