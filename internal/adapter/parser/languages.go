package parser

import (
	"strings"
	"unicode"

	"codemap/internal/domain"
)

// =============================================================================
// SHARED HELPERS
// =============================================================================

func isIdentByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// identPrefix returns the leading identifier of s, or "".
func identPrefix(s string) string {
	i := 0
	for i < len(s) && isIdentByte(s[i]) {
		i++
	}
	return s[:i]
}

// identBefore walks backward from position end, skipping spaces and
// the characters in skip, then collects identifier characters. This is
// how names are recovered for declarations where the distinguishing
// keyword follows the name, e.g. `const Config = struct {`.
func identBefore(s string, end int, skip string) string {
	i := end - 1
	for i >= 0 && (s[i] == ' ' || s[i] == '\t' || strings.IndexByte(skip, s[i]) >= 0) {
		i--
	}
	stop := i
	for i >= 0 && isIdentByte(s[i]) {
		i--
	}
	if i == stop {
		return ""
	}
	return s[i+1 : stop+1]
}

// stripGenerics removes a type-parameter suffix such as `<T>` from an
// extracted name.
func stripGenerics(name string) string {
	if idx := strings.IndexByte(name, '<'); idx >= 0 {
		return name[:idx]
	}
	return name
}

// nameBeforeParen reads the identifier that opens a parameter list,
// tolerating a generic suffix between name and parenthesis.
func nameBeforeParen(s string) string {
	name := identPrefix(s)
	if name == "" {
		return ""
	}
	rest := s[len(name):]
	if strings.HasPrefix(rest, "<") {
		if close := strings.IndexByte(rest, '>'); close >= 0 {
			rest = rest[close+1:]
		}
	}
	if strings.HasPrefix(rest, "(") || strings.HasPrefix(rest, "[") {
		return name
	}
	return ""
}

func isUpperStart(name string) bool {
	if name == "" {
		return false
	}
	return unicode.IsUpper(rune(name[0]))
}

// trimAnyPrefix repeatedly removes the given prefixes from s,
// reporting whether any of them was seen.
func trimAnyPrefix(s string, prefixes ...string) (string, bool) {
	seen := false
	for changed := true; changed; {
		changed = false
		for _, p := range prefixes {
			if strings.HasPrefix(s, p) {
				s = s[len(p):]
				seen = true
				changed = true
			}
		}
	}
	return s, seen
}

func quoted(s string) string {
	for _, q := range []byte{'"', '\''} {
		start := strings.IndexByte(s, q)
		if start < 0 {
			continue
		}
		end := strings.IndexByte(s[start+1:], q)
		if end < 0 {
			continue
		}
		return s[start+1 : start+1+end]
	}
	return ""
}

func symbol(name string, kind domain.SymbolKind, signature string) domain.Symbol {
	return domain.Symbol{Name: name, Kind: kind, Signature: signature}
}

func trimSignature(t string) string {
	t = strings.TrimSuffix(t, "{")
	return strings.TrimSpace(t)
}

// =============================================================================
// GO
// =============================================================================

type goScanner struct{}

func (goScanner) comment(t string) (string, bool) {
	if strings.HasPrefix(t, "//") {
		return strings.TrimSpace(strings.TrimPrefix(t, "//")), true
	}
	return "", false
}

func (goScanner) scan(raw, t string) lineResult {
	var res lineResult

	switch {
	case strings.HasPrefix(t, "func "):
		rest := t[len("func "):]
		kind := domain.KindFunction
		if strings.HasPrefix(rest, "(") {
			close := strings.IndexByte(rest, ')')
			if close < 0 {
				return res
			}
			rest = strings.TrimSpace(rest[close+1:])
			kind = domain.KindMethod
		}
		name := nameBeforeParen(rest)
		if name == "" {
			return res
		}
		res.symbols = append(res.symbols, symbol(name, kind, trimSignature(t)))
		if isUpperStart(name) {
			res.exports = append(res.exports, name)
		}

	case strings.HasPrefix(t, "type "):
		rest := t[len("type "):]
		name := identPrefix(rest)
		if name == "" {
			return res
		}
		tail := strings.TrimSpace(rest[len(name):])
		if strings.HasPrefix(tail, "[") {
			if close := strings.IndexByte(tail, ']'); close >= 0 {
				tail = strings.TrimSpace(tail[close+1:])
			}
		}
		kind := domain.KindTypeAlias
		switch {
		case strings.HasPrefix(tail, "struct"):
			kind = domain.KindStruct
		case strings.HasPrefix(tail, "interface"):
			kind = domain.KindInterface
		}
		res.symbols = append(res.symbols, symbol(name, kind, trimSignature(t)))
		if isUpperStart(name) {
			res.exports = append(res.exports, name)
		}

	case strings.HasPrefix(t, "const "):
		if name := identPrefix(t[len("const "):]); name != "" {
			res.symbols = append(res.symbols, symbol(name, domain.KindConstant, t))
			if isUpperStart(name) {
				res.exports = append(res.exports, name)
			}
		}

	case strings.HasPrefix(t, "var "):
		if name := identPrefix(t[len("var "):]); name != "" {
			res.symbols = append(res.symbols, symbol(name, domain.KindVariable, t))
			if isUpperStart(name) {
				res.exports = append(res.exports, name)
			}
		}

	case strings.HasPrefix(t, "import "):
		// Single-line form only; grouped import blocks are a known
		// false negative of line scanning.
		if path := quoted(t); path != "" {
			res.imports = append(res.imports, path)
		}

	case strings.HasPrefix(t, "package "):
		if name := identPrefix(t[len("package "):]); name != "" {
			res.symbols = append(res.symbols, symbol(name, domain.KindModule, t))
		}
	}

	return res
}

// =============================================================================
// RUST
// =============================================================================

type rustScanner struct{}

func (rustScanner) comment(t string) (string, bool) {
	if strings.HasPrefix(t, "///") {
		return strings.TrimSpace(strings.TrimPrefix(t, "///")), true
	}
	if strings.HasPrefix(t, "//") {
		return "", true
	}
	return "", false
}

func (rustScanner) scan(raw, t string) lineResult {
	var res lineResult

	rest, pub := trimAnyPrefix(t, "pub(crate) ", "pub(super) ", "pub ")
	rest, _ = trimAnyPrefix(rest, "async ", "unsafe ", "extern \"C\" ")

	record := func(name string, kind domain.SymbolKind, sig string) {
		res.symbols = append(res.symbols, symbol(name, kind, sig))
		if pub {
			res.exports = append(res.exports, name)
		}
	}

	switch {
	case strings.HasPrefix(rest, "fn "):
		name := stripGenerics(nameBeforeParen(rest[len("fn "):]))
		if name == "" {
			return res
		}
		kind := domain.KindFunction
		if raw != t {
			// Indented fn lines sit inside an impl or trait block.
			kind = domain.KindMethod
		}
		record(name, kind, trimSignature(t))

	case strings.HasPrefix(rest, "struct "):
		if name := stripGenerics(identPrefix(rest[len("struct "):])); name != "" {
			record(name, domain.KindStruct, trimSignature(t))
		}

	case strings.HasPrefix(rest, "enum "):
		if name := stripGenerics(identPrefix(rest[len("enum "):])); name != "" {
			record(name, domain.KindEnum, trimSignature(t))
		}

	case strings.HasPrefix(rest, "trait "):
		if name := stripGenerics(identPrefix(rest[len("trait "):])); name != "" {
			record(name, domain.KindInterface, trimSignature(t))
		}

	case strings.HasPrefix(rest, "union "):
		if name := stripGenerics(identPrefix(rest[len("union "):])); name != "" {
			record(name, domain.KindStruct, trimSignature(t))
		}

	case strings.HasPrefix(rest, "type ") && strings.Contains(rest, "="):
		if name := stripGenerics(identPrefix(rest[len("type "):])); name != "" {
			record(name, domain.KindTypeAlias, strings.TrimSuffix(t, ";"))
		}

	case strings.HasPrefix(rest, "mod "):
		if name := identPrefix(rest[len("mod "):]); name != "" {
			record(name, domain.KindModule, strings.TrimSuffix(t, ";"))
		}

	case strings.HasPrefix(rest, "const "):
		if name := identPrefix(rest[len("const "):]); name != "" {
			record(name, domain.KindConstant, strings.TrimSuffix(t, ";"))
		}

	case strings.HasPrefix(rest, "static "):
		rest, _ = trimAnyPrefix(rest[len("static "):], "mut ")
		if name := identPrefix(rest); name != "" {
			record(name, domain.KindVariable, strings.TrimSuffix(t, ";"))
		}

	case strings.HasPrefix(rest, "use "):
		path := strings.TrimSuffix(strings.TrimSpace(rest[len("use "):]), ";")
		if idx := strings.Index(path, " as "); idx >= 0 {
			path = path[:idx]
		}
		if idx := strings.IndexByte(path, '{'); idx >= 0 {
			path = strings.TrimSuffix(path[:idx], "::")
		}
		if path != "" {
			res.imports = append(res.imports, path)
		}
	}

	return res
}

// =============================================================================
// ZIG
// =============================================================================

type zigScanner struct{}

func (zigScanner) comment(t string) (string, bool) {
	if strings.HasPrefix(t, "///") {
		return strings.TrimSpace(strings.TrimPrefix(t, "///")), true
	}
	if strings.HasPrefix(t, "//") {
		return "", true
	}
	return "", false
}

func (zigScanner) scan(raw, t string) lineResult {
	var res lineResult

	rest, pub := trimAnyPrefix(t, "pub ")
	rest, _ = trimAnyPrefix(rest, "export ", "extern ", "inline ")

	record := func(name string, kind domain.SymbolKind, sig string) {
		res.symbols = append(res.symbols, symbol(name, kind, sig))
		if pub {
			res.exports = append(res.exports, name)
		}
	}

	if strings.HasPrefix(rest, "fn ") {
		if name := nameBeforeParen(rest[len("fn "):]); name != "" {
			record(name, domain.KindFunction, trimSignature(t))
		}
		return res
	}

	if !strings.HasPrefix(rest, "const ") && !strings.HasPrefix(rest, "var ") {
		return res
	}

	// Aggregate declarations put the keyword after the name:
	//   const Config = struct { ... };
	// so the name is recovered by walking backward from the keyword.
	for kw, kind := range map[string]domain.SymbolKind{
		"struct": domain.KindStruct,
		"enum":   domain.KindEnum,
		"union":  domain.KindStruct,
	} {
		idx := strings.Index(rest, "= "+kw)
		if idx < 0 {
			continue
		}
		if name := identBefore(rest, idx, ""); name != "" {
			record(name, kind, trimSignature(t))
			return res
		}
	}

	if strings.Contains(rest, "@import(") {
		if path := quoted(rest); path != "" {
			res.imports = append(res.imports, path)
		}
		return res
	}

	if strings.HasPrefix(rest, "const ") {
		if name := identPrefix(rest[len("const "):]); name != "" {
			record(name, domain.KindConstant, strings.TrimSuffix(t, ";"))
		}
	} else {
		if name := identPrefix(rest[len("var "):]); name != "" {
			record(name, domain.KindVariable, strings.TrimSuffix(t, ";"))
		}
	}

	return res
}

// =============================================================================
// PYTHON
// =============================================================================

type pythonScanner struct{}

func (pythonScanner) comment(t string) (string, bool) {
	if strings.HasPrefix(t, "#") {
		return strings.TrimSpace(strings.TrimPrefix(t, "#")), true
	}
	return "", false
}

func (pythonScanner) scan(raw, t string) lineResult {
	var res lineResult

	rest, _ := trimAnyPrefix(t, "async ")
	indented := raw != t

	record := func(name string, kind domain.SymbolKind, sig string) {
		res.symbols = append(res.symbols, symbol(name, kind, sig))
		if !indented && !strings.HasPrefix(name, "_") {
			res.exports = append(res.exports, name)
		}
	}

	switch {
	case strings.HasPrefix(rest, "def "):
		name := nameBeforeParen(rest[len("def "):])
		if name == "" {
			return res
		}
		kind := domain.KindFunction
		if indented {
			kind = domain.KindMethod
		}
		record(name, kind, strings.TrimSuffix(t, ":"))

	case strings.HasPrefix(rest, "class "):
		name := identPrefix(rest[len("class "):])
		if name == "" {
			return res
		}
		record(name, domain.KindClass, strings.TrimSuffix(t, ":"))

	case strings.HasPrefix(rest, "from "):
		mod := identDotted(rest[len("from "):])
		if mod != "" && strings.Contains(rest, " import ") {
			res.imports = append(res.imports, mod)
		}

	case strings.HasPrefix(rest, "import "):
		for _, part := range strings.Split(rest[len("import "):], ",") {
			if mod := identDotted(strings.TrimSpace(part)); mod != "" {
				res.imports = append(res.imports, mod)
			}
		}
	}

	return res
}

// identDotted reads a dotted module path such as `os.path`.
func identDotted(s string) string {
	i := 0
	for i < len(s) && (isIdentByte(s[i]) || s[i] == '.') {
		i++
	}
	return s[:i]
}

// =============================================================================
// JAVASCRIPT / TYPESCRIPT
// =============================================================================

type jsScanner struct {
	typescript bool
}

func (jsScanner) comment(t string) (string, bool) {
	if strings.HasPrefix(t, "//") {
		return strings.TrimSpace(strings.TrimPrefix(t, "//")), true
	}
	if strings.HasPrefix(t, "/*") || strings.HasPrefix(t, "*") {
		return "", true
	}
	return "", false
}

func (s jsScanner) scan(raw, t string) lineResult {
	var res lineResult

	rest, exported := trimAnyPrefix(t, "export ")
	rest, _ = trimAnyPrefix(rest, "default ", "declare ", "abstract ", "async ")

	record := func(name string, kind domain.SymbolKind, sig string) {
		res.symbols = append(res.symbols, symbol(name, kind, sig))
		if exported {
			res.exports = append(res.exports, name)
		}
	}

	switch {
	case strings.HasPrefix(rest, "function "):
		rest, _ = trimAnyPrefix(rest[len("function "):], "*")
		if name := stripGenerics(nameBeforeParen(rest)); name != "" {
			record(name, domain.KindFunction, trimSignature(t))
		}

	case strings.HasPrefix(rest, "class "):
		if name := stripGenerics(identPrefix(rest[len("class "):])); name != "" {
			record(name, domain.KindClass, trimSignature(t))
		}

	case s.typescript && strings.HasPrefix(rest, "interface "):
		if name := stripGenerics(identPrefix(rest[len("interface "):])); name != "" {
			record(name, domain.KindInterface, trimSignature(t))
		}

	case s.typescript && (strings.HasPrefix(rest, "enum ") || strings.HasPrefix(rest, "const enum ")):
		rest, _ = trimAnyPrefix(rest, "const ")
		if name := identPrefix(rest[len("enum "):]); name != "" {
			record(name, domain.KindEnum, trimSignature(t))
		}

	case s.typescript && strings.HasPrefix(rest, "type ") && strings.Contains(rest, "="):
		if name := stripGenerics(identPrefix(rest[len("type "):])); name != "" {
			record(name, domain.KindTypeAlias, strings.TrimSuffix(t, ";"))
		}

	case strings.HasPrefix(rest, "const "):
		name := identPrefix(rest[len("const "):])
		if name == "" {
			return res
		}
		kind := domain.KindConstant
		if strings.Contains(rest, "=>") {
			kind = domain.KindFunction
		}
		record(name, kind, strings.TrimSuffix(t, ";"))

	case strings.HasPrefix(rest, "let ") || strings.HasPrefix(rest, "var "):
		if name := identPrefix(rest[4:]); name != "" {
			record(name, domain.KindVariable, strings.TrimSuffix(t, ";"))
		}

	case strings.HasPrefix(rest, "import "):
		if path := quoted(rest); path != "" {
			res.imports = append(res.imports, path)
		}

	default:
		if strings.Contains(rest, "require(") {
			if path := quoted(rest); path != "" {
				res.imports = append(res.imports, path)
			}
		}
	}

	return res
}

// =============================================================================
// C / C++
// =============================================================================

type cScanner struct {
	cpp bool
}

func (cScanner) comment(t string) (string, bool) {
	if strings.HasPrefix(t, "//") {
		return strings.TrimSpace(strings.TrimPrefix(t, "//")), true
	}
	if strings.HasPrefix(t, "/*") || strings.HasPrefix(t, "*") {
		return "", true
	}
	return "", false
}

func (s cScanner) scan(raw, t string) lineResult {
	var res lineResult

	switch {
	case strings.HasPrefix(t, "#include"):
		rest := strings.TrimSpace(t[len("#include"):])
		if path := headerPath(rest); path != "" {
			res.imports = append(res.imports, path)
		}
		return res

	case strings.HasPrefix(t, "#define "):
		if name := identPrefix(t[len("#define "):]); name != "" {
			res.symbols = append(res.symbols, symbol(name, domain.KindConstant, t))
		}
		return res

	case strings.HasPrefix(t, "typedef "):
		// `typedef unsigned long size_type;` puts the new name last.
		body := strings.TrimSuffix(t, ";")
		if name := identBefore(body, len(body), ""); name != "" {
			res.symbols = append(res.symbols, symbol(name, domain.KindTypeAlias, body))
		}
		return res

	case strings.HasPrefix(t, "struct "):
		if name := identPrefix(t[len("struct "):]); name != "" {
			res.symbols = append(res.symbols, symbol(name, domain.KindStruct, trimSignature(t)))
		}
		return res

	case strings.HasPrefix(t, "enum "):
		rest, _ := trimAnyPrefix(t[len("enum "):], "class ")
		if name := identPrefix(rest); name != "" {
			res.symbols = append(res.symbols, symbol(name, domain.KindEnum, trimSignature(t)))
		}
		return res

	case strings.HasPrefix(t, "union "):
		if name := identPrefix(t[len("union "):]); name != "" {
			res.symbols = append(res.symbols, symbol(name, domain.KindStruct, trimSignature(t)))
		}
		return res
	}

	if s.cpp {
		switch {
		case strings.HasPrefix(t, "class "):
			if name := stripGenerics(identPrefix(t[len("class "):])); name != "" {
				res.symbols = append(res.symbols, symbol(name, domain.KindClass, trimSignature(t)))
			}
			return res

		case strings.HasPrefix(t, "namespace "):
			if name := identPrefix(t[len("namespace "):]); name != "" {
				res.symbols = append(res.symbols, symbol(name, domain.KindModule, trimSignature(t)))
			}
			return res

		case strings.HasPrefix(t, "using ") && strings.Contains(t, "="):
			if name := identPrefix(t[len("using "):]); name != "" {
				res.symbols = append(res.symbols, symbol(name, domain.KindTypeAlias, strings.TrimSuffix(t, ";")))
			}
			return res
		}
	}

	if name, method := cFunctionName(t, s.cpp); name != "" {
		kind := domain.KindFunction
		if method {
			kind = domain.KindMethod
		}
		res.symbols = append(res.symbols, symbol(name, kind, trimSignature(t)))
	}

	return res
}

func headerPath(s string) string {
	if strings.HasPrefix(s, "<") {
		if end := strings.IndexByte(s, '>'); end > 0 {
			return s[1:end]
		}
		return ""
	}
	return quoted(s)
}

var cControlKeywords = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true,
	"return": true, "sizeof": true, "catch": true, "do": true,
	"else": true,
}

// cFunctionName applies the classic heuristic for C-family function
// definitions: an identifier immediately before an opening parenthesis
// on a line that ends with an opening brace, preceded by a return type.
func cFunctionName(t string, cpp bool) (name string, method bool) {
	if !strings.HasSuffix(t, "{") {
		return "", false
	}
	paren := strings.IndexByte(t, '(')
	if paren <= 0 {
		return "", false
	}
	name = identBefore(t, paren, "")
	if name == "" || cControlKeywords[name] {
		return "", false
	}
	start := strings.Index(t, name)
	if start <= 0 {
		// No return type before the name; not a definition.
		return "", false
	}
	if cpp && start >= 2 && t[start-2:start] == "::" {
		return name, true
	}
	prev := t[start-1]
	if prev != ' ' && prev != '\t' && prev != '*' && prev != '&' {
		return "", false
	}
	return name, false
}

// =============================================================================
// JAVA
// =============================================================================

type javaScanner struct{}

func (javaScanner) comment(t string) (string, bool) {
	if strings.HasPrefix(t, "//") {
		return strings.TrimSpace(strings.TrimPrefix(t, "//")), true
	}
	if strings.HasPrefix(t, "/*") || strings.HasPrefix(t, "*") {
		return "", true
	}
	return "", false
}

func (javaScanner) scan(raw, t string) lineResult {
	var res lineResult

	rest, _ := trimAnyPrefix(t,
		"public ", "private ", "protected ", "static ", "final ", "abstract ", "synchronized ")
	public := strings.HasPrefix(t, "public ")

	record := func(name string, kind domain.SymbolKind, sig string) {
		res.symbols = append(res.symbols, symbol(name, kind, sig))
		if public {
			res.exports = append(res.exports, name)
		}
	}

	switch {
	case strings.HasPrefix(rest, "class "):
		if name := stripGenerics(identPrefix(rest[len("class "):])); name != "" {
			record(name, domain.KindClass, trimSignature(t))
		}

	case strings.HasPrefix(rest, "interface "):
		if name := stripGenerics(identPrefix(rest[len("interface "):])); name != "" {
			record(name, domain.KindInterface, trimSignature(t))
		}

	case strings.HasPrefix(rest, "enum "):
		if name := identPrefix(rest[len("enum "):]); name != "" {
			record(name, domain.KindEnum, trimSignature(t))
		}

	case strings.HasPrefix(rest, "record "):
		if name := stripGenerics(identPrefix(rest[len("record "):])); name != "" {
			record(name, domain.KindClass, trimSignature(t))
		}

	case strings.HasPrefix(t, "import "):
		path := strings.TrimSuffix(strings.TrimSpace(t[len("import "):]), ";")
		path = strings.TrimPrefix(path, "static ")
		if path != "" {
			res.imports = append(res.imports, path)
		}

	case strings.HasPrefix(t, "package "):
		if name := identDotted(t[len("package "):]); name != "" {
			res.symbols = append(res.symbols, symbol(name, domain.KindModule, strings.TrimSuffix(t, ";")))
		}

	default:
		if name, _ := cFunctionName(rest, false); name != "" {
			record(stripGenerics(name), domain.KindMethod, trimSignature(t))
		}
	}

	return res
}
