package searcher

import (
	"strings"
	"unicode"
)

// minKeywordLen drops short tokens; anything of this length or less is
// too generic to rank files by.
const minKeywordLen = 3

// Keywords extracts the ranking keywords from a free-text task
// description: split on whitespace and punctuation, drop short tokens
// and common stopwords, de-duplicate preserving order.
func Keywords(text string) []string {
	words := splitWords(text)
	keywords := make([]string, 0, len(words))
	seen := make(map[string]struct{}, len(words))

	for _, word := range words {
		if len(word) <= minKeywordLen {
			continue
		}
		lower := strings.ToLower(word)
		if _, stop := stopwords[lower]; stop {
			continue
		}
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		keywords = append(keywords, word)
	}

	return keywords
}

// splitWords splits text into identifier-like words; underscores stay
// part of a word so symbol names survive intact.
func splitWords(text string) []string {
	var words []string
	var current strings.Builder

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			current.WriteRune(r)
		} else {
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}

	return words
}

var stopwords = map[string]struct{}{
	"that": {}, "this": {}, "with": {}, "from": {}, "have": {},
	"when": {}, "where": {}, "which": {}, "their": {},
	"there": {}, "would": {}, "could": {}, "should": {}, "about": {},
	"into": {}, "then": {}, "them": {}, "they": {}, "what": {},
	"make": {}, "need": {}, "needs": {}, "want": {}, "please": {},
	"using": {}, "used": {}, "uses": {},
}
