// internal/textfilter/filter.go
package textfilter

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Filter matches whole tokens against the canonical wordlist after
// normalization. Matching is full-token only: a token must normalize (or
// fully collapse) to exactly a wordlist entry. Substring containment is
// deliberately not used, so legitimate words that merely contain a banned
// substring are never flagged.
type Filter struct {
	normalized map[string]string // Normalize(entry) -> entry
	collapsed  map[string]string // Collapse(Normalize(entry)) -> entry
}

// CheckResult reports whether any token matched and which canonical wordlist
// entries were hit.
type CheckResult struct {
	HasMatch bool
	Words    []string
}

// New builds a Filter from the built-in wordlist.
func New() *Filter {
	return NewWithWords(bannedWords)
}

// NewWithWords builds a Filter from a custom wordlist. Used by tests.
func NewWithWords(words []string) *Filter {
	f := &Filter{
		normalized: make(map[string]string, len(words)),
		collapsed:  make(map[string]string, len(words)),
	}
	for _, w := range words {
		n := Normalize(w)
		if n == "" {
			continue
		}
		f.normalized[n] = w
		f.collapsed[Collapse(n)] = w
	}
	return f
}

// token is a whitespace-delimited span of the original input.
type token struct {
	text  string
	start int // byte offset
	end   int // byte offset, exclusive
}

func tokenize(text string) []token {
	var tokens []token
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				tokens = append(tokens, token{text: text[start:i], start: start, end: i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, token{text: text[start:], start: start, end: len(text)})
	}
	return tokens
}

// lookup resolves a normalized form against the wordlist. The normalized
// lookup wins over the collapsed one; a form matches at most one canonical
// word.
func (f *Filter) lookup(tok string) (string, bool) {
	n := Normalize(tok)
	if n == "" {
		return "", false
	}
	if w, ok := f.normalized[n]; ok {
		return w, true
	}
	if w, ok := f.collapsed[Collapse(n)]; ok {
		return w, true
	}
	return "", false
}

// trimEdges drops non-alphanumeric runes from both ends of a token and
// returns the core with its byte span. Leet symbols carry letter value inside
// a token ("b!tch") but at the edges they are sentence punctuation ("bitch!"),
// so the core is retried separately.
func trimEdges(tok string) (string, int, int) {
	start, end := 0, len(tok)
	for start < end {
		r, size := utf8.DecodeRuneInString(tok[start:end])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			break
		}
		start += size
	}
	for end > start {
		r, size := utf8.DecodeLastRuneInString(tok[start:end])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			break
		}
		end -= size
	}
	return tok[start:end], start, end
}

// match resolves one token, reporting the byte span within the token that a
// mask should cover: the whole token when it matches as-is, or the trimmed
// core when only the punctuation-stripped form matches.
func (f *Filter) match(tok string) (word string, start, end int, found bool) {
	if w, ok := f.lookup(tok); ok {
		return w, 0, len(tok), true
	}
	core, s, e := trimEdges(tok)
	if core != tok && core != "" {
		if w, ok := f.lookup(core); ok {
			return w, s, e, true
		}
	}
	return "", 0, 0, false
}

// Check scans text and returns whether any token matched plus the set of
// matched canonical words. Always returns a result; clean text yields an
// empty word set.
func (f *Filter) Check(text string) CheckResult {
	var res CheckResult
	seen := map[string]bool{}
	for _, tok := range tokenize(text) {
		if w, _, _, ok := f.match(tok.text); ok {
			res.HasMatch = true
			if !seen[w] {
				seen[w] = true
				res.Words = append(res.Words, w)
			}
		}
	}
	return res
}

// Contains reports whether text contains at least one banned token.
func (f *Filter) Contains(text string) bool {
	for _, tok := range tokenize(text) {
		if _, _, _, ok := f.match(tok.text); ok {
			return true
		}
	}
	return false
}

// Mask replaces each matched span with asterisks of the same rune length,
// leaving everything else byte-for-byte intact. Edge punctuation around a
// matched core stays visible ("FUCK!" masks to "****!").
func (f *Filter) Mask(text string) string {
	tokens := tokenize(text)

	var b strings.Builder
	b.Grow(len(text))
	prev := 0
	for _, tok := range tokens {
		_, s, e, ok := f.match(tok.text)
		if !ok {
			continue
		}
		b.WriteString(text[prev : tok.start+s])
		b.WriteString(strings.Repeat("*", utf8.RuneCountInString(tok.text[s:e])))
		prev = tok.start + e
	}
	b.WriteString(text[prev:])
	return b.String()
}
