// internal/textfilter/normalize.go
package textfilter

import "strings"

// localizedLetters maps Turkish and accented variants down to base Latin
// letters before any other processing.
var localizedLetters = map[rune]rune{
	'ç': 'c',
	'ğ': 'g',
	'ı': 'i',
	'ö': 'o',
	'ş': 's',
	'ü': 'u',
	'â': 'a',
	'î': 'i',
	'û': 'u',
	'é': 'e',
	'á': 'a',
}

// leetLetters maps digit/symbol stand-ins to the letters they imitate.
var leetLetters = map[rune]rune{
	'0': 'o',
	'1': 'i',
	'3': 'e',
	'4': 'a',
	'5': 's',
	'7': 't',
	'8': 'b',
	'@': 'a',
	'$': 's',
	'!': 'i',
	'€': 'e',
}

// separators are stripped entirely; they carry no letter value and are the
// usual way users split a word to dodge matching.
var separators = map[rune]bool{
	'.': true, ',': true, '-': true, '_': true, '*': true,
	'+': true, '~': true, '\'': true, '"': true, '`': true,
	'(': true, ')': true, '[': true, ']': true, '{': true, '}': true,
	'/': true, '\\': true, '|': true, ':': true, ';': true,
	'?': true, '<': true, '>': true,
}

// Normalize lowercases text, folds localized and leet characters to base
// letters, strips separator characters and collapses any run of three or more
// identical characters down to two. It is a pure, total function.
func Normalize(text string) string {
	lowered := strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(lowered))

	var last rune
	runLen := 0
	for _, r := range lowered {
		if mapped, ok := localizedLetters[r]; ok {
			r = mapped
		}
		if mapped, ok := leetLetters[r]; ok {
			r = mapped
		}
		if separators[r] {
			continue
		}
		if r == last {
			runLen++
			if runLen >= 3 {
				continue
			}
		} else {
			last = r
			runLen = 1
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Collapse reduces every run of two or more identical characters to a single
// character. Applied on top of Normalize it yields the fully collapsed form
// used for fuzzy wordlist lookups ("fuuuck" -> "fuck" -> "fuck"/"fuk").
func Collapse(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	var last rune
	first := true
	for _, r := range text {
		if !first && r == last {
			continue
		}
		b.WriteRune(r)
		last = r
		first = false
	}
	return b.String()
}
