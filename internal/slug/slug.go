// internal/slug/slug.go
package slug

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// turkishFold maps Turkish letters to ASCII before slugification so titles
// like "Akşam Turnuvası" produce readable slugs.
var turkishFold = map[rune]rune{
	'ç': 'c', 'ğ': 'g', 'ı': 'i', 'ö': 'o', 'ş': 's', 'ü': 'u',
	'Ç': 'c', 'Ğ': 'g', 'İ': 'i', 'Ö': 'o', 'Ş': 's', 'Ü': 'u',
}

// Make converts free text into a URL slug: lowercase ASCII letters, digits
// and single dashes.
func Make(text string) string {
	var b strings.Builder
	lastDash := true // suppress leading dash
	for _, r := range text {
		if folded, ok := turkishFold[r]; ok {
			r = folded
		}
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// EnsureUnique returns base if taken reports it free, otherwise the first
// "base-2", "base-3", ... that is free. The check-then-use gap is accepted:
// slug creation is admin-only and collisions are rare; the slug column's
// unique index is the backstop.
func EnsureUnique(ctx context.Context, base string, taken func(context.Context, string) (bool, error)) (string, error) {
	if base == "" {
		base = "item"
	}
	candidate := base
	for i := 2; ; i++ {
		inUse, err := taken(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("slug check failed: %w", err)
		}
		if !inUse {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
