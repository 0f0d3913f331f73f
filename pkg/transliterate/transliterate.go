// Package transliterate rewrites Romanized Nepali into Devanagari.
//
// Conversion is a sequence of whole-string rewrites, not a tokenizer. Rules
// are applied longest pattern first; each rule replaces every
// case-insensitive occurrence of its pattern in the output of the previous
// rule. Devanagari produced by an earlier rule can never match a later Latin
// pattern, which makes Convert idempotent on its own output.
package transliterate

import (
	"sort"
	"strings"
)

// Rule maps one Romanized pattern to its Devanagari replacement.
type Rule struct {
	Pattern     string
	Replacement string
}

// Transliterator applies an ordered rule list. It is immutable and safe for
// concurrent use.
type Transliterator struct {
	rules []Rule
}

// New orders rules by descending pattern length, keeping the given order for
// equal lengths. Patterns are matched case-insensitively; empty patterns are
// dropped.
func New(rules []Rule) *Transliterator {
	ordered := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.Pattern == "" {
			continue
		}
		ordered = append(ordered, Rule{Pattern: strings.ToLower(r.Pattern), Replacement: r.Replacement})
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].Pattern) > len(ordered[j].Pattern)
	})
	return &Transliterator{rules: ordered}
}

var defaultTransliterator = New(romanToDevanagari)

// Default returns the transliterator built from the static Nepali table.
func Default() *Transliterator {
	return defaultTransliterator
}

// ConvertToNepali converts text with the default table.
func ConvertToNepali(text string) string {
	return defaultTransliterator.Convert(text)
}

// Rules returns the rules in application order.
func (t *Transliterator) Rules() []Rule {
	return append([]Rule(nil), t.rules...)
}

// Convert applies every rule in order to the whole string.
func (t *Transliterator) Convert(text string) string {
	result := text
	for _, r := range t.rules {
		result = replaceFold(result, r.Pattern, r.Replacement)
	}
	return result
}

// replaceFold replaces non-overlapping, left-to-right occurrences of an
// ASCII pattern, ignoring ASCII case. Multi-byte UTF-8 sequences never match
// because every byte of them is outside the ASCII range.
func replaceFold(s, pattern, replacement string) string {
	n := len(pattern)
	if n == 0 || len(s) < n {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	matched := false
	for i := 0; i < len(s); {
		if i+n <= len(s) && equalFoldASCII(s[i:i+n], pattern) {
			b.WriteString(replacement)
			i += n
			matched = true
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	if !matched {
		return s
	}
	return b.String()
}

func equalFoldASCII(s, lowerPattern string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != lowerPattern[i] {
			return false
		}
	}
	return true
}
