// Package textnorm folds free text into the comparable form used by routing and retrieval.
package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MinTokenLen is the minimum token length in runes.
const MinTokenLen = 2

// combining diacritical marks block, U+0300..U+036F.
var diacritics = runes.Predicate(func(r rune) bool { return r >= 0x0300 && r <= 0x036F })

// Normalize decomposes s, strips combining diacritics, lowercases it, replaces every rune
// that is not a letter, digit or space with a space and collapses whitespace.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(diacritics))
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	space := true
	for _, r := range folded {
		r = unicode.ToLower(r)
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			r = ' '
		}
		if r == ' ' {
			if !space {
				b.WriteByte(' ')
				space = true
			}
			continue
		}
		b.WriteRune(r)
		space = false
	}
	return strings.TrimRight(b.String(), " ")
}

// Tokenize normalizes s and splits it on spaces, dropping tokens shorter than MinTokenLen.
func Tokenize(s string) []string {
	fields := strings.Split(Normalize(s), " ")
	out := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= MinTokenLen {
			out = append(out, f)
		}
	}
	return out
}

// HasWord reports whether term occurs in text bounded by spaces or the text edges.
// Both arguments must already be normalized; term may span several words.
func HasWord(text, term string) bool {
	if term == "" || text == "" {
		return false
	}
	return strings.Contains(" "+text+" ", " "+term+" ")
}

// CountHits counts the terms that occur in text as whole words.
func CountHits(text string, terms []string) int {
	n := 0
	for _, t := range terms {
		if HasWord(text, t) {
			n++
		}
	}
	return n
}
