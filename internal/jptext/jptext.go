// Package jptext canonicalizes Japanese text for comparison. Queries arrive
// in any mix of kanji, katakana, hiragana and full- or half-width ASCII, so
// both sides of every substring test must pass through the same folding.
package jptext

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ToHalfWidth folds the full-width ASCII block (U+FF01..U+FF5E) to its
// half-width form and the ideographic space (U+3000) to a plain space.
func ToHalfWidth(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 0xFF01 && r <= 0xFF5E:
			r -= 0xFEE0
		case r == 0x3000:
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

// KatakanaToHiragana folds katakana in U+30A1..U+30F6 to the hiragana
// counterpart at a fixed offset. The reverse direction is never applied.
func KatakanaToHiragana(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 0x30A1 && r <= 0x30F6 {
			r -= 0x60
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Normalize produces the canonical comparable form: half-width folding, NFC
// composition, then lowercasing so mixed-case ASCII data compares equal.
// Total and idempotent; the empty string maps to itself.
func Normalize(s string) string {
	return strings.ToLower(norm.NFC.String(ToHalfWidth(s)))
}

// Fold is Normalize plus katakana-to-hiragana folding, the form used for
// phonetic comparison against hiragana query tokens.
func Fold(s string) string {
	return KatakanaToHiragana(Normalize(s))
}
