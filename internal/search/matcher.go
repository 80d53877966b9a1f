// Package search implements the query matching and ordering rules for the
// museum and event lists.
package search

import (
	"strings"

	"museum-map-api/internal/jptext"
)

// Query is a parsed free-text search. Each whitespace-delimited token is kept
// in two parallel normalizations: half-width (kanji/katakana comparisons) and
// hiragana-folded (phonetic comparisons).
type Query struct {
	raw  string
	half []string
	hira []string
}

// ParseQuery normalizes and tokenizes raw query text. A query that is empty
// after trimming matches every record.
func ParseQuery(raw string) Query {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Query{}
	}
	half := jptext.Normalize(trimmed)
	return Query{
		raw:  trimmed,
		half: strings.Fields(half),
		hira: strings.Fields(jptext.KatakanaToHiragana(half)),
	}
}

// Raw returns the trimmed query text.
func (q Query) Raw() string { return q.raw }

// IsEmpty reports whether the query carries no tokens.
func (q Query) IsEmpty() bool { return len(q.half) == 0 }

// Matches reports whether every token appears in at least one candidate
// field, in either its half-width or its hiragana form. Tokens AND together;
// fields OR together per token. Substring containment, not word boundaries.
func (q Query) Matches(fields []string) bool {
	if q.IsEmpty() {
		return true
	}
	for i, hw := range q.half {
		if hw == "" {
			continue
		}
		hira := q.hira[i]
		found := false
		for _, f := range fields {
			if f == "" {
				continue
			}
			normalized := jptext.Normalize(f)
			if strings.Contains(normalized, hw) ||
				strings.Contains(jptext.KatakanaToHiragana(normalized), hira) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
