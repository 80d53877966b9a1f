// Package scraper turns one external HTML events page into event rows ready
// for upserting.
package scraper

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	brTag        = regexp.MustCompile(`(?i)<br\s*/?>`)
	anyTag       = regexp.MustCompile(`<[^>]*>`)
	spaceRun     = regexp.MustCompile(`[\s　]+`)
	noiseRunes   = regexp.MustCompile(`[\s　、。，,．.・･!\-]`)
	sentenceEnds = "。！？"
)

// CleanText strips markup remnants, applies NFKC and collapses all whitespace
// runs (including ideographic spaces) to single spaces. Entities are decoded
// after the tag strip, so text that spells out markup stays text.
func CleanText(text string) string {
	text = brTag.ReplaceAllString(text, " ")
	text = anyTag.ReplaceAllString(text, "")
	text = html.UnescapeString(text)
	text = norm.NFKC.String(text)
	text = spaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// normalizeForComparison reduces text to a form where reworded copies of the
// same sentence collide: punctuation and whitespace dropped, NFKC, lowercase.
func normalizeForComparison(text string) string {
	text = norm.NFKC.String(text)
	text = noiseRunes.ReplaceAllString(text, "")
	return strings.ToLower(text)
}

// DedupeSentences removes repeated sentences from merged description
// fragments. Sentences are compared by their normalized form; fragments of
// three runes or fewer are dropped outright.
func DedupeSentences(text string) string {
	seen := make(map[string]struct{})
	var out []string
	for _, sentence := range splitSentences(text) {
		key := normalizeForComparison(sentence)
		if utf8.RuneCountInString(key) <= 3 {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, strings.TrimSpace(sentence))
	}
	return strings.Join(out, " ")
}

// splitSentences cuts after each Japanese sentence terminator, keeping the
// terminator with its sentence.
func splitSentences(text string) []string {
	var sentences []string
	var b strings.Builder
	for _, r := range text {
		b.WriteRune(r)
		if strings.ContainsRune(sentenceEnds, r) {
			sentences = append(sentences, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		sentences = append(sentences, b.String())
	}
	return sentences
}
