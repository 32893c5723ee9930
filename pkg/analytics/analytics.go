package analytics

import (
	"strings"
	"unicode"
)

type Analytics struct{}

// stopwords are English function words ignored by keyword counts. Book pages
// also carry running heads, so a few layout words are included.
var stopwords = map[string]struct{}{
	"a": {}, "about": {}, "after": {}, "all": {}, "also": {}, "an": {}, "and": {},
	"any": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "because": {}, "been": {}, "before": {}, "being": {}, "between": {},
	"both": {}, "but": {}, "by": {},
	"can": {}, "could": {},
	"did": {}, "do": {}, "does": {}, "during": {},
	"each": {}, "either": {},
	"few": {}, "for": {}, "from": {},
	"had": {}, "has": {}, "have": {}, "he": {}, "her": {}, "here": {}, "his": {},
	"how": {}, "however": {},
	"i": {}, "if": {}, "in": {}, "into": {}, "is": {}, "it": {}, "its": {},
	"may": {}, "more": {}, "most": {}, "much": {}, "must": {},
	"no": {}, "nor": {}, "not": {},
	"of": {}, "on": {}, "one": {}, "only": {}, "or": {}, "other": {}, "our": {},
	"out": {}, "over": {},
	"same": {}, "she": {}, "should": {}, "so": {}, "some": {}, "such": {},
	"than": {}, "that": {}, "the": {}, "their": {}, "them": {}, "then": {},
	"there": {}, "these": {}, "they": {}, "this": {}, "those": {}, "through": {},
	"to": {}, "too": {},
	"under": {}, "up": {}, "us": {},
	"very": {},
	"was": {}, "we": {}, "were": {}, "what": {}, "when": {}, "where": {},
	"which": {}, "while": {}, "who": {}, "why": {}, "will": {}, "with": {},
	"would": {},
	"you": {}, "your": {},

	// running heads and figure captions
	"chapter": {}, "figure": {}, "table": {}, "page": {}, "section": {},
}

// IsStopword reports whether word is ignored by keyword counts.
func IsStopword(word string) bool {
	_, exists := stopwords[strings.ToLower(word)]
	return exists
}

// WordFrequency counts lowercase words in text, skipping stopwords, bare
// numbers and punctuation.
func (a *Analytics) WordFrequency(text string) map[string]int {
	frequencies := make(map[string]int)

	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if word == "" || IsStopword(word) || isNumber(word) {
			continue
		}
		frequencies[word]++
	}

	return frequencies
}

func isNumber(word string) bool {
	for _, r := range word {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
