package extractor

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dtnitsch/local-rag/models"
)

// whitespaceRun matches ASCII and Unicode whitespace, including vertical tab,
// the \x1c-\x1f separators and NEL which \s alone leaves out.
var whitespaceRun = regexp.MustCompile(`[\s\v\x1c-\x1f\x{85}\p{Z}]+`)

// Normalize replaces newlines with spaces, collapses whitespace runs into a
// single space and trims both ends.
func Normalize(text string) string {
	cleaned := strings.ReplaceAll(text, "\n", " ")
	cleaned = whitespaceRun.ReplaceAllString(cleaned, " ")
	return strings.Trim(cleaned, " ")
}

// NewPageRecord normalizes raw page text and computes its statistics.
//
// WordCount splits on single spaces, so empty text still counts one word.
func NewPageRecord(index, offset int, raw string) models.PageRecord {
	text := Normalize(raw)
	words := len(strings.Split(text, " "))

	return models.PageRecord{
		PageNumber:     index - offset,
		CharacterCount: utf8.RuneCountInString(text),
		WordCount:      words,
		SentenceCount:  strings.Count(text, "."),
		TokenCount:     words,
		Text:           text,
	}
}
