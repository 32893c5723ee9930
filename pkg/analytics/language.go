package analytics

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// UnknownLanguage is reported when a page has too little text to classify.
const UnknownLanguage = "unknown"

// DefaultLanguages covers the languages open textbooks are usually published in.
var DefaultLanguages = []lingua.Language{
	lingua.English,
	lingua.French,
	lingua.German,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Spanish,
}

// LanguageDetector labels page text with an ISO 639-1 code.
type LanguageDetector struct {
	detector lingua.LanguageDetector
}

func NewLanguageDetector(languages ...lingua.Language) *LanguageDetector {
	if len(languages) < 2 {
		languages = DefaultLanguages
	}
	return &LanguageDetector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(languages...).
			WithMinimumRelativeDistance(0.1).
			Build(),
	}
}

// Detect returns the lowercase ISO 639-1 code of text, or UnknownLanguage.
func (d *LanguageDetector) Detect(text string) string {
	if strings.TrimSpace(text) == "" {
		return UnknownLanguage
	}
	language, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return UnknownLanguage
	}
	return strings.ToLower(language.IsoCode639_1().String())
}
