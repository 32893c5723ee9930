package analytics

import (
	"fmt"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// SentenceCounter counts sentences with the punkt tokenizer, which handles
// abbreviations and decimals that a plain period count does not.
type SentenceCounter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

func NewSentenceCounter() (*SentenceCounter, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load sentence tokenizer: %w", err)
	}
	return &SentenceCounter{tokenizer: tokenizer}, nil
}

func (s *SentenceCounter) Count(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	count := 0
	for _, sentence := range s.tokenizer.Tokenize(text) {
		if strings.TrimSpace(sentence.Text) != "" {
			count++
		}
	}
	return count
}
