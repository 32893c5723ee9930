package models

// PageRecord holds the normalized text of one PDF page and its statistics.
type PageRecord struct {
	PageNumber     int    `json:"page_number" yaml:"page_number"`
	CharacterCount int    `json:"page_character_count" yaml:"page_character_count"`
	WordCount      int    `json:"page_word_count" yaml:"page_word_count"`
	SentenceCount  int    `json:"page_sentence_count" yaml:"page_sentence_count"`
	TokenCount     int    `json:"page_token_count" yaml:"page_token_count"` // same as WordCount until a tokenizer lands
	Text           string `json:"text" yaml:"text"`
}
