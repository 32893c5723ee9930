package manifest

// SummaryManifest gives a quick overview of the pages a run returned
// without reading their full text.
type SummaryManifest struct {
	GeneratedAt       string        `json:"generated_at" yaml:"generated_at"`
	ExperimentName    string        `json:"experiment_name" yaml:"experiment_name"`
	PDFPath           string        `json:"pdf_path" yaml:"pdf_path"`
	Download          string        `json:"download,omitempty" yaml:"download,omitempty"`
	TotalPages        int           `json:"total_pages" yaml:"total_pages"`
	TotalWords        int           `json:"total_words" yaml:"total_words"`
	TotalCharacters   int           `json:"total_characters" yaml:"total_characters"`
	EmptyPages        int           `json:"empty_pages" yaml:"empty_pages"`
	AggregateKeywords []string      `json:"aggregate_keywords" yaml:"aggregate_keywords"`
	Pages             []PageSummary `json:"pages" yaml:"pages"`
}

// PageSummary is the per-page line of a SummaryManifest.
type PageSummary struct {
	PageNumber      int      `json:"page_number" yaml:"page_number"`
	WordCount       int      `json:"word_count" yaml:"word_count"`
	EstimatedTokens int      `json:"estimated_tokens" yaml:"estimated_tokens"`
	Sentences       int      `json:"sentences,omitempty" yaml:"sentences,omitempty"`
	Language        string   `json:"language,omitempty" yaml:"language,omitempty"`
	TopKeywords     []string `json:"top_keywords,omitempty" yaml:"top_keywords,omitempty"`
}
