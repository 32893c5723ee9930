package manifest

import (
	"time"

	"github.com/dtnitsch/local-rag/models"
	"github.com/dtnitsch/local-rag/pkg/analytics"
	"github.com/dtnitsch/local-rag/pkg/mapreduce"
)

const (
	pageKeywords      = 5
	aggregateKeywords = 25
)

// LanguageDetector is satisfied by *analytics.LanguageDetector.
type LanguageDetector interface {
	Detect(text string) string
}

// SentenceCounter is satisfied by *analytics.SentenceCounter.
type SentenceCounter interface {
	Count(text string) int
}

// Generator builds run summaries. A nil Languages or Sentences skips that
// part of the per-page summary.
type Generator struct {
	Analytics *analytics.Analytics
	Languages LanguageDetector
	Sentences SentenceCounter
	Now       func() time.Time
}

func NewGenerator(languages LanguageDetector) *Generator {
	return &Generator{
		Analytics: &analytics.Analytics{},
		Languages: languages,
		Now:       time.Now,
	}
}

// GenerateSummary aggregates statistics and keywords over pages.
func (g *Generator) GenerateSummary(opts models.Options, download *models.DownloadResult, pages []models.PageRecord) SummaryManifest {
	m := SummaryManifest{
		GeneratedAt:    g.Now().Format(time.RFC3339),
		ExperimentName: opts.ExperimentName,
		PDFPath:        opts.PDFPath,
		TotalPages:     len(pages),
		Pages:          make([]PageSummary, 0, len(pages)),
	}
	if download != nil {
		m.Download = download.Status.String()
	}

	intermediate := make([]map[string]int, 0, len(pages))
	for _, p := range pages {
		counts := mapreduce.Map(p, g.Analytics)
		intermediate = append(intermediate, counts)

		m.TotalCharacters += p.CharacterCount
		if p.Text == "" {
			m.EmptyPages++
		} else {
			m.TotalWords += p.WordCount
		}

		summary := PageSummary{
			PageNumber:      p.PageNumber,
			WordCount:       p.WordCount,
			EstimatedTokens: p.CharacterCount / 4,
			TopKeywords:     mapreduce.TopKeywords(counts, pageKeywords),
		}
		if g.Languages != nil {
			summary.Language = g.Languages.Detect(p.Text)
		}
		if g.Sentences != nil {
			summary.Sentences = g.Sentences.Count(p.Text)
		}
		m.Pages = append(m.Pages, summary)
	}

	m.AggregateKeywords = mapreduce.TopKeywords(mapreduce.Reduce(intermediate), aggregateKeywords)
	return m
}
