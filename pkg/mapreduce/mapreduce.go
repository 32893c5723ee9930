package mapreduce

import (
	"github.com/dtnitsch/local-rag/models"
	"github.com/dtnitsch/local-rag/pkg/analytics"
)

// Map generates a word frequency map for a single page.
func Map(page models.PageRecord, a *analytics.Analytics) map[string]int {
	return a.WordFrequency(page.Text)
}

// Reduce aggregates a slice of word frequency maps into a single map.
func Reduce(intermediate []map[string]int) map[string]int {
	finalResults := make(map[string]int)

	for _, counts := range intermediate {
		for word, count := range counts {
			finalResults[word] += count
		}
	}

	return finalResults
}
