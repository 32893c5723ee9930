// Package extractor turns a PDF on disk into per-page text records.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/dtnitsch/local-rag/models"
)

var (
	ErrOpen       = errors.New("could not open PDF file")
	ErrSampleSize = errors.New("sample larger than population or is negative")
)

type PageExtractor struct {
	path   string
	offset int
	open   Opener
	rng    *rand.Rand
	logger *slog.Logger
}

type Option func(*PageExtractor)

func WithOpener(open Opener) Option {
	return func(e *PageExtractor) {
		e.open = open
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(e *PageExtractor) {
		e.rng = rng
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *PageExtractor) {
		e.logger = logger
	}
}

// New returns an extractor for the PDF at path. offset is subtracted from the
// zero-based physical page index to produce each record's page number.
func New(path string, offset int, options ...Option) *PageExtractor {
	e := &PageExtractor{
		path:   path,
		offset: offset,
		open:   OpenPDF,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range options {
		o(e)
	}
	return e
}

// ExtractAll opens the document and returns one record per page in physical
// order. Every call re-reads the file.
func (e *PageExtractor) ExtractAll(ctx context.Context) ([]models.PageRecord, error) {
	doc, err := e.open(e.path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpen, e.path, err)
	}
	defer doc.Close()

	numPages := doc.NumPage()
	e.logger.Info("reading PDF", "path", e.path, "pages", numPages, "page_offset", e.offset)

	pages := make([]models.PageRecord, 0, numPages)
	for i := 0; i < numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := doc.PageText(i)
		if err != nil {
			// Keep the page so numbering stays contiguous.
			e.logger.Warn("failed to extract page text", "page_index", i, "error", err)
			text = ""
		}

		record := NewPageRecord(i, e.offset, text)
		e.logger.Debug("page extracted", "page_index", i, "page_number", record.PageNumber, "characters", record.CharacterCount)
		pages = append(pages, record)
	}

	return pages, nil
}

// ExtractFirst returns the first n records, or all of them when the document
// is shorter. n <= 0 returns no records.
func (e *PageExtractor) ExtractFirst(ctx context.Context, n int) ([]models.PageRecord, error) {
	pages, err := e.ExtractAll(ctx)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		n = 0
	}
	if n > len(pages) {
		n = len(pages)
	}
	return pages[:n], nil
}

// Sample returns k distinct records chosen uniformly at random without
// replacement, in selection order.
func (e *PageExtractor) Sample(ctx context.Context, k int) ([]models.PageRecord, error) {
	pages, err := e.ExtractAll(ctx)
	if err != nil {
		return nil, err
	}
	return samplePages(e.rng, pages, k)
}

func samplePages(rng *rand.Rand, pages []models.PageRecord, k int) ([]models.PageRecord, error) {
	if k < 0 || k > len(pages) {
		return nil, fmt.Errorf("%w: k=%d, pages=%d", ErrSampleSize, k, len(pages))
	}

	pool := make([]models.PageRecord, len(pages))
	copy(pool, pages)

	// partial Fisher-Yates
	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k], nil
}
