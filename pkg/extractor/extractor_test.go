package extractor

import (
	"context"
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

type fakeDocument struct {
	pages   []string
	failing map[int]bool
	closed  bool
}

func (d *fakeDocument) NumPage() int { return len(d.pages) }

func (d *fakeDocument) PageText(i int) (string, error) {
	if d.failing[i] {
		return "", errors.New("broken content stream")
	}
	return d.pages[i], nil
}

func (d *fakeDocument) Close() error {
	d.closed = true
	return nil
}

// newFakeExtractor returns an extractor backed by pages and a counter of
// how many times the document was opened.
func newFakeExtractor(t *testing.T, offset int, pages []string, opts ...Option) (*PageExtractor, *int) {
	t.Helper()
	opens := 0
	open := func(path string) (Document, error) {
		opens++
		return &fakeDocument{pages: pages}, nil
	}
	opts = append([]Option{WithOpener(open), WithRand(rand.New(rand.NewPCG(1, 2)))}, opts...)
	return New("book.pdf", offset, opts...), &opens
}

func pageNumbers(t *testing.T, e *PageExtractor) []int {
	t.Helper()
	pages, err := e.ExtractAll(context.Background())
	if err != nil {
		t.Fatalf("ExtractAll() error = %v", err)
	}
	numbers := make([]int, len(pages))
	for i, p := range pages {
		numbers[i] = p.PageNumber
	}
	return numbers
}

func TestExtractAll_PageNumbering(t *testing.T) {
	tests := []struct {
		name   string
		pages  int
		offset int
		want   []int
	}{
		{name: "three pages offset one", pages: 3, offset: 1, want: []int{-1, 0, 1}},
		{name: "no offset", pages: 4, offset: 0, want: []int{0, 1, 2, 3}},
		{name: "front matter offset", pages: 3, offset: 41, want: []int{-41, -40, -39}},
		{name: "negative offset", pages: 2, offset: -5, want: []int{5, 6}},
		{name: "empty document", pages: 0, offset: 3, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newFakeExtractor(t, tt.offset, make([]string, tt.pages))
			got := pageNumbers(t, e)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("page numbers = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractAll_Statistics(t *testing.T) {
	e, _ := newFakeExtractor(t, 0, []string{
		"  Human Nutrition.\nChapter 1.   Intro  \n",
		"",
		"café au lait",
	})

	pages, err := e.ExtractAll(context.Background())
	if err != nil {
		t.Fatalf("ExtractAll() error = %v", err)
	}

	first := pages[0]
	if first.Text != "Human Nutrition. Chapter 1. Intro" {
		t.Errorf("Text = %q", first.Text)
	}
	if first.CharacterCount != len("Human Nutrition. Chapter 1. Intro") {
		t.Errorf("CharacterCount = %d", first.CharacterCount)
	}
	if first.WordCount != 5 || first.TokenCount != 5 {
		t.Errorf("WordCount = %d TokenCount = %d, want 5", first.WordCount, first.TokenCount)
	}
	if first.SentenceCount != 2 {
		t.Errorf("SentenceCount = %d, want 2", first.SentenceCount)
	}

	empty := pages[1]
	if empty.Text != "" || empty.CharacterCount != 0 {
		t.Errorf("empty page = %+v", empty)
	}
	if empty.WordCount != 1 || empty.TokenCount != 1 {
		t.Errorf("empty page WordCount = %d TokenCount = %d, want 1", empty.WordCount, empty.TokenCount)
	}

	if pages[2].CharacterCount != 12 {
		t.Errorf("CharacterCount counts runes: got %d, want 12", pages[2].CharacterCount)
	}
}

func TestExtractAll_FailedPageKeepsNumbering(t *testing.T) {
	doc := &fakeDocument{pages: []string{"a", "b", "c"}, failing: map[int]bool{1: true}}
	e := New("book.pdf", 0, WithOpener(func(string) (Document, error) { return doc, nil }))

	pages, err := e.ExtractAll(context.Background())
	if err != nil {
		t.Fatalf("ExtractAll() error = %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("len(pages) = %d, want 3", len(pages))
	}
	if pages[1].Text != "" || pages[1].PageNumber != 1 {
		t.Errorf("failed page = %+v", pages[1])
	}
	if !doc.closed {
		t.Error("document was not closed")
	}
}

func TestExtractAll_OpenError(t *testing.T) {
	e := New("book.pdf", 0, WithOpener(func(string) (Document, error) {
		return nil, errors.New("boom")
	}))
	if _, err := e.ExtractAll(context.Background()); !errors.Is(err, ErrOpen) {
		t.Fatalf("ExtractAll() error = %v, want ErrOpen", err)
	}
}

func TestExtractAll_ContextCanceled(t *testing.T) {
	e, _ := newFakeExtractor(t, 0, []string{"a", "b"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.ExtractAll(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("ExtractAll() error = %v, want context.Canceled", err)
	}
}

func TestOpenPDF_Invalid(t *testing.T) {
	dir := t.TempDir()

	notPDF := filepath.Join(dir, "notes.pdf")
	if err := os.WriteFile(notPDF, []byte("this is plain text, not a PDF"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	tests := []struct {
		name string
		path string
	}{
		{name: "missing file", path: filepath.Join(dir, "missing.pdf")},
		{name: "wrong format", path: notPDF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.path, 0).ExtractAll(context.Background())
			if !errors.Is(err, ErrOpen) {
				t.Fatalf("ExtractAll() error = %v, want ErrOpen", err)
			}
		})
	}
}

func TestExtractFirst(t *testing.T) {
	texts := []string{"one", "two", "three", "four"}

	tests := []struct {
		name string
		n    int
		want int
	}{
		{name: "prefix", n: 2, want: 2},
		{name: "exact", n: 4, want: 4},
		{name: "more than pages", n: 10, want: 4},
		{name: "zero", n: 0, want: 0},
		{name: "negative", n: -1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newFakeExtractor(t, 1, texts)
			all, err := e.ExtractAll(context.Background())
			if err != nil {
				t.Fatalf("ExtractAll() error = %v", err)
			}

			got, err := e.ExtractFirst(context.Background(), tt.n)
			if err != nil {
				t.Fatalf("ExtractFirst() error = %v", err)
			}
			if len(got) != tt.want {
				t.Fatalf("len = %d, want %d", len(got), tt.want)
			}
			if !reflect.DeepEqual(got, all[:tt.want]) {
				t.Errorf("ExtractFirst() is not a prefix of ExtractAll()")
			}
		})
	}
}

func TestExtractFirst_RescansEachCall(t *testing.T) {
	e, opens := newFakeExtractor(t, 0, []string{"a"})
	for i := 0; i < 2; i++ {
		if _, err := e.ExtractFirst(context.Background(), 1); err != nil {
			t.Fatalf("ExtractFirst() error = %v", err)
		}
	}
	if *opens != 2 {
		t.Errorf("opens = %d, want 2", *opens)
	}
}

func TestSample(t *testing.T) {
	texts := []string{"p0", "p1", "p2", "p3", "p4", "p5"}

	for k := 0; k <= len(texts); k++ {
		e, _ := newFakeExtractor(t, 0, texts)
		got, err := e.Sample(context.Background(), k)
		if err != nil {
			t.Fatalf("Sample(%d) error = %v", k, err)
		}
		if len(got) != k {
			t.Fatalf("Sample(%d) len = %d", k, len(got))
		}

		seen := map[int]bool{}
		for _, p := range got {
			if seen[p.PageNumber] {
				t.Fatalf("Sample(%d) returned page %d twice", k, p.PageNumber)
			}
			seen[p.PageNumber] = true
			if p.Text != texts[p.PageNumber] {
				t.Errorf("Sample(%d) page %d text = %q, not from the document", k, p.PageNumber, p.Text)
			}
		}
	}
}

func TestSample_TooLarge(t *testing.T) {
	e, _ := newFakeExtractor(t, 0, []string{"a", "b", "c"})

	for _, k := range []int{4, 100, -1} {
		if _, err := e.Sample(context.Background(), k); !errors.Is(err, ErrSampleSize) {
			t.Errorf("Sample(%d) error = %v, want ErrSampleSize", k, err)
		}
	}
}

func TestSample_CoversEveryPage(t *testing.T) {
	e, _ := newFakeExtractor(t, 0, []string{"a", "b", "c", "d"})
	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		got, err := e.Sample(context.Background(), 1)
		if err != nil {
			t.Fatalf("Sample() error = %v", err)
		}
		seen[got[0].PageNumber] = true
	}
	if len(seen) != 4 {
		t.Errorf("200 single-page samples hit %d distinct pages, want 4", len(seen))
	}
}
