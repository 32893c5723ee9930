package extractor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeTestPDF writes a minimal PDF with one Helvetica text line per page.
func writeTestPDF(t *testing.T, path string, pages ...string) {
	t.Helper()

	var objects []string
	kids := ""
	fontID := 3 + 2*len(pages)
	for i := range pages {
		kids += fmt.Sprintf("%d 0 R ", 3+2*i)
	}
	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids, len(pages)),
	)
	for i, text := range pages {
		content := fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", text)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>", fontID, 4+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}
	objects = append(objects, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func TestOpenPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.pdf")
	writeTestPDF(t, path, "Alpha one.", "Beta two.", "Gamma  three.")

	doc, err := OpenPDF(path)
	if err != nil {
		t.Fatalf("OpenPDF() error = %v", err)
	}
	if got := doc.NumPage(); got != 3 {
		t.Errorf("NumPage() = %d, want 3", got)
	}

	// Indexes are zero-based, so index 1 is the second physical page.
	text, err := doc.PageText(1)
	if err != nil {
		t.Fatalf("PageText(1) error = %v", err)
	}
	if got := Normalize(text); got != "Beta two." {
		t.Errorf("PageText(1) = %q, want Beta two.", got)
	}

	if err := doc.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := doc.Close(); err == nil {
		t.Error("second Close() error = nil, want already closed")
	}
}

func TestExtractAll_RealPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.pdf")
	writeTestPDF(t, path, "Alpha one.", "Beta two.", "Gamma  three.")

	pages, err := New(path, 1).ExtractAll(context.Background())
	if err != nil {
		t.Fatalf("ExtractAll() error = %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("got %d pages, want 3", len(pages))
	}

	var (
		numbers []int
		texts   []string
		chars   []int
	)
	for _, p := range pages {
		numbers = append(numbers, p.PageNumber)
		texts = append(texts, p.Text)
		chars = append(chars, p.CharacterCount)
		if p.WordCount != 2 || p.TokenCount != 2 || p.SentenceCount != 1 {
			t.Errorf("page %d stats = %d words, %d tokens, %d sentences, want 2, 2, 1",
				p.PageNumber, p.WordCount, p.TokenCount, p.SentenceCount)
		}
	}

	if want := []int{-1, 0, 1}; !reflect.DeepEqual(numbers, want) {
		t.Errorf("page numbers = %v, want %v", numbers, want)
	}
	if want := []string{"Alpha one.", "Beta two.", "Gamma three."}; !reflect.DeepEqual(texts, want) {
		t.Errorf("texts = %q, want %q", texts, want)
	}
	if want := []int{10, 9, 12}; !reflect.DeepEqual(chars, want) {
		t.Errorf("character counts = %v, want %v", chars, want)
	}

	first, err := New(path, 1).ExtractFirst(context.Background(), 2)
	if err != nil {
		t.Fatalf("ExtractFirst() error = %v", err)
	}
	if !reflect.DeepEqual(first, pages[:2]) {
		t.Errorf("ExtractFirst(2) = %+v, want %+v", first, pages[:2])
	}
}
