package extractor

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

// Document is a paged source of raw text. Page indexes are zero-based.
type Document interface {
	NumPage() int
	PageText(i int) (string, error)
	Close() error
}

// Opener opens the document stored at path.
type Opener func(path string) (Document, error)

type pdfDocument struct {
	file   *os.File
	reader *pdf.Reader
}

// OpenPDF opens path with ledongthuc/pdf.
func OpenPDF(path string) (doc Document, err error) {
	// The parser panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("malformed PDF %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		if f != nil {
			_ = f.Close()
		}
		return nil, err
	}
	return &pdfDocument{file: f, reader: r}, nil
}

func (d *pdfDocument) NumPage() int {
	return d.reader.NumPage()
}

func (d *pdfDocument) PageText(i int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("page %d: %v", i+1, r)
		}
	}()

	page := d.reader.Page(i + 1)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

func (d *pdfDocument) Close() error {
	return d.file.Close()
}
