package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dtnitsch/local-rag/models"
	"github.com/dtnitsch/local-rag/pkg/storage"
)

const PDFExtension = ".pdf"

var (
	ErrInvalidPath    = errors.New("pdf path should end with '.pdf'")
	ErrInvalidURL     = errors.New("url should be a valid HTTP/HTTPS URL")
	ErrDownloadFailed = errors.New("failed to download file")
	ErrNoPDFLink      = errors.New("no PDF link found on HTML page")
)

// DownloadError reports a non-200 response. It unwraps to ErrDownloadFailed.
type DownloadError struct {
	URL        string
	StatusCode int
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("failed to download %s, status code: %d", e.URL, e.StatusCode)
}

func (e *DownloadError) Unwrap() error {
	return ErrDownloadFailed
}

// Target is a validated (local path, source URL) pair.
type Target struct {
	localPath string
	sourceURL string
}

// NewTarget validates localPath and sourceURL. The checks are syntactic only:
// nothing is resolved, stat'ed or contacted.
func NewTarget(localPath, sourceURL string) (Target, error) {
	if !strings.HasSuffix(localPath, PDFExtension) {
		return Target{}, fmt.Errorf("invalid path %q: %w", localPath, ErrInvalidPath)
	}
	if !strings.HasPrefix(sourceURL, "http") {
		return Target{}, fmt.Errorf("invalid url %q: %w", sourceURL, ErrInvalidURL)
	}
	return Target{localPath: localPath, sourceURL: sourceURL}, nil
}

func (t Target) LocalPath() string { return t.localPath }
func (t Target) SourceURL() string { return t.sourceURL }

type Fetcher struct {
	client      *http.Client
	storage     *storage.Storage
	logger      *slog.Logger
	resolveHTML bool
}

type Option func(*Fetcher)

func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// WithResolveHTML makes EnsurePresent follow the first PDF link when the
// source URL answers with an HTML page instead of the document itself.
func WithResolveHTML(resolve bool) Option {
	return func(f *Fetcher) {
		f.resolveHTML = resolve
	}
}

func NewFetcher(options ...Option) *Fetcher {
	f := &Fetcher{
		client:  &http.Client{},
		storage: &storage.Storage{},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range options {
		o(f)
	}
	return f
}

// EnsurePresent makes sure target's local file exists, downloading it when
// missing. An existing file is never re-downloaded or verified.
func (f *Fetcher) EnsurePresent(ctx context.Context, target Target) (models.DownloadResult, error) {
	result := models.DownloadResult{
		Path:      target.localPath,
		SourceURL: target.sourceURL,
	}

	if err := f.storage.EnsureParentDir(target.localPath); err != nil {
		return result, err
	}

	if f.storage.HasFile(target.localPath) {
		f.logger.Info("file already exists", "path", target.localPath)
		result.Status = models.DownloadAlreadyPresent
		return result, nil
	}

	f.logger.Info("file doesn't exist, downloading PDF", "path", target.localPath, "url", target.sourceURL)

	resp, err := f.get(ctx, target.sourceURL)
	if err != nil {
		return result, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return f.failed(result, target.sourceURL, resp.StatusCode)
	}

	body := io.Reader(resp.Body)
	if f.resolveHTML && isHTML(resp.Header.Get("Content-Type")) {
		pdfURL, err := findPDFLink(resp.Body, resp.Request.URL)
		if err != nil {
			return result, fmt.Errorf("failed to resolve %s: %w", target.sourceURL, err)
		}
		f.logger.Info("resolved PDF link from HTML page", "page", target.sourceURL, "pdf", pdfURL)

		pdfResp, err := f.get(ctx, pdfURL)
		if err != nil {
			return result, err
		}
		defer pdfResp.Body.Close()

		if pdfResp.StatusCode != http.StatusOK {
			return f.failed(result, pdfURL, pdfResp.StatusCode)
		}
		body = pdfResp.Body
	}

	written, err := f.storage.WriteAtomic(target.localPath, body)
	if err != nil {
		return result, fmt.Errorf("failed to save %s: %w", target.localPath, err)
	}

	result.Status = models.DownloadDownloaded
	result.StatusCode = http.StatusOK
	result.Bytes = written.Bytes
	result.SHA256 = written.SHA256
	f.logger.Info("file downloaded successfully", "path", target.localPath, "bytes", written.Bytes)

	return result, nil
}

func (f *Fetcher) failed(result models.DownloadResult, rawURL string, statusCode int) (models.DownloadResult, error) {
	f.logger.Error("failed to download file", "url", rawURL, "status_code", statusCode)
	result.Status = models.DownloadFailed
	result.StatusCode = statusCode
	return result, &DownloadError{URL: rawURL, StatusCode: statusCode}
}

func (f *Fetcher) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build HTTP request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	return resp, nil
}

func isHTML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

// findPDFLink returns the first anchor on the page whose path ends in .pdf,
// resolved against base.
func findPDFLink(r io.Reader, base *url.URL) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	var found string
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return true
		}
		if !strings.EqualFold(path.Ext(ref.Path), PDFExtension) {
			return true
		}
		found = base.ResolveReference(ref).String()
		return false
	})

	if found == "" {
		return "", ErrNoPDFLink
	}
	return found, nil
}
