package fetch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/local-rag/internal/common"
	"github.com/dtnitsch/local-rag/models"
	dbpkg "github.com/dtnitsch/local-rag/pkg/db"
	"github.com/dtnitsch/local-rag/pkg/fetcher"
)

// FetchAction makes sure the PDF named by the options is on disk and prints
// the download result.
func FetchAction(c *cli.Context) error {
	o, logger, err := common.Prepare(c)
	if err != nil {
		return err
	}

	ledger, err := common.OpenLedger(o)
	if err != nil {
		return err
	}
	if ledger != nil {
		defer ledger.Close()
	}

	result, fetchErr := Ensure(c.Context, o, logger, ledger)
	if result.Status == "" {
		return fetchErr
	}
	if err := common.WriteOutput(c.App.Writer, o.Format, result); err != nil {
		return err
	}
	return fetchErr
}

// Ensure runs the fetcher for o and records the outcome in the ledger when
// one is open. Ledger failures are logged and do not fail the fetch.
func Ensure(ctx context.Context, o models.Options, logger *slog.Logger, ledger *dbpkg.DB) (models.DownloadResult, error) {
	target, err := fetcher.NewTarget(o.PDFPath, common.SanitizeURL(o.URL))
	if err != nil {
		return models.DownloadResult{}, err
	}

	f := fetcher.NewFetcher(
		fetcher.WithLogger(logger),
		fetcher.WithResolveHTML(o.ResolveHTML),
	)
	result, err := f.EnsurePresent(ctx, target)
	if err != nil && result.Status == "" {
		return result, fmt.Errorf("failed to fetch %s: %w", target.SourceURL(), err)
	}

	if ledger != nil {
		record(ledger, logger, result)
	}
	return result, err
}

func record(ledger *dbpkg.DB, logger *slog.Logger, result models.DownloadResult) {
	docID, err := ledger.UpsertDocument(result.Path, result.SourceURL, result.SHA256, result.Bytes)
	if err != nil {
		logger.Warn("Failed to record document", "path", result.Path, "error", err)
		return
	}
	if err := ledger.RecordDownload(docID, result); err != nil {
		logger.Warn("Failed to record download", "path", result.Path, "error", err)
	}
}
