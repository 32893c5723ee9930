package extract

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/local-rag/internal/common"
	"github.com/dtnitsch/local-rag/internal/fetch"
	"github.com/dtnitsch/local-rag/models"
	"github.com/dtnitsch/local-rag/pkg/analytics"
	dbpkg "github.com/dtnitsch/local-rag/pkg/db"
	"github.com/dtnitsch/local-rag/pkg/extractor"
	"github.com/dtnitsch/local-rag/pkg/manifest"
	"github.com/dtnitsch/local-rag/pkg/storage"
)

// Swapped in tests.
var (
	openDocument        extractor.Opener = extractor.OpenPDF
	newLanguageDetector                  = func() manifest.LanguageDetector { return analytics.NewLanguageDetector() }
	newSentenceCounter                   = func() (manifest.SentenceCounter, error) { return analytics.NewSentenceCounter() }
)

// RunAction is the default command: fetch the PDF if needed, then extract.
func RunAction(c *cli.Context) error {
	return action(c, true)
}

// ExtractAction extracts from a PDF that is already on disk.
func ExtractAction(c *cli.Context) error {
	return action(c, false)
}

func action(c *cli.Context, withFetch bool) error {
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

	var download *models.DownloadResult
	if withFetch {
		result, err := fetch.Ensure(c.Context, o, logger, ledger)
		if err != nil {
			return err
		}
		download = &result
	}

	out, err := Extract(c.Context, o, logger, ledger, download)
	if err != nil {
		return err
	}
	return common.WriteOutput(c.App.Writer, o.Format, out)
}

// Extract runs the page extractor for o, stores the run when a ledger is
// open and builds the summary. Sample > 0 selects random pages, NumPages > 0
// the first pages, anything else every page. A negative Sample is an error.
func Extract(ctx context.Context, o models.Options, logger *slog.Logger, ledger *dbpkg.DB, download *models.DownloadResult) (common.Output, error) {
	out := common.Output{Download: download}

	e := extractor.New(o.PDFPath, o.PageOffset,
		extractor.WithOpener(openDocument),
		extractor.WithLogger(logger),
	)

	run := models.Run{
		ExperimentName: o.ExperimentName,
		PageOffset:     o.PageOffset,
	}
	var err error
	switch {
	case o.Sample < 0:
		return out, fmt.Errorf("%w: k=%d", extractor.ErrSampleSize, o.Sample)
	case o.Sample > 0:
		run.Mode, run.Requested = models.RunModeSample, o.Sample
		out.Pages, err = e.Sample(ctx, o.Sample)
	case o.NumPages > 0:
		run.Mode, run.Requested = models.RunModeFirst, o.NumPages
		out.Pages, err = e.ExtractFirst(ctx, o.NumPages)
	default:
		run.Mode = models.RunModeAll
		out.Pages, err = e.ExtractAll(ctx)
	}
	if err != nil {
		return out, err
	}
	logger.Info("Extraction complete", "path", o.PDFPath, "mode", run.Mode, "pages", len(out.Pages))

	if ledger != nil {
		out.RunID = saveRun(ledger, logger, o, download, run, out.Pages)
	}

	g := manifest.NewGenerator(newLanguageDetector())
	if counter, err := newSentenceCounter(); err != nil {
		logger.Warn("Sentence counts unavailable", "error", err)
	} else {
		g.Sentences = counter
	}
	summary := g.GenerateSummary(o, download, out.Pages)
	out.Summary = &summary
	return out, nil
}

func saveRun(ledger *dbpkg.DB, logger *slog.Logger, o models.Options, download *models.DownloadResult, run models.Run, pages []models.PageRecord) int64 {
	var (
		sha  string
		size int64
	)
	if download != nil {
		sha, size = download.SHA256, download.Bytes
	}
	if size == 0 {
		if stats, err := (&storage.Storage{}).GetFileStats(o.PDFPath); err == nil {
			size = stats.SizeBytes
		}
	}

	docID, err := ledger.UpsertDocument(o.PDFPath, common.SanitizeURL(o.URL), sha, size)
	if err != nil {
		logger.Warn("Failed to record document", "path", o.PDFPath, "error", err)
		return 0
	}
	runID, err := ledger.SaveRun(docID, run, pages)
	if err != nil {
		logger.Warn("Failed to save run", "path", o.PDFPath, "document_id", docID, "error", err)
		return 0
	}
	logger.Info("Run recorded", "run_id", runID, "pages", len(pages))
	return runID
}
