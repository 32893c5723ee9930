package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"

	dbactions "github.com/dtnitsch/local-rag/internal/db"
	"github.com/dtnitsch/local-rag/internal/extract"
	"github.com/dtnitsch/local-rag/internal/fetch"
	"github.com/dtnitsch/local-rag/pkg/fetcher"
	"github.com/dtnitsch/local-rag/pkg/help"
	"github.com/dtnitsch/local-rag/pkg/options"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		slog.New(slog.NewJSONHandler(os.Stderr, nil)).Error("command failed", "error", err)
		stop()
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if errors.Is(err, fetcher.ErrDownloadFailed) {
		return 2
	}
	return 1
}

func newApp() *cli.App {
	ledgerFlags := []cli.Flag{
		&cli.StringFlag{Name: "db_path", Value: options.DefaultDBPath, Usage: "SQLite run ledger path"},
		&cli.StringFlag{Name: "format", Value: options.DefaultFormat, Usage: "output format: yaml or json"},
	}

	return &cli.App{
		Name:   "local-rag",
		Usage:  "download a PDF and extract per-page text statistics",
		Flags:  options.Flags(),
		Action: extract.RunAction,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "fetch the PDF if missing, then extract pages",
				Flags:  options.Flags(),
				Action: extract.RunAction,
			},
			{
				Name:   "fetch",
				Usage:  "download the PDF if it is not already present",
				Flags:  options.Flags(),
				Action: fetch.FetchAction,
			},
			{
				Name:   "extract",
				Usage:  "extract pages from a PDF already on disk",
				Flags:  options.Flags(),
				Action: extract.ExtractAction,
			},
			{
				Name:  "runs",
				Usage: "list recorded runs",
				Flags: append([]cli.Flag{
					&cli.IntFlag{Name: "limit", Value: 20, Usage: "maximum runs to show (0 for all)"},
				}, ledgerFlags...),
				Action: dbactions.RunsAction,
			},
			{
				Name:      "run-pages",
				Usage:     "print the pages stored for a run",
				ArgsUsage: "[run_id]",
				Flags:     ledgerFlags,
				Action:    dbactions.RunPagesAction,
			},
			{
				Name:  "quickstart",
				Usage: "print a usage cheat-sheet",
				Action: func(c *cli.Context) error {
					_, err := fmt.Fprint(c.App.Writer, help.QuickstartYAML)
					return err
				},
			},
		},
	}
}
