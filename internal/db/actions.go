package db

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/local-rag/internal/common"
	"github.com/dtnitsch/local-rag/models"
	dbpkg "github.com/dtnitsch/local-rag/pkg/db"
)

// RunPages is what run-pages prints.
type RunPages struct {
	Run   *models.Run         `json:"run" yaml:"run"`
	Pages []models.PageRecord `json:"pages" yaml:"pages"`
}

// RunsAction lists recorded runs, newest first.
func RunsAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db_path"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	w := c.App.Writer
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs found")
		return nil
	}

	fmt.Fprintf(w, "%-6s %-20s %-20s %-7s %-6s %-6s %s\n",
		"ID", "Created", "Experiment", "Mode", "Pages", "Offset", "PDF")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, r := range runs {
		fmt.Fprintf(w, "%-6d %-20s %-20s %-7s %-6d %-6d %s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.ExperimentName,
			r.Mode,
			r.PageCount,
			r.PageOffset,
			r.LocalPath,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d runs\n", len(runs))
	fmt.Fprintf(w, "\nTip: Use 'local-rag run-pages <id>' to see the pages of a run\n")

	return nil
}

// RunPagesAction prints a stored run and its pages.
func RunPagesAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db_path"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}

	run, err := database.GetRun(runID)
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}
	pages, err := database.GetRunPages(runID)
	if err != nil {
		return fmt.Errorf("failed to get run pages: %w", err)
	}

	return common.WriteOutput(c.App.Writer, c.String("format"), RunPages{Run: run, Pages: pages})
}

// GetRunIDOrLatest returns the run ID from args, or the latest run if not provided
func GetRunIDOrLatest(c *cli.Context, database *dbpkg.DB) (int64, error) {
	if c.NArg() == 0 {
		runs, err := database.ListRuns(1)
		if err != nil {
			return 0, fmt.Errorf("failed to get latest run: %w", err)
		}
		if len(runs) == 0 {
			return 0, fmt.Errorf("no runs found. Run 'local-rag run' first")
		}
		return runs[0].RunID, nil
	}

	runID, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid run ID: %s", c.Args().First())
	}
	return runID, nil
}
