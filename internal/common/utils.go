package common

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/local-rag/models"
	"github.com/dtnitsch/local-rag/pkg/db"
	"github.com/dtnitsch/local-rag/pkg/manifest"
	"github.com/dtnitsch/local-rag/pkg/options"
)

// Output is the document run and extract write to stdout.
type Output struct {
	Download *models.DownloadResult   `json:"download,omitempty" yaml:"download,omitempty"`
	RunID    int64                    `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Pages    []models.PageRecord      `json:"pages" yaml:"pages"`
	Summary  *manifest.SummaryManifest `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// OpenLedger opens the run ledger at o.DBPath. An empty path disables the
// ledger and returns nil.
func OpenLedger(o models.Options) (*db.DB, error) {
	if o.DBPath == "" {
		return nil, nil
	}
	ledger, err := db.Open(o.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return ledger, nil
}

// NewLogger returns the JSON logger used by every command. Commands pass the
// app's ErrWriter, which is os.Stderr outside of tests.
func NewLogger(w io.Writer, o models.Options) *slog.Logger {
	logLevel := slog.LevelInfo
	switch {
	case o.Quiet:
		logLevel = slog.LevelError
	case o.Verbose:
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: logLevel})).
		With("experiment", o.ExperimentName)
}

// Prepare resolves the options of a command, builds its logger and prints the
// banner unless quiet. With --save_options the resolved options are written
// out before the command does any work.
func Prepare(c *cli.Context) (models.Options, *slog.Logger, error) {
	o, err := options.FromContext(c)
	if err != nil {
		return o, nil, err
	}
	logger := NewLogger(c.App.ErrWriter, o)
	if !o.Quiet {
		options.Print(c.App.ErrWriter, o)
	}

	if o.SaveOptions != "" {
		if err := options.Save(o.SaveOptions, o); err != nil {
			return o, logger, err
		}
		logger.Info("Options saved", "path", o.SaveOptions)
	}
	return o, logger, nil
}

// WriteOutput encodes v as yaml or json.
func WriteOutput(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to flush YAML: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	return nil
}

var markdownLinkPattern = regexp.MustCompile(`^\[.*?\]\((https?://[^\)]+)\)$`)

// SanitizeURL performs basic cleanup on URLs to handle common copy-paste issues:
// surrounding whitespace, quotes or angle brackets and markdown links.
func SanitizeURL(rawURL string) string {
	cleaned := strings.TrimSpace(rawURL)

	// [text](url) -> url
	if matches := markdownLinkPattern.FindStringSubmatch(cleaned); len(matches) > 1 {
		cleaned = matches[1]
	}

	for _, pair := range [][2]string{{"<", ">"}, {"\"", "\""}, {"'", "'"}} {
		if len(cleaned) >= 2 && strings.HasPrefix(cleaned, pair[0]) && strings.HasSuffix(cleaned, pair[1]) {
			cleaned = cleaned[1 : len(cleaned)-1]
		}
	}

	return strings.TrimSpace(cleaned)
}
