// Package options resolves the run configuration from defaults, an optional
// YAML file and command-line flags.
package options

import (
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/local-rag/models"
	"github.com/dtnitsch/local-rag/pkg/storage"
)

const (
	DefaultExperimentName = "Local_RAG"
	DefaultPDFPath        = "../RAG-from-Scratch/human-nutrition-text.pdf"
	DefaultURL            = "https://pressbooks.oer.hawaii.edu/humannutrition2/open/download?type=pdf"
	DefaultPageOffset     = 41
	DefaultNumPages       = 2
	DefaultFormat         = "yaml"
	DefaultDBPath         = "local-rag.db"
)

var ErrInvalidFormat = errors.New("format must be yaml or json")

var store = &storage.Storage{}

// Defaults returns the options used when neither a config file nor a flag
// sets a value.
func Defaults() models.Options {
	return models.Options{
		ExperimentName: DefaultExperimentName,
		PDFPath:        DefaultPDFPath,
		URL:            DefaultURL,
		PageOffset:     DefaultPageOffset,
		NumPages:       DefaultNumPages,
		Format:         DefaultFormat,
		DBPath:         DefaultDBPath,
	}
}

// Flags returns the CLI flags. Defaults shown in help match Defaults().
func Flags() []cli.Flag {
	d := Defaults()
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Usage: "YAML file with option values"},
		&cli.StringFlag{Name: "save_options", Usage: "write the resolved options as YAML to this path (reusable with --config)"},
		&cli.StringFlag{Name: "experiment_name", Value: d.ExperimentName, Usage: "experiment name"},
		&cli.StringFlag{Name: "pdf_path", Value: d.PDFPath, Usage: "path to the PDF file"},
		&cli.StringFlag{Name: "url", Value: d.URL, Usage: "URL to download the PDF file"},
		&cli.IntFlag{Name: "page_offset", Value: d.PageOffset, Usage: "page offset for the PDF"},
		&cli.IntFlag{Name: "num_pages", Value: d.NumPages, Usage: "number of pages for testing (0 for every page)"},
		&cli.IntFlag{Name: "sample", Usage: "return k randomly sampled pages instead of the first num_pages"},
		&cli.StringFlag{Name: "format", Value: d.Format, Usage: "output format: yaml or json"},
		&cli.BoolFlag{Name: "resolve_html", Usage: "follow the first PDF link when the URL serves an HTML page"},
		&cli.StringFlag{Name: "db_path", Value: d.DBPath, Usage: "SQLite run ledger path"},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log every page"},
	}
}

// FromContext resolves options: defaults, then --config, then flags that were
// set explicitly.
func FromContext(c *cli.Context) (models.Options, error) {
	o := Defaults()

	if c.IsSet("config") {
		loaded, err := Load(c.String("config"))
		if err != nil {
			return o, err
		}
		o = loaded
		o.ConfigFile = c.String("config")
	}

	if c.IsSet("save_options") {
		o.SaveOptions = c.String("save_options")
	}
	if c.IsSet("experiment_name") {
		o.ExperimentName = c.String("experiment_name")
	}
	if c.IsSet("pdf_path") {
		o.PDFPath = c.String("pdf_path")
	}
	if c.IsSet("url") {
		o.URL = c.String("url")
	}
	if c.IsSet("page_offset") {
		o.PageOffset = c.Int("page_offset")
	}
	if c.IsSet("num_pages") {
		o.NumPages = c.Int("num_pages")
	}
	if c.IsSet("sample") {
		o.Sample = c.Int("sample")
	}
	if c.IsSet("format") {
		o.Format = c.String("format")
	}
	if c.IsSet("resolve_html") {
		o.ResolveHTML = c.Bool("resolve_html")
	}
	if c.IsSet("db_path") {
		o.DBPath = c.String("db_path")
	}
	if c.IsSet("quiet") {
		o.Quiet = c.Bool("quiet")
	}
	if c.IsSet("verbose") {
		o.Verbose = c.Bool("verbose")
	}

	if o.Format != "yaml" && o.Format != "json" {
		return o, fmt.Errorf("invalid format %q: %w", o.Format, ErrInvalidFormat)
	}
	return o, nil
}

// Load reads options from a YAML file. Keys missing from the file keep their
// default values.
func Load(path string) (models.Options, error) {
	o := Defaults()
	data, err := store.ReadFile(path)
	if err != nil {
		return o, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &o); err != nil {
		return o, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return o, nil
}

// Save writes o as YAML so a run can be reproduced with --config.
func Save(path string, o models.Options) error {
	data, err := yaml.Marshal(o)
	if err != nil {
		return fmt.Errorf("failed to encode options: %w", err)
	}
	if err := store.EnsureParentDir(path); err != nil {
		return err
	}
	if err := store.SaveFile(path, data); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Print writes every resolved option as a human readable banner. Commands
// print it to stderr because stdout carries the YAML or JSON output.
func Print(w io.Writer, o models.Options) {
	fmt.Fprintln(w, "------------ Options -------------")
	fmt.Fprintf(w, "experiment_name: %s\n", o.ExperimentName)
	fmt.Fprintf(w, "pdf_path: %s\n", o.PDFPath)
	fmt.Fprintf(w, "url: %s\n", o.URL)
	fmt.Fprintf(w, "page_offset: %d\n", o.PageOffset)
	fmt.Fprintf(w, "num_pages: %d\n", o.NumPages)
	fmt.Fprintf(w, "sample: %d\n", o.Sample)
	fmt.Fprintf(w, "format: %s\n", o.Format)
	fmt.Fprintf(w, "resolve_html: %t\n", o.ResolveHTML)
	fmt.Fprintf(w, "db_path: %s\n", o.DBPath)
	fmt.Fprintf(w, "quiet: %t\n", o.Quiet)
	fmt.Fprintf(w, "verbose: %t\n", o.Verbose)
	fmt.Fprintf(w, "config: %s\n", o.ConfigFile)
	fmt.Fprintf(w, "save_options: %s\n", o.SaveOptions)
	fmt.Fprintln(w, "-------------- End ---------------")
}
