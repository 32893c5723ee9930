// Package models defines data structures for configuration, downloads and pages.
package models

// Options holds the resolved runtime configuration for a single run.
// Values come from defaults, an optional YAML file and CLI flags, in that order.
type Options struct {
	ExperimentName string `yaml:"experiment_name"`
	PDFPath        string `yaml:"pdf_path"`
	URL            string `yaml:"url"`
	PageOffset     int    `yaml:"page_offset"`
	NumPages       int    `yaml:"num_pages"`

	Sample      int    `yaml:"sample"` // 0 disables sampling
	Format      string `yaml:"format"` // yaml or json
	ResolveHTML bool   `yaml:"resolve_html"`
	DBPath      string `yaml:"db_path"`
	Quiet       bool   `yaml:"quiet"`
	Verbose     bool   `yaml:"verbose"`
	ConfigFile  string `yaml:"-"`
	SaveOptions string `yaml:"-"` // write the resolved options here
}
