package models

import "time"

// RunMode tells how the page subset of a run was chosen.
type RunMode string

const (
	RunModeFirst  RunMode = "first"
	RunModeSample RunMode = "sample"
	RunModeAll    RunMode = "all"
)

// Run is a recorded extraction in the run ledger.
type Run struct {
	RunID          int64     `json:"run_id" yaml:"run_id"`
	ExperimentName string    `json:"experiment_name" yaml:"experiment_name"`
	LocalPath      string    `json:"local_path" yaml:"local_path"`
	SourceURL      string    `json:"source_url" yaml:"source_url"`
	PageOffset     int       `json:"page_offset" yaml:"page_offset"`
	Mode           RunMode   `json:"mode" yaml:"mode"`
	Requested      int       `json:"requested" yaml:"requested"`
	PageCount      int       `json:"page_count" yaml:"page_count"`
	CreatedAt      time.Time `json:"created_at" yaml:"created_at"`
}
