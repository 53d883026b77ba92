package models

import "time"

// Record is a single quote extracted from a listing page
type Record struct {
	Quote  string   `json:"quote"`
	Author string   `json:"author"`
	Tags   []string `json:"tags"`
}

// NewRecord builds a Record, normalising a nil tag list to an empty one so it
// always serializes as [] rather than null
func NewRecord(quote, author string, tags []string) Record {
	if tags == nil {
		tags = []string{}
	}
	return Record{Quote: quote, Author: author, Tags: tags}
}

// DriverName selects the browser backend used for a run
type DriverName string

const (
	DriverChromedp DriverName = "chromedp"
	DriverRod      DriverName = "rod"
	DriverStatic   DriverName = "static"
)

// OutputFormat defines how collected records are written
type OutputFormat string

const (
	FormatJSONL OutputFormat = "jsonl"
	FormatJSON  OutputFormat = "json"
	FormatCSV   OutputFormat = "csv"
)

// RunSummary describes a finished crawl for reporting
type RunSummary struct {
	RunID      string        `json:"run_id"`
	StartURL   string        `json:"start_url"`
	Pages      int           `json:"pages"`
	Records    int           `json:"records"`
	State      string        `json:"state"`
	Error      string        `json:"error,omitempty"`
	OutputPath string        `json:"output_path,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration_ns"`
}
