// Package domain defines the shared data contracts for the loss validation
// pipeline: the typed tables produced by ingestion and the summary structures
// produced by aggregation. These types carry no behavior beyond simple
// accessors so they can cross package boundaries freely.
package domain

import "strings"

// Record is one data row keyed by column name. Cell values are kept as raw
// strings until the aggregator coerces the value column.
type Record map[string]string

// Table is the result of header detection on a tabular source: the detected
// header row plus every row below it, before any cleaning.
type Table struct {
	// Header holds the column names in source order.
	Header []string `json:"header"`
	// Rows holds the data rows below the header.
	Rows []Record `json:"rows"`
	// Sheet names the workbook sheet the header was found on. Empty for
	// delimited text sources.
	Sheet string `json:"sheet,omitempty"`
}

// HasColumn reports whether the detected header declares the named column.
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Header {
		if strings.TrimSpace(h) == name {
			return true
		}
	}
	return false
}

// MissingColumns returns the subset of required that is absent from the
// detected header, in the order the caller listed them.
func (t *Table) MissingColumns(required []string) []string {
	var missing []string
	for _, name := range required {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// CleanedRow is one retained row after numeric coercion of the value column.
type CleanedRow struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// CleanedTable holds the rows that survived cleaning plus the count of rows
// excluded because their value column could not be parsed as numeric. The
// drop count is a warning signal for the caller, never a failure.
type CleanedTable struct {
	Rows    []CleanedRow `json:"rows"`
	Dropped int          `json:"dropped"`
}

// GroupSummary is one output row per distinct measurement: the extremes of
// the value column within the group and, when requested, their midpoint.
type GroupSummary struct {
	Measurement string  `json:"measurement" csv:"Measurement"`
	MinLoss     float64 `json:"min_loss" csv:"Min Loss"`
	MaxLoss     float64 `json:"max_loss" csv:"Max Loss"`

	// Average is the midpoint (min+max)/2, not the mean of the underlying
	// rows. Present only when Options.IncludeAverage is set.
	Average *float64 `json:"average,omitempty" csv:"Average"`

	// SourceFile attributes the group to its input file in combined
	// multi-file reports. Empty for single-file reports.
	SourceFile string `json:"source_file,omitempty" csv:"Source File"`
}

// OverallSummary holds the cross-group means: the mean of every group's min
// and, separately, of every group's max. Means are taken over groups, not
// over raw rows.
type OverallSummary struct {
	MinAverage float64 `json:"min_average"`
	MaxAverage float64 `json:"max_average"`
}

// Options selects the optional summary columns.
type Options struct {
	IncludeAverage        bool `json:"include_average"`
	IncludeOverallAverage bool `json:"include_overall_average"`
}

// Report is the durable output of one processing run.
type Report struct {
	Groups  []GroupSummary  `json:"groups"`
	Overall *OverallSummary `json:"overall,omitempty"`
	// Dropped counts the rows excluded during cleaning across the inputs
	// that produced this report.
	Dropped int `json:"dropped"`
	// SourceFile is the base name of the input file for per-file reports.
	SourceFile string `json:"source_file,omitempty"`
}

// HasAverage reports whether any group carries the midpoint column, which
// decides the report's column layout.
func (r *Report) HasAverage() bool {
	for i := range r.Groups {
		if r.Groups[i].Average != nil {
			return true
		}
	}
	return false
}

// HasSourceFiles reports whether the report is a combined multi-file report
// with per-group source attribution.
func (r *Report) HasSourceFiles() bool {
	for i := range r.Groups {
		if r.Groups[i].SourceFile != "" {
			return true
		}
	}
	return false
}

// Columns returns the header of the tabular rendering of this report,
// matching the layout every exporter shares.
func (r *Report) Columns() []string {
	cols := []string{"Measurement", "Min Loss", "Max Loss"}
	if r.HasAverage() {
		cols = append(cols, "Average")
	}
	if r.HasSourceFiles() {
		cols = append(cols, "Source File")
	}
	return cols
}
