// Package exporter renders processing reports for the supported output
// targets: an aligned text table for the terminal, a CSV file with the
// optional overall-average trailer, an Excel workbook with an embedded
// chart, and a paginated PDF document combining the table with a bar chart
// image.
//
// Exporters consume the domain.Report contract and never reach back into
// the processing pipeline; the pipeline in turn never touches these
// renderers. All exporters share one tabular layout, derived from
// Report.Columns.
package exporter
