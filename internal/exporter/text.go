package exporter

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"lossval/pkg/contracts/domain"
)

// RenderText writes an aligned table rendering of the report, followed by
// the overall averages and the drop count when present. This is the
// on-screen display of a processing run.
func RenderText(w io.Writer, report *domain.Report) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)

	cols := report.Columns()
	if _, err := fmt.Fprintln(tw, strings.Join(cols, "\t")); err != nil {
		return err
	}
	for _, row := range tableRows(report) {
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if report.Overall != nil {
		fmt.Fprintf(w, "\nOverall Average Min Loss: %.2f\n", report.Overall.MinAverage)
		fmt.Fprintf(w, "Overall Average Max Loss: %.2f\n", report.Overall.MaxAverage)
	}
	if report.Dropped > 0 {
		fmt.Fprintf(w, "\nDropped %d rows due to invalid loss values.\n", report.Dropped)
	}
	return nil
}
