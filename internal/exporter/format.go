package exporter

import (
	"strconv"

	"lossval/pkg/contracts/domain"
)

// formatLoss renders a loss value with the fixed precision every exporter
// shares.
func formatLoss(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// tableRows renders the report groups into string cells following the
// layout of Report.Columns.
func tableRows(report *domain.Report) [][]string {
	hasAverage := report.HasAverage()
	hasSources := report.HasSourceFiles()

	rows := make([][]string, 0, len(report.Groups))
	for _, g := range report.Groups {
		row := []string{g.Measurement, formatLoss(g.MinLoss), formatLoss(g.MaxLoss)}
		if hasAverage {
			if g.Average != nil {
				row = append(row, formatLoss(*g.Average))
			} else {
				row = append(row, "")
			}
		}
		if hasSources {
			row = append(row, g.SourceFile)
		}
		rows = append(rows, row)
	}
	return rows
}
