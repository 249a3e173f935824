package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	apperrors "lossval/internal/errors"
	"lossval/pkg/contracts/domain"
)

const summarySheet = "Summary"

// ExcelWriter exports reports as Excel workbooks with an embedded chart.
type ExcelWriter struct {
	logger *slog.Logger
}

// NewExcelWriter creates a new Excel writer instance
func NewExcelWriter(logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{logger: logger}
}

// Write renders the report into a workbook: a Summary sheet carrying the
// table, the optional overall averages, and a clustered column chart of the
// per-measurement extremes.
func (w *ExcelWriter) Write(path string, report *domain.Report) error {
	w.logger.Info("writing Excel report",
		slog.String("path", path),
		slog.Int("groups", len(report.Groups)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory for Excel report", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return apperrors.NewStorageError("failed to name summary sheet", err)
	}

	header := toInterfaces(report.Columns())
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return apperrors.NewStorageError("failed to write header row", err)
	}

	hasAverage := report.HasAverage()
	hasSources := report.HasSourceFiles()
	for i, g := range report.Groups {
		row := []interface{}{g.Measurement, g.MinLoss, g.MaxLoss}
		if hasAverage {
			if g.Average != nil {
				row = append(row, *g.Average)
			} else {
				row = append(row, nil)
			}
		}
		if hasSources {
			row = append(row, g.SourceFile)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return apperrors.NewStorageError("failed to build cell reference", err)
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return apperrors.NewStorageError("failed to write data row", err)
		}
	}

	if report.Overall != nil {
		base := len(report.Groups) + 3
		rows := [][]interface{}{
			{"Overall Average Min Loss", nil, report.Overall.MinAverage},
			{"Overall Average Max Loss", nil, report.Overall.MaxAverage},
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, base+i)
			if err != nil {
				return apperrors.NewStorageError("failed to build cell reference", err)
			}
			if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
				return apperrors.NewStorageError("failed to write overall average row", err)
			}
		}
	}

	if len(report.Groups) > 0 {
		if err := w.addChart(f, report, hasAverage); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return apperrors.NewStorageError("failed to save Excel report", err)
	}
	return nil
}

// addChart embeds a clustered column chart over the summary table.
func (w *ExcelWriter) addChart(f *excelize.File, report *domain.Report, hasAverage bool) error {
	lastRow := len(report.Groups) + 1
	categories := fmt.Sprintf("%s!$A$2:$A$%d", summarySheet, lastRow)

	series := []excelize.ChartSeries{
		{
			Name:       fmt.Sprintf("%s!$B$1", summarySheet),
			Categories: categories,
			Values:     fmt.Sprintf("%s!$B$2:$B$%d", summarySheet, lastRow),
		},
		{
			Name:       fmt.Sprintf("%s!$C$1", summarySheet),
			Categories: categories,
			Values:     fmt.Sprintf("%s!$C$2:$C$%d", summarySheet, lastRow),
		},
	}
	if hasAverage {
		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!$D$1", summarySheet),
			Categories: categories,
			Values:     fmt.Sprintf("%s!$D$2:$D$%d", summarySheet, lastRow),
		})
	}

	anchor, err := excelize.CoordinatesToCellName(len(report.Columns())+2, 2)
	if err != nil {
		return apperrors.NewStorageError("failed to build chart anchor", err)
	}

	chart := &excelize.Chart{
		Type:   excelize.Col,
		Series: series,
		Title: []excelize.RichTextRun{
			{Text: "Minimum and Maximum Percentage Loss per Measurement"},
		},
		Legend: excelize.ChartLegend{Position: "top"},
	}
	if err := f.AddChart(summarySheet, anchor, chart); err != nil {
		return apperrors.NewStorageError("failed to add chart", err)
	}
	return nil
}

func toInterfaces(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
