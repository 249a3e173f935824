package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "lossval/internal/errors"
	"lossval/pkg/contracts/domain"
)

// CSVWriter exports reports as CSV files.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// Write renders the report to a CSV file: a UTF-8 BOM for Excel
// compatibility, the header row, one row per group and, when the overall
// summary is present, a two-line trailer after a blank line.
func (w *CSVWriter) Write(path string, report *domain.Report) error {
	w.logger.Info("writing CSV report",
		slog.String("path", path),
		slog.Int("groups", len(report.Groups)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory for CSV report", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.NewStorageError("failed to create CSV report file", err)
	}
	defer file.Close()

	// BOM helps Excel recognize UTF-8.
	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return apperrors.NewStorageError("failed to write BOM", err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(report.Columns()); err != nil {
		return apperrors.NewStorageError("failed to write CSV header row", err)
	}
	for _, row := range tableRows(report) {
		if err := writer.Write(row); err != nil {
			return apperrors.NewStorageError("failed to write CSV data row", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.NewStorageError("failed to flush CSV report", err)
	}

	// The overall averages trail the table after a blank line, in the
	// established report layout.
	if report.Overall != nil {
		if _, err := fmt.Fprintf(file, "\nOverall Average Min Loss,,%.2f\nOverall Average Max Loss,,%.2f\n",
			report.Overall.MinAverage, report.Overall.MaxAverage); err != nil {
			return apperrors.NewStorageError("failed to write overall averages trailer", err)
		}
	}

	return nil
}
