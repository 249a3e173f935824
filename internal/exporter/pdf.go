package exporter

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	apperrors "lossval/internal/errors"
	"lossval/pkg/contracts/domain"
)

// PDFWriter exports reports as paginated PDF documents.
type PDFWriter struct {
	logger *slog.Logger
	title  string
	now    func() time.Time
}

// NewPDFWriter creates a new PDF writer instance. The title heads every
// generated document.
func NewPDFWriter(logger *slog.Logger, title string) *PDFWriter {
	if logger == nil {
		logger = slog.Default()
	}
	if title == "" {
		title = "Data Processing Report"
	}
	return &PDFWriter{logger: logger, title: title, now: time.Now}
}

// Write renders the report into a paginated PDF: title, generation
// timestamp, the summary table, the overall averages when present, and the
// bar chart image. chartPNG may be nil, in which case the chart section is
// omitted.
func (w *PDFWriter) Write(path string, report *domain.Report, chartPNG []byte) error {
	w.logger.Info("writing PDF report",
		slog.String("path", path),
		slog.Int("groups", len(report.Groups)),
		slog.Bool("chart", chartPNG != nil))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory for PDF report", err)
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetTitle(w.title, false)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, w.title, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Report generated on: %s", w.now().Format("2006-01-02 15:04:05")),
		"", 1, "L", false, 0, "")
	pdf.Ln(4)

	w.writeTable(pdf, report)

	if report.Overall != nil {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 6, fmt.Sprintf("Overall Average Min Loss: %.2f", report.Overall.MinAverage),
			"", 1, "L", false, 0, "")
		pdf.CellFormat(0, 6, fmt.Sprintf("Overall Average Max Loss: %.2f", report.Overall.MaxAverage),
			"", 1, "L", false, 0, "")
	}

	if chartPNG != nil {
		w.writeChart(pdf, chartPNG)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return apperrors.NewStorageError("failed to save PDF report", err)
	}
	return nil
}

// writeTable renders the summary table with a filled header row and a full
// grid, continuing across page breaks.
func (w *PDFWriter) writeTable(pdf *fpdf.Fpdf, report *domain.Report) {
	cols := report.Columns()
	widths := columnWidths(pdf, len(cols))

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(255, 255, 255)
	for i, col := range cols {
		pdf.CellFormat(widths[i], 8, col, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetFillColor(245, 245, 220)
	pdf.SetTextColor(0, 0, 0)
	for _, row := range tableRows(report) {
		for i, cell := range row {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
}

// writeChart embeds the chart image, moving it to a fresh page when the
// remaining space cannot hold it.
func (w *PDFWriter) writeChart(pdf *fpdf.Fpdf, chartPNG []byte) {
	const imgWidth, imgHeight = 180.0, 90.0

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("summary-chart", opts, bytes.NewReader(chartPNG))

	_, pageHeight := pdf.GetPageSize()
	if pdf.GetY()+imgHeight+10 > pageHeight-15 {
		pdf.AddPage()
	} else {
		pdf.Ln(6)
	}

	left, _, _, _ := pdf.GetMargins()
	pdf.ImageOptions("summary-chart", left, pdf.GetY(), imgWidth, 0, false, opts, 0, "")
}

// columnWidths gives the first (measurement) column double weight and
// splits the rest of the printable width evenly.
func columnWidths(pdf *fpdf.Fpdf, n int) []float64 {
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageWidth - left - right

	widths := make([]float64, n)
	unit := usable / float64(n+1)
	widths[0] = unit * 2
	for i := 1; i < n; i++ {
		widths[i] = unit
	}
	return widths
}
