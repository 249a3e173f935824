// Package testutil provides fixture builders shared by package tests:
// temporary CSV files and Excel workbooks in the loss validation export
// layout.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Sheet is one workbook sheet for WriteWorkbook. Sheets are created in
// slice order so tests can rely on "first sheet wins" semantics.
type Sheet struct {
	Name string
	Rows [][]interface{}
}

// WriteCSV writes the given lines to a temp file and returns its path.
func WriteCSV(t *testing.T, lines ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "input.csv")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatalf("write csv fixture: %v", err)
	}
	return path
}

// WriteWorkbook writes an xlsx workbook with the given sheets to a temp file
// and returns its path.
func WriteWorkbook(t *testing.T, sheets ...Sheet) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				t.Fatalf("create sheet %s: %v", sheet.Name, err)
			}
		}
		for r, row := range sheet.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetSheetRow(sheet.Name, cell, &row); err != nil {
				t.Fatalf("set row: %v", err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "input.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook fixture: %v", err)
	}
	return path
}

// LossHeader is the header row of the loss validation export format, as it
// appears in real exports with trailing bookkeeping columns.
var LossHeader = []string{
	"Time", "Metric", "Value", "Measurement", "InfluxDB Field Name",
	"Available in Valid File?", "CAN Dictionary MAP", "Time ",
	"Expected Count", "Loss", "Percentage Loss",
}

// LossRow builds a data row for LossHeader with the given measurement and
// raw percentage loss value.
func LossRow(measurement, loss string) []string {
	return []string{
		"2024-03-01T00:00:00Z", "can_frame", "1", measurement, "field",
		"yes", "map", "2024-03-01T00:00:00Z", "100", "2", loss,
	}
}
