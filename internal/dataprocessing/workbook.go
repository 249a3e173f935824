package dataprocessing

import (
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "lossval/internal/errors"
	"lossval/pkg/contracts/domain"
)

// sheetMatch records where the header signature was found on a sheet.
type sheetMatch struct {
	name      string
	headerRow int
	rows      [][]string
}

// ParseWorkbook scans every sheet of an Excel workbook for a row whose first
// cell starts with the signature cell prefix and parses the rows below it.
// The first matching sheet wins. When more than one sheet carries the
// signature the caller must disambiguate with selectedSheet; an ambiguous
// scan without a selection and a selection outside the candidates are both
// typed failures.
func ParseWorkbook(path string, sig Signature, selectedSheet string, required []string) (*domain.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewMalformedSourceError("failed to open workbook", err).
			WithContext("path", path)
	}
	defer f.Close()

	var matches []sheetMatch
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, apperrors.NewMalformedSourceError("failed to read sheet", err).
				WithContext("sheet", name)
		}
		if idx := findHeaderRow(rows, sig.CellPrefix); idx >= 0 {
			matches = append(matches, sheetMatch{name: name, headerRow: idx, rows: rows})
		}
	}

	if len(matches) == 0 {
		return nil, apperrors.NewHeaderNotFoundError(path)
	}

	match := matches[0]
	if len(matches) > 1 {
		candidates := make([]string, len(matches))
		for i, m := range matches {
			candidates[i] = m.name
		}
		if selectedSheet == "" {
			return nil, apperrors.NewAmbiguousSheetError(candidates)
		}
		chosen := -1
		for i, m := range matches {
			if m.name == selectedSheet {
				chosen = i
				break
			}
		}
		if chosen == -1 {
			return nil, apperrors.NewInvalidSheetError(selectedSheet, candidates)
		}
		match = matches[chosen]
	}

	table := tableFromRows(match.rows, match.headerRow)
	table.Sheet = match.name

	if missing := table.MissingColumns(required); len(missing) > 0 {
		return nil, apperrors.NewMissingColumnsError(missing)
	}

	return table, nil
}

// findHeaderRow returns the index of the first row whose first cell starts
// with the prefix, or -1.
func findHeaderRow(rows [][]string, cellPrefix string) int {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(row[0]), cellPrefix) {
			return i
		}
	}
	return -1
}

// tableFromRows builds a typed table from the header row and everything
// below it.
func tableFromRows(rows [][]string, headerRow int) *domain.Table {
	header := make([]string, len(rows[headerRow]))
	for i, name := range rows[headerRow] {
		header[i] = strings.TrimSpace(name)
	}

	table := &domain.Table{Header: header}
	for _, row := range rows[headerRow+1:] {
		if isBlankRow(row) {
			continue
		}
		table.Rows = append(table.Rows, rowToRecord(header, row))
	}
	return table
}
