package dataprocessing

import (
	"bufio"
	"encoding/csv"
	"io"
	"strings"

	apperrors "lossval/internal/errors"
	"lossval/pkg/contracts/domain"
)

// Signature identifies the true header row inside a source that may carry an
// arbitrary metadata preamble.
type Signature struct {
	// LinePrefix marks the header line of a delimited text source,
	// e.g. "Time,Metric,Value,Measurement".
	LinePrefix string
	// CellPrefix marks the header row of a workbook sheet by its first
	// cell, e.g. "Time".
	CellPrefix string
}

// DefaultSignature returns the signature of the loss validation export
// format.
func DefaultSignature() Signature {
	return Signature{
		LinePrefix: "Time,Metric,Value,Measurement",
		CellPrefix: "Time",
	}
}

// ParseCSV scans a delimited text source for the first line starting with
// the header signature, discards everything before it, and parses the rest
// into a typed table. Preamble lines are ignored regardless of content,
// including malformed delimiters or binary noise.
func ParseCSV(r io.Reader, sig Signature, required []string) (*domain.Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var lines []string
	headerIdx := -1
	for scanner.Scan() {
		line := scanner.Text()
		if headerIdx == -1 && strings.HasPrefix(strings.TrimSpace(line), sig.LinePrefix) {
			headerIdx = len(lines)
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.NewMalformedSourceError("failed to read source", err)
	}

	if len(lines) == 0 {
		return nil, apperrors.NewMalformedSourceError("source is empty", nil)
	}
	if headerIdx == -1 {
		return nil, apperrors.NewHeaderNotFoundError("csv")
	}

	reader := csv.NewReader(strings.NewReader(strings.Join(lines[headerIdx:], "\n")))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewMalformedSourceError("failed to parse delimited data", err)
	}
	if len(records) == 0 {
		return nil, apperrors.NewMalformedSourceError("no rows below the header", nil)
	}

	header := make([]string, len(records[0]))
	for i, name := range records[0] {
		header[i] = strings.TrimSpace(name)
	}

	table := &domain.Table{Header: header}
	for _, rec := range records[1:] {
		if isBlankRow(rec) {
			continue
		}
		table.Rows = append(table.Rows, rowToRecord(header, rec))
	}

	if missing := table.MissingColumns(required); len(missing) > 0 {
		return nil, apperrors.NewMissingColumnsError(missing)
	}

	return table, nil
}

// rowToRecord maps row cells onto the header by position. Short rows leave
// the trailing columns empty; extra cells are discarded.
func rowToRecord(header []string, row []string) domain.Record {
	rec := make(domain.Record, len(header))
	for i, name := range header {
		if i < len(row) {
			rec[name] = strings.TrimSpace(row[i])
		} else {
			rec[name] = ""
		}
	}
	return rec
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
