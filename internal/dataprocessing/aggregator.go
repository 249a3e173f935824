package dataprocessing

import (
	"sort"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"

	apperrors "lossval/internal/errors"
	"lossval/pkg/contracts/domain"
)

// Clean coerces the value column of every row to a float. Rows whose value
// does not parse are excluded and counted; the count is a warning signal for
// the caller, not a failure.
func Clean(table *domain.Table, groupColumn, valueColumn string) *domain.CleanedTable {
	cleaned := &domain.CleanedTable{}
	for _, rec := range table.Rows {
		value, err := parseFloat(rec[valueColumn])
		if err != nil {
			cleaned.Dropped++
			continue
		}
		cleaned.Rows = append(cleaned.Rows, domain.CleanedRow{
			Key:   rec[groupColumn],
			Value: value,
		})
	}
	return cleaned
}

// Aggregate partitions the cleaned rows by group key and computes min and
// max of the value column per group, plus the optional midpoint average and
// the optional overall summary. Groups are ordered by ascending key so the
// output is deterministic regardless of input row order.
func Aggregate(cleaned *domain.CleanedTable, opts domain.Options) (*domain.Report, error) {
	if len(cleaned.Rows) == 0 {
		return nil, apperrors.NewNoValidDataError()
	}

	type extremes struct {
		min, max float64
	}
	groups := make(map[string]*extremes)
	for _, row := range cleaned.Rows {
		g, ok := groups[row.Key]
		if !ok {
			groups[row.Key] = &extremes{min: row.Value, max: row.Value}
			continue
		}
		if row.Value < g.min {
			g.min = row.Value
		}
		if row.Value > g.max {
			g.max = row.Value
		}
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	report := &domain.Report{
		Groups:  make([]domain.GroupSummary, 0, len(keys)),
		Dropped: cleaned.Dropped,
	}
	for _, key := range keys {
		g := groups[key]
		summary := domain.GroupSummary{
			Measurement: key,
			MinLoss:     g.min,
			MaxLoss:     g.max,
		}
		if opts.IncludeAverage {
			// Midpoint of the extremes, not the mean of the rows.
			avg := (g.min + g.max) / 2
			summary.Average = &avg
		}
		report.Groups = append(report.Groups, summary)
	}

	if opts.IncludeOverallAverage {
		overall, err := overallSummary(report.Groups)
		if err != nil {
			return nil, err
		}
		report.Overall = overall
	}

	return report, nil
}

// overallSummary computes the mean of the group mins and, separately, of the
// group maxes. The means are taken across groups, never across raw rows.
func overallSummary(groups []domain.GroupSummary) (*domain.OverallSummary, error) {
	mins := make([]float64, len(groups))
	maxes := make([]float64, len(groups))
	for i, g := range groups {
		mins[i] = g.MinLoss
		maxes[i] = g.MaxLoss
	}

	minAvg, err := stats.Mean(mins)
	if err != nil {
		return nil, apperrors.NewNoValidDataError()
	}
	maxAvg, err := stats.Mean(maxes)
	if err != nil {
		return nil, apperrors.NewNoValidDataError()
	}

	return &domain.OverallSummary{MinAverage: minAvg, MaxAverage: maxAvg}, nil
}

// parseFloat coerces a raw cell to a float, tolerating surrounding
// whitespace and thousands separators.
func parseFloat(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	return strconv.ParseFloat(s, 64)
}
