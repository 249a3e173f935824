package exporter

import (
	"lossval/pkg/contracts/domain"
)

func floatPtr(v float64) *float64 { return &v }

// sampleReport mirrors a small two-group processing run.
func sampleReport() *domain.Report {
	return &domain.Report{
		Groups: []domain.GroupSummary{
			{Measurement: "Front Radar", MinLoss: 2, MaxLoss: 6},
			{Measurement: "Rear Camera", MinLoss: 3.25, MaxLoss: 4},
		},
		Dropped:    1,
		SourceFile: "input.csv",
	}
}

// fullReport carries every optional column: averages, overall summary and
// multi-file source attribution.
func fullReport() *domain.Report {
	return &domain.Report{
		Groups: []domain.GroupSummary{
			{Measurement: "Front Radar", MinLoss: 2, MaxLoss: 6, Average: floatPtr(4), SourceFile: "a.csv"},
			{Measurement: "Rear Camera", MinLoss: 3, MaxLoss: 4, Average: floatPtr(3.5), SourceFile: "b.csv"},
		},
		Overall: &domain.OverallSummary{MinAverage: 2.5, MaxAverage: 5},
		Dropped: 2,
	}
}
