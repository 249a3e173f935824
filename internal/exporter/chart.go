package exporter

import (
	"bytes"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"lossval/pkg/contracts/domain"
)

// RenderChartPNG renders the grouped min/max (and optional average) bar
// chart for the report and returns it as PNG bytes, ready for embedding
// into the PDF report.
func RenderChartPNG(report *domain.Report, title string) ([]byte, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Measurement"
	p.Y.Label.Text = "Percentage Loss"

	names := make([]string, len(report.Groups))
	mins := make(plotter.Values, len(report.Groups))
	maxes := make(plotter.Values, len(report.Groups))
	avgs := make(plotter.Values, len(report.Groups))
	for i, g := range report.Groups {
		names[i] = g.Measurement
		mins[i] = g.MinLoss
		maxes[i] = g.MaxLoss
		if g.Average != nil {
			avgs[i] = *g.Average
		}
	}

	barWidth := vg.Points(14)

	series := []struct {
		label  string
		values plotter.Values
	}{
		{label: "Min Loss", values: mins},
		{label: "Max Loss", values: maxes},
	}
	if report.HasAverage() {
		series = append(series, struct {
			label  string
			values plotter.Values
		}{label: "Average", values: avgs})
	}

	for i, s := range series {
		bars, err := plotter.NewBarChart(s.values, barWidth)
		if err != nil {
			return nil, fmt.Errorf("build %s bars: %w", s.label, err)
		}
		bars.LineStyle.Width = 0
		bars.Color = plotutil.Color(i)
		// Center the cluster of bars on each measurement tick.
		bars.Offset = vg.Length(float64(i)-float64(len(series)-1)/2) * barWidth
		p.Add(bars)
		p.Legend.Add(s.label, bars)
	}

	p.Legend.Top = true
	p.NominalX(names...)

	wt, err := p.WriterTo(8*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}

	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode chart: %w", err)
	}
	return buf.Bytes(), nil
}
