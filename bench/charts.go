package bench

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/colorfulnotion/combinebench/timing"
)

// RenderChart writes an HTML page with one bar series per report, elapsed
// seconds per checkpoint. The first report fixes the x axis.
func RenderChart(w io.Writer, reports ...timing.Report) error {
	if len(reports) == 0 {
		return errors.New("bench: no report to chart")
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    reports[0].Title,
			Subtitle: "elapsed seconds per variant",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "variant"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "seconds"}),
	)

	names := reports[0].Names
	bar.SetXAxis(names)
	for _, rep := range reports {
		data := make([]opts.BarData, len(names))
		for i, name := range names {
			d, _ := rep.Interval(name)
			data[i] = opts.BarData{Name: name, Value: d.Seconds()}
		}
		bar.AddSeries(rep.Title, data)
	}

	page := components.NewPage()
	page.AddCharts(bar)
	return page.Render(w)
}

// SaveChart renders the chart into path, creating parent directories.
func SaveChart(path string, reports ...timing.Report) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create chart directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	if err := RenderChart(f, reports...); err != nil {
		f.Close()
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return f.Close()
}
