package performance

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/folio/internal/models"
)

// ChartOptions controls PNG rendering.
type ChartOptions struct {
	Title   string
	Width   int
	Height  int
	ShowYTD bool // draw the YTD return overlay on the secondary axis
}

// DefaultChartOptions matches the dashboard card.
func DefaultChartOptions() ChartOptions {
	return ChartOptions{
		Title:   "Portfolio Value Over Time",
		Width:   900,
		Height:  400,
		ShowYTD: true,
	}
}

// RenderChart renders the ascending series of a report as a PNG line chart.
// Points with an unparseable date cannot be placed on the time axis and are
// skipped. Returns raw PNG bytes.
func RenderChart(report *models.PerformanceReport, opts ChartOptions) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("no report to render")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		d := DefaultChartOptions()
		opts.Width, opts.Height = d.Width, d.Height
	}

	xValues := make([]time.Time, 0, len(report.Chart))
	valueY := make([]float64, 0, len(report.Chart))
	ytdY := make([]float64, 0, len(report.Chart))
	for _, p := range report.Chart {
		at, ok := parseSnapshotDate(p.Date)
		if !ok {
			continue
		}
		xValues = append(xValues, at)
		valueY = append(valueY, p.Value.InexactFloat64())
		ytdY = append(ytdY, p.YTDReturn)
	}
	if len(xValues) < 2 {
		return nil, fmt.Errorf("need at least 2 dated points, got %d", len(xValues))
	}

	format := NewFormatter(report.Currency)

	valueSeries := chart.TimeSeries{
		Name: "Value",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("8884d8"),
			StrokeWidth: 2,
			DotColor:    drawing.ColorFromHex("8884d8"),
			DotWidth:    3,
		},
		XValues: xValues,
		YValues: valueY,
	}

	lo, hi := valueRange(report.Domain)
	graph := chart.Chart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 30, Bottom: 5},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 06")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
			GridMajorStyle: chart.Style{
				StrokeColor:     drawing.ColorFromHex("e5e7eb"),
				StrokeWidth:     1,
				StrokeDashArray: []float64{3.0, 3.0},
			},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return format.MoneyWhole(decimal.NewFromFloat(f))
				}
				return ""
			},
		},
		Series: []chart.Series{valueSeries},
	}

	if opts.ShowYTD {
		ylo, yhi := ytdRange(ytdY)
		graph.YAxisSecondary = chart.YAxis{
			Range: &chart.ContinuousRange{Min: ylo, Max: yhi},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return FormatPercent(f)
				}
				return ""
			},
		}
		graph.Series = append(graph.Series, chart.TimeSeries{
			Name:  "YTD Return",
			YAxis: chart.YAxisSecondary,
			Style: chart.Style{
				StrokeColor:     drawing.ColorFromHex("9ca3af"),
				StrokeWidth:     1.5,
				StrokeDashArray: []float64{5.0, 3.0},
			},
			XValues: xValues,
			YValues: ytdY,
		})
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// valueRange converts the padded domain to floats. A flat series has an empty
// domain, which the renderer rejects, so it is widened by one unit each way.
func valueRange(d models.ChartDomain) (float64, float64) {
	lo, hi := d.Min.InexactFloat64(), d.Max.InexactFloat64()
	if hi-lo < 1e-9 {
		return lo - 1, hi + 1
	}
	return lo, hi
}

// ytdRange always includes zero and at least one percentage point either side.
func ytdRange(values []float64) (float64, float64) {
	lo, hi := 0.0, 0.0
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo - 1, hi + 1
}
