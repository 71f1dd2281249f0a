package analysis

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/marketlens/internal/models"
)

// RenderTrendChart renders the structured data's projected trend series as
// a PNG line chart. Returns an error when the payload has no usable series.
func RenderTrendChart(data *models.StructuredData) ([]byte, error) {
	if data == nil || len(data.TrendSeries) < 2 {
		return nil, fmt.Errorf("no trend series available")
	}

	labels := make([]string, len(data.TrendSeries))
	xValues := make([]float64, len(data.TrendSeries))
	yValues := make([]float64, len(data.TrendSeries))
	for i, p := range data.TrendSeries {
		labels[i] = p.Label
		xValues[i] = float64(i)
		yValues[i] = p.Value
	}

	series := chart.ContinuousSeries{
		Name: "Projected Trend",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: yValues,
	}

	graph := chart.Chart{
		Title:  "Projected Trend",
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionUnderTick,
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					idx := int(f)
					if idx >= 0 && idx < len(labels) && float64(idx) == f {
						return labels[idx]
					}
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{series},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
