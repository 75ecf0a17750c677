package canvas

import (
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/sumwatshade/surfgrid/cmd/dotgrid"
)

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
	}
}

// WriteSeriesChart renders the resampled inputs of a render and its total
// score per column as a PNG line chart. Heights and speed share the left axis,
// the score uses the right one.
func WriteSeriesChart(w io.Writer, res *dotgrid.Result, width, height int) error {
	if res == nil || len(res.Scores.Total) == 0 {
		return fmt.Errorf("%w: nothing to chart", dotgrid.ErrInvalidInput)
	}

	cols := make([]float64, len(res.Scores.Total))
	totals := make([]float64, len(res.Scores.Total))
	lo, hi := math.Inf(1), math.Inf(-1)
	for j, s := range res.Scores.Total {
		cols[j] = float64(j)
		totals[j] = float64(s)
		lo, hi = math.Min(lo, totals[j]), math.Max(hi, totals[j])
	}
	// go-chart rejects a zero-height range.
	if hi == lo {
		hi = lo + 1
	}

	ch := chart.Chart{
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 40}},
		XAxis:      chart.XAxis{Name: "Column"},
		YAxis:      chart.YAxis{Name: "m, km/h", Range: &chart.ContinuousRange{}},
		YAxisSecondary: chart.YAxis{
			Name:  "Score",
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "Swell", XValues: cols, YValues: res.Swell, Style: lineStyle(chart.ColorBlue)},
			chart.ContinuousSeries{Name: "Wind speed", XValues: cols, YValues: res.WindSpeed, Style: lineStyle(chart.ColorAlternateGray)},
			chart.ContinuousSeries{Name: "Tide", XValues: cols, YValues: res.Tide, Style: lineStyle(chart.ColorGreen)},
			chart.ContinuousSeries{Name: "Total", XValues: cols, YValues: totals, Style: lineStyle(chart.ColorOrange), YAxis: chart.YAxisSecondary},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}
