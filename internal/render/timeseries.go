package render

import (
	"bytes"
	"fmt"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/couchcryptid/disaster-atlas/internal/domain"
)

var seriesColors = []drawing.Color{
	chart.ColorBlue,
	chart.ColorRed,
	chart.ColorGreen,
	chart.ColorOrange,
	chart.ColorCyan,
	chart.ColorAlternateGray,
	chart.ColorYellow,
}

// CumulativeDeaths draws one running-total line per region.
func CumulativeDeaths(series []domain.Series, size Size) ([]byte, error) {
	return lines("Cumulative Deaths Over Time by Region", "Cumulative Deaths", series, size)
}

// DamageOverTime draws adjusted damage over time, one line per subgroup.
func DamageOverTime(series []domain.Series, size Size) ([]byte, error) {
	return lines("Total Damage Over Time by Disaster Subgroup", "Total Damage, Adjusted ('000 US$)", series, size)
}

func lines(title, yName string, series []domain.Series, size Size) ([]byte, error) {
	size = size.orDefault()

	var cs []chart.Series
	var minX, maxX time.Time
	maxY := 0.0
	for i, s := range series {
		if len(s.Points) == 0 {
			continue
		}
		xs, ys := timeValues(s.Points)
		for _, x := range xs {
			if minX.IsZero() || x.Before(minX) {
				minX = x
			}
			if x.After(maxX) {
				maxX = x
			}
		}
		for _, y := range ys {
			maxY = max(maxY, y)
		}
		col := seriesColors[i%len(seriesColors)]
		cs = append(cs, chart.TimeSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: col,
				StrokeWidth: 2,
				DotColor:    col,
				DotWidth:    2,
			},
		})
	}
	if len(cs) == 0 {
		return nil, noData(title)
	}
	if maxY == 0 {
		maxY = 1
	}

	ch := chart.Chart{
		Title:      title,
		Width:      size.Width,
		Height:     size.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      chart.XAxis{Name: "Start Date", ValueFormatter: chart.TimeDateValueFormatter},
		YAxis:      chart.YAxis{Name: yName, Range: &chart.ContinuousRange{Min: 0, Max: maxY * 1.05}},
		Series:     cs,
	}
	// Every point on one date: go-chart cannot derive an x range, so span a day.
	if minX.Equal(maxX) {
		ch.XAxis.Range = &chart.ContinuousRange{
			Min: chart.TimeToFloat64(minX),
			Max: chart.TimeToFloat64(minX.Add(24 * time.Hour)),
		}
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %q: %w", title, err)
	}
	return buf.Bytes(), nil
}

func timeValues(points []domain.SeriesPoint) ([]time.Time, []float64) {
	xs := make([]time.Time, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.Date
		ys[i] = p.Value
	}
	return xs, ys
}
