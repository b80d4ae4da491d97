package render

import (
	"fmt"
	"math"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/couchcryptid/disaster-atlas/internal/domain"
)

// Locations plots record coordinates as bubbles sized and shaded by deaths.
// Records without coordinates are skipped.
func Locations(records []domain.DisasterRecord, title string, size Size) ([]byte, error) {
	var pts plotter.XYs
	var deaths []float64
	for _, r := range records {
		if !r.HasCoordinates() {
			continue
		}
		pts = append(pts, plotter.XY{X: *r.Longitude, Y: *r.Latitude})
		deaths = append(deaths, float64(r.Deaths()))
	}
	if len(pts) == 0 {
		return nil, noData("locations")
	}

	p := newPlot(title, "Longitude", "Latitude")
	p.X.Min, p.X.Max = -180, 180
	p.Y.Min, p.Y.Max = -90, 90
	p.Add(plotter.NewGrid())

	maxDeaths := 0.0
	for _, d := range deaths {
		maxDeaths = math.Max(maxDeaths, d)
	}

	for i := range pts {
		s, err := plotter.NewScatter(plotter.XYs{pts[i]})
		if err != nil {
			return nil, fmt.Errorf("locations scatter: %w", err)
		}
		frac := 0.0
		if maxDeaths > 0 {
			frac = math.Sqrt(deaths[i] / maxDeaths)
		}
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Color = reds(frac)
		s.GlyphStyle.Radius = vg.Points(3 + 15*frac)
		p.Add(s)
	}
	return encodePNG(p, size)
}

// DamageVsDeaths plots adjusted damage against deaths, one colour per subgroup.
func DamageVsDeaths(points []domain.DamagePoint, size Size) ([]byte, error) {
	if len(points) == 0 {
		return nil, noData("damage vs deaths")
	}

	p := newPlot("Total Deaths vs. Total Damage by Disaster Subgroup", "Total Damage, Adjusted ('000 US$)", "Total Deaths")
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	groups, order := groupBy(points, func(pt domain.DamagePoint) string { return pt.DisasterSubgroup })
	for i, name := range order {
		xys := make(plotter.XYs, len(groups[name]))
		for j, pt := range groups[name] {
			xys[j] = plotter.XY{X: pt.Damage, Y: float64(pt.Deaths)}
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, fmt.Errorf("damage scatter: %w", err)
		}
		s.GlyphStyle.Color = plotutil.Color(i)
		s.GlyphStyle.Shape = plotutil.Shape(i)
		p.Add(s)
		p.Legend.Add(name, s)
	}
	return encodePNG(p, size)
}

// MagnitudeDeaths plots the outlier-trimmed comparison, one colour per country,
// with the axis ranges computed by domain.MagnitudeVsDeaths.
func MagnitudeDeaths(cmp domain.Comparison, size Size) ([]byte, error) {
	if len(cmp.Records) == 0 {
		return nil, noData("magnitude vs deaths")
	}

	p := newPlot(fmt.Sprintf("Magnitude vs Total Deaths for %s", cmp.DisasterType), "Disaster Magnitude", "Total Deaths")
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	p.X.Min, p.X.Max = cmp.MagnitudeAxis.Min, cmp.MagnitudeAxis.Max
	p.Y.Min, p.Y.Max = cmp.DeathsAxis.Min, cmp.DeathsAxis.Max

	groups, order := groupBy(cmp.Records, func(r domain.DisasterRecord) string { return r.Country })
	for i, country := range order {
		xys := make(plotter.XYs, 0, len(groups[country]))
		for _, r := range groups[country] {
			m, _ := domain.ColumnMagnitude.Value(r)
			xys = append(xys, plotter.XY{X: m, Y: float64(r.Deaths())})
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, fmt.Errorf("magnitude scatter: %w", err)
		}
		s.GlyphStyle.Color = plotutil.Color(i)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(5)
		p.Add(s)
		p.Legend.Add(country, s)
	}
	return encodePNG(p, size)
}

// DeathsByType draws total deaths per disaster type as bars.
func DeathsByType(rows []domain.TypeCountryDeaths, size Size) ([]byte, error) {
	if len(rows) == 0 {
		return nil, noData("deaths by type")
	}

	p := newPlot("Total Deaths by Disaster Type", "Disaster Type", "Total Deaths")
	values := make(plotter.Values, len(rows))
	labels := make([]string, len(rows))
	for i, r := range rows {
		values[i] = float64(r.Total)
		labels[i] = r.DisasterType
	}

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return nil, fmt.Errorf("deaths bar chart: %w", err)
	}
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 6
	p.X.Tick.Label.XAlign = draw.XRight
	p.Y.Min = 0
	return encodePNG(p, size)
}

// groupBy partitions items by key, keeping keys in first-appearance order.
func groupBy[T any](items []T, key func(T) string) (map[string][]T, []string) {
	groups := make(map[string][]T)
	var order []string
	for _, it := range items {
		k := key(it)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], it)
	}
	return groups, order
}
