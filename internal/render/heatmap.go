package render

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"

	"github.com/couchcryptid/disaster-atlas/internal/domain"
)

// pivotGrid adapts a Pivot to plotter.GridXYZ. Row 0 is drawn at the top.
type pivotGrid struct {
	p domain.Pivot
}

func (g pivotGrid) Dims() (c, r int) { return len(g.p.Columns), len(g.p.Rows) }

func (g pivotGrid) Z(c, r int) float64 { return float64(g.p.Counts[g.row(r)][c]) }

func (g pivotGrid) X(c int) float64 { return float64(c) }

func (g pivotGrid) Y(r int) float64 { return float64(r) }

func (g pivotGrid) row(r int) int { return len(g.p.Rows) - 1 - r }

// Heatmap draws the frequency pivot with each cell annotated by its count.
func Heatmap(p domain.Pivot, size Size) ([]byte, error) {
	if p.Empty() {
		return nil, noData("heatmap")
	}

	grid := pivotGrid{p: p}
	hm := plotter.NewHeatMap(grid, palette.Heat(12, 1))

	pl := newPlot("Disaster Frequency by Subregion and Type", "Disaster Type", "Subregion")
	pl.Add(hm)

	var xys plotter.XYs
	var labels []string
	for r := range p.Rows {
		for c := range p.Columns {
			xys = append(xys, plotter.XY{X: grid.X(c), Y: grid.Y(r)})
			labels = append(labels, strconv.Itoa(int(grid.Z(c, r))))
		}
	}
	annotations, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return nil, fmt.Errorf("heatmap labels: %w", err)
	}
	for i := range annotations.TextStyle {
		annotations.TextStyle[i].XAlign = draw.XCenter
		annotations.TextStyle[i].YAlign = draw.YCenter
	}
	pl.Add(annotations)

	rows := make([]string, len(p.Rows))
	for r := range p.Rows {
		rows[r] = p.Rows[grid.row(r)]
	}
	pl.NominalX(p.Columns...)
	pl.NominalY(rows...)
	pl.X.Tick.Label.Rotation = math.Pi / 4
	pl.X.Tick.Label.XAlign = draw.XRight

	return encodePNG(pl, size)
}
