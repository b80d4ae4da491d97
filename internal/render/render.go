// Package render draws the dashboard views as PNG charts and exports the
// frequency pivot as an XLSX workbook.
package render

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/couchcryptid/disaster-atlas/internal/domain"
)

// Size is an output image size in pixels.
type Size struct {
	Width  int
	Height int
}

// DefaultSize matches the dashboard layout.
var DefaultSize = Size{Width: 1100, Height: 700}

// gonum renders PNGs at 96 DPI.
const pngDPI = 96

func (s Size) orDefault() Size {
	if s.Width <= 0 || s.Height <= 0 {
		return DefaultSize
	}
	return s
}

func (s Size) lengths() (vg.Length, vg.Length) {
	return vg.Length(s.Width) * vg.Inch / pngDPI, vg.Length(s.Height) * vg.Inch / pngDPI
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	return p
}

// encodePNG writes p as a PNG of the given size.
func encodePNG(p *plot.Plot, size Size) ([]byte, error) {
	w, h := size.orDefault().lengths()
	wt, err := p.WriterTo(w, h, "png")
	if err != nil {
		return nil, fmt.Errorf("png writer: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// noData reports an empty selection as domain.ErrNoData.
func noData(chart string) error {
	return fmt.Errorf("%s: %w", chart, domain.ErrNoData)
}

// reds is the bubble colour ramp for death counts, light to dark.
func reds(frac float64) color.Color {
	frac = max(0, min(1, frac))
	return color.RGBA{
		R: uint8(255 - 90*frac),
		G: uint8(200 - 200*frac),
		B: uint8(180 - 180*frac),
		A: 220,
	}
}
