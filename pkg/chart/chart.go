// Package chart draws per-unit-length line parameters against frequency.
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/edp1096/nport/pkg/tline"
)

var ErrEmptyGrid = errors.New("chart: nothing to draw")

type panel struct {
	title  string
	unit   string
	scale  float64
	values []float64
}

// RLGC returns a 2x2 grid with R and L on the first row and G and C on the
// second. Points where the frequency or the value is not finite are left
// out; a logarithmic frequency axis is used when there are several
// frequencies and all of them are positive.
func RLGC(b tline.Branch, freqs []float64, title string) ([][]*plot.Plot, error) {
	panels := []panel{
		{"R", "Ω/m", 1, b.R()},
		{"L", "nH/m", 1e9, b.L()},
		{"G", "mS/m", 1e3, b.G()},
		{"C", "pF/m", 1e12, b.C()},
	}

	logX := len(freqs) > 1
	for _, f := range freqs {
		if !(f > 0) {
			logX = false
			break
		}
	}

	grid := [][]*plot.Plot{make([]*plot.Plot, 2), make([]*plot.Plot, 2)}
	for k, pn := range panels {
		if len(pn.values) != len(freqs) {
			return nil, fmt.Errorf("chart: %s has %d points for %d frequencies", pn.title, len(pn.values), len(freqs))
		}

		p := plot.New()
		p.Title.Text = pn.title
		if title != "" {
			p.Title.Text = title + ": " + pn.title
		}
		p.X.Label.Text = "Frequency (Hz)"
		p.Y.Label.Text = fmt.Sprintf("%s (%s)", pn.title, pn.unit)
		p.Add(plotter.NewGrid())

		xys := make(plotter.XYs, 0, len(freqs))
		for i, f := range freqs {
			v := pn.values[i] * pn.scale
			if math.IsNaN(v) || math.IsInf(v, 0) || math.IsNaN(f) || math.IsInf(f, 0) {
				continue
			}
			xys = append(xys, plotter.XY{X: f, Y: v})
		}
		if len(xys) > 0 {
			line, err := plotter.NewLine(xys)
			if err != nil {
				return nil, fmt.Errorf("chart: %s: %w", pn.title, err)
			}
			p.Add(line)
			if logX && len(xys) > 1 {
				p.X.Scale = plot.LogScale{}
				p.X.Tick.Marker = plot.LogTicks{Prec: -1}
			}
		}

		grid[k/2][k%2] = p
	}

	return grid, nil
}

// Render draws grid onto a single canvas of the given size and writes it to
// w. format is any extension registered with gonum/plot: png, jpg, svg, pdf,
// eps, tif or tex.
func Render(w io.Writer, grid [][]*plot.Plot, format string, width, height vg.Length) error {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return ErrEmptyGrid
	}

	c, err := draw.NewFormattedCanvas(width, height, format)
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}

	tiles := draw.Tiles{
		Rows:      len(grid),
		Cols:      len(grid[0]),
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}

	canvases := plot.Align(grid, tiles, draw.New(c))
	for i := range grid {
		for j := range grid[i] {
			if grid[i][j] != nil {
				grid[i][j].Draw(canvases[i][j])
			}
		}
	}

	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("chart: writing %s: %w", format, err)
	}
	return nil
}
