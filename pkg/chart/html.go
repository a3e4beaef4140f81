package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/edp1096/nport/pkg/network"
)

var ErrNotScattering = errors.New("chart: network is not S-parameters")

// SParametersHTML writes an interactive page with two line charts: |Sij| in
// dB and the phase of Sij in degrees against frequency in GHz. Non-finite
// values are left as gaps.
func SParametersHTML(w io.Writer, n *network.Network, title string) error {
	if n.Type() != network.Scattering {
		return fmt.Errorf("%w: got %s", ErrNotScattering, n.Type())
	}

	freqs := n.Frequencies()
	xs := make([]string, len(freqs))
	for i, f := range freqs {
		xs[i] = strconv.FormatFloat(f/1e9, 'g', 6, 64)
	}

	magnitude := newLine(title, "Magnitude", "dB")
	phase := newLine(title, "Phase", "deg")
	magnitude.SetXAxis(xs)
	phase.SetXAxis(xs)

	for i := 1; i <= n.Ports(); i++ {
		for j := 1; j <= n.Ports(); j++ {
			values, err := n.Parameter(i, j)
			if err != nil {
				return err
			}
			name := fmt.Sprintf("S%d%d", i, j)
			magnitude.AddSeries(name, lineData(values, network.DB20))
			phase.AddSeries(name, lineData(values, network.Deg))
		}
	}

	page := components.NewPage()
	page.SetPageTitle(pageTitle(title))
	page.AddCharts(magnitude, phase)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("chart: rendering html: %w", err)
	}
	return nil
}

func pageTitle(title string) string {
	if title == "" {
		return "S-parameters"
	}
	return title
}

func newLine(title, name, unit string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: pageTitle(title)}),
		charts.WithTitleOpts(opts.Title{Title: name, Subtitle: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Type: "scroll", Right: "10"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "GHz"}),
		charts.WithYAxisOpts(opts.YAxis{Name: unit, Scale: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside", XAxisIndex: []int{0}}),
	)
	return line
}

// lineData maps values through f; "-" marks a gap for echarts.
func lineData(values []complex128, f func(complex128) float64) []opts.LineData {
	data := make([]opts.LineData, len(values))
	for i, v := range values {
		y := f(v)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			data[i].Value = "-"
			continue
		}
		data[i].Value = y
	}
	return data
}
