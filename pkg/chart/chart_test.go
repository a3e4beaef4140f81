package chart

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/edp1096/nport/pkg/synth"
	"github.com/edp1096/nport/pkg/tline"
)

func extracted(t *testing.T, freqs []float64) *tline.TransmissionLine {
	t.Helper()
	n, err := synth.Line(synth.RLGC{R: 2, L: 250e-9, G: 1e-5, C: 100e-12}, 0.02, freqs, 50)
	require.NoError(t, err)
	tl, err := tline.New(n, 0.02)
	require.NoError(t, err)
	return tl
}

func TestRLGCGrid(t *testing.T) {
	freqs, err := synth.Sweep("DEC", 1e6, 1e9, 31)
	require.NoError(t, err)
	tl := extracted(t, freqs)

	grid, err := RLGC(tl.Forward(), tl.Freqs(), "line")
	require.NoError(t, err)
	require.Len(t, grid, 2)
	for _, row := range grid {
		require.Len(t, row, 2)
	}
	assert.Equal(t, "line: R", grid[0][0].Title.Text)
	assert.Equal(t, "C", grid[1][1].Y.Label.Text[:1])
	assert.IsType(t, plot.LogScale{}, grid[0][0].X.Scale)
}

func TestRLGCSkipsNonFinitePoints(t *testing.T) {
	tl := extracted(t, []float64{0, 1e6, 2e6})
	require.NotEmpty(t, tl.Forward().NonFinite())

	grid, err := RLGC(tl.Forward(), tl.Freqs(), "")
	require.NoError(t, err)
	// zero frequency keeps the axis linear
	assert.IsType(t, plot.LinearScale{}, grid[0][1].X.Scale)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, grid, "svg", 16*vg.Centimeter, 12*vg.Centimeter))
	assert.Contains(t, buf.String(), "<svg")
}

func TestRender(t *testing.T) {
	freqs, err := synth.Sweep("LIN", 1e6, 1e8, 11)
	require.NoError(t, err)
	tl := extracted(t, freqs)

	grid, err := RLGC(tl.Backward(), tl.Freqs(), "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, grid, "png", 12*vg.Centimeter, 9*vg.Centimeter))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	err = Render(&buf, grid, "bmp", 12*vg.Centimeter, 9*vg.Centimeter)
	assert.Error(t, err)

	err = Render(&buf, nil, "png", 12*vg.Centimeter, 9*vg.Centimeter)
	assert.True(t, errors.Is(err, ErrEmptyGrid))
}

func TestRLGCLengthMismatch(t *testing.T) {
	tl := extracted(t, []float64{1e6, 2e6})
	_, err := RLGC(tl.Forward(), []float64{1e6}, "")
	assert.Error(t, err)
}
