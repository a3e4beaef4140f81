package chart

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/nport/pkg/network"
	"github.com/edp1096/nport/pkg/synth"
)

func TestSParametersHTML(t *testing.T) {
	freqs, err := synth.Sweep("LIN", 1e8, 1e9, 10)
	require.NoError(t, err)
	abcd, err := synth.Line(synth.RLGC{R: 2, L: 250e-9, G: 1e-5, C: 100e-12}, 0.02, freqs, 50)
	require.NoError(t, err)
	n, err := abcd.Convert(network.Scattering)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, SParametersHTML(&buf, n, "stripline"))

	html := buf.String()
	assert.Contains(t, html, "<html")
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "stripline")
	for _, name := range []string{"S11", "S21", "S12", "S22"} {
		assert.Contains(t, html, name)
	}
}

func TestSParametersHTMLRejectsOtherParameters(t *testing.T) {
	z, err := network.New([]float64{1e6}, []network.Matrix{{{50}}}, network.Impedance, 50)
	require.NoError(t, err)
	assert.ErrorIs(t, SParametersHTML(&bytes.Buffer{}, z, ""), ErrNotScattering)

	freqs := []float64{1e8, 2e8}
	abcd, err := synth.Line(synth.RLGC{L: 250e-9, C: 100e-12}, 0.02, freqs, 50)
	require.NoError(t, err)
	assert.ErrorIs(t, SParametersHTML(&bytes.Buffer{}, abcd, ""), ErrNotScattering)
}

func TestLineDataGaps(t *testing.T) {
	data := lineData([]complex128{0.5, 0}, network.DB20)
	require.Len(t, data, 2)
	assert.InDelta(t, 20*math.Log10(0.5), data[0].Value, 1e-12)
	assert.Equal(t, "-", data[1].Value)
}
