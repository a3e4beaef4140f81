package tline_test

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/cmplxs/cscalar"

	"github.com/edp1096/nport/pkg/network"
	"github.com/edp1096/nport/pkg/synth"
	"github.com/edp1096/nport/pkg/tline"
)

var stripline = synth.RLGC{R: 5, L: 300e-9, G: 1e-4, C: 120e-12}

const lineLength = 0.05

func synthLine(t *testing.T, freqs []float64) *network.Network {
	t.Helper()
	n, err := synth.Line(stripline, lineLength, freqs, 50)
	require.NoError(t, err)
	return n
}

func sweep(t *testing.T) []float64 {
	t.Helper()
	freqs, err := synth.Sweep("LIN", 1e6, 1e9, 101)
	require.NoError(t, err)
	return freqs
}

func assertRLGC(t *testing.T, b tline.Branch, tol float64) {
	t.Helper()
	for name, got := range map[string]struct {
		values []float64
		want   float64
	}{
		"R": {b.R(), stripline.R},
		"L": {b.L(), stripline.L},
		"G": {b.G(), stripline.G},
		"C": {b.C(), stripline.C},
	} {
		for i, v := range got.values {
			require.InEpsilon(t, got.want, v, tol, "%s[%d]", name, i)
		}
	}
}

func TestRecoversRLGC(t *testing.T) {
	tl, err := tline.New(synthLine(t, sweep(t)), lineLength)
	require.NoError(t, err)

	assert.Equal(t, lineLength, tl.Length())
	assert.Len(t, tl.Freqs(), 101)

	assertRLGC(t, tl.Forward(), 1e-6)
	assertRLGC(t, tl.Backward(), 1e-6)
	assert.Empty(t, tl.Forward().NonFinite())
	assert.Empty(t, tl.Backward().NonFinite())
}

func TestRecoversRLGCFromScattering(t *testing.T) {
	s, err := synthLine(t, sweep(t)).Convert(network.Scattering)
	require.NoError(t, err)

	tl, err := tline.New(s, lineLength)
	require.NoError(t, err)
	assertRLGC(t, tl.Forward(), 1e-6)
}

func TestCharacteristicImpedance(t *testing.T) {
	freqs := sweep(t)
	tl, err := tline.New(synthLine(t, freqs), lineLength)
	require.NoError(t, err)

	alt, err := tline.New(synthLine(t, freqs), lineLength, tline.WithImpedanceFormula(tline.FromB))
	require.NoError(t, err)

	z0 := tl.Forward().Z0()
	z0b := alt.Forward().Z0()
	for i, f := range freqs {
		omega := 2 * math.Pi * f
		want := cmplx.Sqrt(complex(stripline.R, omega*stripline.L) / complex(stripline.G, omega*stripline.C))
		assert.True(t, cscalar.EqualWithinAbsOrRel(want, z0[i], 1e-6, 1e-6), "FromC %d: %v vs %v", i, want, z0[i])
		assert.True(t, cscalar.EqualWithinAbsOrRel(want, z0b[i], 1e-6, 1e-6), "FromB %d: %v vs %v", i, want, z0b[i])
	}
}

func TestBranchConsistency(t *testing.T) {
	tl, err := tline.New(synthLine(t, sweep(t)), lineLength)
	require.NoError(t, err)

	l := complex(lineLength, 0)
	gf, gb := tl.Forward().Gamma(), tl.Backward().Gamma()
	fwd, bwd := tl.ExpForward(), tl.ExpBackward()
	for i := range fwd {
		assert.True(t, cscalar.EqualWithinAbsOrRel(fwd[i], cmplx.Exp(gf[i]*l), 1e-9, 1e-9), "forward %d", i)
		assert.True(t, cscalar.EqualWithinAbsOrRel(bwd[i], cmplx.Exp(-gb[i]*l), 1e-9, 1e-9), "backward %d", i)
	}

	// fwd·bwd = det = 1 for a reciprocal line
	delta := tl.Delta()
	for i := range fwd {
		assert.True(t, cscalar.EqualWithinAbs(fwd[i]*bwd[i], 1, 1e-9), "product %d", i)
		assert.True(t, cscalar.EqualWithinAbs(fwd[i]-bwd[i], 2*delta[i], 1e-12), "delta %d", i)
	}
}

func TestZeroFrequency(t *testing.T) {
	tl, err := tline.New(synthLine(t, []float64{0, 1e6}), lineLength)
	require.NoError(t, err)

	fwd := tl.Forward()
	assert.True(t, math.IsNaN(fwd.L()[0]) || math.IsInf(fwd.L()[0], 0))
	assert.True(t, math.IsNaN(fwd.C()[0]) || math.IsInf(fwd.C()[0], 0))
	assert.InEpsilon(t, stripline.R, fwd.R()[0], 1e-6)
	assert.InEpsilon(t, stripline.G, fwd.G()[0], 1e-6)
	assert.Equal(t, []int{0}, fwd.NonFinite())
}

func TestAccessorsReturnCopies(t *testing.T) {
	tl, err := tline.New(synthLine(t, sweep(t)), lineLength)
	require.NoError(t, err)

	r := tl.Forward().R()
	r[0] = -1
	assert.InEpsilon(t, stripline.R, tl.Forward().R()[0], 1e-6)

	freqs := tl.Freqs()
	freqs[0] = -1
	assert.Equal(t, 1e6, tl.Freqs()[0])
}

func TestInputErrors(t *testing.T) {
	three, err := network.New([]float64{1e9}, []network.Matrix{network.Identity(3)}, network.Scattering, 50)
	require.NoError(t, err)

	_, err = tline.New(three, lineLength)
	require.True(t, errors.Is(err, tline.ErrNotTwoPort), "got %v", err)

	for _, l := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err = tline.New(synthLine(t, sweep(t)), l)
		require.True(t, errors.Is(err, tline.ErrInvalidLength), "length %g: got %v", l, err)
	}
}
