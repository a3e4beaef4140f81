package branch

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/cmplxs/cscalar"
)

func TestUnwrapPhase(t *testing.T) {
	tests := []struct {
		name  string
		input []float64
		want  []float64
	}{
		{"empty", []float64{}, []float64{}},
		{"single", []float64{1.5}, []float64{1.5}},
		{"no jumps", []float64{0, 0.5, 1.0, 1.5}, []float64{0, 0.5, 1.0, 1.5}},
		{
			"positive wrap",
			[]float64{3.0, 3.1, -3.1, -3.0},
			[]float64{3.0, 3.1, 2*math.Pi - 3.1, 2*math.Pi - 3.0},
		},
		{
			"negative wrap",
			[]float64{-3.0, -3.1, 3.1, 3.0},
			[]float64{-3.0, -3.1, 3.1 - 2*math.Pi, 3.0 - 2*math.Pi},
		},
		{
			"two turns",
			[]float64{0, 2, 4 - 2*math.Pi, 6 - 2*math.Pi, 8 - 2*math.Pi, 10 - 4*math.Pi},
			[]float64{0, 2, 4, 6, 8, 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UnwrapPhase(tt.input)
			require.Len(t, got, len(tt.want))
			for i := range got {
				assert.InDelta(t, tt.want[i], got[i], 1e-12, "index %d", i)
			}
		})
	}
}

func TestUnwrapPhaseDoesNotMutateInput(t *testing.T) {
	in := []float64{3.0, -3.0}
	_ = UnwrapPhase(in)
	assert.Equal(t, []float64{3.0, -3.0}, in)
}

func TestUnwrapPhaseStepsStayBelowPi(t *testing.T) {
	// a phase ramp sampled coarsely, then wrapped into (-π, π]
	ramp := make([]float64, 50)
	wrapped := make([]float64, 50)
	for i := range ramp {
		ramp[i] = -0.9 * float64(i)
		wrapped[i] = math.Atan2(math.Sin(ramp[i]), math.Cos(ramp[i]))
	}

	got := UnwrapPhase(wrapped)
	for i := range got {
		assert.InDelta(t, ramp[i], got[i], 1e-9, "index %d", i)
	}
}

func TestSqrtMatchesPointwiseWithoutJumps(t *testing.T) {
	x := []complex128{1, 1 + 1i, 2i, -1 + 2i, 4 + 0.5i}

	got := Sqrt(x)
	require.Len(t, got, len(x))
	for i, v := range x {
		assert.True(t, cscalar.EqualWithinAbsOrRel(cmplx.Sqrt(v), got[i], 1e-12, 1e-12),
			"index %d: want %v, got %v", i, cmplx.Sqrt(v), got[i])
	}
}

func TestLogMatchesPointwiseWithoutJumps(t *testing.T) {
	x := []complex128{1, 1 + 1i, 2i, -1 + 2i, 4 + 0.5i}

	got := Log(x)
	require.Len(t, got, len(x))
	for i, v := range x {
		assert.True(t, cscalar.EqualWithinAbsOrRel(cmplx.Log(v), got[i], 1e-12, 1e-12),
			"index %d: want %v, got %v", i, cmplx.Log(v), got[i])
	}
}

func TestSqrtContinuousAcrossNegativeRealAxis(t *testing.T) {
	// points circling the origin counter-clockwise cross the branch cut of
	// the principal square root between index 1 and 2
	x := []complex128{
		cmplx.Rect(4, 2.8),
		cmplx.Rect(4, 3.1),
		cmplx.Rect(4, 3.3),
		cmplx.Rect(4, 3.6),
	}

	got := Sqrt(x)
	for i := 1; i < len(got); i++ {
		assert.Less(t, cmplx.Abs(got[i]-got[i-1]), 0.5, "jump between %d and %d", i-1, i)
	}
	// principal sqrt would flip sign here
	assert.Greater(t, cmplx.Abs(cmplx.Sqrt(x[2])-cmplx.Sqrt(x[1])), 3.0)

	for i, v := range x {
		assert.True(t, cscalar.EqualWithinAbsOrRel(v, got[i]*got[i], 1e-12, 1e-12), "index %d", i)
	}
}

func TestLogContinuousAcrossNegativeRealAxis(t *testing.T) {
	x := []complex128{
		cmplx.Rect(2, 3.0),
		cmplx.Rect(2, 3.2),
		cmplx.Rect(2, 3.4),
	}

	got := Log(x)
	assert.InDelta(t, math.Log(2), real(got[2]), 1e-12)
	assert.InDelta(t, 3.4, imag(got[2]), 1e-12)
	for i, v := range x {
		assert.True(t, cscalar.EqualWithinAbsOrRel(v, cmplx.Exp(got[i]), 1e-12, 1e-12), "index %d", i)
	}
}

func TestEmptyInputs(t *testing.T) {
	assert.Empty(t, Sqrt(nil))
	assert.Empty(t, Log([]complex128{}))
}
