// Package branch provides complex square root and logarithm over ordered
// sequences. The phase of every element is unwrapped against its predecessor
// before the principal-branch formulas are applied, so a quantity that varies
// continuously across a frequency sweep does not jump between branches.
//
// The functions need the whole sequence: the result for element i depends on
// elements 0..i. Feeding an out-of-order or discontinuous sequence produces a
// wrong unwrap; this is inherent to the method.
package branch

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/cmplxs"
)

// UnwrapPhase removes 2π jumps from a sequence of angles in radians. Each
// output angle is the representative of the input angle (mod 2π) nearest to
// the previous output angle. The input is not modified.
func UnwrapPhase(phase []float64) []float64 {
	out := make([]float64, len(phase))
	if len(phase) == 0 {
		return out
	}

	out[0] = phase[0]
	correction := 0.0
	for i := 1; i < len(phase); i++ {
		d := phase[i] - phase[i-1]

		// fold d into (-π, π]
		dd := math.Mod(d+math.Pi, 2*math.Pi)
		if dd < 0 {
			dd += 2 * math.Pi
		}
		dd -= math.Pi
		if dd == -math.Pi && d > 0 {
			dd = math.Pi
		}

		if math.Abs(d) >= math.Pi {
			correction += dd - d
		}
		out[i] = phase[i] + correction
	}

	return out
}

// Sqrt returns sqrt(|x|) * exp(i*θ/2) where θ is the unwrapped phase of x.
func Sqrt(x []complex128) []complex128 {
	mag, ang := polar(x)

	out := make([]complex128, len(x))
	for i := range x {
		out[i] = complex(math.Sqrt(mag[i]), 0) * cmplx.Exp(complex(0, ang[i]/2))
	}
	return out
}

// Log returns ln|x| + i*θ where θ is the unwrapped phase of x.
func Log(x []complex128) []complex128 {
	mag, ang := polar(x)

	out := make([]complex128, len(x))
	for i := range x {
		out[i] = complex(math.Log(mag[i]), ang[i])
	}
	return out
}

func polar(x []complex128) (mag, ang []float64) {
	mag = make([]float64, len(x))
	cmplxs.Abs(mag, x)

	raw := make([]float64, len(x))
	for i, v := range x {
		raw[i] = cmplx.Phase(v)
	}
	return mag, UnwrapPhase(raw)
}
