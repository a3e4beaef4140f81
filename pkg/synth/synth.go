// Package synth generates the two-port parameters of an ideal uniform
// transmission line from its per-unit-length RLGC.
package synth

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/edp1096/nport/pkg/network"
)

var (
	ErrSweep  = errors.New("synth: invalid frequency sweep")
	ErrLength = errors.New("synth: length must be positive and finite")
)

// RLGC holds per-unit-length line parameters in SI units
// (ohm/m, H/m, S/m, F/m).
type RLGC struct {
	R, L, G, C float64
}

// Line returns the chain (ABCD) parameters of a line of the given length:
//
//	A = D = cosh(γl), B = Zc·sinh(γl), C = sinh(γl)/Zc
//
// with γ = sqrt((R+jωL)(G+jωC)) and Zc = sqrt((R+jωL)/(G+jωC)).
// z0 is only carried as the reference impedance of the result.
func Line(p RLGC, length float64, freqs []float64, z0 float64) (*network.Network, error) {
	if !(length > 0) || math.IsInf(length, 0) {
		return nil, fmt.Errorf("%w: %g", ErrLength, length)
	}

	data := make([]network.Matrix, len(freqs))
	for i, f := range freqs {
		omega := 2 * math.Pi * f
		series := complex(p.R, omega*p.L)
		shunt := complex(p.G, omega*p.C)

		gamma := cmplx.Sqrt(series * shunt)
		zc := cmplx.Sqrt(series / shunt)

		gl := gamma * complex(length, 0)
		ch, sh := cmplx.Cosh(gl), cmplx.Sinh(gl)

		m := network.NewMatrix(2)
		m[0][0] = ch
		m[0][1] = zc * sh
		m[1][0] = sh / zc
		m[1][1] = ch
		data[i] = m
	}

	return network.New(freqs, data, network.Chain, z0)
}

// Sweep returns points frequencies between fstart and fstop. kind is DEC or
// OCT for logarithmic spacing and LIN for linear spacing (case-insensitive).
// Logarithmic sweeps require fstart > 0.
func Sweep(kind string, fstart, fstop float64, points int) ([]float64, error) {
	if points < 1 {
		return nil, fmt.Errorf("%w: %d points", ErrSweep, points)
	}
	if fstart < 0 || fstop < fstart || math.IsNaN(fstart) || math.IsInf(fstop, 0) {
		return nil, fmt.Errorf("%w: %g to %g Hz", ErrSweep, fstart, fstop)
	}

	kind = strings.ToUpper(kind)
	switch kind {
	case "DEC", "OCT", "LIN":
	default:
		return nil, fmt.Errorf("%w: unknown sweep type %q", ErrSweep, kind)
	}

	if points == 1 {
		return []float64{fstart}, nil
	}
	if fstart == fstop {
		return nil, fmt.Errorf("%w: %d points between equal bounds", ErrSweep, points)
	}

	freqs := make([]float64, points)
	switch kind {
	case "DEC", "OCT":
		if fstart == 0 {
			return nil, fmt.Errorf("%w: logarithmic sweep from 0 Hz", ErrSweep)
		}
		// the base does not change the spacing
		floats.LogSpan(freqs, fstart, fstop)
	case "LIN":
		floats.Span(freqs, fstart, fstop)
	}
	return freqs, nil
}
