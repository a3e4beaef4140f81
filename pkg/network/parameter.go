package network

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// ParamType identifies the representation held by a Network.
type ParamType int

const (
	Scattering ParamType = iota
	Impedance
	Admittance
	Hybrid
	InverseHybrid
	Chain // ABCD, also called transmission parameters
)

func (p ParamType) String() string {
	switch p {
	case Scattering:
		return "S"
	case Impedance:
		return "Z"
	case Admittance:
		return "Y"
	case Hybrid:
		return "H"
	case InverseHybrid:
		return "G"
	case Chain:
		return "ABCD"
	}
	return fmt.Sprintf("ParamType(%d)", int(p))
}

// ParseParamType accepts the Touchstone tags S, Y, Z, H, G and ABCD
// (case-insensitive).
func ParseParamType(s string) (ParamType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "S":
		return Scattering, nil
	case "Z":
		return Impedance, nil
	case "Y":
		return Admittance, nil
	case "H":
		return Hybrid, nil
	case "G":
		return InverseHybrid, nil
	case "ABCD", "T":
		return Chain, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownParameter, s)
}

// Scalar views of a complex parameter value.

func Real(z complex128) float64 { return real(z) }
func Imag(z complex128) float64 { return imag(z) }
func Mag(z complex128) float64 { return cmplx.Abs(z) }

// Deg is the phase angle in degrees, in (-180, 180].
func Deg(z complex128) float64 { return cmplx.Phase(z) * 180 / math.Pi }

// DB20 is 20*log10(|z|).
func DB20(z complex128) float64 { return 20 * math.Log10(cmplx.Abs(z)) }

func FromRealImag(re, im float64) complex128 { return complex(re, im) }

func FromMagDeg(mag, deg float64) complex128 {
	return cmplx.Rect(mag, deg*math.Pi/180)
}

func FromDBDeg(db, deg float64) complex128 {
	return FromMagDeg(math.Pow(10, db/20), deg)
}
