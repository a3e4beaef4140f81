package touchstone

import (
	"fmt"
	"strings"

	"github.com/edp1096/nport/pkg/network"
)

// Format is the numeric encoding of one complex value as a pair of numbers.
type Format int

const (
	RealImag Format = iota // RI: real, imaginary
	MagAngle               // MA: magnitude, angle in degrees
	DBAngle                // DB: 20·log10 magnitude, angle in degrees
)

func (f Format) String() string {
	switch f {
	case RealImag:
		return "RI"
	case MagAngle:
		return "MA"
	case DBAngle:
		return "DB"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

func ParseFormat(s string) (Format, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "RI":
		return RealImag, nil
	case "MA":
		return MagAngle, nil
	case "DB":
		return DBAngle, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// codec converts between a complex value and its two-number encoding.
type codec struct {
	first  func(complex128) float64
	second func(complex128) float64
	decode func(a, b float64) complex128
}

var codecs = map[Format]codec{
	RealImag: {network.Real, network.Imag, network.FromRealImag},
	MagAngle: {network.Mag, network.Deg, network.FromMagDeg},
	DBAngle:  {network.DB20, network.Deg, network.FromDBDeg},
}

func (f Format) codec() (codec, error) {
	c, ok := codecs[f]
	if !ok {
		return codec{}, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
	return c, nil
}
