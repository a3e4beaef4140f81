package network

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/cmplx"

	"github.com/edp1096/nport/pkg/matrix"
)

// Convert returns the network expressed as another parameter type. Every
// conversion goes through S. Z and Y work for any port count; ABCD needs a
// two-port. H and G are not converted.
//
// A sample whose conversion hits a singular matrix, such as Z of an ideal
// thru, becomes a NaN matrix; the rest of the sweep is still converted.
func (n *Network) Convert(to ParamType) (*Network, error) {
	if n.typ == to {
		return New(n.freqs, n.data, n.typ, n.z0)
	}
	if err := n.checkConversion(n.typ); err != nil {
		return nil, err
	}
	if err := n.checkConversion(to); err != nil {
		return nil, err
	}

	out := make([]Matrix, len(n.data))
	for i, m := range n.data {
		s, err := toScattering(m, n.typ, n.z0)
		if err == nil {
			out[i], err = fromScattering(s, to, n.z0)
		}
		if errors.Is(err, matrix.ErrSingular) {
			slog.Debug("singular sample", "freq", n.freqs[i], "from", n.typ, "to", to)
			out[i] = nanMatrix(n.ports)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("converting sample %d (%g Hz): %w", i, n.freqs[i], err)
		}
	}

	return New(n.freqs, out, to, n.z0)
}

func (n *Network) checkConversion(p ParamType) error {
	switch p {
	case Scattering, Impedance, Admittance:
		return nil
	case Chain:
		if n.ports != 2 {
			return fmt.Errorf("%w: ABCD needs 2 ports, have %d", ErrUnsupportedConversion, n.ports)
		}
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrUnsupportedConversion, n.typ, p)
}

func toScattering(m Matrix, from ParamType, z0 float64) (Matrix, error) {
	id := Identity(m.Ports())
	z := complex(z0, 0)

	switch from {
	case Scattering:
		return m.Clone(), nil

	case Impedance:
		// S = (Z - z0·I)(Z + z0·I)^-1
		inv, err := invert(m.add(id.scale(z), 1))
		if err != nil {
			return nil, err
		}
		return m.add(id.scale(z), -1).mul(inv), nil

	case Admittance:
		// S = (I - z0·Y)(I + z0·Y)^-1
		zy := m.scale(z)
		inv, err := invert(id.add(zy, 1))
		if err != nil {
			return nil, err
		}
		return id.add(zy, -1).mul(inv), nil

	case Chain:
		return chainToScattering(m, z), nil
	}
	return nil, fmt.Errorf("%w: %s -> S", ErrUnsupportedConversion, from)
}

func fromScattering(s Matrix, to ParamType, z0 float64) (Matrix, error) {
	id := Identity(s.Ports())
	z := complex(z0, 0)

	switch to {
	case Scattering:
		return s, nil

	case Impedance:
		// Z = z0·(I + S)(I - S)^-1
		inv, err := invert(id.add(s, -1))
		if err != nil {
			return nil, err
		}
		return id.add(s, 1).mul(inv).scale(z), nil

	case Admittance:
		// Y = (1/z0)·(I - S)(I + S)^-1
		inv, err := invert(id.add(s, 1))
		if err != nil {
			return nil, err
		}
		return id.add(s, -1).mul(inv).scale(1 / z), nil

	case Chain:
		return scatteringToChain(s, z), nil
	}
	return nil, fmt.Errorf("%w: S -> %s", ErrUnsupportedConversion, to)
}

func invert(m Matrix) (Matrix, error) {
	inv, err := matrix.Invert(m)
	if err != nil {
		return nil, err
	}
	return Matrix(inv), nil
}

func scatteringToChain(s Matrix, z0 complex128) Matrix {
	s11, s12, s21, s22 := s[0][0], s[0][1], s[1][0], s[1][1]
	den := 2 * s21

	out := NewMatrix(2)
	out[0][0] = ((1+s11)*(1-s22) + s12*s21) / den
	out[0][1] = z0 * ((1+s11)*(1+s22) - s12*s21) / den
	out[1][0] = ((1-s11)*(1-s22) - s12*s21) / (z0 * den)
	out[1][1] = ((1-s11)*(1+s22) + s12*s21) / den
	return out
}

func chainToScattering(t Matrix, z0 complex128) Matrix {
	a, b, c, d := t[0][0], t[0][1], t[1][0], t[1][1]
	den := a + b/z0 + c*z0 + d

	out := NewMatrix(2)
	out[0][0] = (a + b/z0 - c*z0 - d) / den
	out[0][1] = 2 * (a*d - b*c) / den
	out[1][0] = 2 / den
	out[1][1] = (-a + b/z0 - c*z0 + d) / den
	return out
}

func nanMatrix(ports int) Matrix {
	m := NewMatrix(ports)
	nan := cmplx.NaN()
	for i := range m {
		for j := range m[i] {
			m[i][j] = nan
		}
	}
	return m
}

// IsFinite reports whether every entry of m is finite.
func (m Matrix) IsFinite() bool {
	for _, row := range m {
		for _, v := range row {
			if math.IsNaN(real(v)) || math.IsNaN(imag(v)) || math.IsInf(real(v), 0) || math.IsInf(imag(v), 0) {
				return false
			}
		}
	}
	return true
}
