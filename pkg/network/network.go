// Package network holds frequency-swept n-port parameter data and converts
// between the S, Z, Y and (for two-ports) ABCD representations.
//
// All ports share one real reference impedance Z0.
package network

import (
	"fmt"
	"math"
	"slices"
)

type Network struct {
	freqs []float64
	data  []Matrix
	typ   ParamType
	z0    float64
	ports int
}

// New validates and copies its inputs. Every sample must be a square matrix
// with the same port count, and freqs must be non-negative and strictly
// increasing with one sample per frequency.
func New(freqs []float64, data []Matrix, typ ParamType, z0 float64) (*Network, error) {
	if len(freqs) != len(data) {
		return nil, fmt.Errorf("%w: %d frequencies, %d samples", ErrShape, len(freqs), len(data))
	}
	for i, f := range freqs {
		if math.IsNaN(f) || f < 0 || (i > 0 && f <= freqs[i-1]) {
			return nil, fmt.Errorf("%w: index %d (%g Hz)", ErrFrequencyOrder, i, f)
		}
	}

	ports := 0
	if len(data) > 0 {
		ports = data[0].Ports()
	}
	copied := make([]Matrix, len(data))
	for i, m := range data {
		if !m.square() || m.Ports() != ports {
			return nil, fmt.Errorf("%w: sample %d is not %dx%d", ErrShape, i, ports, ports)
		}
		copied[i] = m.Clone()
	}

	return &Network{
		freqs: slices.Clone(freqs),
		data:  copied,
		typ:   typ,
		z0:    z0,
		ports: ports,
	}, nil
}

// Empty returns a network with a port count but no sweep points.
func Empty(ports int, typ ParamType, z0 float64) *Network {
	return &Network{typ: typ, z0: z0, ports: ports}
}

func (n *Network) Ports() int { return n.ports }
func (n *Network) Len() int { return len(n.freqs) }
func (n *Network) Type() ParamType { return n.typ }
func (n *Network) Z0() float64 { return n.z0 }
func (n *Network) Frequencies() []float64 { return slices.Clone(n.freqs) }

// Sample returns a copy of the matrix at sweep index i.
func (n *Network) Sample(i int) Matrix {
	return n.data[i].Clone()
}

// Parameter returns the (i, j) entry across the sweep, 1-based as in S21.
func (n *Network) Parameter(i, j int) ([]complex128, error) {
	if i < 1 || i > n.ports || j < 1 || j > n.ports {
		return nil, fmt.Errorf("%w: (%d,%d) for %d ports", ErrPortIndex, i, j, n.ports)
	}

	out := make([]complex128, len(n.data))
	for k, m := range n.data {
		out[k] = m[i-1][j-1]
	}
	return out, nil
}
