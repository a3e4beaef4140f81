package device

import (
	"github.com/edp1096/nport/pkg/matrix"
)

// Port is a measurement port between a positive and a negative node,
// terminated in the reference impedance of the circuit status.
type Port struct {
	BaseDevice
}

func NewPort(name string, nodeNames []string) *Port {
	return &Port{BaseDevice: *NewBaseDevice(name, 0, nodeNames)}
}

func (p *Port) GetType() string { return "P" }

// Stamp adds the 1/Z0 termination.
func (p *Port) Stamp(matrix matrix.DeviceMatrix, status *CircuitStatus) error {
	if err := twoNodes(&p.BaseDevice); err != nil {
		return err
	}

	stampAdmittance(matrix, p.Nodes[0], p.Nodes[1], complex(1/status.Z0, 0))
	return nil
}

// Excite drives the port with the Norton equivalent of a 2 V source behind
// Z0. The incident wave is then 1/sqrt(Z0) and Sij = Vi - δij.
func (p *Port) Excite(matrix matrix.DeviceMatrix, z0 float64) {
	i := 2 / z0
	if n := p.Nodes[0]; n != 0 {
		matrix.AddComplexRHS(n, i, 0)
	}
	if n := p.Nodes[1]; n != 0 {
		matrix.AddComplexRHS(n, -i, 0)
	}
}

// Voltage returns V(+) - V(-) from a solution lookup.
func (p *Port) Voltage(solution func(i int) complex128) complex128 {
	var v complex128
	if n := p.Nodes[0]; n != 0 {
		v += solution(n)
	}
	if n := p.Nodes[1]; n != 0 {
		v -= solution(n)
	}
	return v
}
