package device

import (
	"github.com/edp1096/nport/pkg/matrix"
)

type Resistor struct {
	BaseDevice
}

func NewResistor(name string, nodeNames []string, value float64) *Resistor {
	return &Resistor{BaseDevice: *NewBaseDevice(name, value, nodeNames)}
}

func (r *Resistor) GetType() string { return "R" }

// Stamp adds the conductance G = 1/R.
func (r *Resistor) Stamp(matrix matrix.DeviceMatrix, status *CircuitStatus) error {
	if err := twoNodes(&r.BaseDevice); err != nil {
		return err
	}

	stampAdmittance(matrix, r.Nodes[0], r.Nodes[1], complex(1.0/r.Value, 0))
	return nil
}
