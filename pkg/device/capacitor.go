package device

import (
	"github.com/edp1096/nport/pkg/matrix"
)

type Capacitor struct {
	BaseDevice
}

func NewCapacitor(name string, nodeNames []string, value float64) *Capacitor {
	return &Capacitor{BaseDevice: *NewBaseDevice(name, value, nodeNames)}
}

func (c *Capacitor) GetType() string { return "C" }

// Stamp adds the susceptance jωC. At 0 Hz the capacitor is open.
func (c *Capacitor) Stamp(matrix matrix.DeviceMatrix, status *CircuitStatus) error {
	if err := twoNodes(&c.BaseDevice); err != nil {
		return err
	}

	stampAdmittance(matrix, c.Nodes[0], c.Nodes[1], complex(0, status.Omega()*c.Value))
	return nil
}
