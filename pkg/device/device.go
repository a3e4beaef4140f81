package device

import (
	"fmt"
	"math"

	"github.com/edp1096/nport/pkg/matrix"
)

// Device is a linear element stamped into the complex nodal matrix.
type Device interface {
	GetName() string
	GetType() string
	GetNodeNames() []string
	GetNodes() []int
	Stamp(matrix matrix.DeviceMatrix, status *CircuitStatus) error
	GetValue() float64
	SetNodes(nodes []int)
}

// BranchDevice needs an extra unknown (its current) in the matrix.
type BranchDevice interface {
	Device
	BranchIndex() int
	SetBranchIndex(idx int)
}

type BaseDevice struct {
	Name      string
	Nodes     []int
	Value     float64
	NodeNames []string
}

// CircuitStatus is the state handed to every stamp.
type CircuitStatus struct {
	Frequency float64 // Hz
	Gmin      float64
	Z0        float64 // port reference impedance
}

// Omega is the angular frequency of the status.
func (s *CircuitStatus) Omega() float64 {
	return 2 * math.Pi * s.Frequency
}

func (d *BaseDevice) GetName() string {
	return d.Name
}

func (d *BaseDevice) GetNodes() []int {
	return d.Nodes
}

func (d *BaseDevice) GetNodeNames() []string {
	return d.NodeNames
}

func (d *BaseDevice) GetValue() float64 {
	return d.Value
}

func (d *BaseDevice) SetNodes(nodes []int) {
	d.Nodes = nodes
}

func NewBaseDevice(name string, value float64, nodeNames []string) *BaseDevice {
	return &BaseDevice{
		Name:      name,
		Value:     value,
		NodeNames: nodeNames,
		Nodes:     make([]int, len(nodeNames)),
	}
}

// stampAdmittance adds y between n1 and n2. Ground (0) rows and columns are
// skipped.
func stampAdmittance(matrix matrix.DeviceMatrix, n1, n2 int, y complex128) {
	yr, yi := real(y), imag(y)
	if n1 != 0 {
		matrix.AddComplexElement(n1, n1, yr, yi)
		if n2 != 0 {
			matrix.AddComplexElement(n1, n2, -yr, -yi)
		}
	}
	if n2 != 0 {
		if n1 != 0 {
			matrix.AddComplexElement(n2, n1, -yr, -yi)
		}
		matrix.AddComplexElement(n2, n2, yr, yi)
	}
}

func twoNodes(d *BaseDevice) error {
	if len(d.Nodes) != 2 {
		return fmt.Errorf("%s: requires exactly 2 nodes", d.Name)
	}
	return nil
}
