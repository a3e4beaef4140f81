package device

import (
	"fmt"

	"github.com/edp1096/nport/pkg/matrix"
)

// Inductor is stamped with its own branch current so that it stays a short
// circuit at 0 Hz and can be coupled to other inductors.
type Inductor struct {
	BaseDevice
	branchIdx int // Branch index
}

var _ BranchDevice = (*Inductor)(nil)

func NewInductor(name string, nodeNames []string, value float64) *Inductor {
	return &Inductor{BaseDevice: *NewBaseDevice(name, value, nodeNames)}
}

func (l *Inductor) GetType() string { return "L" }

// Stamp adds
//
//	row n1: +I, row n2: -I
//	branch: V(n1) - V(n2) - jωL·I = 0
func (l *Inductor) Stamp(matrix matrix.DeviceMatrix, status *CircuitStatus) error {
	if err := twoNodes(&l.BaseDevice); err != nil {
		return err
	}
	if l.branchIdx <= 0 {
		return fmt.Errorf("inductor %s: branch index not assigned", l.Name)
	}

	n1, n2, bIdx := l.Nodes[0], l.Nodes[1], l.branchIdx
	if n1 != 0 {
		matrix.AddComplexElement(n1, bIdx, 1, 0)
		matrix.AddComplexElement(bIdx, n1, 1, 0)
	}
	if n2 != 0 {
		matrix.AddComplexElement(n2, bIdx, -1, 0)
		matrix.AddComplexElement(bIdx, n2, -1, 0)
	}
	matrix.AddComplexElement(bIdx, bIdx, 0, -status.Omega()*l.Value)

	return nil
}

// BranchIndex getter
func (l *Inductor) BranchIndex() int {
	return l.branchIdx
}

// BranchIndex setter
func (l *Inductor) SetBranchIndex(idx int) {
	l.branchIdx = idx
}
