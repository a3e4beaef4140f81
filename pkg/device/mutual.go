package device

import (
	"fmt"
	"math"

	"github.com/edp1096/nport/pkg/matrix"
)

// Mutual couples every pair of its inductors with M = k·sqrt(Li·Lj).
type Mutual struct {
	BaseDevice
	inductors   []*Inductor
	names       []string
	coefficient float64
}

func NewMutual(name string, indNames []string, k float64) *Mutual {
	return &Mutual{
		BaseDevice:  BaseDevice{Name: name, Value: k},
		names:       indNames,
		coefficient: k,
		inductors:   make([]*Inductor, len(indNames)),
	}
}

func (m *Mutual) GetType() string { return "K" }

func (m *Mutual) SetInductor(index int, ind *Inductor) error {
	if index < 0 || index >= len(m.inductors) {
		return fmt.Errorf("invalid inductor index: %d", index)
	}
	m.inductors[index] = ind
	return nil
}

func (m *Mutual) GetInductorNames() []string {
	return m.names
}

func (m *Mutual) GetCoefficient() float64 { return m.coefficient }

// Stamp adds -jωM between the branch equations of each inductor pair:
// V1 = jωL1·I1 + jωM·I2, V2 = jωM·I1 + jωL2·I2.
func (m *Mutual) Stamp(matrix matrix.DeviceMatrix, status *CircuitStatus) error {
	if len(m.inductors) < 2 {
		return fmt.Errorf("mutual coupling %s requires at least two inductors", m.Name)
	}
	for i, ind := range m.inductors {
		if ind == nil {
			return fmt.Errorf("mutual coupling %s: inductor %s not resolved", m.Name, m.names[i])
		}
	}

	omega := status.Omega()
	for i := range m.inductors {
		for j := i + 1; j < len(m.inductors); j++ {
			bi, bj := m.inductors[i].BranchIndex(), m.inductors[j].BranchIndex()
			mij := m.coefficient * math.Sqrt(m.inductors[i].GetValue()*m.inductors[j].GetValue())

			matrix.AddComplexElement(bi, bj, 0, -omega*mij)
			matrix.AddComplexElement(bj, bi, 0, -omega*mij)
		}
	}

	return nil
}
