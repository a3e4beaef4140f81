package device

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct{ i, j int }

// recorder is a DeviceMatrix that keeps the stamped values.
type recorder struct {
	elements map[entry]complex128
	rhs      map[int]complex128
}

func newRecorder() *recorder {
	return &recorder{elements: map[entry]complex128{}, rhs: map[int]complex128{}}
}

func (r *recorder) AddComplexElement(i, j int, real, imag float64) {
	r.elements[entry{i, j}] += complex(real, imag)
}

func (r *recorder) AddComplexRHS(i int, real, imag float64) {
	r.rhs[i] += complex(real, imag)
}

func TestResistorStamp(t *testing.T) {
	r := NewResistor("R1", []string{"a", "b"}, 50)
	r.SetNodes([]int{1, 2})

	m := newRecorder()
	require.NoError(t, r.Stamp(m, &CircuitStatus{Frequency: 1e9}))
	assert.Equal(t, map[entry]complex128{
		{1, 1}: 0.02, {1, 2}: -0.02,
		{2, 1}: -0.02, {2, 2}: 0.02,
	}, m.elements)
	assert.Equal(t, "R", r.GetType())
}

func TestGroundedStampSkipsGround(t *testing.T) {
	c := NewCapacitor("C1", []string{"a", "0"}, 1e-12)
	c.SetNodes([]int{1, 0})

	m := newRecorder()
	status := &CircuitStatus{Frequency: 1e9}
	require.NoError(t, c.Stamp(m, status))
	require.Len(t, m.elements, 1)
	assert.InDelta(t, 2*math.Pi*1e9*1e-12, imag(m.elements[entry{1, 1}]), 1e-15)
	assert.Zero(t, real(m.elements[entry{1, 1}]))
}

func TestCapacitorOpenAtDC(t *testing.T) {
	c := NewCapacitor("C1", []string{"a", "b"}, 1e-9)
	c.SetNodes([]int{1, 2})

	m := newRecorder()
	require.NoError(t, c.Stamp(m, &CircuitStatus{}))
	for _, v := range m.elements {
		assert.Zero(t, v)
	}
}

func TestInductorStamp(t *testing.T) {
	l := NewInductor("L1", []string{"a", "b"}, 1e-9)
	l.SetNodes([]int{1, 2})

	m := newRecorder()
	assert.Error(t, l.Stamp(m, &CircuitStatus{Frequency: 1e9}), "branch index not assigned")

	l.SetBranchIndex(3)
	require.NoError(t, l.Stamp(m, &CircuitStatus{Frequency: 1e9}))
	assert.Equal(t, complex128(1), m.elements[entry{1, 3}])
	assert.Equal(t, complex128(-1), m.elements[entry{2, 3}])
	assert.Equal(t, complex128(1), m.elements[entry{3, 1}])
	assert.Equal(t, complex128(-1), m.elements[entry{3, 2}])
	assert.InDelta(t, -2*math.Pi, imag(m.elements[entry{3, 3}]), 1e-12)
}

func TestMutualStamp(t *testing.T) {
	l1 := NewInductor("L1", []string{"a", "0"}, 4e-9)
	l2 := NewInductor("L2", []string{"b", "0"}, 1e-9)
	l1.SetBranchIndex(3)
	l2.SetBranchIndex(4)

	k := NewMutual("K1", []string{"L1", "L2"}, 0.5)
	assert.Equal(t, []string{"L1", "L2"}, k.GetInductorNames())

	m := newRecorder()
	require.Error(t, k.Stamp(m, &CircuitStatus{Frequency: 1e9}))

	require.NoError(t, k.SetInductor(0, l1))
	require.NoError(t, k.SetInductor(1, l2))
	assert.Error(t, k.SetInductor(2, l2))

	require.NoError(t, k.Stamp(m, &CircuitStatus{Frequency: 1e9}))
	// M = 0.5 * sqrt(4n * 1n) = 1nH
	want := -2 * math.Pi * 1e9 * 1e-9
	assert.InDelta(t, want, imag(m.elements[entry{3, 4}]), 1e-12)
	assert.InDelta(t, want, imag(m.elements[entry{4, 3}]), 1e-12)
	assert.Len(t, m.elements, 2)
}

func TestPortTerminationAndExcite(t *testing.T) {
	p := NewPort("P1", []string{"in", "0"})
	p.SetNodes([]int{2, 0})

	m := newRecorder()
	require.NoError(t, p.Stamp(m, &CircuitStatus{Z0: 50}))
	assert.Equal(t, map[entry]complex128{{2, 2}: 0.02}, m.elements)

	p.Excite(m, 50)
	assert.Equal(t, map[int]complex128{2: 0.04}, m.rhs)

	solution := map[int]complex128{2: 3 + 1i}
	assert.Equal(t, 3+1i, p.Voltage(func(i int) complex128 { return solution[i] }))

	floating := NewPort("P2", []string{"a", "b"})
	floating.SetNodes([]int{1, 2})
	m = newRecorder()
	floating.Excite(m, 25)
	assert.Equal(t, map[int]complex128{1: 0.08, 2: -0.08}, m.rhs)
	assert.Equal(t, 2i, floating.Voltage(func(i int) complex128 { return map[int]complex128{1: 5i, 2: 3i}[i] }))
}

func TestWrongNodeCount(t *testing.T) {
	r := NewResistor("R1", []string{"a"}, 1)
	assert.Error(t, r.Stamp(newRecorder(), &CircuitStatus{}))
}
