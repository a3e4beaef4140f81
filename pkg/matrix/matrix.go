package matrix

import (
	"errors"
	"fmt"

	"github.com/edp1096/sparse"
)

var (
	ErrOutOfRange = errors.New("matrix: index out of range")
	ErrNonSquare  = errors.New("matrix: matrix is not square")
	ErrSingular   = errors.New("matrix: singular matrix")
)

// ComplexMatrix is a square complex system A·x = b solved by sparse LU.
// Real and imaginary right-hand sides are kept in separate vectors.
type ComplexMatrix struct {
	Size         int
	matrix       *sparse.Matrix
	rhs          []float64
	rhsImag      []float64
	solution     []float64
	solutionImag []float64
	config       *sparse.Configuration
}

func NewMatrix(size int) (*ComplexMatrix, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size %d", ErrOutOfRange, size)
	}

	config := &sparse.Configuration{
		Real:                    true,
		Complex:                 true,
		SeparatedComplexVectors: true,
		Expandable:              true,
		Translate:               true,
		ModifiedNodal:           true,
		TiesMultiplier:          5,
		PrinterWidth:            140,
		Annotate:                0,
	}

	mat, err := sparse.Create(int64(size), config)
	if err != nil {
		return nil, fmt.Errorf("creating sparse matrix: %w", err)
	}

	return &ComplexMatrix{
		Size:         size,
		matrix:       mat,
		rhs:          make([]float64, size+1), // 1-based indexing
		rhsImag:      make([]float64, size+1),
		solution:     make([]float64, size+1),
		solutionImag: make([]float64, size+1),
		config:       config,
	}, nil
}

// SetupElements allocates every element so the structure is dense and stays
// fixed across Clear/restamp cycles.
func (m *ComplexMatrix) SetupElements() {
	for i := 1; i <= m.Size; i++ {
		for j := 1; j <= m.Size; j++ {
			m.matrix.GetElement(int64(i), int64(j))
		}
	}
}

func (m *ComplexMatrix) inRange(i int) bool {
	return i > 0 && i <= m.Size
}

func (m *ComplexMatrix) AddComplexElement(i, j int, real, imag float64) {
	if !m.inRange(i) || !m.inRange(j) {
		return
	}

	element := m.matrix.GetElement(int64(i), int64(j))
	element.Real += real
	element.Imag += imag
}

func (m *ComplexMatrix) SetComplexElement(i, j int, value complex128) {
	if !m.inRange(i) || !m.inRange(j) {
		return
	}

	element := m.matrix.GetElement(int64(i), int64(j))
	element.Real = real(value)
	element.Imag = imag(value)
}

func (m *ComplexMatrix) AddComplexRHS(i int, real, imag float64) {
	if !m.inRange(i) {
		return
	}
	m.rhs[i] += real
	m.rhsImag[i] += imag
}

func (m *ComplexMatrix) Clear() {
	m.matrix.Clear()
	m.ClearRHS()
}

func (m *ComplexMatrix) ClearRHS() {
	for i := range m.rhs {
		m.rhs[i] = 0
		m.rhsImag[i] = 0
	}
}

// Factor performs the LU decomposition. Solve may then be called any number
// of times with different right-hand sides.
func (m *ComplexMatrix) Factor() error {
	if err := m.matrix.Factor(); err != nil {
		return fmt.Errorf("%w: factorization failed: %v", ErrSingular, err)
	}
	return nil
}

func (m *ComplexMatrix) Solve() error {
	var err error

	m.solution, m.solutionImag, err = m.matrix.SolveComplex(m.rhs, m.rhsImag)
	if err != nil {
		return fmt.Errorf("%w: solve failed: %v", ErrSingular, err)
	}
	return nil
}

func (m *ComplexMatrix) GetComplexSolution(i int) complex128 {
	if !m.inRange(i) || i >= len(m.solution) || i >= len(m.solutionImag) {
		return 0
	}
	return complex(m.solution[i], m.solutionImag[i])
}

func (m *ComplexMatrix) Destroy() {
	if m.matrix != nil {
		m.matrix.Destroy()
	}
}

// Invert returns the inverse of a square complex matrix (0-based rows).
// The matrix is factored once and solved against each unit column.
func Invert(a [][]complex128) ([][]complex128, error) {
	n := len(a)
	for _, row := range a {
		if len(row) != n {
			return nil, ErrNonSquare
		}
	}
	if n == 0 {
		return [][]complex128{}, nil
	}

	m, err := NewMatrix(n)
	if err != nil {
		return nil, err
	}
	defer m.Destroy()

	m.SetupElements()
	for i := range a {
		for j := range a[i] {
			m.SetComplexElement(i+1, j+1, a[i][j])
		}
	}
	if err := m.Factor(); err != nil {
		return nil, err
	}

	inv := make([][]complex128, n)
	for i := range inv {
		inv[i] = make([]complex128, n)
	}
	for j := 1; j <= n; j++ {
		m.ClearRHS()
		m.AddComplexRHS(j, 1, 0)
		if err := m.Solve(); err != nil {
			return nil, err
		}
		for i := 1; i <= n; i++ {
			inv[i-1][j-1] = m.GetComplexSolution(i)
		}
	}

	return inv, nil
}
