package network

import "fmt"

// Order selects how a Matrix is linearized.
type Order int

const (
	RowMajor Order = iota
	ColumnMajor
)

// Matrix is a square complex parameter matrix at one frequency, indexed
// [row][column] from 0.
type Matrix [][]complex128

func NewMatrix(ports int) Matrix {
	m := make(Matrix, ports)
	for i := range m {
		m[i] = make([]complex128, ports)
	}
	return m
}

// Identity returns the ports×ports identity matrix.
func Identity(ports int) Matrix {
	m := NewMatrix(ports)
	for i := range m {
		m[i][i] = 1
	}
	return m
}

func (m Matrix) Ports() int { return len(m) }

func (m Matrix) square() bool {
	for _, row := range m {
		if len(row) != len(m) {
			return false
		}
	}
	return true
}

func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = append([]complex128(nil), row...)
	}
	return out
}

// Flatten linearizes the matrix. ColumnMajor walks rows fastest.
func (m Matrix) Flatten(order Order) []complex128 {
	n := len(m)
	out := make([]complex128, 0, n*n)
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			if order == ColumnMajor {
				out = append(out, m[b][a])
			} else {
				out = append(out, m[a][b])
			}
		}
	}
	return out
}

// Unflatten is the inverse of Flatten for a ports×ports matrix.
func Unflatten(values []complex128, ports int, order Order) (Matrix, error) {
	if len(values) != ports*ports {
		return nil, fmt.Errorf("%w: %d values for %d ports", ErrShape, len(values), ports)
	}

	m := NewMatrix(ports)
	for k, v := range values {
		row, col := Position(k, ports, order)
		m[row][col] = v
	}
	return m, nil
}

// Position maps the k-th flattened entry to its (row, column).
func Position(k, ports int, order Order) (row, col int) {
	if order == ColumnMajor {
		return k % ports, k / ports
	}
	return k / ports, k % ports
}

func (m Matrix) add(o Matrix, sign complex128) Matrix {
	out := NewMatrix(len(m))
	for i := range m {
		for j := range m[i] {
			out[i][j] = m[i][j] + sign*o[i][j]
		}
	}
	return out
}

func (m Matrix) scale(c complex128) Matrix {
	out := NewMatrix(len(m))
	for i := range m {
		for j := range m[i] {
			out[i][j] = c * m[i][j]
		}
	}
	return out
}

func (m Matrix) mul(o Matrix) Matrix {
	n := len(m)
	out := NewMatrix(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var sum complex128
			for k := 0; k < n; k++ {
				sum += m[i][k] * o[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}
