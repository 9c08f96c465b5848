// Package linalg implements dense matrices over a curve.Suite's scalar
// field (spec.md §4.B): the encoding/decoding matrices fec uses, and the
// Vandermonde matrices komodo derives them from.
package linalg

import (
	"fmt"
	"io"

	"github.com/dragoon-rs/komodo/curve"
	"github.com/dragoon-rs/komodo/kerr"
)

// Matrix is a row-major dense matrix of field elements.
type Matrix struct {
	suite    curve.Suite
	h, w     int
	elements []curve.Scalar
}

// Height returns the number of rows.
func (m *Matrix) Height() int { return m.h }

// Width returns the number of columns.
func (m *Matrix) Width() int { return m.w }

// Suite returns the scalar field suite the matrix's elements belong to.
func (m *Matrix) Suite() curve.Suite { return m.suite }

// FromVecVec builds a Matrix from a slice of rows, validating that every
// row has the same length.
func FromVecVec(suite curve.Suite, rows [][]curve.Scalar) (*Matrix, error) {
	if len(rows) == 0 {
		return &Matrix{suite: suite}, nil
	}
	w := len(rows[0])
	elements := make([]curve.Scalar, 0, len(rows)*w)
	for i, row := range rows {
		if len(row) != w {
			return nil, &kerr.InvalidMatrixElements{Expected: w, Found: len(row), Row: i}
		}
		elements = append(elements, row...)
	}
	return &Matrix{suite: suite, h: len(rows), w: w, elements: elements}, nil
}

// Identity returns the n x n identity matrix.
func Identity(suite curve.Suite, n int) *Matrix {
	elements := make([]curve.Scalar, n*n)
	zero, one := suite.Zero(), suite.One()
	for i := range elements {
		elements[i] = zero
	}
	for i := 0; i < n; i++ {
		elements[i*n+i] = one
	}
	return &Matrix{suite: suite, h: n, w: n, elements: elements}
}

// FromDiagonal returns the square matrix with v on the diagonal and zero
// elsewhere.
func FromDiagonal(suite curve.Suite, v []curve.Scalar) *Matrix {
	n := len(v)
	elements := make([]curve.Scalar, n*n)
	zero := suite.Zero()
	for i := range elements {
		elements[i] = zero
	}
	for i, d := range v {
		elements[i*n+i] = d
	}
	return &Matrix{suite: suite, h: n, w: n, elements: elements}
}

// VandermondeUnchecked builds a Vandermonde-like matrix from points without
// validating uniqueness. The layout is transposed relative to the standard
// definition (spec.md §4.B): column j is (1, points[j], points[j]^2, ...,
// points[j]^(h-1)), so row i is (points[j]^i)_j. This places evaluation
// points along columns so each shard corresponds to an evaluation at one
// point.
func VandermondeUnchecked(suite curve.Suite, points []curve.Scalar, h int) *Matrix {
	w := len(points)
	elements := make([]curve.Scalar, h*w)
	columns := make([][]curve.Scalar, w)
	for j, p := range points {
		pw := make([]curve.Scalar, h)
		cur := suite.One()
		for i := 0; i < h; i++ {
			pw[i] = cur
			cur = cur.Mul(p)
		}
		columns[j] = pw
	}
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			elements[i*w+j] = columns[j][i]
		}
	}
	return &Matrix{suite: suite, h: h, w: w, elements: elements}
}

// Vandermonde is VandermondeUnchecked after validating that points are
// pairwise distinct.
func Vandermonde(suite curve.Suite, points []curve.Scalar, h int) (*Matrix, error) {
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			if points[i].Equal(points[j]) {
				return nil, &kerr.InvalidVandermonde{
					FirstIndex: i, SecondIndex: j, Value: points[i].String(),
				}
			}
		}
	}
	return VandermondeUnchecked(suite, points, h), nil
}

// Random returns an h x w matrix of uniformly sampled elements.
func Random(suite curve.Suite, h, w int, rng io.Reader) (*Matrix, error) {
	elements := make([]curve.Scalar, h*w)
	for i := range elements {
		e, err := suite.RandomScalar(rng)
		if err != nil {
			return nil, fmt.Errorf("linalg: sampling random matrix: %w", err)
		}
		elements[i] = e
	}
	return &Matrix{suite: suite, h: h, w: w, elements: elements}, nil
}

// Get returns the element at (i, j).
func (m *Matrix) Get(i, j int) curve.Scalar { return m.elements[i*m.w+j] }

// GetCol returns a copy of column j.
func (m *Matrix) GetCol(j int) []curve.Scalar {
	col := make([]curve.Scalar, m.h)
	for i := 0; i < m.h; i++ {
		col[i] = m.elements[i*m.w+j]
	}
	return col
}

// GetRow returns a copy of row i.
func (m *Matrix) GetRow(i int) []curve.Scalar {
	row := make([]curve.Scalar, m.w)
	copy(row, m.elements[i*m.w:(i+1)*m.w])
	return row
}

// Transpose returns the transpose of m.
func (m *Matrix) Transpose() *Matrix {
	elements := make([]curve.Scalar, len(m.elements))
	for i := 0; i < m.h; i++ {
		for j := 0; j < m.w; j++ {
			elements[j*m.h+i] = m.elements[i*m.w+j]
		}
	}
	return &Matrix{suite: m.suite, h: m.w, w: m.h, elements: elements}
}

// Truncate removes rows from the bottom and columns from the right,
// returning a new Matrix of shape (h-rows) x (w-cols).
func (m *Matrix) Truncate(rows, cols int) (*Matrix, error) {
	newH, newW := m.h-rows, m.w-cols
	if newH < 0 || newW < 0 {
		return nil, fmt.Errorf("linalg: cannot truncate %d rows / %d cols from a %dx%d matrix",
			rows, cols, m.h, m.w)
	}
	elements := make([]curve.Scalar, 0, newH*newW)
	for i := 0; i < newH; i++ {
		elements = append(elements, m.elements[i*m.w:i*m.w+newW]...)
	}
	return &Matrix{suite: m.suite, h: newH, w: newW, elements: elements}, nil
}

// Mul computes m * other.
func (m *Matrix) Mul(other *Matrix) (*Matrix, error) {
	if m.w != other.h {
		return nil, &kerr.IncompatibleMatrixShapes{Left: [2]int{m.h, m.w}, Right: [2]int{other.h, other.w}}
	}
	elements := make([]curve.Scalar, m.h*other.w)
	for i := 0; i < m.h; i++ {
		for j := 0; j < other.w; j++ {
			acc := m.Get(i, 0).Mul(other.Get(0, j))
			for k := 1; k < m.w; k++ {
				acc = acc.Add(m.Get(i, k).Mul(other.Get(k, j)))
			}
			elements[i*other.w+j] = acc
		}
	}
	return &Matrix{suite: m.suite, h: m.h, w: other.w, elements: elements}, nil
}

// Invert computes m^-1 via Gauss-Jordan elimination with row pivoting,
// failing with NonSquareMatrix or NonInvertibleMatrix at the first zero
// pivot found after normalization (spec.md §4.B).
func (m *Matrix) Invert() (*Matrix, error) {
	if m.h != m.w {
		return nil, &kerr.NonSquareMatrix{Height: m.h, Width: m.w}
	}
	n := m.h
	suite := m.suite

	// augmented[i] = [row i of m | row i of identity]
	aug := make([][]curve.Scalar, n)
	for i := 0; i < n; i++ {
		row := make([]curve.Scalar, 2*n)
		copy(row, m.GetRow(i))
		for j := 0; j < n; j++ {
			if i == j {
				row[n+j] = suite.One()
			} else {
				row[n+j] = suite.Zero()
			}
		}
		aug[i] = row
	}

	for col := 0; col < n; col++ {
		pivotRow := -1
		for r := col; r < n; r++ {
			if !aug[r][col].IsZero() {
				pivotRow = r
				break
			}
		}
		if pivotRow == -1 {
			return nil, &kerr.NonInvertibleMatrix{Row: col}
		}
		aug[col], aug[pivotRow] = aug[pivotRow], aug[col]

		inv, err := aug[col][col].Inverse()
		if err != nil {
			return nil, &kerr.NonInvertibleMatrix{Row: col}
		}
		for j := 0; j < 2*n; j++ {
			aug[col][j] = aug[col][j].Mul(inv)
		}

		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := aug[r][col]
			if factor.IsZero() {
				continue
			}
			for j := 0; j < 2*n; j++ {
				aug[r][j] = aug[r][j].Sub(factor.Mul(aug[col][j]))
			}
		}
	}

	elements := make([]curve.Scalar, n*n)
	for i := 0; i < n; i++ {
		copy(elements[i*n:(i+1)*n], aug[i][n:2*n])
	}
	return &Matrix{suite: suite, h: n, w: n, elements: elements}, nil
}

// Rank computes the rank of m via Gaussian elimination, counting non-zero
// rows after reduction.
func (m *Matrix) Rank() int {
	rows := make([][]curve.Scalar, m.h)
	for i := 0; i < m.h; i++ {
		rows[i] = m.GetRow(i)
	}

	rank := 0
	for col := 0; col < m.w && rank < m.h; col++ {
		pivotRow := -1
		for r := rank; r < m.h; r++ {
			if !rows[r][col].IsZero() {
				pivotRow = r
				break
			}
		}
		if pivotRow == -1 {
			continue
		}
		rows[rank], rows[pivotRow] = rows[pivotRow], rows[rank]

		inv, err := rows[rank][col].Inverse()
		if err != nil {
			continue
		}
		for j := col; j < m.w; j++ {
			rows[rank][j] = rows[rank][j].Mul(inv)
		}
		for r := 0; r < m.h; r++ {
			if r == rank {
				continue
			}
			factor := rows[r][col]
			if factor.IsZero() {
				continue
			}
			for j := col; j < m.w; j++ {
				rows[r][j] = rows[r][j].Sub(factor.Mul(rows[rank][j]))
			}
		}
		rank++
	}
	return rank
}
