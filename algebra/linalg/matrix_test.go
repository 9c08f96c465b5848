package linalg

import (
	"crypto/rand"
	"testing"

	"github.com/dragoon-rs/komodo/curve"
)

func scalars(suite curve.Suite, vs ...int64) []curve.Scalar {
	out := make([]curve.Scalar, len(vs))
	for i, v := range vs {
		e := suite.Zero()
		for k := int64(0); k < v; k++ {
			e = e.Add(suite.One())
		}
		out[i] = e
	}
	return out
}

func TestIdentityAndMul(t *testing.T) {
	suite := curve.BN254()
	id := Identity(suite, 3)
	rows, err := FromVecVec(suite, [][]curve.Scalar{
		scalars(suite, 1, 2, 3),
		scalars(suite, 4, 5, 6),
		scalars(suite, 7, 8, 9),
	})
	if err != nil {
		t.Fatalf("from vec vec: %v", err)
	}
	prod, err := rows.Mul(id)
	if err != nil {
		t.Fatalf("mul: %v", err)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !prod.Get(i, j).Equal(rows.Get(i, j)) {
				t.Fatalf("A*I != A at (%d,%d)", i, j)
			}
		}
	}
}

func TestInvertAndRank(t *testing.T) {
	suite := curve.BN254()
	points := scalars(suite, 1, 2, 3)
	v, err := Vandermonde(suite, points, 3)
	if err != nil {
		t.Fatalf("vandermonde: %v", err)
	}
	inv, err := v.Invert()
	if err != nil {
		t.Fatalf("invert: %v", err)
	}
	prod, err := v.Mul(inv)
	if err != nil {
		t.Fatalf("mul: %v", err)
	}
	id := Identity(suite, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !prod.Get(i, j).Equal(id.Get(i, j)) {
				t.Fatalf("A*A^-1 != I at (%d,%d)", i, j)
			}
		}
	}
	if v.Rank() != 3 {
		t.Fatalf("expected rank 3, got %d", v.Rank())
	}
	if Identity(suite, 5).Rank() != 5 {
		t.Fatalf("expected rank(I_5) == 5")
	}
	if v.Rank() != v.Transpose().Rank() {
		t.Fatalf("rank(A) != rank(A^T)")
	}
}

func TestVandermondeRejectsDuplicates(t *testing.T) {
	suite := curve.BN254()
	points := scalars(suite, 1, 2, 1)
	if _, err := Vandermonde(suite, points, 3); err == nil {
		t.Fatalf("expected error for duplicate seed points")
	}
}

func TestInvertNonSquareAndSingular(t *testing.T) {
	suite := curve.BN254()
	m, _ := FromVecVec(suite, [][]curve.Scalar{
		scalars(suite, 1, 2, 3),
		scalars(suite, 4, 5, 6),
	})
	if _, err := m.Invert(); err == nil {
		t.Fatalf("expected NonSquareMatrix error")
	}

	singular, _ := FromVecVec(suite, [][]curve.Scalar{
		scalars(suite, 1, 2),
		scalars(suite, 2, 4),
	})
	if _, err := singular.Invert(); err == nil {
		t.Fatalf("expected NonInvertibleMatrix error")
	}
}

func TestRandomMatrixShape(t *testing.T) {
	suite := curve.BN254()
	m, err := Random(suite, 4, 5, rand.Reader)
	if err != nil {
		t.Fatalf("random: %v", err)
	}
	if m.Height() != 4 || m.Width() != 5 {
		t.Fatalf("unexpected shape %dx%d", m.Height(), m.Width())
	}
}

func TestTruncate(t *testing.T) {
	suite := curve.BN254()
	m, _ := FromVecVec(suite, [][]curve.Scalar{
		scalars(suite, 1, 2, 3),
		scalars(suite, 4, 5, 6),
		scalars(suite, 7, 8, 9),
	})
	tr, err := m.Truncate(1, 1)
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}
	if tr.Height() != 2 || tr.Width() != 2 {
		t.Fatalf("unexpected truncated shape %dx%d", tr.Height(), tr.Width())
	}
	if !tr.Get(0, 0).Equal(m.Get(0, 0)) || !tr.Get(1, 1).Equal(m.Get(1, 1)) {
		t.Fatalf("truncate removed wrong elements")
	}
}
