package polynomial

import (
	"testing"

	"github.com/dragoon-rs/komodo/curve"
)

func intScalar(suite curve.Suite, v int64) curve.Scalar {
	e := suite.Zero()
	for i := int64(0); i < v; i++ {
		e = e.Add(suite.One())
	}
	return e
}

func TestEvalAndDegree(t *testing.T) {
	suite := curve.BN254()
	// p(X) = 1 + 2X + 3X^2
	p := New(suite, []curve.Scalar{
		intScalar(suite, 1), intScalar(suite, 2), intScalar(suite, 3),
	})
	if p.Degree() != 2 {
		t.Fatalf("expected degree 2, got %d", p.Degree())
	}
	// p(2) = 1 + 4 + 12 = 17
	got := p.Eval(intScalar(suite, 2))
	want := intScalar(suite, 17)
	if !got.Equal(want) {
		t.Fatalf("eval mismatch: got %v want %v", got, want)
	}
}

func TestDivByLinear(t *testing.T) {
	suite := curve.BN254()
	// p(X) = (X-3)(X+1) = X^2 - 2X - 3
	p := New(suite, []curve.Scalar{
		intScalar(suite, 0).Sub(intScalar(suite, 3)),
		intScalar(suite, 0).Sub(intScalar(suite, 2)),
		intScalar(suite, 1),
	})
	q := p.DivByLinear(intScalar(suite, 3))
	// q should be (X+1): coeffs [1, 1]
	if q.Degree() != 1 {
		t.Fatalf("expected degree 1, got %d", q.Degree())
	}
	for x := int64(0); x < 5; x++ {
		xs := intScalar(suite, x)
		lhs := p.Eval(xs).Sub(p.Eval(intScalar(suite, 3)))
		rhs := q.Eval(xs).Mul(xs.Sub(intScalar(suite, 3)))
		if !lhs.Equal(rhs) {
			t.Fatalf("division identity failed at x=%d", x)
		}
	}
}

func TestZeroPolynomialDegree(t *testing.T) {
	suite := curve.BN254()
	if Zero(suite).Degree() != -1 {
		t.Fatalf("expected degree -1 for zero polynomial")
	}
}
