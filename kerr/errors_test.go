package kerr

import (
	"errors"
	"testing"
)

func TestNonInvertibleMatrixAs(t *testing.T) {
	var err error = &NonInvertibleMatrix{Row: 2}
	var target *NonInvertibleMatrix
	if !errors.As(err, &target) {
		t.Fatalf("expected errors.As to match *NonInvertibleMatrix")
	}
	if target.Row != 2 {
		t.Fatalf("expected row 2, got %d", target.Row)
	}
}

func TestTooFewShardsMessage(t *testing.T) {
	err := &TooFewShards{Have: 2, Need: 3}
	if err.Error() == "" {
		t.Fatalf("expected non-empty error message")
	}
}

func TestPolynomialCountIpaAs(t *testing.T) {
	var err error = &PolynomialCountIpa{Count: 3}
	var target *PolynomialCountIpa
	if !errors.As(err, &target) {
		t.Fatalf("expected errors.As to match *PolynomialCountIpa")
	}
	if target.Count != 3 {
		t.Fatalf("expected count 3, got %d", target.Count)
	}
}

func TestNonPowerOfTwoDomainAs(t *testing.T) {
	var err error = &NonPowerOfTwoDomain{What: "n", Value: 7}
	var target *NonPowerOfTwoDomain
	if !errors.As(err, &target) {
		t.Fatalf("expected errors.As to match *NonPowerOfTwoDomain")
	}
	if target.What != "n" || target.Value != 7 {
		t.Fatalf("unexpected fields: %+v", target)
	}
}

func TestWrapPreservesUnwrap(t *testing.T) {
	inner := errors.New("boom")
	wrapped := Wrap("kzgplus: deriving challenge", inner)
	var other *Other
	if !errors.As(wrapped, &other) {
		t.Fatalf("expected errors.As to match *Other")
	}
	if errors.Unwrap(wrapped) != inner {
		t.Fatalf("expected errors.Unwrap to return the wrapped error")
	}
	if Wrap("ctx", nil) != nil {
		t.Fatalf("expected Wrap(ctx, nil) to return nil")
	}
}
