package algebra

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/dragoon-rs/komodo/curve"
)

func TestSplitMergeRoundTrip(t *testing.T) {
	suite := curve.BN254()
	data := []byte("the quick brown fox jumps over the lazy dog, 1234567890!")

	elements, err := SplitBytesToElements(suite, data, 3)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(elements)%3 != 0 {
		t.Fatalf("expected length multiple of 3, got %d", len(elements))
	}
	for i, e := range elements {
		if e.IsZero() {
			t.Fatalf("element %d is zero, violates no-zero invariant", i)
		}
	}

	merged := MergeElementsToBytes(suite, elements)
	if len(merged) < len(data) {
		t.Fatalf("merged shorter than original: %d < %d", len(merged), len(data))
	}
	if !bytes.Equal(merged[:len(data)], data) {
		t.Fatalf("round trip mismatch:\n got  %x\n want %x", merged[:len(data)], data)
	}
}

func TestPowersOf(t *testing.T) {
	suite := curve.BN254()
	r, err := suite.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("random scalar: %v", err)
	}
	const n = 8
	powers := PowersOf(suite, r, n)
	if len(powers) != n {
		t.Fatalf("expected %d powers, got %d", n, len(powers))
	}
	if !powers[0].Equal(suite.One()) {
		t.Fatalf("powers[0] should be 1")
	}
	want := suite.One()
	for i := 1; i < n; i++ {
		want = want.Mul(r)
		if !powers[i].Equal(want) {
			t.Fatalf("powers[%d] mismatch", i)
		}
	}
}

func TestScalarProduct(t *testing.T) {
	suite := curve.BN254()
	a := []curve.Scalar{suite.One(), suite.One().Add(suite.One())}
	b := []curve.Scalar{suite.One(), suite.One()}
	got := ScalarProduct(a, b)
	want := suite.One().Add(suite.One().Add(suite.One()))
	if !got.Equal(want) {
		t.Fatalf("scalar product mismatch: got %v want %v", got, want)
	}
}
