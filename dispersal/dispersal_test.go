package dispersal

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/dragoon-rs/komodo/curve"
	"github.com/dragoon-rs/komodo/setup"
)

func evaluationPoints(suite curve.Suite, n int) []curve.Scalar {
	pts := make([]curve.Scalar, n)
	one := suite.One()
	two := one.Add(one)
	cur := one
	for i := 0; i < n; i++ {
		pts[i] = cur
		cur = cur.Add(two)
	}
	return pts
}

func TestDisperseRecoverRoundTrip(t *testing.T) {
	suite := curve.BN254()
	data := []byte("komodo disperses and recovers this blob of bytes intact")
	k, n := 3, 6
	points := evaluationPoints(suite, n)

	powers, err := setup.Setup(suite, k-1, rand.Reader)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	blocks, err := Disperse(suite, powers, data, k, points)
	if err != nil {
		t.Fatalf("disperse: %v", err)
	}
	if len(blocks) != n {
		t.Fatalf("expected %d blocks, got %d", n, len(blocks))
	}

	recovered, err := Recover(blocks[:k], powers)
	if err != nil {
		t.Fatalf("recover: %v", err)
	}
	if !bytes.Equal(recovered, data) {
		t.Fatalf("round trip mismatch:\n got  %q\n want %q", recovered, data)
	}
}
