package aplonk

import (
	"crypto/rand"
	"errors"
	"testing"

	"github.com/dragoon-rs/komodo/algebra/linalg"
	"github.com/dragoon-rs/komodo/curve"
	"github.com/dragoon-rs/komodo/fec"
	"github.com/dragoon-rs/komodo/kerr"
)

func fixtureBytes() []byte {
	data := make([]byte, 8*31)
	for i := range data {
		data[i] = byte(i*29 + 11)
	}
	return data
}

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

func TestProveVerify_S6(t *testing.T) {
	suite := curve.BN254()
	data := fixtureBytes()
	k, m, n := 4, 2, 5
	points := evaluationPoints(suite, n)

	vm, err := linalg.Vandermonde(suite, points, k)
	if err != nil {
		t.Fatalf("vandermonde: %v", err)
	}
	shards, err := fec.Encode(suite, data, vm)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	params, err := Setup(suite, k, m, rand.Reader)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	stream, err := Commit(suite, params, data, k)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	for j, shard := range shards {
		block, err := Prove(suite, params, stream, shard, points[j])
		if err != nil {
			t.Fatalf("prove shard %d: %v", j, err)
		}
		ok, err := Verify(block, params)
		if err != nil {
			t.Fatalf("verify shard %d: %v", j, err)
		}
		if !ok {
			t.Fatalf("shard %d failed to verify", j)
		}
	}
}

func TestCommitRejectsNonPowerOfTwoPolynomialCount(t *testing.T) {
	suite := curve.BN254()
	data := fixtureBytes()

	params, err := Setup(suite, 3, 4, rand.Reader)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	// k=3 over this fixture pads to 9 field elements, so m=9/3=3: not a
	// power of two, matching the spec scenario where swapping k from 4
	// to 3 turns a valid m=2 fold into a rejected one.
	_, err = Commit(suite, params, data, 3)
	if err == nil {
		t.Fatalf("expected an error for a non-power-of-two polynomial count")
	}
	var polyCountErr *kerr.PolynomialCountIpa
	if !errors.As(err, &polyCountErr) {
		t.Fatalf("expected *kerr.PolynomialCountIpa, got %T: %v", err, err)
	}
}

func TestVerifyRejectsCorruptedIPAProof(t *testing.T) {
	suite := curve.BN254()
	data := fixtureBytes()
	k, m, n := 4, 2, 5
	points := evaluationPoints(suite, n)

	vm, err := linalg.Vandermonde(suite, points, k)
	if err != nil {
		t.Fatalf("vandermonde: %v", err)
	}
	shards, err := fec.Encode(suite, data, vm)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	params, err := Setup(suite, k, m, rand.Reader)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	stream, err := Commit(suite, params, data, k)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	block, err := Prove(suite, params, stream, shards[0], points[0])
	if err != nil {
		t.Fatalf("prove: %v", err)
	}

	block.IPAProof.Lr[0] = block.IPAProof.Lr[0].Add(suite.G1Generator())

	ok, err := Verify(block, params)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Fatalf("expected corrupted IPA proof to fail verification")
	}
}
