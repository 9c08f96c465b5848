package semiavid

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/dragoon-rs/komodo/algebra/linalg"
	"github.com/dragoon-rs/komodo/curve"
	"github.com/dragoon-rs/komodo/fec"
	"github.com/dragoon-rs/komodo/setup"
)

func fixtureBytes() []byte {
	data := make([]byte, 133*133)
	for i := range data {
		data[i] = byte(i * 13 % 251)
	}
	return data
}

func pointsAndMatrix(t *testing.T, suite curve.Suite, k, n int) *linalg.Matrix {
	t.Helper()
	pts := make([]curve.Scalar, n)
	cur := suite.One()
	two := cur.Add(cur)
	for i := 0; i < n; i++ {
		pts[i] = cur
		cur = cur.Add(two)
	}
	m, err := linalg.Vandermonde(suite, pts, k)
	if err != nil {
		t.Fatalf("vandermonde: %v", err)
	}
	return m
}

func TestProveBuildVerify_S1(t *testing.T) {
	suite := curve.BN254()
	data := fixtureBytes()
	k, n := 3, 5
	m := pointsAndMatrix(t, suite, k, n)

	shards, err := fec.Encode(suite, data, m)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	powers, err := setup.Setup(suite, len(data)/1+64, rand.Reader)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	commitments, err := Prove(suite, powers, data, k)
	if err != nil {
		t.Fatalf("prove: %v", err)
	}
	blocks := Build(shards, commitments)

	for i, b := range blocks {
		ok, err := Verify(b, powers)
		if err != nil {
			t.Fatalf("verify block %d: %v", i, err)
		}
		if !ok {
			t.Fatalf("block %d failed to verify", i)
		}
	}

	decoded, err := fec.Decode(shards)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Fatalf("decoded bytes mismatch")
	}
}

func TestVerifyRejectsCorruptedShard_S2(t *testing.T) {
	suite := curve.BN254()
	data := fixtureBytes()
	k, n := 3, 5
	m := pointsAndMatrix(t, suite, k, n)

	shards, err := fec.Encode(suite, data, m)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	powers, err := setup.Setup(suite, len(data)+64, rand.Reader)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	commitments, err := Prove(suite, powers, data, k)
	if err != nil {
		t.Fatalf("prove: %v", err)
	}
	blocks := Build(shards, commitments)

	blocks[0].Shard.Data[0] = blocks[0].Shard.Data[0].Add(suite.One())

	ok, err := Verify(blocks[0], powers)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Fatalf("expected corrupted block to fail verification")
	}

	for i := 1; i < len(blocks); i++ {
		ok, err := Verify(blocks[i], powers)
		if err != nil {
			t.Fatalf("verify block %d: %v", i, err)
		}
		if !ok {
			t.Fatalf("uncorrupted block %d should verify", i)
		}
	}
}

func TestRecodePreservesVerification(t *testing.T) {
	suite := curve.BN254()
	data := fixtureBytes()
	k, n := 3, 6
	m := pointsAndMatrix(t, suite, k, n)

	shards, err := fec.Encode(suite, data, m)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	powers, err := setup.Setup(suite, len(data)+64, rand.Reader)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	commitments, err := Prove(suite, powers, data, k)
	if err != nil {
		t.Fatalf("prove: %v", err)
	}
	blocks := Build(shards, commitments)

	recoded, err := Recode(suite, blocks[2:4], rand.Reader)
	if err != nil {
		t.Fatalf("recode: %v", err)
	}
	if recoded == nil {
		t.Fatalf("expected a recoded block")
	}
	ok, err := Verify(recoded, powers)
	if err != nil {
		t.Fatalf("verify recoded: %v", err)
	}
	if !ok {
		t.Fatalf("recoded block should verify")
	}
}
