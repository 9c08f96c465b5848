package fri

import (
	"bytes"
	"errors"
	"testing"

	"github.com/dragoon-rs/komodo/curve"
	"github.com/dragoon-rs/komodo/kerr"
)

func fixtureBytes() []byte {
	data := make([]byte, 4*31*3)
	for i := range data {
		data[i] = byte(i*17 + 5)
	}
	return data
}

func TestEncodeVerifyDecodeRoundTrip(t *testing.T) {
	suite := curve.BN254()
	data := fixtureBytes()
	k, n := 4, 8

	blocks, domain, err := Encode(suite, data, k, n)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(blocks) != n {
		t.Fatalf("expected %d blocks, got %d", n, len(blocks))
	}

	for i, b := range blocks {
		ok, err := Verify(b)
		if err != nil {
			t.Fatalf("verify block %d: %v", i, err)
		}
		if !ok {
			t.Fatalf("block %d failed to verify", i)
		}
	}

	decoded, err := Decode(blocks[:k], domain)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Fatalf("round trip mismatch:\n got  %x\n want %x", decoded, data)
	}

	// any k blocks should reconstruct the same bytes, not just the first k.
	decoded2, err := Decode(blocks[n-k:], domain)
	if err != nil {
		t.Fatalf("decode from tail: %v", err)
	}
	if !bytes.Equal(decoded2, data) {
		t.Fatalf("tail round trip mismatch:\n got  %x\n want %x", decoded2, data)
	}
}

func TestEncodeRejectsNonPowerOfTwoK(t *testing.T) {
	suite := curve.BN254()
	data := fixtureBytes()

	_, _, err := Encode(suite, data, 3, 8)
	if err == nil {
		t.Fatalf("expected an error for non-power-of-two k")
	}
	var domainErr *kerr.NonPowerOfTwoDomain
	if !errors.As(err, &domainErr) || domainErr.What != "k" {
		t.Fatalf("expected *kerr.NonPowerOfTwoDomain{What: \"k\"}, got %T: %v", err, err)
	}
}

func TestEncodeRejectsNonPowerOfTwoN(t *testing.T) {
	suite := curve.BN254()
	data := fixtureBytes()

	_, _, err := Encode(suite, data, 4, 7)
	if err == nil {
		t.Fatalf("expected an error for non-power-of-two n")
	}
	var domainErr *kerr.NonPowerOfTwoDomain
	if !errors.As(err, &domainErr) || domainErr.What != "n" {
		t.Fatalf("expected *kerr.NonPowerOfTwoDomain{What: \"n\"}, got %T: %v", err, err)
	}
}

func TestVerifyRejectsCorruptedColumn(t *testing.T) {
	suite := curve.BN254()
	data := fixtureBytes()

	blocks, _, err := Encode(suite, data, 4, 8)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	blocks[0].Shard.Column[0] = blocks[0].Shard.Column[0].Add(suite.One())
	ok, err := Verify(blocks[0])
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Fatalf("expected corrupted column to fail verification")
	}
}

func TestDecodeRejectsTooFewBlocks(t *testing.T) {
	suite := curve.BN254()
	data := fixtureBytes()

	blocks, domain, err := Encode(suite, data, 4, 8)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	_, err = Decode(blocks[:2], domain)
	if err == nil {
		t.Fatalf("expected an error for too few blocks")
	}
	var tooFewErr *kerr.TooFewShards
	if !errors.As(err, &tooFewErr) {
		t.Fatalf("expected *kerr.TooFewShards, got %T: %v", err, err)
	}
}
