// Package dispersal holds the thin encode+prove+build / verify+decode
// convenience wrappers spec.md §9 asks for around fec and the Semi-AVID
// prover, mirroring the teacher's own Compile/Verify top-level API in
// algoplonk.go. It cannot live in the root komodo package itself: fec and
// semiavid both import komodo for komodo.Shard, so a root-package Disperse
// calling into them would be an import cycle. dispersal sits one level
// above instead, the same relationship algoplonk.go has to its setup and
// verifier subpackages.
package dispersal

import (
	"github.com/dragoon-rs/komodo"
	"github.com/dragoon-rs/komodo/algebra/linalg"
	"github.com/dragoon-rs/komodo/curve"
	"github.com/dragoon-rs/komodo/fec"
	"github.com/dragoon-rs/komodo/semiavid"
	"github.com/dragoon-rs/komodo/setup"
)

// Disperse builds the k x n Vandermonde encoding matrix from points,
// erasure-codes data into n shards (fec.Encode), proves the k column
// commitments against powers (semiavid.Prove), and attaches them to every
// shard (semiavid.Build). Callers who need KZG+, aPlonK or FRI instead
// call those packages' Prove directly; Disperse only wraps the default
// Semi-AVID pipeline.
func Disperse(
	suite curve.Suite, powers *setup.Powers, data []byte, k int, points []curve.Scalar,
) ([]*semiavid.Block, error) {
	vm, err := linalg.Vandermonde(suite, points, k)
	if err != nil {
		return nil, err
	}
	shards, err := fec.Encode(suite, data, vm)
	if err != nil {
		return nil, err
	}
	commitments, err := semiavid.Prove(suite, powers, data, k)
	if err != nil {
		return nil, err
	}
	return semiavid.Build(shards, commitments), nil
}

// Recover verifies every block against powers, discards any that fail,
// and decodes the original bytes from what remains.
func Recover(blocks []*semiavid.Block, powers *setup.Powers) ([]byte, error) {
	shards := make([]*komodo.Shard, 0, len(blocks))
	for _, b := range blocks {
		ok, err := semiavid.Verify(b, powers)
		if err != nil {
			return nil, err
		}
		if ok {
			shards = append(shards, b.Shard)
		}
	}
	return fec.Decode(shards)
}
