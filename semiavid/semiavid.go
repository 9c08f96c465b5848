// Package semiavid implements the Semi-AVID proof scheme (spec.md §4.E):
// shards are proved against commitments to the *column* polynomials of the
// source matrix, so that a homomorphism check on the commitments alone
// certifies a shard's data without ever decoding it.
package semiavid

import (
	"io"

	"github.com/dragoon-rs/komodo"
	"github.com/dragoon-rs/komodo/algebra"
	"github.com/dragoon-rs/komodo/algebra/linalg"
	"github.com/dragoon-rs/komodo/algebra/polynomial"
	"github.com/dragoon-rs/komodo/curve"
	"github.com/dragoon-rs/komodo/fec"
	"github.com/dragoon-rs/komodo/kerr"
	"github.com/dragoon-rs/komodo/setup"
)

// Block is a Shard plus the k column-polynomial commitments Semi-AVID
// proves it against.
type Block struct {
	Shard       *komodo.Shard
	Commitments []curve.G1Point
}

// Prove interprets bytes as rows of a (L/k) x k source matrix S, forms the
// column polynomials p_j(X) = sum_i S[i][j]*X^i, and commits each of them.
// powers must hold at least nb_field_elements(bytes) powers.
func Prove(suite curve.Suite, powers *setup.Powers, data []byte, k int) ([]curve.G1Point, error) {
	elements, err := algebra.SplitBytesToElements(suite, data, k)
	if err != nil {
		return nil, err
	}
	rows := len(elements) / k
	sRows := make([][]curve.Scalar, rows)
	for i := 0; i < rows; i++ {
		sRows[i] = elements[i*k : (i+1)*k]
	}
	s, err := linalg.FromVecVec(suite, sRows)
	if err != nil {
		return nil, err
	}

	polys := make([]*polynomial.Polynomial, k)
	for j := 0; j < k; j++ {
		polys[j] = polynomial.New(suite, s.GetCol(j))
	}
	return setup.BatchCommit(powers, polys)
}

// Build attaches the same commitment sequence to every shard, producing
// one Block per shard.
func Build(shards []*komodo.Shard, commitments []curve.G1Point) []*Block {
	blocks := make([]*Block, len(shards))
	for i, sh := range shards {
		blocks[i] = &Block{Shard: sh, Commitments: commitments}
	}
	return blocks
}

// Verify checks that the shard's data, read as a polynomial, commits to
// the same linear combination of column commitments that the shard's
// LinearCombination claims: commit(data) == sum_j w[j]*Commitments[j].
// This is a homomorphism check (spec.md §4.E); a mismatch is a plain
// false, not an error. Structural problems (wrong-length
// LinearCombination) are still errors.
func Verify(block *Block, powers *setup.Powers) (bool, error) {
	suite := block.Shard.Suite
	if len(block.Shard.LinearCombination) != len(block.Commitments) {
		return false, &kerr.IncompatibleBlocks{Reason: "linear combination length does not match commitment count"}
	}

	dataPoly := polynomial.New(suite, block.Shard.Data)
	commitData, err := setup.Commit(powers, dataPoly)
	if err != nil {
		return false, err
	}

	acc := suite.G1Identity()
	for j, w := range block.Shard.LinearCombination {
		if w.IsZero() {
			continue
		}
		acc = acc.Add(block.Commitments[j].ScalarMul(w))
	}

	return commitData.Equal(acc), nil
}

// Recode samples random coefficients, recodes the underlying shards via
// fec.Combine, and keeps the (unchanged, by the commitment homomorphism)
// commitment sequence. Fails with kerr.IncompatibleBlocks if the input
// blocks do not all carry the same commitments.
func Recode(suite curve.Suite, blocks []*Block, rng io.Reader) (*Block, error) {
	if len(blocks) == 0 {
		return nil, nil
	}
	commitments := blocks[0].Commitments
	for _, b := range blocks {
		if len(b.Commitments) != len(commitments) {
			return nil, &kerr.IncompatibleBlocks{Reason: "blocks carry different numbers of commitments"}
		}
		for i, c := range b.Commitments {
			if !c.Equal(commitments[i]) {
				return nil, &kerr.IncompatibleBlocks{Reason: "blocks carry different commitment sequences"}
			}
		}
	}

	shards := make([]*komodo.Shard, len(blocks))
	for i, b := range blocks {
		shards[i] = b.Shard
	}
	recoded, err := fec.RecodeRandom(suite, shards, rng)
	if err != nil {
		return nil, err
	}
	if recoded == nil {
		return nil, nil
	}
	return &Block{Shard: recoded, Commitments: commitments}, nil
}
