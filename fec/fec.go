// Package fec implements the erasure-coding core (spec.md §4.D): encoding
// a blob into n shards via a k x n encoding matrix, decoding k linearly
// independent shards back into the blob, and recoding shards into new
// valid shards without ever decoding.
package fec

import (
	"crypto/sha256"

	"github.com/dragoon-rs/komodo"
	"github.com/dragoon-rs/komodo/algebra"
	"github.com/dragoon-rs/komodo/algebra/linalg"
	"github.com/dragoon-rs/komodo/curve"
	"github.com/dragoon-rs/komodo/kerr"
)

// Encode splits data into field elements, arranges them as rows of a
// (L/k) x k source matrix S, computes E = S*M, and returns one shard per
// column of E carrying the matching column of M as its linear
// combination. M must be k x n.
func Encode(suite curve.Suite, data []byte, m *linalg.Matrix) ([]*komodo.Shard, error) {
	k := m.Height()
	n := m.Width()

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

	e, err := s.Mul(m)
	if err != nil {
		return nil, err
	}

	hash := sha256.Sum256(data)
	shards := make([]*komodo.Shard, n)
	for j := 0; j < n; j++ {
		shards[j] = &komodo.Shard{
			Suite:             suite,
			K:                 k,
			LinearCombination: m.GetCol(j),
			Hash:              hash,
			Data:              e.GetCol(j),
			Size:              len(data),
		}
	}
	return shards, nil
}

// Decode reconstructs the original bytes from at least k shards sharing
// the same K, Hash and Size. It fails with kerr.TooFewShards or
// kerr.IncompatibleBlocks on structural mismatches, and with
// kerr.NonInvertibleMatrix if the first k shards' linear combinations are
// not linearly independent.
func Decode(shards []*komodo.Shard) ([]byte, error) {
	if len(shards) == 0 {
		return nil, &kerr.TooFewShards{Have: 0, Need: 1}
	}
	k := shards[0].K
	if len(shards) < k {
		return nil, &kerr.TooFewShards{Have: len(shards), Need: k}
	}
	for i := 1; i < len(shards); i++ {
		if !shards[i].SameStream(shards[0]) {
			return nil, &kerr.IncompatibleBlocks{Reason: "shards come from different streams (k, hash or size differ)"}
		}
	}

	suite := shards[0].Suite
	selected := shards[:k]

	aRows := make([][]curve.Scalar, k)
	dRows := make([][]curve.Scalar, k)
	for i, sh := range selected {
		if len(sh.LinearCombination) != k {
			return nil, &kerr.IncompatibleBlocks{Reason: "linear combination length does not match k"}
		}
		aRows[i] = sh.LinearCombination
		dRows[i] = sh.Data
	}

	a, err := linalg.FromVecVec(suite, aRows)
	if err != nil {
		return nil, err
	}
	d, err := linalg.FromVecVec(suite, dRows)
	if err != nil {
		return nil, err
	}

	aInv, err := a.Invert()
	if err != nil {
		return nil, err
	}

	sT, err := aInv.Mul(d)
	if err != nil {
		return nil, err
	}
	s := sT.Transpose()

	elements := make([]curve.Scalar, 0, s.Height()*s.Width())
	for i := 0; i < s.Height(); i++ {
		elements = append(elements, s.GetRow(i)...)
	}

	bytes := algebra.MergeElementsToBytes(suite, elements)
	size := shards[0].Size
	if size > len(bytes) {
		return nil, &kerr.Other{Detail: "decoded fewer bytes than the recorded blob size"}
	}
	return bytes[:size], nil
}

