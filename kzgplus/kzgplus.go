// Package kzgplus implements the KZG+ proof scheme (spec.md §4.F): a blob
// is split into m degree-<k polynomials, batch committed, and every shard
// carries a single KZG opening of a Fiat-Shamir random linear combination
// of those polynomials at the shard's own evaluation point.
package kzgplus

import (
	"github.com/dragoon-rs/komodo"
	"github.com/dragoon-rs/komodo/algebra"
	"github.com/dragoon-rs/komodo/algebra/linalg"
	"github.com/dragoon-rs/komodo/algebra/polynomial"
	"github.com/dragoon-rs/komodo/curve"
	"github.com/dragoon-rs/komodo/fec"
	"github.com/dragoon-rs/komodo/kerr"
	"github.com/dragoon-rs/komodo/setup"
)

// Block is a Shard plus the m polynomial commitments it was folded from and
// the single KZG witness opening that folded polynomial at the shard's
// evaluation point.
type Block struct {
	Shard       *komodo.Shard
	Commitments []curve.G1Point
	Witness     curve.G1Point
}

// Prove interprets bytes as rows of an m x k source matrix S (m = ceil(L/k)
// polynomials of degree < k), commits each row polynomial, encodes data
// against the k x n Vandermonde matrix of points to get one shard per
// point, and opens the Fiat-Shamir fold of the row polynomials at each
// shard's own point. powers must hold at least k powers.
func Prove(suite curve.Suite, powers *setup.Powers, data []byte, k int, points []curve.Scalar) ([]*Block, error) {
	elements, err := algebra.SplitBytesToElements(suite, data, k)
	if err != nil {
		return nil, err
	}
	m := len(elements) / k
	polys := make([]*polynomial.Polynomial, m)
	for i := 0; i < m; i++ {
		polys[i] = polynomial.New(suite, elements[i*k:(i+1)*k])
	}
	commitments, err := setup.BatchCommit(powers, polys)
	if err != nil {
		return nil, err
	}

	vm, err := linalg.Vandermonde(suite, points, k)
	if err != nil {
		return nil, err
	}
	shards, err := fec.Encode(suite, data, vm)
	if err != nil {
		return nil, err
	}

	blocks := make([]*Block, len(points))
	for j, point := range points {
		shard := shards[j]
		r, err := curve.HashToScalar(suite, algebra.MergeElementsToBytes(suite, shard.Data))
		if err != nil {
			return nil, kerr.Wrap("kzgplus: deriving fold challenge", err)
		}

		q := polynomial.Zero(suite)
		rPow := suite.One()
		for _, p := range polys {
			q = q.Add(p.Scale(rPow))
			rPow = rPow.Mul(r)
		}
		witness, err := setup.Commit(powers, q.DivByLinear(point))
		if err != nil {
			return nil, err
		}

		blocks[j] = &Block{Shard: shard, Commitments: commitments, Witness: witness}
	}
	return blocks, nil
}

// fold recomputes the Fiat-Shamir challenge r, the folded evaluation y and
// the folded commitment c for a block, the three quantities Verify and
// BatchVerify both need.
func fold(suite curve.Suite, block *Block) (y curve.Scalar, c curve.G1Point, err error) {
	if len(block.Commitments) != len(block.Shard.Data) {
		return nil, nil, &kerr.IncompatibleBlocks{Reason: "commitment count does not match shard data length"}
	}
	r, err := curve.HashToScalar(suite, algebra.MergeElementsToBytes(suite, block.Shard.Data))
	if err != nil {
		return nil, nil, kerr.Wrap("kzgplus: deriving fold challenge", err)
	}

	y = suite.Zero()
	c = suite.G1Identity()
	rPow := suite.One()
	for i, d := range block.Shard.Data {
		y = y.Add(d.Mul(rPow))
		c = c.Add(block.Commitments[i].ScalarMul(rPow))
		rPow = rPow.Mul(r)
	}
	return y, c, nil
}

// Verify checks the KZG opening e(c - y*G, H) == e(W, tau*H - point*H),
// where c and y are the Fiat-Shamir fold of the block's commitments and
// shard data (spec.md §4.F). A failed pairing check is a plain false, not
// an error.
func Verify(block *Block, powers *setup.Powers, point curve.Scalar) (bool, error) {
	suite := block.Shard.Suite
	pairing := suite.Pairing()
	if pairing == nil {
		return false, &kerr.Other{Detail: "curve " + suite.Name() + " does not support pairings"}
	}
	if len(powers.G2) < 2 {
		return false, &kerr.Other{Detail: "trusted setup is missing G2 powers"}
	}

	y, c, err := fold(suite, block)
	if err != nil {
		return false, err
	}

	g := powers.G1[0]
	lhsG1 := c.Add(g.ScalarMul(y).Neg())

	h := powers.G2[0]
	tauH := powers.G2[1]
	rhsG2 := tauH.Add(h.ScalarMul(point).Neg())

	return pairing.Eq(
		[]curve.G1Point{lhsG1}, []curve.G2Point{h},
		[]curve.G1Point{block.Witness}, []curve.G2Point{rhsG2},
	)
}

// BatchVerify checks every block in a single multi-pairing by aggregating
// the per-block left-hand-sides with a Fiat-Shamir scalar rho = H(proofs)
// (spec.md §4.F: "aggregation scalar rho"). All blocks must share the
// trusted setup; points[i] is blocks[i]'s evaluation point.
func BatchVerify(blocks []*Block, powers *setup.Powers, points []curve.Scalar) (bool, error) {
	if len(blocks) == 0 || len(blocks) != len(points) {
		return false, &kerr.IncompatibleBlocks{Reason: "blocks and points must be the same non-zero length"}
	}
	suite := blocks[0].Shard.Suite
	pairing := suite.Pairing()
	if pairing == nil {
		return false, &kerr.Other{Detail: "curve " + suite.Name() + " does not support pairings"}
	}
	if len(powers.G2) < 2 {
		return false, &kerr.Other{Detail: "trusted setup is missing G2 powers"}
	}

	var proofBytes []byte
	for _, b := range blocks {
		proofBytes = append(proofBytes, b.Witness.Bytes()...)
	}
	rho, err := curve.HashToScalar(suite, proofBytes)
	if err != nil {
		return false, kerr.Wrap("kzgplus: deriving batch aggregation challenge", err)
	}

	g := powers.G1[0]
	h := powers.G2[0]
	tauH := powers.G2[1]

	lhsAgg := suite.G1Identity()
	rhsG1 := make([]curve.G1Point, len(blocks))
	rhsG2 := make([]curve.G2Point, len(blocks))
	rhoPow := suite.One()
	for j, b := range blocks {
		y, c, err := fold(suite, b)
		if err != nil {
			return false, err
		}
		term := c.Add(g.ScalarMul(y).Neg())
		lhsAgg = lhsAgg.Add(term.ScalarMul(rhoPow))
		rhsG1[j] = b.Witness.ScalarMul(rhoPow)
		rhsG2[j] = tauH.Add(h.ScalarMul(points[j]).Neg())
		rhoPow = rhoPow.Mul(rho)
	}

	return pairing.Eq([]curve.G1Point{lhsAgg}, []curve.G2Point{h}, rhsG1, rhsG2)
}
