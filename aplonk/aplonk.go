// Package aplonk implements the aPlonK proof scheme (spec.md §4.G): an
// inner-product argument folds m polynomial commitments into one, letting a
// single KZG-style opening plus a compact IPA transcript certify all m
// polynomials' evaluation at a shard's point at once.
package aplonk

import (
	"io"

	"github.com/dragoon-rs/komodo"
	"github.com/dragoon-rs/komodo/algebra"
	"github.com/dragoon-rs/komodo/algebra/polynomial"
	"github.com/dragoon-rs/komodo/curve"
	"github.com/dragoon-rs/komodo/kerr"
	"github.com/dragoon-rs/komodo/setup"
)

// Params is aPlonK's trusted setup: ordinary KZG parameters plus the
// {tau^i * H} sequence the IPA folds commitments against (spec.md §4.G:
// "KZG parameters plus {tau^i*H} for i in [0,m)").
type Params struct {
	Powers *setup.Powers
	CkTau  []curve.G2Point
}

// Setup samples its own secret tau (never returned), distinct from any
// setup.Powers the caller might hold for other schemes, and builds both
// the usual KZG powers (to degree k-1) and the m-long ck_tau sequence.
// m must be a power of two; it bounds how many polynomials a stream using
// these Params can fold in one aPlonK proof.
func Setup(suite curve.Suite, k, m int, rng io.Reader) (*Params, error) {
	if k < 1 {
		return nil, &kerr.DegreeIsZero{}
	}
	if !isPowerOfTwo(m) {
		return nil, &kerr.PolynomialCountIpa{Count: m}
	}

	tau, err := suite.RandomScalar(rng)
	if err != nil {
		return nil, kerr.Wrap("aplonk: sampling tau", err)
	}
	g1, err := suite.RandomG1(rng)
	if err != nil {
		return nil, kerr.Wrap("aplonk: sampling G1 base point", err)
	}

	g1Powers := make([]curve.G1Point, k)
	cur := suite.One()
	for i := 0; i < k; i++ {
		g1Powers[i] = g1.ScalarMul(cur)
		cur = cur.Mul(tau)
	}

	h := suite.G2Generator()
	tauH := h.ScalarMul(tau)

	ckTau := make([]curve.G2Point, m)
	cur = suite.One()
	for i := 0; i < m; i++ {
		ckTau[i] = h.ScalarMul(cur)
		cur = cur.Mul(tau)
	}

	tau = nil

	return &Params{
		Powers: &setup.Powers{Suite: suite, G1: g1Powers, G2: []curve.G2Point{h, tauH}},
		CkTau:  ckTau,
	}, nil
}

// Stream holds the per-blob state Commit produces and every per-shard
// Prove call in that blob's dispersal reuses: the m row polynomials, their
// commitments, and the folded commitment com_F.
type Stream struct {
	Polys       []*polynomial.Polynomial
	Commitments []curve.G1Point
	ComF        curve.GTElement
}

// Commit splits data into m = len(data-elements)/k degree-<k polynomials,
// commits each, and folds the commitments into com_F = prod_i
// e(C_i, tau^i*H). m must be a power of two, otherwise this fails with
// kerr.PolynomialCountIpa, and at most len(params.CkTau), otherwise it fails
// with kerr.TooFewPowersInTrustedSetup.
func Commit(suite curve.Suite, params *Params, data []byte, k int) (*Stream, error) {
	elements, err := algebra.SplitBytesToElements(suite, data, k)
	if err != nil {
		return nil, err
	}
	m := len(elements) / k
	if !isPowerOfTwo(m) {
		return nil, &kerr.PolynomialCountIpa{Count: m}
	}
	if m > len(params.CkTau) {
		return nil, &kerr.TooFewPowersInTrustedSetup{NumPowers: len(params.CkTau), NumCoefficients: m}
	}

	polys := make([]*polynomial.Polynomial, m)
	for i := 0; i < m; i++ {
		polys[i] = polynomial.New(suite, elements[i*k:(i+1)*k])
	}
	commitments, err := setup.BatchCommit(params.Powers, polys)
	if err != nil {
		return nil, err
	}

	pairing := suite.Pairing()
	if pairing == nil {
		return nil, &kerr.Other{Detail: "curve " + suite.Name() + " does not support pairings"}
	}
	comF, err := pairing.Pair(commitments, params.CkTau[:m])
	if err != nil {
		return nil, err
	}

	return &Stream{Polys: polys, Commitments: commitments, ComF: comF}, nil
}

// Block is a Shard plus an aPlonK proof: the folded commitment/evaluation,
// the KZG opening of the fold, the IPA transcript, and the aPlonK
// correctness proof for the fold's g(X) (spec.md §4.G step 6).
type Block struct {
	Shard       *komodo.Shard
	ComF        curve.GTElement
	VHat        curve.Scalar
	MuHat       curve.G1Point
	KZGProof    curve.G1Point
	IPAProof    *IPAProof
	APlonKProof curve.G2Point
}

// Prove folds stream's polynomials and commitments with a Fiat-Shamir
// scalar derived from (com_F, point), opens the fold at point via KZG, and
// runs the inner-product argument down to a single commitment pair
// (spec.md §4.G steps 1-5).
func Prove(suite curve.Suite, params *Params, stream *Stream, shard *komodo.Shard, point curve.Scalar) (*Block, error) {
	pairing := suite.Pairing()
	if pairing == nil {
		return nil, &kerr.Other{Detail: "curve " + suite.Name() + " does not support pairings"}
	}

	r, err := curve.HashToScalar(suite, append(append([]byte{}, stream.ComF.Bytes()...), point.Bytes()...))
	if err != nil {
		return nil, kerr.Wrap("aplonk: deriving fold challenge", err)
	}
	m := len(stream.Polys)
	rPowers := algebra.PowersOf(suite, r, m)

	f := polynomial.Zero(suite)
	vHat := suite.Zero()
	muHat := suite.G1Identity()
	for i, p := range stream.Polys {
		f = f.Add(p.Scale(rPowers[i]))
		vHat = vHat.Add(p.Eval(point).Mul(rPowers[i]))
		muHat = muHat.Add(stream.Commitments[i].ScalarMul(rPowers[i]))
	}

	kzgProof, err := setup.Commit(params.Powers, f.DivByLinear(point))
	if err != nil {
		return nil, err
	}

	t, err := newTranscript(suite, stream.ComF, r, muHat, log2(m))
	if err != nil {
		return nil, kerr.Wrap("aplonk: building IPA transcript", err)
	}
	muCopy := append([]curve.G1Point(nil), stream.Commitments...)
	ckCopy := append([]curve.G2Point(nil), params.CkTau[:m]...)
	rCopy := append([]curve.Scalar(nil), rPowers...)
	ipaProof, challenges, err := foldIPA(suite, pairing, t, muCopy, ckCopy, rCopy)
	if err != nil {
		return nil, err
	}

	rho, err := curve.HashToScalar(suite, ipaProof.Bytes())
	if err != nil {
		return nil, kerr.Wrap("aplonk: deriving aPlonK-proof challenge", err)
	}
	gCoeffs, err := gCoefficients(suite, challenges)
	if err != nil {
		return nil, err
	}
	g := polynomial.New(suite, gCoeffs)
	gRho := g.Eval(rho)
	h := g.Add(polynomial.New(suite, []curve.Scalar{gRho.Neg()})).DivByLinear(rho)
	aPlonKProof, err := commitG2(suite, params.CkTau[:m], h)
	if err != nil {
		return nil, err
	}

	return &Block{
		Shard:       shard,
		ComF:        stream.ComF,
		VHat:        vHat,
		MuHat:       muHat,
		KZGProof:    kzgProof,
		IPAProof:    ipaProof,
		APlonKProof: aPlonKProof,
	}, nil
}

// Verify checks the KZG opening of the folded commitment, replays the IPA
// transcript to recover the challenges without recomputing L/R, and
// checks the aPlonK correctness pairing for g(rho) (spec.md §4.G Verify).
// A failed pairing check is a plain false, not an error.
func Verify(block *Block, params *Params) (bool, error) {
	suite := block.Shard.Suite
	pairing := suite.Pairing()
	if pairing == nil {
		return false, &kerr.Other{Detail: "curve " + suite.Name() + " does not support pairings"}
	}

	g1 := params.Powers.G1[0]
	h := params.Powers.G2[0]
	tauH := params.Powers.G2[1]

	ok, err := verifyFoldedOpening(block, g1, h, tauH, pairing)
	if err != nil || !ok {
		return false, err
	}

	return verifyIPA(suite, pairing, params, block, g1, h)
}

// verifyFoldedOpening checks e(muHat - vHat*G, H) == e(KZGProof, tau*H -
// point*H), where point is recovered from the shard's own Vandermonde
// column (the same trick fec shards already carry it by).
func verifyFoldedOpening(block *Block, g1 curve.G1Point, h, tauH curve.G2Point, pairing curve.Pairing) (bool, error) {
	point := block.evaluationPoint()
	lhsG1 := block.MuHat.Add(g1.ScalarMul(block.VHat).Neg())
	rhsG2 := tauH.Add(h.ScalarMul(point).Neg())
	return pairing.Eq(
		[]curve.G1Point{lhsG1}, []curve.G2Point{h},
		[]curve.G1Point{block.KZGProof}, []curve.G2Point{rhsG2},
	)
}

func verifyIPA(suite curve.Suite, pairing curve.Pairing, params *Params, block *Block, g1 curve.G1Point, h curve.G2Point) (bool, error) {
	point := block.evaluationPoint()
	r, err := curve.HashToScalar(suite, append(append([]byte{}, block.ComF.Bytes()...), point.Bytes()...))
	if err != nil {
		return false, kerr.Wrap("aplonk: deriving fold challenge", err)
	}
	t, err := newTranscript(suite, block.ComF, r, block.MuHat, len(block.IPAProof.LG))
	if err != nil {
		return false, kerr.Wrap("aplonk: building IPA transcript", err)
	}
	us, err := replayChallenges(t, block.IPAProof)
	if err != nil {
		return false, err
	}

	rho, err := curve.HashToScalar(suite, block.IPAProof.Bytes())
	if err != nil {
		return false, kerr.Wrap("aplonk: deriving aPlonK-proof challenge", err)
	}
	vRho, err := evalG(suite, us, rho)
	if err != nil {
		return false, err
	}

	tauG := params.Powers.G1[1]
	lhsG1 := tauG.Add(g1.ScalarMul(rho).Neg())
	rhsG2 := block.IPAProof.CkTau0.Add(h.ScalarMul(vRho).Neg())

	return pairing.Eq(
		[]curve.G1Point{lhsG1}, []curve.G2Point{block.APlonKProof},
		[]curve.G1Point{g1}, []curve.G2Point{rhsG2},
	)
}

// evaluationPoint recovers the point a shard's Block was proved at from
// the shard's own Vandermonde column: LinearCombination[1] is point^1
// (LinearCombination[0] is always point^0 = 1).
func (b *Block) evaluationPoint() curve.Scalar {
	if len(b.Shard.LinearCombination) < 2 {
		return b.Shard.Suite.One()
	}
	return b.Shard.LinearCombination[1]
}
