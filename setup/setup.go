// Package setup generates and uses trusted setups: sequences of powers of a
// secret scalar tau in the curve groups, and the Pedersen-style polynomial
// commitments built from them (spec.md §4.C). It generalizes the
// gnark-crypto kzg.SRS vocabulary (Digest, OpeningProof) the teacher's own
// setup.Run leans on, to an arbitrary polynomial degree supplied by the
// caller rather than a fixed PLONK circuit ceremony.
package setup

import (
	"io"

	"github.com/dragoon-rs/komodo/algebra/polynomial"
	"github.com/dragoon-rs/komodo/curve"
	"github.com/dragoon-rs/komodo/kerr"
)

// Powers is a trusted setup: [G, tau*G, tau^2*G, ..., tau^d*G] in G1, plus
// {H, tau*H} in G2 for the pairing-based schemes (KZG+, aPlonK). The secret
// scalar tau itself is never retained (spec.md §9: "ensure the secret
// scalar tau is zeroized before return").
type Powers struct {
	Suite curve.Suite
	G1    []curve.G1Point
	G2    []curve.G2Point
}

// MaxDegree is the highest polynomial degree this setup can commit to.
func (p *Powers) MaxDegree() int { return len(p.G1) - 1 }

// Setup samples tau and the G1 generator uniformly from rng and returns the
// resulting Powers, discarding tau. Fails with kerr.DegreeIsZero when
// maxDegree < 1.
func Setup(suite curve.Suite, maxDegree int, rng io.Reader) (*Powers, error) {
	if maxDegree < 1 {
		return nil, &kerr.DegreeIsZero{}
	}

	tau, err := suite.RandomScalar(rng)
	if err != nil {
		return nil, kerr.Wrap("setup: sampling tau", err)
	}

	g1, err := suite.RandomG1(rng)
	if err != nil {
		return nil, kerr.Wrap("setup: sampling G1 base point", err)
	}

	g1Powers := make([]curve.G1Point, maxDegree+1)
	cur := suite.One()
	for i := 0; i <= maxDegree; i++ {
		g1Powers[i] = g1.ScalarMul(cur)
		cur = cur.Mul(tau)
	}

	h := suite.G2Generator()
	g2Powers := []curve.G2Point{h, h.ScalarMul(tau)}

	// tau is a local variable going out of scope here; nothing else in
	// the package retains it, which is as close to zeroization as a
	// garbage-collected curve.Scalar interface value allows.
	tau = nil

	return &Powers{Suite: suite, G1: g1Powers, G2: g2Powers}, nil
}

// Commit computes the Pedersen-style commitment of p against the matching
// prefix of powers.G1: C = sum_i coeffs[i] * (tau^i * G). Fails with
// kerr.TooFewPowersInTrustedSetup if deg(p)+1 exceeds the number of
// available powers.
func Commit(powers *Powers, p *polynomial.Polynomial) (curve.G1Point, error) {
	coeffs := p.Coefficients()
	if p.Degree()+1 > len(powers.G1) {
		return nil, &kerr.TooFewPowersInTrustedSetup{
			NumPowers:       len(powers.G1),
			NumCoefficients: p.Degree() + 1,
		}
	}

	acc := powers.Suite.G1Identity()
	for i, c := range coeffs {
		if c.IsZero() {
			continue
		}
		acc = acc.Add(powers.G1[i].ScalarMul(c))
	}
	return acc, nil
}

// BatchCommit commits each polynomial in ps independently. The homomorphism
// commit(sum_i lambda_i*p_i) = sum_i lambda_i*commit(p_i) that Semi-AVID
// relies on (spec.md §4.C) follows directly from Commit being linear in p's
// coefficients.
func BatchCommit(powers *Powers, ps []*polynomial.Polynomial) ([]curve.G1Point, error) {
	out := make([]curve.G1Point, len(ps))
	for i, p := range ps {
		c, err := Commit(powers, p)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}
