// Package fri implements the alternative FRI-based dispersal pipeline
// (spec.md §4.H): row-polynomials of the source matrix are evaluated over
// a root-of-unity domain instead of combined through a Vandermonde matrix,
// the interleaved evaluations are committed with a Merkle tree, and a
// shard is one column of the evaluation table plus its opening proof.
package fri

import (
	"github.com/dragoon-rs/komodo/curve"
	"github.com/dragoon-rs/komodo/kerr"
)

func isPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }

// Domain is the multiplicative subgroup {omega^0, ..., omega^(n-1)} of
// order n komodo evaluates row-polynomials over (spec.md §4.H: "a
// root-of-unity domain, n a power of two").
type Domain struct {
	Suite  curve.Suite
	Omega  curve.Scalar
	Points []curve.Scalar
}

// NewDomain builds the order-n domain. n must be a power of two dividing
// |F*| = p-1; the generator itself comes from curve.Suite.RootOfUnity,
// which defers to gnark-crypto's own FFT domain construction
// (ecc/<curve>/fr/fft.NewDomain) rather than a hand-rolled
// exponentiation.
func NewDomain(suite curve.Suite, n int) (*Domain, error) {
	if !isPowerOfTwo(n) {
		return nil, &kerr.NonPowerOfTwoDomain{What: "n", Value: n}
	}
	omega, err := suite.RootOfUnity(uint64(n))
	if err != nil {
		return nil, err
	}

	points := make([]curve.Scalar, n)
	cur := suite.One()
	for i := 0; i < n; i++ {
		points[i] = cur
		cur = cur.Mul(omega)
	}
	return &Domain{Suite: suite, Omega: omega, Points: points}, nil
}
