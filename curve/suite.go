// Package curve generalizes the prime-field and curve-group arithmetic that
// the rest of komodo is built on, the same way the teacher dispatches on
// ecc.ID in setup.Run: one Suite per target curve, resolved once at the
// library boundary and threaded through everywhere else.
package curve

import (
	"fmt"
	"io"
	"math/big"
)

// Scalar is an element of the scalar field F backing a Suite. Arithmetic
// methods return a new Scalar rather than mutating the receiver, so callers
// can chain them without aliasing surprises.
type Scalar interface {
	Add(Scalar) Scalar
	Sub(Scalar) Scalar
	Mul(Scalar) Scalar
	Neg() Scalar
	Inverse() (Scalar, error)
	IsZero() bool
	Equal(Scalar) bool

	// Bytes returns the little-endian canonical encoding of the element,
	// ElementBytes() = ceil(BitSize()/8) bytes long (spec.md §3: "element size").
	Bytes() []byte

	// BigInt returns the element as a non-negative integer < the field
	// modulus.
	BigInt() *big.Int

	String() string
}

// G1Point is an element of the first curve group, used for commitments.
type G1Point interface {
	Add(G1Point) G1Point
	Neg() G1Point
	ScalarMul(Scalar) G1Point
	Equal(G1Point) bool
	IsIdentity() bool
	Bytes() []byte
}

// G2Point is an element of the second curve group, used only by pairing
// based schemes (KZG+, aPlonK).
type G2Point interface {
	Add(G2Point) G2Point
	Neg() G2Point
	ScalarMul(Scalar) G2Point
	Equal(G2Point) bool
	Bytes() []byte
}

// GTElement is an element of the target group of the bilinear pairing,
// written multiplicatively.
type GTElement interface {
	Mul(GTElement) GTElement
	Equal(GTElement) bool
	IsOne() bool

	// Bytes returns a deterministic byte encoding suitable for folding a
	// GTElement into a Fiat-Shamir transcript (aPlonK's com_F, spec.md
	// §4.G). It is not a canonical point encoding.
	Bytes() []byte
}

// Suite bundles a prime field F with curve groups G1, G2 and (where the
// curve is pairing friendly) the bilinear map e: G1 x G2 -> GT. It is the
// capability set spec.md §9 asks implementers to expose: "a capability set
// {PrimeField, CurveGroup, (Pairing)}... instantiated once per target
// curve".
type Suite interface {
	Name() string

	// BitSize is the bit length of the field modulus p.
	BitSize() int
	// UsableBytes is (BitSize-1)/8, the number of input bytes that can be
	// packed into one element while guaranteeing unique reduction mod p
	// (spec.md §4.A).
	UsableBytes() int
	// ElementBytes is ceil(BitSize/8), the serialized size of one Scalar.
	ElementBytes() int
	// Modulus is the scalar field's prime characteristic p.
	Modulus() *big.Int

	Zero() Scalar
	One() Scalar
	ScalarFromBytes(b []byte) (Scalar, error)
	RandomScalar(rng io.Reader) (Scalar, error)

	G1Generator() G1Point
	G1Identity() G1Point
	RandomG1(rng io.Reader) (G1Point, error)

	G2Generator() G2Point

	// Pairing is nil for curves that do not support a bilinear map.
	Pairing() Pairing

	// RootOfUnity returns a generator of F*'s order-n subgroup, n a power
	// of two, computed via gnark-crypto's own FFT domain construction
	// (ecc/<curve>/fr/fft.NewDomain) rather than a hand-rolled
	// exponentiation, the same way that package derives the generator its
	// own FFT/FRI code evaluates polynomials over.
	RootOfUnity(n uint64) (Scalar, error)
}

// Pairing computes e(P_i, Q_i) products; a Suite only implements this when
// its curve is pairing friendly (KZG+, aPlonK; Semi-AVID never calls it).
type Pairing interface {
	// Eq returns true iff the product of pairings over (lhsG1, lhsG2)
	// equals the product over (rhsG1, rhsG2), i.e. it checks
	// prod e(lhsG1_i, lhsG2_i) == prod e(rhsG1_i, rhsG2_i) without ever
	// materializing a GT element the caller has to compare by hand.
	Eq(lhsG1 []G1Point, lhsG2 []G2Point, rhsG1 []G1Point, rhsG2 []G2Point) (bool, error)

	// Pair returns the product prod e(g1_i, g2_i), the GT element itself
	// rather than a comparison against one (aPlonK's folded commitment
	// com_F, spec.md §4.G, needs the raw value).
	Pair(g1s []G1Point, g2s []G2Point) (GTElement, error)
}

// ErrUnsupportedCurve is returned by By when asked for a curve komodo does
// not implement a Suite for.
type ErrUnsupportedCurve struct{ Name string }

func (e *ErrUnsupportedCurve) Error() string {
	return fmt.Sprintf("curve: unsupported curve %q", e.Name)
}
