package curve

import (
	"errors"
	"io"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	fr "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"

	"github.com/dragoon-rs/komodo/kerr"
)

// BLS12381 is the secondary Suite, mirroring the teacher's
// setup/DuskBLS12_381 and setup/EethereumKzgCeremonyBLS12_381 support for
// the same curve family. komodo never embeds a specific real-world
// ceremony (spec.md §9: "treat setup RNG as caller-supplied in all
// cases") so only one BLS12-381 Suite is needed, not one per ceremony.
func BLS12381() Suite { return blsSuite{} }

type blsSuite struct{}

func (blsSuite) Name() string { return "bls12-381" }

func (blsSuite) BitSize() int { return fr.Modulus().BitLen() }

func (s blsSuite) UsableBytes() int { return (s.BitSize() - 1) / 8 }

func (s blsSuite) ElementBytes() int { return (s.BitSize() + 7) / 8 }

func (blsSuite) Modulus() *big.Int { return fr.Modulus() }

func (blsSuite) Zero() Scalar {
	var e fr.Element
	return blsScalar{e}
}

func (blsSuite) One() Scalar {
	var e fr.Element
	e.SetOne()
	return blsScalar{e}
}

func (s blsSuite) ScalarFromBytes(b []byte) (Scalar, error) {
	v := new(big.Int).SetBytes(reverseBytes(b))
	v.Mod(v, fr.Modulus())
	var e fr.Element
	e.SetBigInt(v)
	return blsScalar{e}, nil
}

func (s blsSuite) RandomScalar(rng io.Reader) (Scalar, error) {
	v, err := randBigInt(rng, fr.Modulus())
	if err != nil {
		return nil, err
	}
	var e fr.Element
	e.SetBigInt(v)
	return blsScalar{e}, nil
}

func (blsSuite) G1Generator() G1Point {
	_, _, g1, _ := bls12381.Generators()
	return blsG1{g1}
}

func (blsSuite) G1Identity() G1Point {
	var id bls12381.G1Affine
	return blsG1{id}
}

func (s blsSuite) RandomG1(rng io.Reader) (G1Point, error) {
	k, err := randBigInt(rng, fr.Modulus())
	if err != nil {
		return nil, err
	}
	_, _, g1, _ := bls12381.Generators()
	var p bls12381.G1Affine
	p.ScalarMultiplication(&g1, k)
	return blsG1{p}, nil
}

func (blsSuite) G2Generator() G2Point {
	_, _, _, g2 := bls12381.Generators()
	return blsG2{g2}
}

func (blsSuite) Pairing() Pairing { return blsPairing{} }

// RootOfUnity mirrors bn254Suite.RootOfUnity using BLS12-381's own
// fr/fft package, the two curve families each owning a non-interchangeable
// fft.Domain type over their own fr.Element.
func (blsSuite) RootOfUnity(n uint64) (Scalar, error) {
	d := fft.NewDomain(n)
	if d.Cardinality != n {
		return nil, &kerr.NonPowerOfTwoDomain{What: "n", Value: int(n)}
	}
	return blsScalar{d.Generator}, nil
}

// --- scalar ---

type blsScalar struct{ e fr.Element }

func (s blsScalar) Add(o Scalar) Scalar {
	var r fr.Element
	r.Add(&s.e, &o.(blsScalar).e)
	return blsScalar{r}
}

func (s blsScalar) Sub(o Scalar) Scalar {
	var r fr.Element
	r.Sub(&s.e, &o.(blsScalar).e)
	return blsScalar{r}
}

func (s blsScalar) Mul(o Scalar) Scalar {
	var r fr.Element
	r.Mul(&s.e, &o.(blsScalar).e)
	return blsScalar{r}
}

func (s blsScalar) Neg() Scalar {
	var r fr.Element
	r.Neg(&s.e)
	return blsScalar{r}
}

func (s blsScalar) Inverse() (Scalar, error) {
	if s.e.IsZero() {
		return nil, errors.New("curve: inverse of zero scalar")
	}
	var r fr.Element
	r.Inverse(&s.e)
	return blsScalar{r}, nil
}

func (s blsScalar) IsZero() bool { return s.e.IsZero() }

func (s blsScalar) Equal(o Scalar) bool { return s.e.Equal(&o.(blsScalar).e) }

func (s blsScalar) Bytes() []byte {
	be := new(big.Int)
	s.e.BigInt(be)
	return leFixed(be, (fr.Modulus().BitLen()+7)/8)
}

func (s blsScalar) BigInt() *big.Int {
	be := new(big.Int)
	s.e.BigInt(be)
	return be
}

func (s blsScalar) String() string { return s.e.String() }

// --- G1 ---

type blsG1 struct{ p bls12381.G1Affine }

func (g blsG1) Add(o G1Point) G1Point {
	var jac, oj bls12381.G1Jac
	jac.FromAffine(&g.p)
	oj.FromAffine(&o.(blsG1).p)
	jac.AddAssign(&oj)
	var a bls12381.G1Affine
	a.FromJacobian(&jac)
	return blsG1{a}
}

func (g blsG1) Neg() G1Point {
	var n bls12381.G1Affine
	n.Neg(&g.p)
	return blsG1{n}
}

func (g blsG1) ScalarMul(s Scalar) G1Point {
	var r bls12381.G1Affine
	r.ScalarMultiplication(&g.p, s.BigInt())
	return blsG1{r}
}

func (g blsG1) Equal(o G1Point) bool { return g.p.Equal(&o.(blsG1).p) }

func (g blsG1) IsIdentity() bool { return g.p.IsInfinity() }

func (g blsG1) Bytes() []byte {
	b := g.p.Bytes()
	return b[:]
}

// --- G2 ---

type blsG2 struct{ p bls12381.G2Affine }

func (g blsG2) Add(o G2Point) G2Point {
	var jac, oj bls12381.G2Jac
	jac.FromAffine(&g.p)
	oj.FromAffine(&o.(blsG2).p)
	jac.AddAssign(&oj)
	var a bls12381.G2Affine
	a.FromJacobian(&jac)
	return blsG2{a}
}

func (g blsG2) Neg() G2Point {
	var n bls12381.G2Affine
	n.Neg(&g.p)
	return blsG2{n}
}

func (g blsG2) ScalarMul(s Scalar) G2Point {
	var r bls12381.G2Affine
	r.ScalarMultiplication(&g.p, s.BigInt())
	return blsG2{r}
}

func (g blsG2) Equal(o G2Point) bool { return g.p.Equal(&o.(blsG2).p) }

func (g blsG2) Bytes() []byte {
	b := g.p.Bytes()
	return b[:]
}

// --- GT / pairing ---

type blsGT struct{ e bls12381.GT }

func (g blsGT) Equal(o GTElement) bool { return g.e.Equal(&o.(blsGT).e) }
func (g blsGT) IsOne() bool            { return g.e.IsOne() }

func (g blsGT) Mul(o GTElement) GTElement {
	var r bls12381.GT
	r.Mul(&g.e, &o.(blsGT).e)
	return blsGT{r}
}

func (g blsGT) Bytes() []byte { return []byte(g.e.String()) }

type blsPairing struct{}

func (blsPairing) Pair(g1s []G1Point, g2s []G2Point) (GTElement, error) {
	a := make([]bls12381.G1Affine, len(g1s))
	b := make([]bls12381.G2Affine, len(g2s))
	for i := range g1s {
		a[i] = g1s[i].(blsG1).p
		b[i] = g2s[i].(blsG2).p
	}
	res, err := bls12381.Pair(a, b)
	if err != nil {
		return nil, err
	}
	return blsGT{res}, nil
}

func (blsPairing) Eq(lhsG1 []G1Point, lhsG2 []G2Point, rhsG1 []G1Point, rhsG2 []G2Point) (bool, error) {
	g1s := make([]bls12381.G1Affine, 0, len(lhsG1)+len(rhsG1))
	g2s := make([]bls12381.G2Affine, 0, len(lhsG2)+len(rhsG2))
	for i := range lhsG1 {
		g1s = append(g1s, lhsG1[i].(blsG1).p)
		g2s = append(g2s, lhsG2[i].(blsG2).p)
	}
	for i := range rhsG1 {
		var neg bls12381.G1Affine
		neg.Neg(&rhsG1[i].(blsG1).p)
		g1s = append(g1s, neg)
		g2s = append(g2s, rhsG2[i].(blsG2).p)
	}
	res, err := bls12381.Pair(g1s, g2s)
	if err != nil {
		return false, err
	}
	return res.IsOne(), nil
}
