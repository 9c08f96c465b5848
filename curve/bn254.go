package curve

import (
	"errors"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"

	"github.com/dragoon-rs/komodo/kerr"
)

// BN254 is the default Suite, matching the teacher's TestOnly BN254 path in
// setup/setup.go (gnark-crypto's BN254 has no real trusted ceremony, so
// komodo's caller-supplied-RNG setup model, spec.md §6, fits it exactly).
func BN254() Suite { return bn254Suite{} }

type bn254Suite struct{}

func (bn254Suite) Name() string { return "bn254" }

func (bn254Suite) BitSize() int { return fr.Modulus().BitLen() }

func (s bn254Suite) UsableBytes() int { return (s.BitSize() - 1) / 8 }

func (s bn254Suite) ElementBytes() int { return (s.BitSize() + 7) / 8 }

func (bn254Suite) Modulus() *big.Int { return fr.Modulus() }

func (bn254Suite) Zero() Scalar {
	var e fr.Element
	return bn254Scalar{e}
}

func (bn254Suite) One() Scalar {
	var e fr.Element
	e.SetOne()
	return bn254Scalar{e}
}

func (s bn254Suite) ScalarFromBytes(b []byte) (Scalar, error) {
	v := new(big.Int).SetBytes(reverseBytes(b))
	v.Mod(v, fr.Modulus())
	var e fr.Element
	e.SetBigInt(v)
	return bn254Scalar{e}, nil
}

func (s bn254Suite) RandomScalar(rng io.Reader) (Scalar, error) {
	v, err := randBigInt(rng, fr.Modulus())
	if err != nil {
		return nil, err
	}
	var e fr.Element
	e.SetBigInt(v)
	return bn254Scalar{e}, nil
}

func (bn254Suite) G1Generator() G1Point {
	_, _, g1, _ := bn254.Generators()
	return bn254G1{g1}
}

func (bn254Suite) G1Identity() G1Point {
	var id bn254.G1Affine
	return bn254G1{id}
}

func (s bn254Suite) RandomG1(rng io.Reader) (G1Point, error) {
	k, err := randBigInt(rng, fr.Modulus())
	if err != nil {
		return nil, err
	}
	_, _, g1, _ := bn254.Generators()
	var p bn254.G1Affine
	p.ScalarMultiplication(&g1, k)
	return bn254G1{p}, nil
}

func (bn254Suite) G2Generator() G2Point {
	_, _, _, g2 := bn254.Generators()
	return bn254G2{g2}
}

func (bn254Suite) Pairing() Pairing { return bn254Pairing{} }

// RootOfUnity asks gnark-crypto's own FFT domain builder for the
// generator of the order-n subgroup: fft.NewDomain rounds n up to the next
// power of two, so a domain whose Cardinality differs from n means n was
// not a power of two.
func (bn254Suite) RootOfUnity(n uint64) (Scalar, error) {
	d := fft.NewDomain(n)
	if d.Cardinality != n {
		return nil, &kerr.NonPowerOfTwoDomain{What: "n", Value: int(n)}
	}
	return bn254Scalar{d.Generator}, nil
}

// --- scalar ---

type bn254Scalar struct{ e fr.Element }

func (s bn254Scalar) Add(o Scalar) Scalar {
	var r fr.Element
	r.Add(&s.e, &o.(bn254Scalar).e)
	return bn254Scalar{r}
}

func (s bn254Scalar) Sub(o Scalar) Scalar {
	var r fr.Element
	r.Sub(&s.e, &o.(bn254Scalar).e)
	return bn254Scalar{r}
}

func (s bn254Scalar) Mul(o Scalar) Scalar {
	var r fr.Element
	r.Mul(&s.e, &o.(bn254Scalar).e)
	return bn254Scalar{r}
}

func (s bn254Scalar) Neg() Scalar {
	var r fr.Element
	r.Neg(&s.e)
	return bn254Scalar{r}
}

func (s bn254Scalar) Inverse() (Scalar, error) {
	if s.e.IsZero() {
		return nil, errors.New("curve: inverse of zero scalar")
	}
	var r fr.Element
	r.Inverse(&s.e)
	return bn254Scalar{r}, nil
}

func (s bn254Scalar) IsZero() bool { return s.e.IsZero() }

func (s bn254Scalar) Equal(o Scalar) bool { return s.e.Equal(&o.(bn254Scalar).e) }

func (s bn254Scalar) Bytes() []byte {
	be := new(big.Int)
	s.e.BigInt(be)
	return leFixed(be, (fr.Modulus().BitLen()+7)/8)
}

func (s bn254Scalar) BigInt() *big.Int {
	be := new(big.Int)
	s.e.BigInt(be)
	return be
}

func (s bn254Scalar) String() string { return s.e.String() }

// --- G1 ---

type bn254G1 struct{ p bn254.G1Affine }

func (g bn254G1) Add(o G1Point) G1Point {
	var jac, oj bn254.G1Jac
	jac.FromAffine(&g.p)
	oj.FromAffine(&o.(bn254G1).p)
	jac.AddAssign(&oj)
	var a bn254.G1Affine
	a.FromJacobian(&jac)
	return bn254G1{a}
}

func (g bn254G1) Neg() G1Point {
	var n bn254.G1Affine
	n.Neg(&g.p)
	return bn254G1{n}
}

func (g bn254G1) ScalarMul(s Scalar) G1Point {
	var r bn254.G1Affine
	r.ScalarMultiplication(&g.p, s.BigInt())
	return bn254G1{r}
}

func (g bn254G1) Equal(o G1Point) bool { return g.p.Equal(&o.(bn254G1).p) }

func (g bn254G1) IsIdentity() bool { return g.p.IsInfinity() }

func (g bn254G1) Bytes() []byte {
	b := g.p.Bytes()
	return b[:]
}

// --- G2 ---

type bn254G2 struct{ p bn254.G2Affine }

func (g bn254G2) Add(o G2Point) G2Point {
	var jac, oj bn254.G2Jac
	jac.FromAffine(&g.p)
	oj.FromAffine(&o.(bn254G2).p)
	jac.AddAssign(&oj)
	var a bn254.G2Affine
	a.FromJacobian(&jac)
	return bn254G2{a}
}

func (g bn254G2) Neg() G2Point {
	var n bn254.G2Affine
	n.Neg(&g.p)
	return bn254G2{n}
}

func (g bn254G2) ScalarMul(s Scalar) G2Point {
	var r bn254.G2Affine
	r.ScalarMultiplication(&g.p, s.BigInt())
	return bn254G2{r}
}

func (g bn254G2) Equal(o G2Point) bool { return g.p.Equal(&o.(bn254G2).p) }

func (g bn254G2) Bytes() []byte {
	b := g.p.Bytes()
	return b[:]
}

// --- GT / pairing ---

type bn254GT struct{ e bn254.GT }

func (g bn254GT) Equal(o GTElement) bool { return g.e.Equal(&o.(bn254GT).e) }
func (g bn254GT) IsOne() bool            { return g.e.IsOne() }

func (g bn254GT) Mul(o GTElement) GTElement {
	var r bn254.GT
	r.Mul(&g.e, &o.(bn254GT).e)
	return bn254GT{r}
}

func (g bn254GT) Bytes() []byte { return []byte(g.e.String()) }

type bn254Pairing struct{}

func (bn254Pairing) Pair(g1s []G1Point, g2s []G2Point) (GTElement, error) {
	a := make([]bn254.G1Affine, len(g1s))
	b := make([]bn254.G2Affine, len(g2s))
	for i := range g1s {
		a[i] = g1s[i].(bn254G1).p
		b[i] = g2s[i].(bn254G2).p
	}
	res, err := bn254.Pair(a, b)
	if err != nil {
		return nil, err
	}
	return bn254GT{res}, nil
}

func (bn254Pairing) Eq(lhsG1 []G1Point, lhsG2 []G2Point, rhsG1 []G1Point, rhsG2 []G2Point) (bool, error) {
	g1s := make([]bn254.G1Affine, 0, len(lhsG1)+len(rhsG1))
	g2s := make([]bn254.G2Affine, 0, len(lhsG2)+len(rhsG2))
	for i := range lhsG1 {
		g1s = append(g1s, lhsG1[i].(bn254G1).p)
		g2s = append(g2s, lhsG2[i].(bn254G2).p)
	}
	for i := range rhsG1 {
		var neg bn254.G1Affine
		neg.Neg(&rhsG1[i].(bn254G1).p)
		g1s = append(g1s, neg)
		g2s = append(g2s, rhsG2[i].(bn254G2).p)
	}
	res, err := bn254.Pair(g1s, g2s)
	if err != nil {
		return false, err
	}
	return res.IsOne(), nil
}
