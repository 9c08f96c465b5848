package aplonk

import (
	"golang.org/x/sync/errgroup"

	"github.com/dragoon-rs/komodo/algebra/polynomial"
	"github.com/dragoon-rs/komodo/curve"
	"github.com/dragoon-rs/komodo/kerr"
)

// IPAProof is the transcript of the inner-product-argument fold of (mu,
// ck_tau, r-powers) down to a single triple (spec.md §4.G): one
// (L_G, R_G, L_r, R_r) tuple per round, plus the final singletons.
type IPAProof struct {
	LG     []curve.GTElement
	RG     []curve.GTElement
	Lr     []curve.G1Point
	Rr     []curve.G1Point
	Mu0    curve.G1Point
	CkTau0 curve.G2Point
}

// Bytes concatenates every field of the proof, used to derive the
// aPlonK-commitment challenge rho = H(IPA-proof).
func (p *IPAProof) Bytes() []byte {
	var out []byte
	for j := range p.LG {
		out = append(out, roundBytes(p.LG[j], p.RG[j], p.Lr[j], p.Rr[j])...)
	}
	out = append(out, p.Mu0.Bytes()...)
	out = append(out, p.CkTau0.Bytes()...)
	return out
}

func roundBytes(lg, rg curve.GTElement, lr, rr curve.G1Point) []byte {
	var out []byte
	out = append(out, lg.Bytes()...)
	out = append(out, rg.Bytes()...)
	out = append(out, lr.Bytes()...)
	out = append(out, rr.Bytes()...)
	return out
}

func isPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }

// log2 returns the base-2 logarithm of n, a power of two, i.e. the
// number of IPA fold rounds needed to collapse n commitments to one.
func log2(n int) int {
	r := 0
	for n > 1 {
		n >>= 1
		r++
	}
	return r
}

// foldIPA runs the kappa = log2(len(mu)) rounds of the inner-product
// argument and returns the proof plus the kappa challenges u_0..u_{kappa-1}.
// Rounds count down: the first round splits on the top bit of the index and
// derives u_{kappa-1}, the last splits on bit 0 and derives u_0, so u_j is
// the challenge paired with X^(2^j) in g(X), the order Prove needs to build
// g(X) (spec.md §4.G step 5) and the order Verify's replay must reproduce.
func foldIPA(suite curve.Suite, pairing curve.Pairing, t *transcript, mu []curve.G1Point, ckTau []curve.G2Point, rPowers []curve.Scalar) (*IPAProof, []curve.Scalar, error) {
	n := len(mu)
	if !isPowerOfTwo(n) {
		return nil, nil, &kerr.PolynomialCountIpa{Count: n}
	}

	proof := &IPAProof{}
	var challenges []curve.Scalar

	for n > 1 {
		half := n / 2
		muL, muR := mu[:half], mu[half:]
		ckL, ckR := ckTau[:half], ckTau[half:]
		rL, rR := rPowers[:half], rPowers[half:]

		// L_G, R_G (pairings) and L_r, R_r (scalar products) are each
		// independent of the other three, so the four cross-terms run
		// concurrently (spec.md §5: "internal parallelism... allowed").
		var lg, rg curve.GTElement
		var lr, rr curve.G1Point
		g := new(errgroup.Group)
		g.Go(func() (err error) { lg, err = pairing.Pair(muR, ckL); return })
		g.Go(func() (err error) { rg, err = pairing.Pair(muL, ckR); return })
		g.Go(func() error {
			acc := muL[0].ScalarMul(rR[0])
			for i := 1; i < half; i++ {
				acc = acc.Add(muL[i].ScalarMul(rR[i]))
			}
			lr = acc
			return nil
		})
		g.Go(func() error {
			acc := muR[0].ScalarMul(rL[0])
			for i := 1; i < half; i++ {
				acc = acc.Add(muR[i].ScalarMul(rL[i]))
			}
			rr = acc
			return nil
		})
		if err := g.Wait(); err != nil {
			return nil, nil, err
		}

		u, err := t.challenge(roundBytes(lg, rg, lr, rr))
		if err != nil {
			return nil, nil, err
		}
		uInv, err := u.Inverse()
		if err != nil {
			return nil, nil, err
		}

		newMu := make([]curve.G1Point, half)
		newCk := make([]curve.G2Point, half)
		newR := make([]curve.Scalar, half)
		for i := 0; i < half; i++ {
			newMu[i] = muL[i].ScalarMul(u).Add(muR[i].ScalarMul(uInv))
			newCk[i] = ckL[i].ScalarMul(uInv).Add(ckR[i].ScalarMul(u))
			newR[i] = rL[i].Mul(uInv).Add(rR[i].Mul(u))
		}

		proof.LG = append(proof.LG, lg)
		proof.RG = append(proof.RG, rg)
		proof.Lr = append(proof.Lr, lr)
		proof.Rr = append(proof.Rr, rr)
		challenges = append([]curve.Scalar{u}, challenges...)

		mu, ckTau, rPowers = newMu, newCk, newR
		n = half
	}

	proof.Mu0 = mu[0]
	proof.CkTau0 = ckTau[0]
	return proof, challenges, nil
}

// replayChallenges recomputes u_0..u_{kappa-1}, indexed as foldIPA returns
// them (the first round yields u_{kappa-1}), from the proof's stored
// L/R values without recomputing them from mu/ck_tau (spec.md §4.G
// Verify: "replay IPA transcript to derive us without recomputing L/R").
func replayChallenges(t *transcript, p *IPAProof) ([]curve.Scalar, error) {
	us := make([]curve.Scalar, len(p.LG))
	for j := range p.LG {
		u, err := t.challenge(roundBytes(p.LG[j], p.RG[j], p.Lr[j], p.Rr[j]))
		if err != nil {
			return nil, err
		}
		us[len(p.LG)-1-j] = u
	}
	return us, nil
}

// gCoefficients returns the k = 2^len(us) coefficients of
// g(X) = prod_j (u_j^-1 + u_j * X^(2^j)): coefficient j is the product,
// over each bit i of j, of u_i (bit set) or u_i^-1 (bit clear) (spec.md
// §4.G: "never constructed by iterated multiplication").
func gCoefficients(suite curve.Suite, us []curve.Scalar) ([]curve.Scalar, error) {
	uInvs := make([]curve.Scalar, len(us))
	for i, u := range us {
		inv, err := u.Inverse()
		if err != nil {
			return nil, err
		}
		uInvs[i] = inv
	}

	k := 1 << len(us)
	coeffs := make([]curve.Scalar, k)
	for j := 0; j < k; j++ {
		acc := suite.One()
		for i := range us {
			if (j>>i)&1 == 1 {
				acc = acc.Mul(us[i])
			} else {
				acc = acc.Mul(uInvs[i])
			}
		}
		coeffs[j] = acc
	}
	return coeffs, nil
}

// evalG evaluates g(X) = prod_j (u_j^-1 + u_j * X^(2^j)) at x directly from
// the IPA challenges, without materializing its coefficients.
func evalG(suite curve.Suite, us []curve.Scalar, x curve.Scalar) (curve.Scalar, error) {
	acc := suite.One()
	xPow := x
	for _, u := range us {
		uInv, err := u.Inverse()
		if err != nil {
			return nil, err
		}
		acc = acc.Mul(uInv.Add(u.Mul(xPow)))
		xPow = xPow.Mul(xPow)
	}
	return acc, nil
}

// commitG2 computes sum_i coeffs[i] * ck[i], the G2-side analogue of
// setup.Commit used to bind the aPlonK correctness proof h(X) to ck_tau
// (spec.md §4.G step 5: "commit h via ck_tau").
func commitG2(suite curve.Suite, ck []curve.G2Point, p *polynomial.Polynomial) (curve.G2Point, error) {
	coeffs := p.Coefficients()
	if len(coeffs) > len(ck) {
		return nil, &kerr.TooFewPowersInTrustedSetup{NumPowers: len(ck), NumCoefficients: len(coeffs)}
	}
	acc := ck[0].ScalarMul(suite.Zero())
	for i, c := range coeffs {
		if c.IsZero() {
			continue
		}
		acc = acc.Add(ck[i].ScalarMul(c))
	}
	return acc, nil
}
