// Package polynomial implements dense univariate polynomials over a
// curve.Suite's scalar field, lowest-degree coefficient first (spec.md
// §3).
package polynomial

import "github.com/dragoon-rs/komodo/curve"

// Polynomial is a dense coefficient vector, p(X) = sum_i coeffs[i]*X^i.
type Polynomial struct {
	suite    curve.Suite
	coeffs   []curve.Scalar
}

// New builds a Polynomial from coefficients, lowest-degree first.
func New(suite curve.Suite, coeffs []curve.Scalar) *Polynomial {
	return &Polynomial{suite: suite, coeffs: append([]curve.Scalar(nil), coeffs...)}
}

// Zero returns the zero polynomial.
func Zero(suite curve.Suite) *Polynomial { return &Polynomial{suite: suite} }

// Suite returns the scalar field suite the polynomial's coefficients
// belong to.
func (p *Polynomial) Suite() curve.Suite { return p.suite }

// Coefficients returns the polynomial's coefficients, lowest-degree first.
func (p *Polynomial) Coefficients() []curve.Scalar { return p.coeffs }

// Degree is the index of the last non-zero coefficient, or -1 for the zero
// polynomial.
func (p *Polynomial) Degree() int {
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		if !p.coeffs[i].IsZero() {
			return i
		}
	}
	return -1
}

// Eval evaluates p at x using Horner's method.
func (p *Polynomial) Eval(x curve.Scalar) curve.Scalar {
	if len(p.coeffs) == 0 {
		return p.suite.Zero()
	}
	acc := p.coeffs[len(p.coeffs)-1]
	for i := len(p.coeffs) - 2; i >= 0; i-- {
		acc = acc.Mul(x).Add(p.coeffs[i])
	}
	return acc
}

// Add returns p + q.
func (p *Polynomial) Add(q *Polynomial) *Polynomial {
	n := len(p.coeffs)
	if len(q.coeffs) > n {
		n = len(q.coeffs)
	}
	out := make([]curve.Scalar, n)
	zero := p.suite.Zero()
	for i := 0; i < n; i++ {
		a, b := zero, zero
		if i < len(p.coeffs) {
			a = p.coeffs[i]
		}
		if i < len(q.coeffs) {
			b = q.coeffs[i]
		}
		out[i] = a.Add(b)
	}
	return New(p.suite, out)
}

// Scale returns c*p.
func (p *Polynomial) Scale(c curve.Scalar) *Polynomial {
	out := make([]curve.Scalar, len(p.coeffs))
	for i, a := range p.coeffs {
		out[i] = a.Mul(c)
	}
	return New(p.suite, out)
}

// DivByLinear computes (p(X) - p(a)) / (X - a) via synthetic division,
// the witness polynomial construction KZG-style openings use (spec.md
// §4.F, §4.G).
func (p *Polynomial) DivByLinear(a curve.Scalar) *Polynomial {
	n := len(p.coeffs)
	if n == 0 {
		return Zero(p.suite)
	}
	quotient := make([]curve.Scalar, n-1)
	carry := p.suite.Zero()
	for i := n - 1; i >= 1; i-- {
		coeff := p.coeffs[i].Add(carry)
		quotient[i-1] = coeff
		carry = coeff.Mul(a)
	}
	return New(p.suite, quotient)
}
