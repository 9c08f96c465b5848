package setup

import (
	"crypto/rand"
	"testing"

	"github.com/dragoon-rs/komodo/algebra/polynomial"
	"github.com/dragoon-rs/komodo/curve"
)

func TestSetupRejectsZeroDegree(t *testing.T) {
	suite := curve.BN254()
	if _, err := Setup(suite, 0, rand.Reader); err == nil {
		t.Fatalf("expected DegreeIsZero error")
	}
}

func TestCommitHomomorphism(t *testing.T) {
	suite := curve.BN254()
	powers, err := Setup(suite, 8, rand.Reader)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	one := suite.One()
	two := one.Add(one)
	p1 := polynomial.New(suite, []curve.Scalar{one, two})
	p2 := polynomial.New(suite, []curve.Scalar{two, one})

	c1, err := Commit(powers, p1)
	if err != nil {
		t.Fatalf("commit p1: %v", err)
	}
	c2, err := Commit(powers, p2)
	if err != nil {
		t.Fatalf("commit p2: %v", err)
	}

	lambda1, lambda2 := two, one
	combined := p1.Scale(lambda1).Add(p2.Scale(lambda2))
	cCombined, err := Commit(powers, combined)
	if err != nil {
		t.Fatalf("commit combined: %v", err)
	}

	rhs := c1.ScalarMul(lambda1).Add(c2.ScalarMul(lambda2))
	if !cCombined.Equal(rhs) {
		t.Fatalf("commit is not homomorphic")
	}
}

func TestCommitTooFewPowers(t *testing.T) {
	suite := curve.BN254()
	powers, err := Setup(suite, 2, rand.Reader)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	one := suite.One()
	p := polynomial.New(suite, []curve.Scalar{one, one, one, one, one})
	if _, err := Commit(powers, p); err == nil {
		t.Fatalf("expected TooFewPowersInTrustedSetup error")
	}
}

func TestBatchCommit(t *testing.T) {
	suite := curve.BN254()
	powers, err := Setup(suite, 4, rand.Reader)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	one := suite.One()
	ps := []*polynomial.Polynomial{
		polynomial.New(suite, []curve.Scalar{one}),
		polynomial.New(suite, []curve.Scalar{one, one}),
	}
	commits, err := BatchCommit(powers, ps)
	if err != nil {
		t.Fatalf("batch commit: %v", err)
	}
	if len(commits) != 2 {
		t.Fatalf("expected 2 commitments, got %d", len(commits))
	}
}
