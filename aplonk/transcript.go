package aplonk

import (
	"crypto/sha256"
	"fmt"

	fiatshamir "github.com/consensys/gnark-crypto/fiat-shamir"

	"github.com/dragoon-rs/komodo/curve"
)

// transcript is the Fiat-Shamir accumulator the IPA rounds draw
// challenges from, built on gnark-crypto's fiat-shamir package (the same
// one gnark's own PLONK prover uses to derive gamma/alpha/zeta out of
// circuit). It is seeded once with (com_F, r, muHat) under the "seed"
// label, then bound to one label per fold round; gnark-crypto's
// Transcript chains each round's challenge into the next, so unlike a
// hand-rolled reset-per-round hash, later rounds are bound to the whole
// history, not just the fixed seed.
type transcript struct {
	suite curve.Suite
	fs    *fiatshamir.Transcript
	round int
}

func roundLabel(i int) string { return fmt.Sprintf("u%d", i) }

// newTranscript declares the seed label plus one label per fold round
// upfront, as gnark-crypto's Transcript requires all challenge labels to
// be known at construction time.
func newTranscript(suite curve.Suite, comF curve.GTElement, r curve.Scalar, muHat curve.G1Point, rounds int) (*transcript, error) {
	labels := make([]string, rounds+1)
	labels[0] = "seed"
	for i := 0; i < rounds; i++ {
		labels[i+1] = roundLabel(i)
	}
	fs := fiatshamir.NewTranscript(sha256.New(), labels...)

	seed := make([]byte, 0, 128)
	seed = append(seed, comF.Bytes()...)
	seed = append(seed, r.Bytes()...)
	seed = append(seed, muHat.Bytes()...)
	if err := fs.Bind("seed", seed); err != nil {
		return nil, err
	}
	// The first round's challenge chains from the seed challenge, which
	// must therefore be computed before any round label is.
	if _, err := fs.ComputeChallenge("seed"); err != nil {
		return nil, err
	}
	return &transcript{suite: suite, fs: fs, round: 0}, nil
}

// challenge binds roundBytes (the current round's L_G, R_G, L_r, R_r)
// under this round's label and reduces the resulting challenge into a
// Scalar.
func (t *transcript) challenge(roundBytes []byte) (curve.Scalar, error) {
	label := roundLabel(t.round)
	if err := t.fs.Bind(label, roundBytes); err != nil {
		return nil, err
	}
	digest, err := t.fs.ComputeChallenge(label)
	if err != nil {
		return nil, err
	}
	t.round++
	return t.suite.ScalarFromBytes(digest)
}
