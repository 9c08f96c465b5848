package curve

import (
	"crypto/sha256"

	fiatshamir "github.com/consensys/gnark-crypto/fiat-shamir"
)

// HashToScalar binds data into a one-shot gnark-crypto Fiat-Shamir
// transcript and reduces the resulting challenge into a Scalar of suite,
// the non-interactive challenge derivation KZG+ and aPlonK use in place
// of a verifier supplied random point (spec.md §4.F: "derive r =
// H(shard.data)").
func HashToScalar(suite Suite, data []byte) (Scalar, error) {
	fs := fiatshamir.NewTranscript(sha256.New(), "challenge")
	if err := fs.Bind("challenge", data); err != nil {
		return nil, err
	}
	digest, err := fs.ComputeChallenge("challenge")
	if err != nil {
		return nil, err
	}
	return suite.ScalarFromBytes(digest)
}
