package curve

import "strings"

// By resolves a Suite by curve name ("bn254", "bls12-381"), the tagged
// dispatch point spec.md §9 calls for at the library boundary.
func By(name string) (Suite, error) {
	switch strings.ToLower(name) {
	case "bn254":
		return BN254(), nil
	case "bls12-381", "bls12_381":
		return BLS12381(), nil
	default:
		return nil, &ErrUnsupportedCurve{Name: name}
	}
}
