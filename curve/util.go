package curve

import (
	"io"
	"math/big"
)

// randBigInt draws a uniform value in [0, modulus) from rng, rejection
// sampling on the byte-width of modulus so the distribution stays uniform.
func randBigInt(rng io.Reader, modulus *big.Int) (*big.Int, error) {
	byteLen := (modulus.BitLen() + 7) / 8
	buf := make([]byte, byteLen)
	for {
		if _, err := io.ReadFull(rng, buf); err != nil {
			return nil, err
		}
		v := new(big.Int).SetBytes(buf)
		if v.Cmp(modulus) < 0 {
			return v, nil
		}
	}
}

// reverseBytes returns a copy of b with byte order reversed, converting
// between the little-endian wire format spec.md mandates and the
// big-endian big.Int convention.
func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}

// leFixed encodes v as exactly n little-endian bytes, left-padding
// (high-order, i.e. trailing in LE) with zeros.
func leFixed(v *big.Int, n int) []byte {
	be := v.Bytes()
	out := make([]byte, n)
	for i, c := range be {
		out[len(be)-1-i] = c
	}
	return out
}
