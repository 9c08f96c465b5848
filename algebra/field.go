// Package algebra carries the element/byte conversions and small field
// helpers spec.md §4.A groups under "Field & Curve Algebra": splitting a
// blob into field elements and back, powers of a scalar, and scalar
// products. It is generic over curve.Suite the same way the teacher
// dispatches setup generation on ecc.ID.
package algebra

import (
	"fmt"

	"github.com/dragoon-rs/komodo/curve"
)

// SplitBytesToElements partitions bytes into chunks of suite.UsableBytes(),
// reduces each chunk modulo p as little-endian, and right-pads the result
// with the field element 1 until its length is a multiple of m.
//
// Padding with 1 rather than 0 preserves the invariant that no produced
// element is zero, which fec's Vandermonde-style decoding matrices rely on
// (spec.md §4.A).
func SplitBytesToElements(suite curve.Suite, data []byte, m int) ([]curve.Scalar, error) {
	if m <= 0 {
		return nil, fmt.Errorf("algebra: m must be positive, got %d", m)
	}
	chunkSize := suite.UsableBytes()
	if chunkSize <= 0 {
		return nil, fmt.Errorf("algebra: curve %q has no usable bytes per element", suite.Name())
	}

	var elements []curve.Scalar
	for i := 0; i < len(data); i += chunkSize {
		end := i + chunkSize
		if end > len(data) {
			end = len(data)
		}
		e, err := suite.ScalarFromBytes(data[i:end])
		if err != nil {
			return nil, fmt.Errorf("algebra: splitting chunk %d: %w", i/chunkSize, err)
		}
		elements = append(elements, e)
	}

	one := suite.One()
	for len(elements)%m != 0 {
		elements = append(elements, one)
	}
	return elements, nil
}

// MergeElementsToBytes serializes each element little-endian and drops the
// top byte of each (the one reserved during SplitBytesToElements to
// guarantee unique reduction). The caller is expected to truncate the
// result to the original blob length: padding elements decode to trailing
// garbage bytes that are not part of the original message.
func MergeElementsToBytes(suite curve.Suite, elements []curve.Scalar) []byte {
	usable := suite.UsableBytes()
	out := make([]byte, 0, len(elements)*usable)
	for _, e := range elements {
		b := e.Bytes()
		out = append(out, b[:usable]...)
	}
	return out
}

// PowersOf returns [1, r, r^2, ..., r^(n-1)].
func PowersOf(suite curve.Suite, r curve.Scalar, n int) []curve.Scalar {
	out := make([]curve.Scalar, n)
	if n == 0 {
		return out
	}
	cur := suite.One()
	for i := 0; i < n; i++ {
		out[i] = cur
		cur = cur.Mul(r)
	}
	return out
}

// ScalarProduct returns sum_i a[i]*b[i]. It panics if len(a) != len(b); the
// caller is expected to have validated shapes already (internal helper,
// mirrors the pairing variants spec.md §4.A mentions for Vandermonde rows).
func ScalarProduct(a, b []curve.Scalar) curve.Scalar {
	if len(a) != len(b) {
		panic(fmt.Sprintf("algebra: scalar product length mismatch: %d != %d", len(a), len(b)))
	}
	if len(a) == 0 {
		panic("algebra: scalar product of empty vectors")
	}
	acc := a[0].Mul(b[0])
	for i := 1; i < len(a); i++ {
		acc = acc.Add(a[i].Mul(b[i]))
	}
	return acc
}
