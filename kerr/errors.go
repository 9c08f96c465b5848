// Package kerr is komodo's closed error taxonomy (spec.md §7). Structural
// failures (bad shapes, too few shards, malformed setups) are typed errors
// callers can branch on with errors.As; cryptographic non-verification is
// never an error, it is a plain bool returned by the Verify functions.
package kerr

import "fmt"

// InvalidMatrixElements reports a ragged row while building a matrix from
// rows of unequal length.
type InvalidMatrixElements struct {
	Expected, Found, Row int
}

func (e *InvalidMatrixElements) Error() string {
	return fmt.Sprintf("kerr: row %d has %d elements, expected %d", e.Row, e.Found, e.Expected)
}

// NonSquareMatrix is returned by Invert on a non-square matrix.
type NonSquareMatrix struct{ Height, Width int }

func (e *NonSquareMatrix) Error() string {
	return fmt.Sprintf("kerr: matrix is %dx%d, not square", e.Height, e.Width)
}

// NonInvertibleMatrix is returned when Gauss-Jordan elimination hits a zero
// pivot at Row after normalization.
type NonInvertibleMatrix struct{ Row int }

func (e *NonInvertibleMatrix) Error() string {
	return fmt.Sprintf("kerr: matrix is not invertible, zero pivot at row %d", e.Row)
}

// IncompatibleMatrixShapes is returned by Mul when the operands' inner
// dimensions disagree.
type IncompatibleMatrixShapes struct {
	Left, Right [2]int
}

func (e *IncompatibleMatrixShapes) Error() string {
	return fmt.Sprintf("kerr: incompatible shapes %v and %v", e.Left, e.Right)
}

// InvalidVandermonde is returned when two seed points given to Vandermonde
// coincide.
type InvalidVandermonde struct {
	FirstIndex, SecondIndex int
	Value                   string
}

func (e *InvalidVandermonde) Error() string {
	return fmt.Sprintf("kerr: duplicate Vandermonde seed %s at indices %d and %d",
		e.Value, e.FirstIndex, e.SecondIndex)
}

// DegreeIsZero is returned by Setup when asked for a trusted setup of
// degree less than 1.
type DegreeIsZero struct{}

func (e *DegreeIsZero) Error() string { return "kerr: setup degree must be at least 1" }

// TooFewPowersInTrustedSetup is returned by Commit when the polynomial's
// degree exceeds what the setup was generated for.
type TooFewPowersInTrustedSetup struct {
	NumPowers, NumCoefficients int
}

func (e *TooFewPowersInTrustedSetup) Error() string {
	return fmt.Sprintf("kerr: trusted setup has %d powers, need %d coefficients",
		e.NumPowers, e.NumCoefficients)
}

// TooFewShards is returned by Decode when fewer than k shards are given.
type TooFewShards struct{ Have, Need int }

func (e *TooFewShards) Error() string {
	return fmt.Sprintf("kerr: have %d shards, need at least %d", e.Have, e.Need)
}

// IncompatibleBlocks is returned when shards/blocks from different blobs
// (different k, hash, size, or proof material) are combined or recoded.
type IncompatibleBlocks struct{ Reason string }

func (e *IncompatibleBlocks) Error() string {
	return fmt.Sprintf("kerr: incompatible blocks: %s", e.Reason)
}

// PolynomialCountIpa is returned by aPlonK when the number of committed
// polynomials m is not a power of two, a hard requirement of the inner
// product argument folding (spec.md §4.G).
type PolynomialCountIpa struct{ Count int }

func (e *PolynomialCountIpa) Error() string {
	return fmt.Sprintf("kerr: aPlonK requires a power-of-two polynomial count, got %d", e.Count)
}

// NonPowerOfTwoDomain is returned by fri when k or n is not a power of
// two, a hard requirement of the root-of-unity evaluation domain
// (spec.md §4.H).
type NonPowerOfTwoDomain struct {
	What  string
	Value int
}

func (e *NonPowerOfTwoDomain) Error() string {
	return fmt.Sprintf("kerr: fri requires %s to be a power of two, got %d", e.What, e.Value)
}

// Other wraps a serialization or sub-library failure that does not merit
// its own taxonomy entry.
type Other struct {
	Detail string
	Err    error
}

func (e *Other) Error() string { return fmt.Sprintf("kerr: %s", e.Detail) }

// Unwrap returns the lower-level error Wrap was given, or nil.
func (e *Other) Unwrap() error { return e.Err }

// Wrap builds an *Other from a lower-level error, preserving it for
// errors.Unwrap.
func Wrap(context string, err error) error {
	if err == nil {
		return nil
	}
	return &Other{Detail: fmt.Sprintf("%s: %v", context, err), Err: err}
}
