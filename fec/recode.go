package fec

import (
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/dragoon-rs/komodo"
	"github.com/dragoon-rs/komodo/curve"
	"github.com/dragoon-rs/komodo/kerr"
)

// Combine returns the shard sum_i coeffs[i]*shards[i], element-wise on both
// LinearCombination and Data. Hash, K and Size are taken from the first
// shard; all shards must agree on them. Returns nil, nil on length
// mismatch or empty input (spec.md §6).
//
// The per-shard scalar multiplications are independent of each other, so
// they run on a bounded worker pool (spec.md §5: "internal parallelism of
// MSMs as an optimization is allowed"); the reduction itself stays
// sequential.
func Combine(shards []*komodo.Shard, coeffs []curve.Scalar) (*komodo.Shard, error) {
	if len(shards) == 0 || len(shards) != len(coeffs) {
		return nil, nil
	}
	for i := 1; i < len(shards); i++ {
		if !shards[i].SameStream(shards[0]) {
			return nil, &kerr.IncompatibleBlocks{Reason: "cannot combine shards from different streams"}
		}
	}

	// Skip zero coefficients: spec.md §9 ("combine early-exit") calls out
	// that a zero coefficient should drop its operand rather than fold in
	// a spurious zero/identity term.
	scaledCombos := make([][]curve.Scalar, len(shards))
	scaledData := make([][]curve.Scalar, len(shards))

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, c := range coeffs {
		if c.IsZero() {
			continue
		}
		i, c, sh := i, c, shards[i]
		g.Go(func() error {
			scaledCombos[i] = scaleVector(sh.LinearCombination, c)
			scaledData[i] = scaleVector(sh.Data, c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var first *komodo.Shard
	var combinationSum, dataSum []curve.Scalar
	for i, c := range coeffs {
		if c.IsZero() {
			continue
		}
		if first == nil {
			first = shards[i]
			combinationSum = scaledCombos[i]
			dataSum = scaledData[i]
			continue
		}
		combinationSum = addVectors(combinationSum, scaledCombos[i])
		dataSum = addVectors(dataSum, scaledData[i])
	}

	if first == nil {
		// every coefficient was zero: fall back to the (unscaled) first
		// operand, per the same early-exit rule.
		first = shards[0]
		return &komodo.Shard{
			Suite:             first.Suite,
			K:                 first.K,
			LinearCombination: append([]curve.Scalar(nil), first.LinearCombination...),
			Hash:              first.Hash,
			Data:              append([]curve.Scalar(nil), first.Data...),
			Size:              first.Size,
		}, nil
	}

	return &komodo.Shard{
		Suite:             first.Suite,
		K:                 first.K,
		LinearCombination: combinationSum,
		Hash:              first.Hash,
		Data:              dataSum,
		Size:              first.Size,
	}, nil
}

// RecodeRandom samples a random coefficient per shard (skipping any shard
// whose coefficient lands on zero) and returns Combine of the resulting
// set. Equivalent, for any choice of coefficients, to the shard Encode
// would have produced from row sum_i c_i*M_i of the encoding matrix
// (spec.md §4.D).
func RecodeRandom(suite curve.Suite, shards []*komodo.Shard, rng io.Reader) (*komodo.Shard, error) {
	if len(shards) == 0 {
		return nil, nil
	}
	coeffs := make([]curve.Scalar, len(shards))
	kept := make([]*komodo.Shard, 0, len(shards))
	keptCoeffs := make([]curve.Scalar, 0, len(shards))
	for i, sh := range shards {
		c, err := suite.RandomScalar(rng)
		if err != nil {
			return nil, kerr.Wrap("fec: recode_random sampling coefficient", err)
		}
		coeffs[i] = c
		if c.IsZero() {
			continue
		}
		kept = append(kept, sh)
		keptCoeffs = append(keptCoeffs, c)
	}
	return Combine(kept, keptCoeffs)
}

func scaleVector(v []curve.Scalar, c curve.Scalar) []curve.Scalar {
	out := make([]curve.Scalar, len(v))
	for i, e := range v {
		out[i] = e.Mul(c)
	}
	return out
}

func addVectors(a, b []curve.Scalar) []curve.Scalar {
	out := make([]curve.Scalar, len(a))
	for i := range a {
		out[i] = a[i].Add(b[i])
	}
	return out
}
