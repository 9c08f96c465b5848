// Package komodo implements coded information dispersal with verifiable
// integrity: a blob of bytes is erasure-coded into n shards such that any
// k linearly independent shards reconstruct it, shards can be recoded by
// untrusted intermediaries, and every shard carries a proof of its
// validity under one of three commitment schemes (Semi-AVID, KZG+,
// aPlonK) or the alternative FRI pipeline.
//
// The root package holds the data model shared by every component
// (Shard, Block). The thin encode+prove+build / verify+decode
// convenience wrappers the teacher exposes as Compile/Verify in
// algoplonk.go live in the dispersal subpackage instead, one level above
// komodo, since fec and the prover packages already import komodo for
// Shard and a root-level wrapper calling into them would cycle back.
package komodo

import (
	"github.com/dragoon-rs/komodo/curve"
)

// Shard is one encoded unit of a dispersed blob: k source symbols were
// linearly combined by LinearCombination to produce Data (spec.md §3).
// Two shards from the same blob always share K, Hash and Size.
type Shard struct {
	Suite              curve.Suite
	K                  int
	LinearCombination  []curve.Scalar
	Hash               [32]byte
	Data               []curve.Scalar
	Size               int
}

// SameStream reports whether s and other could plausibly be shards of the
// same original blob: matching K, Hash and Size. It does not check
// LinearCombination/Data length, which callers validate separately.
func (s *Shard) SameStream(other *Shard) bool {
	return s.K == other.K && s.Hash == other.Hash && s.Size == other.Size
}

// Block is a Shard augmented with scheme-specific proof material. Each
// prover package (semiavid, kzgplus, aplonk, fri) defines its own Block
// type embedding *Shard plus whatever commitments/proofs it needs
// (spec.md §3): there is no single universal proof shape to generalize
// over, so komodo does not force one here.
type Block struct {
	Shard *Shard
}
