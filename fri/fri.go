package fri

import (
	"crypto/sha256"

	"github.com/dragoon-rs/komodo/algebra"
	"github.com/dragoon-rs/komodo/algebra/linalg"
	"github.com/dragoon-rs/komodo/curve"
	"github.com/dragoon-rs/komodo/kerr"
)

// Shard is FRI's own shard shape (spec.md §4.H): unlike komodo.Shard it
// carries no explicit LinearCombination, the evaluation point being
// recoverable from Index and the shared Domain instead.
type Shard struct {
	Suite curve.Suite
	K, N  int
	Index int
	Hash  [32]byte
	Size  int
	// Column holds, for every row-polynomial of the source matrix, its
	// evaluation at Domain.Points[Index] (one column of the evaluation
	// table, which has one row per source-matrix row and n columns).
	Column []curve.Scalar
}

// Block pairs a Shard with its Merkle opening against Root, the
// commitment to every column of the evaluation table.
type Block struct {
	Shard *Shard
	Root  []byte
	Proof *MerkleProof
}

func serializeColumn(suite curve.Suite, col []curve.Scalar) []byte {
	out := make([]byte, 0, len(col)*suite.ElementBytes())
	for _, e := range col {
		out = append(out, e.Bytes()...)
	}
	return out
}

// Encode arranges data as rows of a (L/k) x k source matrix S (same
// layout fec.Encode uses), builds one row-polynomial per row, evaluates
// every row-polynomial over the order-n root-of-unity Domain, and
// Merkle-commits the n resulting columns. Both k and n must be powers of
// two.
func Encode(suite curve.Suite, data []byte, k, n int) ([]*Block, *Domain, error) {
	if !isPowerOfTwo(k) {
		return nil, nil, &kerr.NonPowerOfTwoDomain{What: "k", Value: k}
	}
	domain, err := NewDomain(suite, n)
	if err != nil {
		return nil, nil, err
	}

	elements, err := algebra.SplitBytesToElements(suite, data, k)
	if err != nil {
		return nil, nil, err
	}
	rows := len(elements) / k
	sRows := make([][]curve.Scalar, rows)
	for i := 0; i < rows; i++ {
		sRows[i] = elements[i*k : (i+1)*k]
	}
	s, err := linalg.FromVecVec(suite, sRows)
	if err != nil {
		return nil, nil, err
	}

	// M's column j is (1, points[j], points[j]^2, ..., points[j]^(k-1)),
	// so table = S*M evaluates every row-polynomial at every domain
	// point, exactly like fec.Encode but over a root-of-unity domain
	// rather than an arbitrary Vandermonde seed.
	m := linalg.VandermondeUnchecked(suite, domain.Points, k)
	table, err := s.Mul(m)
	if err != nil {
		return nil, nil, err
	}

	columns := make([][]curve.Scalar, n)
	leaves := make([][]byte, n)
	for j := 0; j < n; j++ {
		columns[j] = table.GetCol(j)
		leaves[j] = serializeColumn(suite, columns[j])
	}
	tree := BuildMerkleTree(leaves)
	root := tree.Root()

	hash := sha256.Sum256(data)
	blocks := make([]*Block, n)
	for j := 0; j < n; j++ {
		blocks[j] = &Block{
			Shard: &Shard{
				Suite:  suite,
				K:      k,
				N:      n,
				Index:  j,
				Hash:   hash,
				Size:   len(data),
				Column: columns[j],
			},
			Root:  root,
			Proof: tree.Prove(j),
		}
	}
	return blocks, domain, nil
}

// Verify recomputes the leaf for block.Shard.Column and checks it opens
// against block.Root at block.Shard.Index.
func Verify(block *Block) (bool, error) {
	leaf := serializeColumn(block.Shard.Suite, block.Shard.Column)
	if int(block.Proof.Index) != block.Shard.Index {
		return false, &kerr.IncompatibleBlocks{Reason: "merkle proof index does not match shard index"}
	}
	return VerifyMerkleProof(block.Root, leaf, block.Proof), nil
}

// Decode reconstructs the original bytes from at least k blocks sharing
// the same K, N, Hash, Size and Root, mirroring fec.Decode's
// matrix-inversion approach: the k x k matrix of domain powers at the
// selected indices is inverted and applied to the selected columns.
func Decode(blocks []*Block, domain *Domain) ([]byte, error) {
	if len(blocks) == 0 {
		return nil, &kerr.TooFewShards{Have: 0, Need: 1}
	}
	k := blocks[0].Shard.K
	if len(blocks) < k {
		return nil, &kerr.TooFewShards{Have: len(blocks), Need: k}
	}
	first := blocks[0]
	for i := 1; i < len(blocks); i++ {
		sh := blocks[i].Shard
		if sh.K != first.Shard.K || sh.N != first.Shard.N ||
			sh.Hash != first.Shard.Hash || sh.Size != first.Shard.Size ||
			string(blocks[i].Root) != string(first.Root) {
			return nil, &kerr.IncompatibleBlocks{Reason: "blocks come from different streams (k, n, hash, size or root differ)"}
		}
	}

	suite := first.Shard.Suite
	selected := blocks[:k]

	aRows := make([][]curve.Scalar, k)
	dRows := make([][]curve.Scalar, k)
	for i, b := range selected {
		aRows[i] = algebra.PowersOf(suite, domain.Points[b.Shard.Index], k)
		dRows[i] = b.Shard.Column
	}

	a, err := linalg.FromVecVec(suite, aRows)
	if err != nil {
		return nil, err
	}
	d, err := linalg.FromVecVec(suite, dRows)
	if err != nil {
		return nil, err
	}

	aInv, err := a.Invert()
	if err != nil {
		return nil, err
	}
	sT, err := aInv.Mul(d)
	if err != nil {
		return nil, err
	}
	s := sT.Transpose()

	elements := make([]curve.Scalar, 0, s.Height()*s.Width())
	for i := 0; i < s.Height(); i++ {
		elements = append(elements, s.GetRow(i)...)
	}

	bytes := algebra.MergeElementsToBytes(suite, elements)
	size := first.Shard.Size
	if size > len(bytes) {
		return nil, &kerr.Other{Detail: "decoded fewer bytes than the recorded blob size"}
	}
	return bytes[:size], nil
}
