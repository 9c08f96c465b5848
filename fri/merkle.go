package fri

import (
	"bytes"
	"crypto/sha256"

	"github.com/consensys/gnark-crypto/accumulator/merkletree"
)

// MerkleTree commits the FRI evaluation table the way spec.md §4.H asks
// ("Merkle commit to the interleaved evaluations"), using gnark-crypto's
// own Merkle accumulator, the same package its FRI implementation commits
// evaluation rounds with. The accumulator proves one leaf index per tree
// build (SetIndex before Push), so the tree keeps its leaves around and
// reruns the accumulator per opening rather than caching a single shared
// proof structure.
type MerkleTree struct {
	leaves [][]byte
	root   []byte
}

// BuildMerkleTree commits leaves and caches the root, which the
// accumulator computes the same way regardless of which index (if any)
// is later proved.
func BuildMerkleTree(leaves [][]byte) *MerkleTree {
	tree := merkletree.New(sha256.New())
	for _, l := range leaves {
		tree.Push(l)
	}
	root, _, _, _ := tree.Prove()
	return &MerkleTree{leaves: leaves, root: root}
}

// Root returns the tree's root hash.
func (t *MerkleTree) Root() []byte { return t.root }

// MerkleProof is the opening gnark-crypto's accumulator produces for one
// leaf: ProofSet[0] is the leaf itself, the rest is the sibling path to
// the root.
type MerkleProof struct {
	Index     uint64
	NumLeaves uint64
	ProofSet  [][]byte
}

// Prove rebuilds the accumulator with index as the target leaf.
func (t *MerkleTree) Prove(index int) *MerkleProof {
	tree := merkletree.New(sha256.New())
	if err := tree.SetIndex(uint64(index)); err != nil {
		panic(err)
	}
	for _, l := range t.leaves {
		tree.Push(l)
	}
	_, proofSet, idx, numLeaves := tree.Prove()
	return &MerkleProof{Index: idx, NumLeaves: numLeaves, ProofSet: proofSet}
}

// VerifyMerkleProof checks that leaf is the one committed at proof.Index
// under root: it both rejects a leaf substituted against a proof built
// for a different leaf and defers the sibling-path check itself to
// gnark-crypto's accumulator verifier.
func VerifyMerkleProof(root, leaf []byte, proof *MerkleProof) bool {
	if len(proof.ProofSet) == 0 || !bytes.Equal(proof.ProofSet[0], leaf) {
		return false
	}
	return merkletree.VerifyProof(sha256.New(), root, proof.ProofSet, proof.Index, proof.NumLeaves)
}
