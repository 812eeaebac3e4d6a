// Package merkletree implements the incremental commitment tree (C2) and
// the rolling root-history window (C3). Grounded on the teacher's
// internal/zkp/merkle.go CommitmentTree (left-frontier representation,
// TreeStore abstraction) generalized from SHA-256 over depth 32 to
// Poseidon over the spec's depth 20, and on
// original_source/.../merkle_tree_poseidon.rs's zero-chain generation.
package merkletree

import (
	"github.com/tornadopool/core/internal/poseidon"
	"github.com/tornadopool/core/pkg/types"
)

// Tree is the append-only, leafless incremental Merkle tree described in
// spec.md §4.2. It stores no leaves: only the left-sibling frontier and the
// precomputed zero-subtree chain, giving O(L) inserts and O(L) state.
type Tree struct {
	depth int

	filledSubtrees []types.Hash
	zeros          []types.Hash

	currentRoot types.Hash
	nextIndex   uint64
}

// New builds a fresh, empty tree of the given depth, with
// filledSubtrees[i] = zeros[i] for all i and currentRoot = zeros[depth-1],
// per spec.md §4.2's Initialization.
func New(depth int) (*Tree, error) {
	zeros, err := ZeroValues(depth)
	if err != nil {
		return nil, err
	}

	t := &Tree{
		depth:          depth,
		zeros:          zeros,
		filledSubtrees: append([]types.Hash(nil), zeros...),
		currentRoot:    zeros[depth-1],
		nextIndex:      0,
	}
	return t, nil
}

// Restore rebuilds a Tree handle from persisted PoolState fields, without
// recomputing anything — used when a pool is loaded back from host storage.
func Restore(depth int, filledSubtrees, zeros []types.Hash, currentRoot types.Hash, nextIndex uint64) *Tree {
	return &Tree{
		depth:          depth,
		filledSubtrees: append([]types.Hash(nil), filledSubtrees...),
		zeros:          append([]types.Hash(nil), zeros...),
		currentRoot:    currentRoot,
		nextIndex:      nextIndex,
	}
}

// ZeroValues computes the zero-subtree chain for a tree of the given depth:
// zeros[0] = Poseidon(0), zeros[i] = Poseidon(zeros[i-1], zeros[i-1]).
// Exposed as a free function (mirroring the original's generate_zero_values)
// so tests can assert the chain independently of any tree instance.
func ZeroValues(depth int) ([]types.Hash, error) {
	zeros := make([]types.Hash, depth)

	z0, err := poseidon.Hash1(types.Hash{})
	if err != nil {
		return nil, err
	}
	zeros[0] = z0

	for i := 1; i < depth; i++ {
		z, err := poseidon.Hash2(zeros[i-1], zeros[i-1])
		if err != nil {
			return nil, err
		}
		zeros[i] = z
	}
	return zeros, nil
}

// Depth returns the tree's fixed depth.
func (t *Tree) Depth() int { return t.depth }

// NextIndex returns the number of leaves inserted so far.
func (t *Tree) NextIndex() uint64 { return t.nextIndex }

// Root returns the current Merkle root.
func (t *Tree) Root() types.Hash { return t.currentRoot }

// FilledSubtrees returns the current left-sibling frontier, for persistence.
func (t *Tree) FilledSubtrees() []types.Hash {
	return append([]types.Hash(nil), t.filledSubtrees...)
}

// Zeros returns the tree's zero-subtree chain, for persistence.
func (t *Tree) Zeros() []types.Hash {
	return append([]types.Hash(nil), t.zeros...)
}

// Insert adds a new leaf to the tree, returning its index (I1: fails once
// next_index has reached 2^depth). Implements spec.md §4.2's Insert walk.
func (t *Tree) Insert(leaf types.Hash) (uint64, error) {
	maxLeaves := uint64(1) << uint(t.depth)
	if t.nextIndex >= maxLeaves {
		return 0, types.ErrTreeFull
	}

	index := t.nextIndex
	h := leaf

	for level := 0; level < t.depth; level++ {
		bit := (index >> uint(level)) & 1
		if bit == 0 {
			t.filledSubtrees[level] = h
			next, err := poseidon.Hash2(h, t.zeros[level])
			if err != nil {
				return 0, err
			}
			h = next
		} else {
			next, err := poseidon.Hash2(t.filledSubtrees[level], h)
			if err != nil {
				return 0, err
			}
			h = next
		}
	}

	t.currentRoot = h
	t.nextIndex++
	return index, nil
}
