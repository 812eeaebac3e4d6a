package merkletree

import "github.com/tornadopool/core/pkg/types"

// RootHistory is the rolling root-history ring described in spec.md §4.3: a
// fixed-size circular buffer of the last W roots, letting a withdrawal prove
// against a root that is no longer the current one, as long as it is still
// in the window. Grounded on the teacher's CommitmentTree.GetRoot cursor
// idiom, generalized from a single tracked root to a ring of W.
type RootHistory struct {
	roots [types.RootHistorySize]types.Hash
	cur   uint32 // index of the most recently written root
	count uint32 // number of roots ever pushed, capped at len(roots); IsKnown scans every slot regardless
}

// NewRootHistory builds a root-history ring seeded with a single root (the
// empty tree's root), matching the state a freshly initialized pool has.
func NewRootHistory(initial types.Hash) *RootHistory {
	rh := &RootHistory{}
	rh.roots[0] = initial
	rh.cur = 0
	rh.count = 1
	return rh
}

// RestoreRootHistory rebuilds a ring from persisted PoolState fields.
func RestoreRootHistory(roots [types.RootHistorySize]types.Hash, curIndex uint32) *RootHistory {
	return &RootHistory{roots: roots, cur: curIndex, count: types.RootHistorySize}
}

// Push records a new root, advancing the cursor and overwriting the oldest
// slot once the ring has wrapped.
func (rh *RootHistory) Push(root types.Hash) {
	rh.cur = (rh.cur + 1) % types.RootHistorySize
	rh.roots[rh.cur] = root
	if rh.count < types.RootHistorySize {
		rh.count++
	}
}

// Current returns the most recently pushed root.
func (rh *RootHistory) Current() types.Hash {
	return rh.roots[rh.cur]
}

// CurrentIndex returns the ring cursor, for persistence.
func (rh *RootHistory) CurrentIndex() uint32 {
	return rh.cur
}

// Roots returns the raw ring contents, for persistence.
func (rh *RootHistory) Roots() [types.RootHistorySize]types.Hash {
	return rh.roots
}

// IsKnown reports whether root is present anywhere in the window (P2/I3).
// The zero hash is never considered known (P3), even if some slot still
// holds its zero-initialized value from before the ring filled up.
func (rh *RootHistory) IsKnown(root types.Hash) bool {
	if root.IsZero() {
		return false
	}
	for i := 0; i < types.RootHistorySize; i++ {
		if rh.roots[i] == root {
			return true
		}
	}
	return false
}
