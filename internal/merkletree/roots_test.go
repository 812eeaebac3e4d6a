package merkletree

import (
	"testing"

	"github.com/tornadopool/core/pkg/types"
)

func rootAt(b byte) types.Hash {
	var h types.Hash
	h[0] = b
	return h
}

// TestRootHistorySeed checks a new ring starts with its seed root known and
// current.
func TestRootHistorySeed(t *testing.T) {
	seed := rootAt(1)
	rh := NewRootHistory(seed)

	if rh.Current() != seed {
		t.Error("current root must be the seed root")
	}
	if !rh.IsKnown(seed) {
		t.Error("seed root must be known")
	}
}

// TestRootHistoryZeroRejected (P3): the all-zero hash is never a known
// root, even though unfilled ring slots default to it.
func TestRootHistoryZeroRejected(t *testing.T) {
	rh := NewRootHistory(rootAt(1))
	if rh.IsKnown(types.Hash{}) {
		t.Error("the zero hash must never be considered a known root")
	}
}

// TestRootHistoryWindow (P2): a root remains known until it is pushed out
// by RootHistorySize subsequent pushes, and is forgotten after that.
func TestRootHistoryWindow(t *testing.T) {
	first := rootAt(1)
	rh := NewRootHistory(first)

	for i := 0; i < types.RootHistorySize-1; i++ {
		rh.Push(rootAt(byte(i + 2)))
		if !rh.IsKnown(first) {
			t.Fatalf("first root forgotten too early, after %d pushes", i+1)
		}
	}

	// One more push should finally evict it (W total slots, filled, then one overflow).
	rh.Push(rootAt(200))
	if rh.IsKnown(first) {
		t.Error("first root should have been evicted after the window filled and overflowed")
	}
}

// TestRootHistoryCurrentAdvances checks Current always reflects the last push.
func TestRootHistoryCurrentAdvances(t *testing.T) {
	rh := NewRootHistory(rootAt(1))
	next := rootAt(2)
	rh.Push(next)
	if rh.Current() != next {
		t.Error("current root must reflect the most recent push")
	}
}

// TestRestoreRootHistory checks RestoreRootHistory reproduces IsKnown/Current
// behavior from persisted ring contents.
func TestRestoreRootHistory(t *testing.T) {
	rh := NewRootHistory(rootAt(1))
	for i := 0; i < 5; i++ {
		rh.Push(rootAt(byte(i + 2)))
	}

	restored := RestoreRootHistory(rh.Roots(), rh.CurrentIndex())
	if restored.Current() != rh.Current() {
		t.Error("restored ring must have the same current root")
	}
	for i := byte(1); i < 7; i++ {
		if restored.IsKnown(rootAt(i)) != rh.IsKnown(rootAt(i)) {
			t.Errorf("restored ring disagrees with original on IsKnown(%d)", i)
		}
	}
}
