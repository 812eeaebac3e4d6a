package merkletree

import (
	"testing"

	"github.com/tornadopool/core/pkg/types"
)

func leaf(b byte) types.Hash {
	var h types.Hash
	h[31] = b
	return h
}

// TestZeroValuesChain checks the zero chain has one entry per level and
// that no level is the all-zero hash.
func TestZeroValuesChain(t *testing.T) {
	zeros, err := ZeroValues(4)
	if err != nil {
		t.Fatalf("ZeroValues failed: %v", err)
	}
	if len(zeros) != 4 {
		t.Fatalf("expected 4 zero levels, got %d", len(zeros))
	}
	for i := range zeros {
		if zeros[i].IsZero() {
			t.Errorf("zeros[%d] must not be the all-zero hash", i)
		}
	}
}

// TestNewTreeEmptyRoot checks a freshly constructed tree's root matches the
// top of the zero chain, per spec.md §4.2's Initialization.
func TestNewTreeEmptyRoot(t *testing.T) {
	tr, err := New(4)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	zeros, _ := ZeroValues(4)
	if tr.Root() != zeros[3] {
		t.Error("empty tree root must equal the top zero-subtree value")
	}
	if tr.NextIndex() != 0 {
		t.Error("empty tree must have next_index 0")
	}
}

// TestInsertDeterminism (P1): two independently constructed trees fed the
// same leaves in the same order must converge on the same root.
func TestInsertDeterminism(t *testing.T) {
	t1, _ := New(8)
	t2, _ := New(8)

	leaves := []types.Hash{leaf(1), leaf(2), leaf(3), leaf(4), leaf(5)}
	for _, l := range leaves {
		if _, err := t1.Insert(l); err != nil {
			t.Fatalf("t1 insert failed: %v", err)
		}
		if _, err := t2.Insert(l); err != nil {
			t.Fatalf("t2 insert failed: %v", err)
		}
	}

	if t1.Root() != t2.Root() {
		t.Error("identical insert sequences must produce identical roots")
	}
	if t1.NextIndex() != 5 || t2.NextIndex() != 5 {
		t.Error("next_index must track the number of inserts")
	}
}

// TestInsertChangesRoot checks each insert advances the root and the index.
func TestInsertChangesRoot(t *testing.T) {
	tr, _ := New(8)
	roots := map[types.Hash]bool{tr.Root(): true}

	for i := byte(0); i < 10; i++ {
		idx, err := tr.Insert(leaf(i))
		if err != nil {
			t.Fatalf("insert %d failed: %v", i, err)
		}
		if idx != uint64(i) {
			t.Errorf("insert %d got index %d, want %d", i, idx, i)
		}
		if roots[tr.Root()] {
			t.Errorf("root repeated after inserting leaf %d", i)
		}
		roots[tr.Root()] = true
	}
}

// TestInsertOrderMatters: inserting the same set of leaves in a different
// order must (overwhelmingly likely) produce a different root, since
// position is baked into the hash path.
func TestInsertOrderMatters(t *testing.T) {
	t1, _ := New(4)
	t2, _ := New(4)

	for _, b := range []byte{1, 2, 3} {
		if _, err := t1.Insert(leaf(b)); err != nil {
			t.Fatal(err)
		}
	}
	for _, b := range []byte{3, 2, 1} {
		if _, err := t2.Insert(leaf(b)); err != nil {
			t.Fatal(err)
		}
	}
	if t1.Root() == t2.Root() {
		t.Error("different insert orders should not collide to the same root")
	}
}

// TestTreeFull (I1): inserting beyond 2^depth leaves must fail.
func TestTreeFull(t *testing.T) {
	tr, _ := New(2) // capacity 4
	for i := 0; i < 4; i++ {
		if _, err := tr.Insert(leaf(byte(i))); err != nil {
			t.Fatalf("insert %d should have succeeded: %v", i, err)
		}
	}
	if _, err := tr.Insert(leaf(99)); err != types.ErrTreeFull {
		t.Errorf("expected ErrTreeFull once full, got %v", err)
	}
}

// TestRestoreMatchesOriginal checks Restore reproduces a tree's behavior
// exactly, as used when a pool is reloaded from host storage.
func TestRestoreMatchesOriginal(t *testing.T) {
	tr, _ := New(6)
	for _, b := range []byte{1, 2, 3} {
		if _, err := tr.Insert(leaf(b)); err != nil {
			t.Fatal(err)
		}
	}

	restored := Restore(tr.Depth(), tr.FilledSubtrees(), tr.Zeros(), tr.Root(), tr.NextIndex())

	idx, err := tr.Insert(leaf(4))
	if err != nil {
		t.Fatal(err)
	}
	idx2, err := restored.Insert(leaf(4))
	if err != nil {
		t.Fatal(err)
	}
	if idx != idx2 || tr.Root() != restored.Root() {
		t.Error("restored tree must behave identically to the original after the same insert")
	}
}
