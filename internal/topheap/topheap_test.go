package topheap

import (
	"testing"

	"github.com/arborfs/mftscan/internal/types"
)

func entry(path string, size uint64) types.TopFileEntry {
	return types.TopFileEntry{Path: path, Size: size}
}

func TestKeepsOnlyNLargest(t *testing.T) {
	h := New(3)
	for i, size := range []uint64{5, 1, 9, 3, 7, 2} {
		h.Push(entry(string(rune('a'+i)), size))
	}
	got := h.SortedDesc()
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	wantSizes := []uint64{9, 7, 5}
	for i, e := range got {
		if e.Size != wantSizes[i] {
			t.Errorf("got[%d].Size = %d, want %d", i, e.Size, wantSizes[i])
		}
	}
}

func TestFewerThanN(t *testing.T) {
	h := New(10)
	h.Push(entry("a", 1))
	h.Push(entry("b", 2))
	if h.Len() != 2 {
		t.Errorf("Len = %d, want 2", h.Len())
	}
	got := h.SortedDesc()
	if got[0].Size != 2 || got[1].Size != 1 {
		t.Errorf("unexpected order: %#v", got)
	}
}

func TestZeroN(t *testing.T) {
	h := New(0)
	h.Push(entry("a", 100))
	if h.Len() != 0 {
		t.Errorf("Len = %d, want 0", h.Len())
	}
}

func TestSortedDescIsStableSnapshot(t *testing.T) {
	h := New(2)
	h.Push(entry("a", 1))
	first := h.SortedDesc()
	h.Push(entry("b", 2))
	if len(first) != 1 {
		t.Errorf("mutating heap after snapshot must not retroactively change it")
	}
}
