// Package topheap implements the bounded min-heap used for the top-N
// largest-files mode (spec.md §4.7): O(N) memory regardless of how many
// files are enumerated, since the smallest kept entry is discarded whenever
// the heap would grow past N.
package topheap

import (
	"container/heap"
	"sort"

	"github.com/arborfs/mftscan/internal/types"
)

// items is a container/heap.Interface min-heap ordered by ascending Size, so
// the smallest kept entry always sits at the root and can be evicted in
// O(log N) when a larger file arrives.
type items []types.TopFileEntry

func (h items) Len() int            { return len(h) }
func (h items) Less(i, j int) bool  { return h[i].Size < h[j].Size }
func (h items) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *items) Push(x interface{}) { *h = append(*h, x.(types.TopFileEntry)) }
func (h *items) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// TopHeap keeps the N largest TopFileEntry values pushed into it, evicting
// the current smallest whenever a push would exceed N.
type TopHeap struct {
	n     int
	items items
}

// New returns a heap bounded to keep the n largest entries. Its backing
// array is preallocated to the soft cap min(n+1, TopHeapMaxCap) (spec.md
// §4.7), so a pathologically large N can't force an unbounded allocation.
func New(n int) *TopHeap {
	if n < 0 {
		n = 0
	}
	cap := n + 1
	if cap > types.TopHeapMaxCap {
		cap = types.TopHeapMaxCap
	}
	return &TopHeap{n: n, items: make(items, 0, cap)}
}

// Push offers a candidate entry. Directories must be filtered out by the
// caller before calling Push (spec.md §4.7: top-N mode only considers
// files).
func (h *TopHeap) Push(e types.TopFileEntry) {
	if h.n <= 0 {
		return
	}
	heap.Push(&h.items, e)
	for len(h.items) > h.n {
		heap.Pop(&h.items)
	}
}

// Len reports how many entries are currently retained (<= N).
func (h *TopHeap) Len() int { return len(h.items) }

// SortedDesc returns a snapshot of the retained entries ordered largest
// first.
func (h *TopHeap) SortedDesc() []types.TopFileEntry {
	out := make([]types.TopFileEntry, len(h.items))
	copy(out, h.items)
	sort.Slice(out, func(i, j int) bool { return out[i].Size > out[j].Size })
	return out
}
