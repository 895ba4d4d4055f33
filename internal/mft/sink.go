package mft

import (
	"github.com/arborfs/mftscan/internal/topheap"
	"github.com/arborfs/mftscan/internal/types"
)

// BufferSink accumulates every record it receives, for the tree-building
// path (spec.md §4.6 needs the full record set to build the size map and
// child index).
type BufferSink struct {
	Records []types.MFTRecord
}

// NewBufferSink returns a BufferSink preallocated for an expected record
// count, avoiding repeated slice growth on large volumes.
func NewBufferSink(expected int) *BufferSink {
	return &BufferSink{Records: make([]types.MFTRecord, 0, expected)}
}

func (s *BufferSink) Accept(r types.MFTRecord) {
	s.Records = append(s.Records, r)
}

// HeapSink feeds files (never directories) into a bounded topheap.TopHeap,
// for the top-N largest-files mode (spec.md §4.7), which never needs to
// build a tree or hold more than N records at a time.
type HeapSink struct {
	heap *topheap.TopHeap
}

func NewHeapSink(n int) *HeapSink {
	return &HeapSink{heap: topheap.New(n)}
}

func (s *HeapSink) Accept(r types.MFTRecord) {
	if r.IsDir {
		return
	}
	s.heap.Push(types.TopFileEntry{Path: r.FullPath, Size: r.Size, Modified: r.Modified})
}

func (s *HeapSink) SortedDesc() []types.TopFileEntry {
	return s.heap.SortedDesc()
}
