// Package childindex builds the parent->children index described in
// spec.md §4.5: every record except the volume root itself is filed under
// its parent's path (the prefix before the last backslash), built in
// parallel over fixed-size chunks and then merged by concatenation.
package childindex

import (
	"strings"
	"sync"

	"github.com/arborfs/mftscan/internal/types"
)

// Index maps a parent path to its children, in chunk-major / input-order
// order within a chunk (spec.md §4.5: "the order within a key is not
// semantically significant but must be stable enough for reproducible
// tests").
type Index map[string][]*types.MFTRecord

// Build partitions records into chunks, builds a per-chunk index, and merges
// them. It also locates the record whose path equals the volume root
// (case-insensitive, ignoring a trailing backslash) and returns its size and
// modified time; if no such record exists both are zero/nil.
//
// volumeRootTrim must have no trailing backslash (e.g. "C:").
func Build(records []types.MFTRecord, volumeRootTrim string) (rootSize uint64, rootModified *uint64, index Index) {
	rootSize, rootModified = findRoot(records, volumeRootTrim)

	index = make(Index)
	if len(records) == 0 {
		return rootSize, rootModified, index
	}

	chunks := chunk(records, types.ParChunkSize)
	partials := make([]Index, len(chunks))

	var wg sync.WaitGroup
	sem := types.NewSemaphore(workerLimit(len(chunks)))
	for i, c := range chunks {
		wg.Add(1)
		go func(i int, c []types.MFTRecord) {
			defer wg.Done()
			sem.Acquire()
			defer sem.Release()
			partials[i] = buildChunk(c, volumeRootTrim)
		}(i, c)
	}
	wg.Wait()

	for _, p := range partials {
		for k, v := range p {
			index[k] = append(index[k], v...)
		}
	}
	return rootSize, rootModified, index
}

func buildChunk(recs []types.MFTRecord, volumeRootTrim string) Index {
	idx := make(Index)
	for i := range recs {
		r := &recs[i]
		norm := trimTrailingSep(r.FullPath)
		if strings.EqualFold(norm, volumeRootTrim) {
			continue
		}
		if key, ok := parentKey(r.FullPath); ok {
			idx[key] = append(idx[key], r)
		}
	}
	return idx
}

func findRoot(records []types.MFTRecord, volumeRootTrim string) (uint64, *uint64) {
	for i := range records {
		if strings.EqualFold(trimTrailingSep(records[i].FullPath), volumeRootTrim) {
			return records[i].Size, records[i].Modified
		}
	}
	return 0, nil
}

// DirectChildren looks up the volume root's direct children, probing both
// the `X:\` and `X:` forms (spec.md §3/§9: the asymmetry from rfind('\')
// splitting must be preserved), case-insensitively.
func (idx Index) DirectChildren(volumeRootKey, volumeRootTrim string) []*types.MFTRecord {
	if v, ok := idx[volumeRootKey]; ok {
		return v
	}
	if v, ok := idx[volumeRootTrim]; ok {
		return v
	}
	for k, v := range idx {
		if strings.EqualFold(k, volumeRootKey) || strings.EqualFold(k, volumeRootTrim) {
			return v
		}
	}
	return nil
}

func trimTrailingSep(s string) string {
	for len(s) > 0 && s[len(s)-1] == '\\' {
		s = s[:len(s)-1]
	}
	return s
}

func parentKey(path string) (string, bool) {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '\\' {
			return path[:i], true
		}
	}
	return "", false
}

func chunk(records []types.MFTRecord, size int) [][]types.MFTRecord {
	var out [][]types.MFTRecord
	for i := 0; i < len(records); i += size {
		end := i + size
		if end > len(records) {
			end = len(records)
		}
		out = append(out, records[i:end])
	}
	return out
}

func workerLimit(nChunks int) int {
	const ceiling = 64
	if nChunks <= 0 {
		return 1
	}
	if nChunks > ceiling {
		return ceiling
	}
	return nChunks
}
