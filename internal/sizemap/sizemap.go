// Package sizemap builds the recursive size map described in spec.md §4.4:
// for every record, its size is added to its own path entry and to every
// proper ancestor's entry, all the way up to (but excluding) the empty
// string. The whole thing is computed in parallel over fixed-size chunks and
// merged, mirroring the original source's par_chunks + reduce.
package sizemap

import (
	"math"
	"sync"

	"github.com/arborfs/mftscan/internal/types"
)

// Build computes the recursive size map for records. Empty input yields an
// empty, non-nil map.
func Build(records []types.MFTRecord) map[string]uint64 {
	result := make(map[string]uint64)
	if len(records) == 0 {
		return result
	}

	chunks := chunk(records, types.ParChunkSize)
	partials := make([]map[string]uint64, len(chunks))

	var wg sync.WaitGroup
	sem := types.NewSemaphore(workerLimit(len(chunks)))
	for i, c := range chunks {
		wg.Add(1)
		go func(i int, c []types.MFTRecord) {
			defer wg.Done()
			sem.Acquire()
			defer sem.Release()
			partials[i] = buildChunk(c)
		}(i, c)
	}
	wg.Wait()

	for _, p := range partials {
		for k, v := range p {
			result[k] = saturatingAdd(result[k], v)
		}
	}
	return result
}

func buildChunk(chunk []types.MFTRecord) map[string]uint64 {
	m := make(map[string]uint64, len(chunk))
	for _, r := range chunk {
		path := trimTrailingSep(r.FullPath)
		if path == "" {
			continue
		}
		m[path] = saturatingAdd(m[path], r.Size)
		rest := path
		for {
			i := lastBackslash(rest)
			if i < 0 {
				break
			}
			rest = rest[:i]
			if rest == "" {
				break
			}
			m[rest] = saturatingAdd(m[rest], r.Size)
		}
	}
	return m
}

func saturatingAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

func trimTrailingSep(s string) string {
	for len(s) > 0 && s[len(s)-1] == '\\' {
		s = s[:len(s)-1]
	}
	return s
}

func lastBackslash(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '\\' {
			return i
		}
	}
	return -1
}

// chunk splits records into slices of at most size elements, preserving
// order (each chunk borrows a sub-slice, no copying).
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

// workerLimit bounds how many chunk goroutines run at once: no more than
// the number of chunks, and no more than a reasonable ceiling so a
// pathologically record-dense volume doesn't spawn thousands of goroutines
// uselessly waiting on a handful of CPUs.
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
