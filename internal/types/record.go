package types

// MFTRecord is one accepted, normalized record produced by phase 2 (record
// enumeration) and consumed by phase 3 (aggregation). It is intentionally a
// plain value, not a pointer-heavy structure, so a flat []MFTRecord slice can
// be chunked and handed to worker goroutines without further allocation.
type MFTRecord struct {
	FullPath string
	Size     uint64
	IsDir    bool
	Modified *uint64 // nil if the raw timestamp was non-positive
}

// ProgressSink receives scan progress. During MFT load, message is
// "[scan:mft] Loading MFT NN%"; during iteration it is the most recently
// accepted record path; at completion it is the volume root string.
//
// A ProgressSink may be called concurrently from a background loader or
// worker goroutine; implementations that are not already safe for
// concurrent use must serialize internally.
type ProgressSink func(count uint64, message string)

const (
	// ProgressEvery is how often (in accepted records) the record iterator
	// emits a progress event during phase 2.
	ProgressEvery = 5000

	// ParChunkSize is the number of records per chunk when the phase-3
	// reducers (recursive size map, child index) partition the flat record
	// buffer for parallel processing.
	ParChunkSize = 80_000

	// MaxDepth caps tree recursion depth; records past this depth become
	// leaf nodes carrying only their own size.
	MaxDepth = 10

	// MaxChildrenPerDir caps how many children a directory node may have in
	// the materialized tree; remaining siblings are silently dropped.
	MaxChildrenPerDir = 500

	// TopFilesDefaultN is the original source's default N for top-N mode
	// (scan_volume_mft_top_files), restored per SPEC_FULL.md §12.2.
	TopFilesDefaultN = 100

	// TopHeapMaxCap bounds the top-N heap's capacity regardless of how
	// large N is requested (spec.md §4.7).
	TopHeapMaxCap = 1_000_000
)
