package mft

import (
	"strings"

	"github.com/arborfs/mftscan/internal/pathutil"
	"github.com/arborfs/mftscan/internal/types"
)

// Sink receives every in-scope record as it's produced during iteration.
// Implementations must be safe to call sequentially (Iterate never calls a
// Sink concurrently).
type Sink interface {
	Accept(types.MFTRecord)
}

// Iterate resolves each in-use record's full path via its parent chain
// (record.Name cache, record 5 is always the volume root per NTFS
// convention), normalizes it relative to drive, filters to records under
// the volume, and feeds surviving records to sink. It mirrors
// original_source/mft_scan.rs's mft.iterate_files closure body, shared by
// both scan_volume_mft and scan_volume_mft_top_files.
//
// report, if non-nil, is called every types.ProgressEvery records with the
// running count and the most recently resolved path, matching the
// original's `if c > 0 && c % PROGRESS_EVERY == 0` cadence. A final call
// with the total count is made after iteration completes.
func Iterate(records []RawRecord, drive string, sink Sink, report func(count uint64, path string)) {
	byNumber := make(map[uint64]RawRecord, len(records))
	for _, r := range records {
		byNumber[r.RecordNumber] = r
	}

	volTrim := strings.ToUpper(drive) + ":"
	var count uint64

	for _, r := range records {
		if !r.InUse {
			continue
		}
		path, ok := resolvePath(r, byNumber, drive)
		if !ok {
			continue
		}
		full := pathutil.Normalize(path, drive)
		if !pathutil.UnderVolume(full, volTrim) {
			continue
		}

		count++
		if report != nil && count > 0 && count%types.ProgressEvery == 0 {
			report(count, full)
		}

		sink.Accept(types.MFTRecord{
			FullPath: full,
			Size:     r.Size,
			IsDir:    r.IsDirectory,
			Modified: r.ModifiedUnix,
		})
	}

	if report != nil {
		report(count, strings.ToUpper(drive)+`:\`)
	}
}

// resolvePath walks a record's parent chain, accumulating names from leaf to
// root, stopping at RootRecordNumber. A cycle (malformed or adversarial MFT)
// or an unresolvable ancestor aborts resolution; such records are skipped by
// Iterate rather than risk an infinite loop or a bogus path.
func resolvePath(r RawRecord, byNumber map[uint64]RawRecord, drive string) (string, bool) {
	if r.RecordNumber == RootRecordNumber {
		return drive + `:\`, true
	}

	var segments []string
	cur := r
	visited := make(map[uint64]bool)
	for {
		segments = append(segments, cur.Name)
		visited[cur.RecordNumber] = true

		if cur.ParentRecordNumber == cur.RecordNumber {
			return "", false
		}
		if cur.ParentRecordNumber == RootRecordNumber {
			break
		}
		if visited[cur.ParentRecordNumber] {
			return "", false
		}
		parent, ok := byNumber[cur.ParentRecordNumber]
		if !ok {
			return "", false
		}
		cur = parent
	}

	var b strings.Builder
	b.WriteString(drive)
	b.WriteString(`:\`)
	for i := len(segments) - 1; i >= 0; i-- {
		b.WriteString(segments[i])
		if i > 0 {
			b.WriteByte('\\')
		}
	}
	return b.String(), true
}
