// Package mft implements the MFT acquisition and enumeration phase
// (spec.md §4.2/§4.3): opening the volume's $MFT, decoding FILE records, and
// resolving each record's full path via its parent-record chain, the way
// original_source/mft_scan.rs's ntfs_reader-backed mft.iterate_files does.
//
// spec.md treats the underlying MFT parser as an external, swappable
// collaborator ("a third-party library handles MFT binary decoding");
// Source is that seam. The Windows build supplies a concrete Source reading
// the real on-disk $MFT; everything else in this package -- path
// resolution, normalization, filtering, progress cadence -- is pure and
// tested without a real NTFS volume.
package mft

import (
	"fmt"

	"github.com/arborfs/mftscan/internal/types"
)

// RawRecord is one decoded FILE record, before path resolution.
type RawRecord struct {
	RecordNumber       uint64
	ParentRecordNumber uint64
	Name               string
	IsDirectory        bool
	Size               uint64
	ModifiedUnix       *uint64
	InUse              bool
}

// RootRecordNumber is NTFS's well-known record number for a volume's root
// directory.
const RootRecordNumber = 5

// Source is the MFT parser seam (spec.md's "third-party library"): given an
// open volume handle, it decodes every FILE record. Implementations decide
// how (and how much) to read eagerly; Load just asks for the final slice
// plus periodic (decoded, total) progress.
type Source interface {
	// Load decodes all FILE records, invoking report with a running
	// decoded/total pair as records are decoded (report may be nil).
	// Ordering of records in the returned slice is implementation-defined.
	Load(report func(decoded, total uint64)) ([]RawRecord, error)
	Close() error
}

// Load runs src.Load behind a bounded progress channel and forwarder
// goroutine, mirroring original_source/mft_scan.rs's mpsc::channel +
// forwarder-thread pattern (so a slow or absent progress consumer never
// blocks the decode loop) and the teacher's collector-goroutine shape used
// throughout internal/verifier and internal/scanner. Forwarded messages take
// the literal form `spec.md` §6 specifies: "[scan:mft] Loading MFT NN%".
func Load(src Source, progress types.ProgressSink) ([]RawRecord, error) {
	if progress == nil {
		return src.Load(nil)
	}

	type update struct{ decoded, total uint64 }
	updates := make(chan update, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for u := range updates {
			progress(u.decoded, formatLoadMessage(u.decoded, u.total))
		}
	}()

	recs, err := src.Load(func(decoded, total uint64) {
		select {
		case updates <- update{decoded, total}:
		default:
			// Coalesce: drop this update rather than block the decoder,
			// the forwarder will catch up on the next send.
		}
	})
	close(updates)
	<-done
	return recs, err
}

func formatLoadMessage(decoded, total uint64) string {
	pct := 0
	if total > 0 {
		pct = int(decoded * 100 / total)
		if pct > 100 {
			pct = 100
		}
	}
	return fmt.Sprintf("[scan:mft] Loading MFT %d%%", pct)
}
