// Package scanner wires the volume, mft, sizemap, childindex and tree
// packages into the two entry points the spec's core exposes:
// ScanVolumeMFT and ScanVolumeMFTTopFiles.
package scanner

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/arborfs/mftscan/internal/childindex"
	"github.com/arborfs/mftscan/internal/diag"
	"github.com/arborfs/mftscan/internal/mft"
	"github.com/arborfs/mftscan/internal/pathutil"
	"github.com/arborfs/mftscan/internal/sizemap"
	"github.com/arborfs/mftscan/internal/tree"
	"github.com/arborfs/mftscan/internal/types"
	"github.com/arborfs/mftscan/internal/volume"
)

// DefaultShallowDirNames is the SHALLOW_DIR_NAMES set a caller passes when
// shallow_dirs is enabled: well-known system directories whose children are
// collapsed into a single leaf rather than recursed into.
var DefaultShallowDirNames = []string{
	"Windows", "Program Files", "Program Files (x86)", "ProgramData",
	"$Recycle.Bin", "System Volume Information",
}

// WillUseMFT reports whether path would route into the MFT fast path: it
// trims the path with canonicalize and checks it with
// pathutil.IsWindowsVolumeRoot, calling nothing from the out-of-scope
// per-directory walk.
func WillUseMFT(path string) bool {
	canonical, err := canonicalize(path)
	if err != nil {
		return false
	}
	return pathutil.IsWindowsVolumeRoot(canonical)
}

// Verbose gates the unconditional startup/milestone diagnostic lines the
// original emits via eprintln! at each major phase boundary, distinct from
// the opt-in MFT_TIMING block in internal/diag.
var Verbose = true

func logMilestone(format string, args ...any) {
	if !Verbose {
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

type resolvedRoot struct {
	drive          string
	volumeRootKey  string
	volumeRootTrim string
	rootName       string
	rootPath       string
}

// canonicalize trims surrounding whitespace and rejects an empty result; a
// trailing separator is left in place (the volume-root checks accept it).
// Unlike the original's
// std::fs::canonicalize, this does not require the path to exist on disk:
// a missing or inaccessible volume is instead reported when volume.Open's
// CreateFile call fails, which already distinguishes ElevationRequired from
// a generic Io failure -- a second, weaker existence check here would only
// ever agree with or be redundant with that one.
func canonicalize(path string) (string, error) {
	s := strings.TrimSpace(path)
	if s == "" {
		return "", types.NewInvalidPath("empty path")
	}
	return s, nil
}

func resolveRoot(path string) (resolvedRoot, error) {
	canonical, err := canonicalize(path)
	if err != nil {
		return resolvedRoot{}, err
	}
	if !pathutil.IsWindowsVolumeRoot(canonical) {
		return resolvedRoot{}, types.NewInvalidPath(path + " is not a volume root")
	}
	drive := pathutil.DriveLetterFromVolumeRoot(canonical)
	if drive == "" {
		return resolvedRoot{}, types.NewInvalidPath(path + " has no drive letter")
	}
	normalized := pathutil.Normalize(canonical, drive)
	trim := pathutil.TrimTrailingSep(normalized)
	return resolvedRoot{
		drive:          drive,
		volumeRootKey:  normalized,
		volumeRootTrim: trim,
		rootName:       path,
		rootPath:       path,
	}, nil
}

func probeCapacity(drive string) (total, free *uint64) {
	t, f, ok := volume.Capacity(drive)
	if !ok {
		return nil, nil
	}
	return &t, &f
}

// ScanVolumeMFT runs the full three-phase pipeline: open the volume and
// load $MFT, enumerate records into a flat in-use/normalized buffer, then
// build the bounded result tree.
func ScanVolumeMFT(path string, progress types.ProgressSink, shallowDirs bool) (types.ScanResult, error) {
	start := time.Now()

	root, err := resolveRoot(path)
	if err != nil {
		return types.ScanResult{}, err
	}

	logMilestone("[scan:mft] starting MFT full scan of %s", path)

	t0 := time.Now()
	src, err := mft.NewSource(root.drive)
	if err != nil {
		return types.ScanResult{}, err
	}
	defer src.Close()

	raw, err := mft.Load(src, progress)
	if err != nil {
		return types.ScanResult{}, err
	}
	getMFT := time.Since(t0)
	logMilestone("[scan:mft] MFT loaded into memory, max_records=%d", len(raw))

	sink := mft.NewBufferSink(len(raw))
	t1 := time.Now()
	var lastCount uint64
	mft.Iterate(raw, root.drive, sink, func(count uint64, p string) {
		lastCount = count
		if progress != nil {
			progress(count, p)
		}
	})
	iterate := time.Since(t1)
	logMilestone("[scan:mft] iterate done: %d records collected", lastCount)

	t2 := time.Now()
	sizes := sizemap.Build(sink.Records)
	rootSize, rootModified, idx := childindex.Build(sink.Records, root.volumeRootTrim)
	opts := tree.Options{ShallowDirs: shallowDirs, ShallowDirNames: DefaultShallowDirNames}
	node, fileCount, totalSize := tree.Materialize(
		idx, sizes, root.volumeRootKey, root.volumeRootTrim,
		root.rootName, root.rootPath, rootSize, rootModified, opts,
	)
	buildTree := time.Since(t2)
	logMilestone("[scan:mft] build_tree done: file_count=%d total_size=%d", fileCount, totalSize)

	if progress != nil {
		progress(fileCount, root.rootPath)
	}

	if diag.TimingEnabled() {
		diag.Report(os.Stderr, diag.Phases{
			GetMFT:    getMFT,
			Iterate:   iterate,
			BuildTree: buildTree,
			Records:   len(sink.Records),
		})
	}

	totalBytes, freeBytes := probeCapacity(root.drive)

	return types.ScanResult{
		Root:             node,
		ScanTimeMs:       uint64(time.Since(start).Milliseconds()),
		FileCount:        fileCount,
		TotalSize:        totalSize,
		VolumeTotalBytes: totalBytes,
		VolumeFreeBytes:  freeBytes,
	}, nil
}

// ScanVolumeMFTTopFiles runs the same first two phases as ScanVolumeMFT but
// aggregates into a bounded top-N-largest-files heap instead of a tree.
func ScanVolumeMFTTopFiles(path string, n int, progress types.ProgressSink) ([]types.TopFileEntry, error) {
	root, err := resolveRoot(path)
	if err != nil {
		return nil, err
	}

	logMilestone("[scan:mft] starting MFT top-files scan of %s", path)

	src, err := mft.NewSource(root.drive)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	raw, err := mft.Load(src, progress)
	if err != nil {
		return nil, err
	}
	logMilestone("[scan:mft] MFT loaded into memory, max_records=%d", len(raw))

	sink := mft.NewHeapSink(n)
	var lastCount uint64
	mft.Iterate(raw, root.drive, sink, func(count uint64, p string) {
		lastCount = count
		if progress != nil {
			progress(count, p)
		}
	})
	logMilestone("[scan:mft] iterate done: %d records collected", lastCount)

	results := sink.SortedDesc()
	if progress != nil {
		progress(uint64(len(results)), root.rootPath)
	}
	return results, nil
}
