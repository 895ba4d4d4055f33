// Package diag holds the scan pipeline's opt-in diagnostic output: the
// MFT_TIMING phase-timing report, grounded verbatim on
// original_source/mft_scan.rs's scan_volume_mft (the `if
// std::env::var("MFT_TIMING").is_ok()` block).
package diag

import (
	"fmt"
	"io"
	"os"
	"time"
)

// TimingEnabled reports whether MFT_TIMING is set, the same opt-in gate the
// original source checks.
func TimingEnabled() bool {
	_, ok := os.LookupEnv("MFT_TIMING")
	return ok
}

// Phases captures the three-phase duration breakdown scanner.ScanVolumeMFT
// measures: (1) opening the volume and loading $MFT, (2) enumerating
// records, (3) building the result tree.
type Phases struct {
	GetMFT    time.Duration
	Iterate   time.Duration
	BuildTree time.Duration
	Records   int
}

// Report writes the MFT_TIMING block to w (os.Stderr in production),
// matching the original's layout and parallelization notes line for line.
func Report(w io.Writer, p Phases) {
	total := p.GetMFT + p.Iterate + p.BuildTree
	totalMs := total.Milliseconds()

	pct := func(d time.Duration) float64 {
		if totalMs == 0 {
			return 0
		}
		return 100.0 * float64(d.Milliseconds()) / float64(totalMs)
	}

	fmt.Fprintln(w, "[MFT_TIMING] ---------- MFT scan phase timing (ms) ----------")
	fmt.Fprintf(w, "[MFT_TIMING] 1. get MFT content (open volume + load $MFT): %8d ms  (%5.1f%%)\n", p.GetMFT.Milliseconds(), pct(p.GetMFT))
	fmt.Fprintf(w, "[MFT_TIMING] 2. iterate records + collect:                %8d ms  (%5.1f%%)\n", p.Iterate.Milliseconds(), pct(p.Iterate))
	fmt.Fprintf(w, "[MFT_TIMING] 3. build result (parallel):                  %8d ms  (%5.1f%%)\n", p.BuildTree.Milliseconds(), pct(p.BuildTree))
	fmt.Fprintf(w, "[MFT_TIMING] total:                                      %8d ms  records=%d\n", totalMs, p.Records)
	fmt.Fprintln(w, "[MFT_TIMING] ---------- parallelization notes ----------")
	fmt.Fprintln(w, "[MFT_TIMING] - phase 1: disk I/O, not parallelizable.")
	fmt.Fprintln(w, "[MFT_TIMING] - phase 2: single-threaded (parent-chain path resolution is inherently sequential per record).")
	fmt.Fprintln(w, "[MFT_TIMING] - phase 3: already parallel (chunked map/index + per-directory fan-out).")
}
