// Package progress wraps github.com/schollz/progressbar/v3 for the scan
// pipeline's two progress shapes: an indeterminate spinner during record
// iteration, and a determinate percentage bar during MFT load. Adapted from
// the teacher's internal/progress package, which only needed the spinner
// form.
package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

const updateInterval = 50 * time.Millisecond

// Bar wraps progressbar with enabled/disabled handling. All methods are
// no-ops when disabled.
type Bar struct {
	bar *progressbar.ProgressBar
}

// NewSpinner creates an indeterminate spinner, for record iteration where
// the total record count isn't known up front (spec.md §4.3: "emit a
// progress event every PROGRESS_EVERY accepted records").
func NewSpinner(enabled bool) *Bar {
	if !enabled {
		return &Bar{}
	}
	opts := []progressbar.Option{
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionThrottle(updateInterval),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetElapsedTime(false),
	}
	return &Bar{bar: progressbar.NewOptions(-1, opts...)}
}

// NewPercent creates a determinate 0-100 bar for MFT load progress
// (spec.md §6: "[scan:mft] Loading MFT NN%").
func NewPercent(enabled bool) *Bar {
	if !enabled {
		return &Bar{}
	}
	opts := []progressbar.Option{
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionThrottle(updateInterval),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetWidth(40),
	}
	return &Bar{bar: progressbar.NewOptions64(100, opts...)}
}

// Set sets the bar to a specific value (a running record count for a
// spinner, or 0-100 for a percent bar).
func (b *Bar) Set(n uint64) {
	if b.bar != nil {
		_ = b.bar.Set64(int64(n))
	}
}

// Describe updates the bar's description text.
func (b *Bar) Describe(s string) {
	if b.bar != nil {
		b.bar.Describe(s)
	}
}

// Finish completes the bar and prints a final message.
func (b *Bar) Finish(s string) {
	if b.bar != nil {
		_ = b.bar.Finish()
		fmt.Fprintln(os.Stderr, "✔ "+s)
	}
}

// Sink adapts a spinner/percent Bar pair into a types.ProgressSink shape
// (count, message), switching on message form: a message of the literal
// form "[scan:mft] Loading MFT NN%" drives the percent bar; anything else
// (an accepted record path, or the volume root string at completion) drives
// the spinner.
func Sink(spinner, percent *Bar) func(count uint64, message string) {
	return func(count uint64, message string) {
		if pct, ok := parsePercent(message); ok {
			percent.Set(uint64(pct))
			percent.Describe(message)
			return
		}
		spinner.Set(count)
		if message != "" {
			spinner.Describe(message)
		}
	}
}

func parsePercent(message string) (int, bool) {
	const prefix = "[scan:mft] Loading MFT "
	if len(message) <= len(prefix) || message[:len(prefix)] != prefix {
		return 0, false
	}
	rest := message[len(prefix):]
	if len(rest) == 0 || rest[len(rest)-1] != '%' {
		return 0, false
	}
	rest = rest[:len(rest)-1]
	n := 0
	for _, c := range rest {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
