package diag

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestReportIncludesAllPhasesAndNotes(t *testing.T) {
	var buf bytes.Buffer
	Report(&buf, Phases{
		GetMFT:    500 * time.Millisecond,
		Iterate:   300 * time.Millisecond,
		BuildTree: 200 * time.Millisecond,
		Records:   12345,
	})
	out := buf.String()
	for _, want := range []string{
		"get MFT content",
		"iterate records",
		"build result",
		"records=12345",
		"phase 1: disk I/O",
		"phase 2: single-threaded",
		"phase 3: already parallel",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestReportHandlesZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	Report(&buf, Phases{})
	if strings.Contains(buf.String(), "NaN") {
		t.Errorf("zero-duration report produced NaN: %s", buf.String())
	}
}
