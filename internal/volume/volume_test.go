package volume

import (
	"testing"

	"github.com/arborfs/mftscan/internal/types"
)

func TestOpenRejectsInvalidDriveLetter(t *testing.T) {
	for _, bad := range []string{"", "C:", "CD", "1", "\\"} {
		_, err := Open(bad)
		if err == nil {
			t.Errorf("Open(%q) = nil error, want invalid-path error", bad)
			continue
		}
		var se *types.ScanError
		if !errorsAs(err, &se) {
			t.Errorf("Open(%q) error is not a ScanError: %v", bad, err)
			continue
		}
		if se.Kind != types.InvalidPath {
			t.Errorf("Open(%q) kind = %v, want InvalidPath", bad, se.Kind)
		}
	}
}

func errorsAs(err error, target **types.ScanError) bool {
	se, ok := err.(*types.ScanError)
	if !ok {
		return false
	}
	*target = se
	return true
}
