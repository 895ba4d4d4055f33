package childindex

import (
	"testing"

	"github.com/arborfs/mftscan/internal/types"
)

func rec(path string, size uint64, isDir bool) types.MFTRecord {
	return types.MFTRecord{FullPath: path, Size: size, IsDir: isDir}
}

func TestBuildFindsRootAndChildren(t *testing.T) {
	records := []types.MFTRecord{
		rec(`F:\`, 5, true),
		rec(`F:\a.bin`, 100, false),
		rec(`F:\d`, 0, true),
		rec(`F:\d\x`, 10, false),
	}

	rootSize, rootModified, idx := Build(records, "F:")
	if rootSize != 5 {
		t.Errorf("rootSize = %d, want 5", rootSize)
	}
	if rootModified != nil {
		t.Errorf("rootModified = %v, want nil", rootModified)
	}

	direct := idx.DirectChildren(`F:\`, "F:")
	if len(direct) != 2 {
		t.Fatalf("expected 2 direct children, got %d", len(direct))
	}

	dChildren := idx[`F:\d`]
	if len(dChildren) != 1 || dChildren[0].FullPath != `F:\d\x` {
		t.Errorf("unexpected children of F:\\d: %#v", dChildren)
	}
}

// TestRootExcludedFromOwnParentList ensures the root record never appears as
// its own child (spec.md §4.5: "except when p is the volume root itself").
func TestRootExcludedFromOwnParentList(t *testing.T) {
	records := []types.MFTRecord{
		rec(`F:\`, 0, true),
		rec(`F:\a`, 1, false),
	}
	_, _, idx := Build(records, "F:")
	for _, children := range idx {
		for _, c := range children {
			if c.FullPath == `F:\` {
				t.Fatalf("root record must not appear as a child")
			}
		}
	}
}

// TestDirectChildrenKeyAsymmetry covers spec.md §9's documented asymmetry:
// direct children of the root are keyed by "F:" (from rfind('\\') on
// "F:\\x"), not "F:\\", so lookups must probe both.
func TestDirectChildrenKeyAsymmetry(t *testing.T) {
	records := []types.MFTRecord{
		rec(`F:\`, 0, true),
		rec(`F:\a.bin`, 1, false),
	}
	_, _, idx := Build(records, "F:")

	if _, ok := idx[`F:\`]; ok {
		t.Fatalf(`did not expect a "F:\\" key in the raw index`)
	}
	if _, ok := idx["F:"]; !ok {
		t.Fatalf(`expected a "F:" key in the raw index`)
	}
	if got := idx.DirectChildren(`F:\`, "F:"); len(got) != 1 {
		t.Fatalf("DirectChildren probe failed, got %d entries", len(got))
	}
}

func TestEmptyInput(t *testing.T) {
	rootSize, rootModified, idx := Build(nil, "F:")
	if rootSize != 0 || rootModified != nil {
		t.Errorf("expected zero root for empty input")
	}
	if len(idx) != 0 {
		t.Errorf("expected empty index, got %d entries", len(idx))
	}
}
