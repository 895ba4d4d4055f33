package tree

import (
	"testing"

	"github.com/arborfs/mftscan/internal/childindex"
	"github.com/arborfs/mftscan/internal/sizemap"
	"github.com/arborfs/mftscan/internal/types"
)

func rec(path string, size uint64, isDir bool) types.MFTRecord {
	return types.MFTRecord{FullPath: path, Size: size, IsDir: isDir}
}

func materialize(t *testing.T, records []types.MFTRecord, rootName, rootPath string, opts Options) (*types.FileNode, uint64, uint64) {
	t.Helper()
	rootSize, rootModified, idx := childindex.Build(records, "F:")
	sizes := sizemap.Build(records)
	root, fc, total := Materialize(idx, sizes, `F:\`, "F:", rootName, rootPath, rootSize, rootModified, opts)
	return root, fc, total
}

// TestEmptyRoot mirrors spec.md §8 scenario 1: only the root record exists.
func TestEmptyRoot(t *testing.T) {
	records := []types.MFTRecord{rec(`F:\`, 0, true)}
	root, fc, total := materialize(t, records, "F:\\", `F:\`, Options{})

	if len(root.Children) != 0 {
		t.Errorf("expected no children, got %d", len(root.Children))
	}
	if fc != 1 {
		t.Errorf("fileCount = %d, want 1", fc)
	}
	if total != 0 {
		t.Errorf("totalSize = %d, want 0", total)
	}
}

// TestSingleFile mirrors spec.md §8 scenario 2.
func TestSingleFile(t *testing.T) {
	records := []types.MFTRecord{
		rec(`F:\`, 0, true),
		rec(`F:\a.bin`, 123, false),
	}
	root, fc, total := materialize(t, records, "F:\\", `F:\`, Options{})

	if total != 123 {
		t.Errorf("totalSize = %d, want 123", total)
	}
	if fc != 2 {
		t.Errorf("fileCount = %d, want 2", fc)
	}
	if len(root.Children) != 1 || root.Children[0].Name != "a.bin" || root.Children[0].Size != 123 {
		t.Fatalf("unexpected children: %#v", root.Children)
	}
}

// TestNestedAggregationMatchesSizeConservation mirrors spec.md §8 scenario 3
// and the size-conservation invariant: the root's total equals the sum of
// leaf sizes regardless of nesting depth.
func TestNestedAggregationMatchesSizeConservation(t *testing.T) {
	records := []types.MFTRecord{
		rec(`F:\`, 0, true),
		rec(`F:\d`, 0, true),
		rec(`F:\d\x`, 10, false),
		rec(`F:\d\y`, 20, false),
	}
	root, _, total := materialize(t, records, "F:\\", `F:\`, Options{})

	if total != 30 {
		t.Errorf("totalSize = %d, want 30", total)
	}
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 direct child, got %d", len(root.Children))
	}
	d := root.Children[0]
	if d.Size != 30 {
		t.Errorf("d.Size = %d, want 30", d.Size)
	}
	if d.Modified != nil {
		t.Errorf("interior directory Modified = %v, want nil", d.Modified)
	}
	if len(d.Children) != 2 {
		t.Fatalf("expected 2 grandchildren, got %d", len(d.Children))
	}
}

// TestShallowCollapse verifies a directory named in ShallowDirNames is
// materialized as a childless leaf carrying its aggregated size.
func TestShallowCollapse(t *testing.T) {
	records := []types.MFTRecord{
		rec(`F:\`, 0, true),
		rec(`F:\Windows`, 0, true),
		rec(`F:\Windows\System32`, 0, true),
		rec(`F:\Windows\System32\a.dll`, 500, false),
	}
	opts := Options{ShallowDirs: true, ShallowDirNames: []string{"Windows"}}
	root, fc, total := materialize(t, records, "F:\\", `F:\`, opts)

	if total != 500 {
		t.Errorf("totalSize = %d, want 500", total)
	}
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(root.Children))
	}
	win := root.Children[0]
	if win.Name != "Windows" || win.Size != 500 {
		t.Errorf("unexpected shallow node: %#v", win)
	}
	if len(win.Children) != 0 {
		t.Errorf("shallow node must be childless, got %d children", len(win.Children))
	}
	if fc != 2 {
		t.Errorf("fileCount = %d, want 2 (root + collapsed Windows)", fc)
	}
}

// TestFanOutCap verifies a directory with more than MAX_CHILDREN_PER_DIR
// entries is truncated to the cap.
func TestFanOutCap(t *testing.T) {
	records := []types.MFTRecord{rec(`F:\`, 0, true)}
	const n = types.MaxChildrenPerDir + 100
	for i := 0; i < n; i++ {
		records = append(records, rec(`F:\f`+itoa(i), 1, false))
	}
	root, _, _ := materialize(t, records, "F:\\", `F:\`, Options{})

	if len(root.Children) != types.MaxChildrenPerDir {
		t.Errorf("children = %d, want capped at %d", len(root.Children), types.MaxChildrenPerDir)
	}
}

// TestDepthCap verifies a chain deeper than MAX_DEPTH is truncated: the node
// at the cap boundary is materialized as a childless leaf even though the
// underlying records continue deeper.
func TestDepthCap(t *testing.T) {
	records := []types.MFTRecord{rec(`F:\`, 0, true)}
	path := `F:\`
	for i := 0; i < types.MaxDepth+3; i++ {
		path += "d" + itoa(i) + `\`
		records = append(records, rec(trimSep(path), 0, true))
	}
	records = append(records, rec(trimSep(path)+`\leaf.bin`, 7, false))

	root, _, total := materialize(t, records, "F:\\", `F:\`, Options{})
	if total != 7 {
		t.Errorf("totalSize = %d, want 7 (size conservation must hold regardless of depth cap)", total)
	}

	n := root
	depth := 0
	for len(n.Children) > 0 {
		n = n.Children[0]
		depth++
	}
	if depth > types.MaxDepth {
		t.Errorf("materialized depth = %d, want <= %d", depth, types.MaxDepth)
	}
}

func trimSep(s string) string {
	for len(s) > 0 && s[len(s)-1] == '\\' {
		s = s[:len(s)-1]
	}
	return s
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}
