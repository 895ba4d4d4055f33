package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arborfs/mftscan/internal/types"
)

func node(name string, size uint64, children ...*types.FileNode) *types.FileNode {
	return &types.FileNode{Path: name, Name: name, Size: size, IsDir: len(children) > 0, Children: children}
}

func TestPrintTreeOrdersChildrenBySizeDescending(t *testing.T) {
	root := node(`F:\`, 30, node("small", 10), node("big", 20))
	res := types.ScanResult{Root: root, FileCount: 3, TotalSize: 30}

	var buf bytes.Buffer
	printTree(&buf, res)
	out := buf.String()

	bigIdx := strings.Index(out, "big")
	smallIdx := strings.Index(out, "small")
	if bigIdx < 0 || smallIdx < 0 || bigIdx > smallIdx {
		t.Errorf("expected \"big\" to print before \"small\":\n%s", out)
	}
}

func TestPrintTopFilesIsOneLinePerEntry(t *testing.T) {
	entries := []types.TopFileEntry{
		{Path: `F:\a.bin`, Size: 200},
		{Path: `F:\b.bin`, Size: 100},
	}
	var buf bytes.Buffer
	printTopFiles(&buf, entries)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `F:\a.bin`) {
		t.Errorf("expected first line to mention a.bin, got %q", lines[0])
	}
}

func TestFormatDuration(t *testing.T) {
	if got := formatDuration(1500); got == "" {
		t.Error("expected a non-empty duration string")
	}
}
