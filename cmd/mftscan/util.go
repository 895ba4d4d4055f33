package main

import (
	"fmt"
	"io"
	"time"

	"github.com/arborfs/mftscan/internal/types"
	"github.com/dustin/go-humanize"
)

// printTree writes the result tree as an indented, human-readable listing,
// largest child first within each directory.
func printTree(w io.Writer, res types.ScanResult) {
	fmt.Fprintf(w, "%s  %s\n", res.Root.Path, humanize.IBytes(res.Root.Size))
	printChildren(w, res.Root.Children, "")
	fmt.Fprintf(w, "\n%d entries, %s total, %s\n",
		res.FileCount, humanize.IBytes(res.TotalSize), formatDuration(res.ScanTimeMs))
	if res.VolumeTotalBytes != nil && res.VolumeFreeBytes != nil {
		fmt.Fprintf(w, "volume: %s free of %s\n",
			humanize.IBytes(*res.VolumeFreeBytes), humanize.IBytes(*res.VolumeTotalBytes))
	}
}

func printChildren(w io.Writer, children []*types.FileNode, prefix string) {
	sorted := sortedBySizeDesc(children)
	for i, c := range sorted {
		last := i == len(sorted)-1
		branch, nextPrefix := "├── ", prefix+"│   "
		if last {
			branch, nextPrefix = "└── ", prefix+"    "
		}
		fmt.Fprintf(w, "%s%s%s  %s\n", prefix, branch, c.Name, humanize.IBytes(c.Size))
		printChildren(w, c.Children, nextPrefix)
	}
}

func sortedBySizeDesc(nodes []*types.FileNode) []*types.FileNode {
	out := make([]*types.FileNode, len(nodes))
	copy(out, nodes)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Size > out[j-1].Size; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// printTopFiles writes the top-N list as a simple size-descending table.
func printTopFiles(w io.Writer, entries []types.TopFileEntry) {
	for i, e := range entries {
		fmt.Fprintf(w, "%4d  %10s  %s\n", i+1, humanize.IBytes(e.Size), e.Path)
	}
}

func formatDuration(ms uint64) string {
	return (time.Duration(ms) * time.Millisecond).String()
}
