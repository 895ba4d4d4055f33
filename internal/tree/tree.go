// Package tree materializes the bounded FileNode tree from the child index
// and recursive size map, per spec.md §4.6: depth cap, per-directory fan-out
// cap, and the shallow-directory collapse policy.
package tree

import (
	"strings"
	"sync"

	"github.com/arborfs/mftscan/internal/childindex"
	"github.com/arborfs/mftscan/internal/types"
)

// Options configures materialization. ShallowDirNames is the caller-provided
// SHALLOW_DIR_NAMES set (spec.md §4.6); only consulted when ShallowDirs is
// true.
type Options struct {
	ShallowDirs     bool
	ShallowDirNames []string
}

func (o Options) isShallowName(name string) bool {
	if !o.ShallowDirs {
		return false
	}
	for _, s := range o.ShallowDirNames {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}

// Materialize builds the result tree. rootSize/rootModified come from
// childindex.Build; sizes is the recursive size map from sizemap.Build.
// rootPath/rootName are used verbatim for the root node (spec.md §3: "Root
// node uses the user-supplied target-path string verbatim for path").
//
// The root's direct children are expanded concurrently (spec.md §4.6:
// "build children in parallel at the root level"); everything below the
// root recurses sequentially, since fan-out dominates cost per branch there.
//
// When a directory has more than MAX_CHILDREN_PER_DIR children, the first
// ones in child-index order are kept and the rest dropped; no size or name
// tiebreak is applied.
func Materialize(
	idx childindex.Index,
	sizes map[string]uint64,
	volumeRootKey, volumeRootTrim string,
	rootName, rootPath string,
	rootSize uint64,
	rootModified *uint64,
	opts Options,
) (root *types.FileNode, fileCount uint64, totalSize uint64) {
	direct := idx.DirectChildren(volumeRootKey, volumeRootTrim)
	if len(direct) > types.MaxChildrenPerDir {
		direct = direct[:types.MaxChildrenPerDir]
	}

	childNodes := make([]*types.FileNode, len(direct))
	var wg sync.WaitGroup
	sem := types.NewSemaphore(workerLimit(len(direct)))
	for i, rec := range direct {
		wg.Add(1)
		go func(i int, rec *types.MFTRecord) {
			defer wg.Done()
			sem.Acquire()
			defer sem.Release()
			childNodes[i] = buildChild(idx, sizes, rec, 1, opts)
		}(i, rec)
	}
	wg.Wait()

	totalSize = rootSize
	for _, c := range childNodes {
		totalSize += c.Size
	}

	root = &types.FileNode{
		Path:     rootPath,
		Name:     rootName,
		Size:     totalSize,
		IsDir:    true,
		Modified: rootModified,
		Children: childNodes,
	}

	fileCount = CountNodes(root)
	return root, fileCount, totalSize
}

// buildChild materializes a single direct-or-deeper child: either a shallow
// leaf (if eligible) or a fully expanded subtree (subject to MAX_DEPTH).
func buildChild(idx childindex.Index, sizes map[string]uint64, rec *types.MFTRecord, depth int, opts Options) *types.FileNode {
	name := lastSegment(rec.FullPath)

	switch {
	case !rec.IsDir:
		return leafFromRecord(rec, name)
	case opts.isShallowName(name):
		return shallowLeaf(sizes, rec, name)
	case depth >= types.MaxDepth:
		return leafFromRecord(rec, name)
	default:
		return buildSubtree(idx, sizes, rec.FullPath, name, depth, opts)
	}
}

// buildSubtree expands path's children from the index, recursing until
// MAX_DEPTH or a shallow-eligible directory is hit, capping emitted children
// at MAX_CHILDREN_PER_DIR (remaining siblings are silently dropped).
//
// Interior directory nodes always carry Modified = nil (spec.md §9): the
// original source hardcodes this during subtree build even when the
// underlying record has a timestamp.
func buildSubtree(idx childindex.Index, sizes map[string]uint64, path, name string, depth int, opts Options) *types.FileNode {
	children := idx[path]

	var size uint64
	out := make([]*types.FileNode, 0, minInt(len(children), types.MaxChildrenPerDir))

	for _, rec := range children {
		if strings.EqualFold(rec.FullPath, path) {
			continue
		}
		childName := lastSegment(rec.FullPath)

		var node *types.FileNode
		switch {
		case !rec.IsDir:
			node = leafFromRecord(rec, childName)
		case opts.isShallowName(childName):
			node = shallowLeaf(sizes, rec, childName)
		case depth < types.MaxDepth:
			node = buildSubtree(idx, sizes, rec.FullPath, childName, depth+1, opts)
		default:
			node = leafFromRecord(rec, childName)
		}

		size += node.Size
		out = append(out, node)
		if len(out) >= types.MaxChildrenPerDir {
			break
		}
	}

	return &types.FileNode{
		Path:     path,
		Name:     name,
		Size:     size,
		IsDir:    true,
		Modified: nil,
		Children: out,
	}
}

// shallowLeaf collapses a well-known system directory into a childless node
// whose size is its aggregated subtree total, falling back to the record's
// own size if the size map has no entry (spec.md §4.6).
func shallowLeaf(sizes map[string]uint64, rec *types.MFTRecord, name string) *types.FileNode {
	size, ok := sizes[trimTrailingSep(rec.FullPath)]
	if !ok {
		size = rec.Size
	}
	return &types.FileNode{
		Path:     rec.FullPath,
		Name:     name,
		Size:     size,
		IsDir:    true,
		Modified: rec.Modified,
		Children: []*types.FileNode{},
	}
}

// leafFromRecord materializes a record (file or depth-capped directory) as
// a childless node carrying its own record size.
func leafFromRecord(rec *types.MFTRecord, name string) *types.FileNode {
	return &types.FileNode{
		Path:     rec.FullPath,
		Name:     name,
		Size:     rec.Size,
		IsDir:    rec.IsDir,
		Modified: rec.Modified,
		Children: []*types.FileNode{},
	}
}

// CountNodes counts a node and every descendant surviving in the
// materialized tree. This is not a true filesystem file count -- see
// spec.md §9's open question -- only nodes that survive the depth/fan-out
// caps and shallow collapse are counted.
func CountNodes(n *types.FileNode) uint64 {
	if len(n.Children) == 0 {
		return 1
	}
	var total uint64 = 1
	for _, c := range n.Children {
		total += CountNodes(c)
	}
	return total
}

func lastSegment(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '\\' {
			return path[i+1:]
		}
	}
	return path
}

func trimTrailingSep(s string) string {
	for len(s) > 0 && s[len(s)-1] == '\\' {
		s = s[:len(s)-1]
	}
	return s
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// workerLimit bounds root-level fan-out concurrency so a directory with a
// huge number of top-level entries doesn't spawn one goroutine per entry.
func workerLimit(n int) int {
	const ceiling = 64
	if n <= 0 {
		return 1
	}
	if n > ceiling {
		return ceiling
	}
	return n
}
