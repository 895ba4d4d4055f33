// Package types holds the data model shared across the scan pipeline:
// the intermediate MFT record, the materialized result tree, and the two
// error/concurrency primitives (ScanError, Semaphore) every other package
// depends on.
package types

// FileNode is one node of the result tree returned to the UI layer.
// Size is the subtree total for directories and the file's own size for
// files. Modified is absent for every interior directory node the tree
// builder materializes (see spec.md §9, "the source's intermediate
// modified... is always absent"); it is only ever set on the root and on
// leaf (file, shallow-collapsed-directory or depth-capped-directory) nodes.
type FileNode struct {
	Path     string      `json:"path"`
	Name     string      `json:"name"`
	Size     uint64      `json:"size"`
	IsDir    bool        `json:"is_dir"`
	Modified *uint64     `json:"modified,omitempty"`
	Children []*FileNode `json:"children"`
}

// ScanResult is the complete output of a tree-mode scan.
type ScanResult struct {
	Root             *FileNode `json:"root"`
	ScanTimeMs       uint64    `json:"scan_time_ms"`
	FileCount        uint64    `json:"file_count"`
	TotalSize        uint64    `json:"total_size"`
	ScanWarning      *string   `json:"scan_warning,omitempty"`
	VolumeTotalBytes *uint64   `json:"volume_total_bytes,omitempty"`
	VolumeFreeBytes  *uint64   `json:"volume_free_bytes,omitempty"`
}

// TopFileEntry is one result of top-N mode. Directories never appear here.
type TopFileEntry struct {
	Path     string  `json:"path"`
	Size     uint64  `json:"size"`
	Modified *uint64 `json:"modified,omitempty"`
}
