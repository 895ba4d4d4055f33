//go:build !windows

package mft

import "github.com/arborfs/mftscan/internal/types"

// NewSource always fails off Windows: raw $MFT access requires the Windows
// volume device API (spec.md §1: "Windows-only").
func NewSource(drive string) (Source, error) {
	return nil, types.NewIo("opening $MFT", errUnsupportedPlatform)
}

type mftPlatformError string

func (e mftPlatformError) Error() string { return string(e) }

const errUnsupportedPlatform = mftPlatformError("MFT access is only supported on Windows")
