//go:build !windows

package volume

import "github.com/arborfs/mftscan/internal/types"

// handleImpl mirrors the Windows build's interface; no-op here since raw
// NTFS volume access is Windows-only (spec.md §1: "Windows-only").
type handleImpl interface {
	Close() error
	NtfsVolumeData() (NtfsVolumeData, error)
	ReadAt(offset int64, buf []byte) (int, error)
}

type noopHandle struct{}

func (noopHandle) Close() error { return nil }
func (noopHandle) NtfsVolumeData() (NtfsVolumeData, error) {
	return NtfsVolumeData{}, types.NewIo("NtfsVolumeData", errUnsupportedPlatform)
}
func (noopHandle) ReadAt(offset int64, buf []byte) (int, error) {
	return 0, types.NewIo("ReadAt", errUnsupportedPlatform)
}

func openImpl(drive string) (handleImpl, error) {
	return nil, types.NewIo("opening volume "+drive+":", errUnsupportedPlatform)
}

func capacityImpl(drive string) (total, free uint64, ok bool) {
	return 0, 0, false
}

var errUnsupportedPlatform = platformError("raw NTFS volume access is only supported on Windows")

type platformError string

func (e platformError) Error() string { return string(e) }
