// Package volume opens the raw NTFS volume device for a drive letter and
// probes its total/free capacity, grounded on
// original_source/mft_scan.rs's get_volume_space_bytes and
// to_disk_analyzer_error, plus xBen-Harveyx-GoSize's GetDiskFreeSpaceEx call
// site.
package volume

import (
	"github.com/arborfs/mftscan/internal/types"
)

// NtfsVolumeData mirrors winioctl.h's NTFS_VOLUME_DATA_BUFFER (the fields
// internal/mft needs to locate $MFT on disk), per
// original_source/examples/ntfs_volume_info.rs's NtfsVolumeDataBuffer.
type NtfsVolumeData struct {
	SerialNumber                  int64
	BytesPerSector                uint32
	BytesPerCluster                uint32
	BytesPerFileRecordSegment     uint32
	ClustersPerFileRecordSegment  uint32
	MftStartLCN                   int64
	MftValidDataLength            int64
}

// Handle is an open raw volume device, ready for $MFT extraction by
// internal/mft. Close releases the underlying OS handle.
type Handle struct {
	Drive string
	impl  handleImpl
}

// Close releases the raw device handle. Safe to call on a zero Handle.
func (h *Handle) Close() error {
	if h == nil || h.impl == nil {
		return nil
	}
	return h.impl.Close()
}

// NtfsVolumeData issues FSCTL_GET_NTFS_VOLUME_DATA against the open volume
// device, the same call ntfs_volume_info.rs's example makes to locate the
// MFT's starting cluster.
func (h *Handle) NtfsVolumeData() (NtfsVolumeData, error) {
	return h.impl.NtfsVolumeData()
}

// ReadAt reads len(buf) bytes from the raw volume device starting at the
// given byte offset, for streaming $MFT data off disk without loading the
// whole device into memory first.
func (h *Handle) ReadAt(offset int64, buf []byte) (int, error) {
	return h.impl.ReadAt(offset, buf)
}

// Open validates and opens the raw volume device `\\.\X:` for drive (a
// single ASCII letter, no colon). It distinguishes an elevation failure
// from a generic I/O failure, mirroring
// original_source/mft_scan.rs's to_disk_analyzer_error mapping of
// NtfsReaderError::ElevationError.
func Open(drive string) (*Handle, error) {
	if len(drive) != 1 || !isASCIILetter(drive[0]) {
		return nil, types.NewInvalidPath("invalid drive letter: " + drive)
	}
	impl, err := openImpl(drive)
	if err != nil {
		return nil, err
	}
	return &Handle{Drive: drive, impl: impl}, nil
}

// Capacity returns (total, free) bytes for the volume rooted at
// `<drive>:\`, per spec.md §4.8. It returns ok=false if the platform or API
// call cannot answer (e.g. non-Windows, or GetDiskFreeSpaceEx failure) --
// this is advisory data, never fatal to a scan.
func Capacity(drive string) (total, free uint64, ok bool) {
	return capacityImpl(drive)
}

func isASCIILetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
