//go:build windows

package volume

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/arborfs/mftscan/internal/types"
)

// handleImpl is satisfied by windowsHandle; it is declared per platform file
// rather than in volume.go, and volume_other.go declares the same interface
// for non-Windows builds.
type handleImpl interface {
	Close() error
	NtfsVolumeData() (NtfsVolumeData, error)
	ReadAt(offset int64, buf []byte) (int, error)
}

type windowsHandle struct {
	h windows.Handle
}

func (w windowsHandle) Close() error {
	return windows.CloseHandle(w.h)
}

// ntfsVolumeDataBuffer mirrors winioctl.h's NTFS_VOLUME_DATA_BUFFER layout
// (the first block shared with NTFS_VOLUME_DATA_BUFFER's base fields;
// extended fields beyond MftZoneEnd are not needed here and are omitted).
type ntfsVolumeDataBuffer struct {
	VolumeSerialNumber               int64
	NumberSectors                    int64
	TotalClusters                    int64
	FreeClusters                     int64
	TotalReserved                    int64
	BytesPerSector                   uint32
	BytesPerCluster                  uint32
	BytesPerFileRecordSegment        uint32
	ClustersPerFileRecordSegment     uint32
	MftValidDataLength               int64
	MftStartLcn                      int64
	Mft2StartLcn                     int64
	MftZoneStart                     int64
	MftZoneEnd                       int64
}

func (w windowsHandle) NtfsVolumeData() (NtfsVolumeData, error) {
	var buf ntfsVolumeDataBuffer
	var bytesReturned uint32
	err := windows.DeviceIoControl(
		w.h,
		windows.FSCTL_GET_NTFS_VOLUME_DATA,
		nil,
		0,
		(*byte)(unsafe.Pointer(&buf)),
		uint32(unsafe.Sizeof(buf)),
		&bytesReturned,
		nil,
	)
	if err != nil {
		return NtfsVolumeData{}, types.NewIo("FSCTL_GET_NTFS_VOLUME_DATA", err)
	}
	return NtfsVolumeData{
		SerialNumber:                 buf.VolumeSerialNumber,
		BytesPerSector:               buf.BytesPerSector,
		BytesPerCluster:              buf.BytesPerCluster,
		BytesPerFileRecordSegment:    buf.BytesPerFileRecordSegment,
		ClustersPerFileRecordSegment: buf.ClustersPerFileRecordSegment,
		MftStartLCN:                  buf.MftStartLcn,
		MftValidDataLength:           buf.MftValidDataLength,
	}, nil
}

// ReadAt positions the raw device handle with SetFilePointer and reads
// into buf, since raw volume devices don't support pread-style offset reads.
func (w windowsHandle) ReadAt(offset int64, buf []byte) (int, error) {
	low := int32(offset & 0xFFFFFFFF)
	high := int32(offset >> 32)
	if _, err := windows.SetFilePointer(w.h, low, &high, windows.FILE_BEGIN); err != nil {
		return 0, types.NewIo("seeking volume device", err)
	}
	var n uint32
	if err := windows.ReadFile(w.h, buf, &n, nil); err != nil {
		return int(n), types.NewIo("reading volume device", err)
	}
	return int(n), nil
}

// openImpl opens \\.\X: for raw read access. A failure that smells like
// access-denied is reported as ElevationRequired rather than a generic Io
// error, since by far the most common cause of CreateFile failing on a raw
// volume device is running without administrator privileges
// (original_source/mft_scan.rs's NtfsReaderError::ElevationError mapping).
func openImpl(drive string) (handleImpl, error) {
	path := `\\.\` + drive + `:`
	p16, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, types.NewInvalidPath("invalid volume path: " + path)
	}

	h, err := windows.CreateFile(
		p16,
		windows.GENERIC_READ,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil,
		windows.OPEN_EXISTING,
		0,
		0,
	)
	if err != nil {
		if isAccessDenied(err) || !isElevated() {
			return nil, types.NewElevationRequired(err)
		}
		return nil, types.NewIo("opening volume "+path, err)
	}
	return windowsHandle{h: h}, nil
}

func isAccessDenied(err error) bool {
	errno, ok := err.(syscall.Errno)
	return ok && errno == windows.ERROR_ACCESS_DENIED
}

// isElevated reports whether the current process token is elevated, via
// OpenProcessToken + GetTokenInformation(TokenElevation).
func isElevated() bool {
	var token windows.Token
	proc := windows.CurrentProcess()
	if err := windows.OpenProcessToken(proc, windows.TOKEN_QUERY, &token); err != nil {
		return false
	}
	defer token.Close()
	return token.IsElevated()
}

// capacityImpl calls GetDiskFreeSpaceEx on `<drive>:\`, matching
// xBen-Harveyx-GoSize's driveSpaceCache.totalFor call site.
func capacityImpl(drive string) (total, free uint64, ok bool) {
	root := drive + `:\`
	p16, err := windows.UTF16PtrFromString(root)
	if err != nil {
		return 0, 0, false
	}
	var freeAvailToCaller, totalBytes, totalFree uint64
	if err := windows.GetDiskFreeSpaceEx(p16, &freeAvailToCaller, &totalBytes, &totalFree); err != nil {
		return 0, 0, false
	}
	return totalBytes, totalFree, true
}
