// Command volinfo is the standalone NTFS volume-info diagnostic tool: it
// opens a volume, prints cluster size and MFT position, and optionally
// stops there instead of loading the whole $MFT. Grounded on
// original_source's examples/ntfs_volume_info.rs and
// tests/ntfs_reader_c_drive.rs.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/arborfs/mftscan/internal/mft"
	"github.com/arborfs/mftscan/internal/volume"
)

func main() {
	os.Exit(run())
}

func run() int {
	drive := strings.ToUpper(strings.TrimSpace(os.Getenv("NTFS_VOLUME")))
	if drive == "" {
		drive = "C"
	}
	drive = strings.TrimRight(drive, ":")

	fmt.Printf("[volinfo] target volume: %s: (\\\\.\\%s:)\n", drive, drive)

	h, err := volume.Open(drive)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[volinfo] could not open volume %s: (requires administrator privileges): %v\n", drive, err)
		return 1
	}
	defer h.Close()

	vd, err := h.NtfsVolumeData()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[volinfo] could not read NTFS volume data: %v\n", err)
		return 1
	}

	fmt.Println("[volinfo] ---------- volume info ----------")
	fmt.Printf("  serial number:             %X\n", vd.SerialNumber)
	fmt.Printf("  bytes per sector:          %d\n", vd.BytesPerSector)
	fmt.Printf("  bytes per cluster:         %d\n", vd.BytesPerCluster)
	fmt.Printf("  MFT start LCN:             %d\n", vd.MftStartLCN)
	fmt.Printf("  MFT valid data length:     %d bytes\n", vd.MftValidDataLength)
	fmt.Printf("  MFT physical offset:       %d bytes\n", vd.MftStartLCN*int64(vd.BytesPerCluster))

	if total, free, ok := volume.Capacity(drive); ok {
		fmt.Printf("  volume capacity:           %d bytes (%d free)\n", total, free)
	}

	infoOnly := os.Getenv("NTFS_VOLUME_INFO_ONLY")
	if infoOnly == "1" || strings.EqualFold(infoOnly, "true") {
		fmt.Println("[volinfo] NTFS_VOLUME_INFO_ONLY set, skipping MFT load")
		fmt.Println("[volinfo] ---------- done ----------")
		return 0
	}

	src, err := mft.NewSource(drive)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[volinfo] could not open $MFT: %v\n", err)
		return 1
	}
	defer src.Close()

	records, err := mft.Load(src, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[volinfo] could not load $MFT: %v\n", err)
		return 1
	}

	fmt.Println("[volinfo] ---------- MFT info ----------")
	fmt.Printf("  decoded records: %d\n", len(records))
	fmt.Println("[volinfo] ---------- done ----------")
	return 0
}
