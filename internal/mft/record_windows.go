//go:build windows

package mft

import (
	"encoding/binary"
	"unicode/utf16"
)

// FILE record layout constants (winioctl.h / NTFS on-disk format, public
// documentation -- MS-FSCC §2.2 MFT entry layout).
const (
	fileRecordMagic = 0x454C4946 // "FILE" little-endian

	attrStandardInformation = 0x10
	attrFileName            = 0x30
	attrEnd                 = 0xFFFFFFFF

	fileNameNamespaceDOS = 2 // 8.3 short name; skipped in favor of Win32/POSIX names

	flagInUse     = 0x0001
	flagDirectory = 0x0002
)

// decodeFileRecord parses one fixed-size FILE record segment (after fixup
// has already been applied) into a RawRecord. ok is false for records that
// aren't valid base FILE records (bad signature, unused, or no $FILE_NAME
// attribute -- e.g. a record holding only an $ATTRIBUTE_LIST continuation).
func decodeFileRecord(data []byte, recordNumber uint64) (RawRecord, bool) {
	if len(data) < 48 || binary.LittleEndian.Uint32(data[0:4]) != fileRecordMagic {
		return RawRecord{}, false
	}

	flags := binary.LittleEndian.Uint16(data[22:24])
	if flags&flagInUse == 0 {
		return RawRecord{}, false
	}
	attrsOffset := binary.LittleEndian.Uint16(data[20:22])

	rec := RawRecord{RecordNumber: recordNumber, InUse: true, IsDirectory: flags&flagDirectory != 0}
	haveName := false

	off := int(attrsOffset)
	for off+8 <= len(data) {
		attrType := binary.LittleEndian.Uint32(data[off : off+4])
		if attrType == attrEnd {
			break
		}
		attrLen := binary.LittleEndian.Uint32(data[off+4 : off+8])
		if attrLen == 0 || off+int(attrLen) > len(data) {
			break
		}
		nonResident := data[off+8]

		switch attrType {
		case attrStandardInformation:
			if nonResident == 0 {
				if t, ok := parseStandardInformation(data, off); ok {
					rec.ModifiedUnix = t
				}
			}
		case attrFileName:
			if nonResident == 0 {
				if fn, ok := parseFileName(data, off); ok {
					rec.ParentRecordNumber = fn.parent
					if !haveName || fn.namespace != fileNameNamespaceDOS {
						rec.Name = fn.name
						rec.Size = fn.realSize
						haveName = true
					}
				}
			}
		}

		off += int(attrLen)
	}

	if !haveName {
		return RawRecord{}, false
	}
	return rec, true
}

const contentOffsetFieldOffset = 20 // resident-attribute header: content offset @ +20 (u16)
const contentLenFieldOffset = 16    // resident-attribute header: content length @ +16 (u32)

func residentContent(data []byte, attrStart int) []byte {
	contentLen := binary.LittleEndian.Uint32(data[attrStart+contentLenFieldOffset : attrStart+contentLenFieldOffset+4])
	contentOff := binary.LittleEndian.Uint16(data[attrStart+contentOffsetFieldOffset : attrStart+contentOffsetFieldOffset+2])
	start := attrStart + int(contentOff)
	end := start + int(contentLen)
	if start < 0 || end > len(data) || start > end {
		return nil
	}
	return data[start:end]
}

// parseStandardInformation extracts the "last modified" FILETIME (100ns
// ticks since 1601-01-01), converted to a Unix timestamp. A non-positive
// result (clock before the Unix epoch, or a malformed field) is treated as
// absent, matching original_source/mft_scan.rs's `if s > 0 { Some(s) }`.
func parseStandardInformation(data []byte, attrStart int) (*uint64, bool) {
	c := residentContent(data, attrStart)
	if len(c) < 16 {
		return nil, false
	}
	modifiedFiletime := binary.LittleEndian.Uint64(c[8:16])
	unix := filetimeToUnix(modifiedFiletime)
	if unix <= 0 {
		return nil, true
	}
	u := uint64(unix)
	return &u, true
}

const filetimeEpochDiff = 116444736000000000 // 1601-01-01 -> 1970-01-01, in 100ns ticks

func filetimeToUnix(ft uint64) int64 {
	if ft < filetimeEpochDiff {
		return 0
	}
	return int64((ft - filetimeEpochDiff) / 10_000_000)
}

type fileNameAttr struct {
	parent    uint64
	name      string
	realSize  uint64
	namespace byte
}

// parseFileName decodes a resident $FILE_NAME attribute: parent file
// reference (low 48 bits of the 8-byte reference), allocated/real size, and
// the UTF-16LE name.
func parseFileName(data []byte, attrStart int) (fileNameAttr, bool) {
	c := residentContent(data, attrStart)
	if len(c) < 66 {
		return fileNameAttr{}, false
	}
	parentRef := binary.LittleEndian.Uint64(c[0:8])
	parent := parentRef & 0x0000FFFFFFFFFFFF
	realSize := binary.LittleEndian.Uint64(c[48:56])
	nameLenChars := int(c[64])
	namespace := c[65]

	nameStart := 66
	nameEnd := nameStart + nameLenChars*2
	if nameEnd > len(c) {
		return fileNameAttr{}, false
	}
	u16 := make([]uint16, nameLenChars)
	for i := 0; i < nameLenChars; i++ {
		u16[i] = binary.LittleEndian.Uint16(c[nameStart+2*i : nameStart+2*i+2])
	}
	name := string(utf16.Decode(u16))

	return fileNameAttr{parent: parent, name: name, realSize: realSize, namespace: namespace}, true
}
