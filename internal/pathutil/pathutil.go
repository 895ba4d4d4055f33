// Package pathutil normalizes NTFS paths returned by the MFT parser into the
// canonical form used everywhere else in the scan pipeline, and answers the
// small set of ASCII, case-insensitive prefix questions the rest of the
// pipeline needs (is this the volume root, is this path under the volume).
package pathutil

import "strings"

// Normalize converts a path reported by the MFT parser (e.g. `\\.\F:\dir\file`,
// `\\?\F:\dir\file`, or `F:\dir\file`) into the canonical form `F:\dir\file`
// for the given uppercase drive letter. The canonical root is `F:\`; every
// other path has no trailing backslash.
//
// Ported from the original source's normalize_ntfs_path: the prefix forms are
// tried in order (`\\.\X:`, `\\?\X:`, bare `X:`) and the remainder is
// re-joined onto `X:\`.
func Normalize(raw string, drive string) string {
	s := strings.ReplaceAll(raw, "/", `\`)
	s = strings.TrimRight(s, `\`)

	dotPrefix := `\\.\` + drive + ":"
	qPrefix := `\\?\`

	var rest string
	switch {
	case strings.HasPrefix(s, dotPrefix):
		rest = strings.TrimLeft(s[len(dotPrefix):], `\`)
	case strings.HasPrefix(s, qPrefix) && len(s) >= len(qPrefix)+2:
		afterQ := s[len(qPrefix):]
		if len(afterQ) >= 2 && afterQ[1] == ':' && strings.EqualFold(afterQ[:1], drive) {
			rest = strings.TrimLeft(afterQ[2:], `\`)
		} else {
			return s
		}
	case len(s) >= 2 && s[1] == ':':
		if !strings.EqualFold(s[:1], drive) {
			return s
		}
		after := strings.TrimLeft(s[2:], `\`)
		if after == "" {
			return drive + `:\`
		}
		return drive + `:\` + after
	default:
		return s
	}

	if rest == "" {
		return drive + `:\`
	}
	return drive + `:\` + rest
}

// DriveLetterFromVolumeRoot extracts the uppercase drive letter from a
// volume-root path such as `F:`, `F:\`, `\\?\F:`, or `\\?\F:\`. Returns ""
// if path is not a recognizable volume root.
func DriveLetterFromVolumeRoot(path string) string {
	s := strings.TrimRight(path, `\`)

	var drive string
	switch {
	case len(s) == 2 && s[1] == ':':
		drive = s[:1]
	case strings.HasPrefix(s, `\\?\`):
		rest := s[4:]
		if len(rest) == 2 && rest[1] == ':' {
			drive = rest[:1]
		}
	}
	if drive == "" || !isASCIILetter(drive[0]) {
		return ""
	}
	return strings.ToUpper(drive)
}

// IsWindowsVolumeRoot reports whether path denotes a Windows volume root,
// e.g. `C:\`, `D:`, `\\?\E:\`.
func IsWindowsVolumeRoot(path string) bool {
	s := strings.TrimRight(path, `\`)
	if len(s) == 2 {
		return isASCIILetter(s[0]) && s[1] == ':'
	}
	if strings.HasPrefix(s, `\\?\`) {
		rest := s[4:]
		return len(rest) == 2 && isASCIILetter(rest[0]) && rest[1] == ':'
	}
	return false
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// UnderVolume reports whether path is the volume root itself, or a
// descendant of it, using ASCII case-insensitive comparison. volTrim must
// have no trailing backslash (e.g. "C:").
//
// The boundary rule from spec.md §3: either the strings are equal, or the
// path has a backslash immediately after the root prefix -- this rejects
// `C:Foo` (a relative-to-drive path, not a volume-rooted one) and distinct
// drives sharing a prefix.
func UnderVolume(path, volTrim string) bool {
	if strings.EqualFold(path, volTrim) {
		return true
	}
	if len(path) <= len(volTrim) {
		return false
	}
	if path[len(volTrim)] != '\\' {
		return false
	}
	return strings.EqualFold(path[:len(volTrim)], volTrim)
}

// TrimTrailingSep trims every trailing backslash, if any.
func TrimTrailingSep(path string) string {
	return strings.TrimRight(path, `\`)
}

// LastSegment returns the final path segment (the display name), splitting
// on the last backslash.
func LastSegment(path string) string {
	if i := strings.LastIndexByte(path, '\\'); i >= 0 {
		return path[i+1:]
	}
	return path
}

// ParentKey returns the key this path should be filed under in the child
// index: everything before the last backslash. Returns "", false if path has
// no backslash (only the volume root itself has no parent).
func ParentKey(path string) (string, bool) {
	i := strings.LastIndexByte(path, '\\')
	if i < 0 {
		return "", false
	}
	return path[:i], true
}
