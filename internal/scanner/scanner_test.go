package scanner

import (
	"errors"
	"testing"

	"github.com/arborfs/mftscan/internal/types"
)

func TestResolveRootAcceptsVolumeRoot(t *testing.T) {
	r, err := resolveRoot(`F:\`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.drive != "F" {
		t.Errorf("drive = %q, want F", r.drive)
	}
	if r.rootPath != `F:\` {
		t.Errorf("rootPath = %q, want verbatim user string", r.rootPath)
	}
	if r.volumeRootTrim != "F:" {
		t.Errorf("volumeRootTrim = %q, want F:", r.volumeRootTrim)
	}
}

func TestResolveRootRejectsNonVolumeRoot(t *testing.T) {
	_, err := resolveRoot(`F:\Users\a`)
	if err == nil {
		t.Fatal("expected InvalidPath error for a non-root path")
	}
	var se *types.ScanError
	if !errors.As(err, &se) {
		t.Fatalf("expected *types.ScanError, got %T", err)
	}
	if se.Kind != types.InvalidPath {
		t.Errorf("Kind = %v, want InvalidPath", se.Kind)
	}
}

func TestWillUseMFT(t *testing.T) {
	if !WillUseMFT(`F:\`) {
		t.Error("expected a bare volume root to route to the MFT path")
	}
	if WillUseMFT(`F:\some\sub\dir`) {
		t.Error("expected a non-root path not to route to the MFT path")
	}
}

func TestScanVolumeMFTRejectsInvalidPathBeforeOpeningVolume(t *testing.T) {
	_, err := ScanVolumeMFT(`not-a-drive`, nil, false)
	if err == nil {
		t.Fatal("expected error for an uncanonicalizable/non-root path")
	}
	var se *types.ScanError
	if !errors.As(err, &se) || se.Kind != types.InvalidPath {
		t.Fatalf("expected InvalidPath ScanError, got %v", err)
	}
}

func TestScanVolumeMFTTopFilesRejectsInvalidPath(t *testing.T) {
	_, err := ScanVolumeMFTTopFiles(`not-a-drive`, 10, nil)
	if err == nil {
		t.Fatal("expected error for an uncanonicalizable/non-root path")
	}
	var se *types.ScanError
	if !errors.As(err, &se) || se.Kind != types.InvalidPath {
		t.Fatalf("expected InvalidPath ScanError, got %v", err)
	}
}

func TestCanonicalizeIsIdempotent(t *testing.T) {
	c1, err := canonicalize(`F:\dir`)
	if err != nil {
		t.Fatal(err)
	}
	c2, err := canonicalize(c1)
	if err != nil {
		t.Fatal(err)
	}
	if c1 != c2 {
		t.Errorf("canonicalize not idempotent: %q vs %q", c1, c2)
	}
}

func TestCanonicalizeRejectsEmptyPath(t *testing.T) {
	_, err := canonicalize("   ")
	if err == nil {
		t.Fatal("expected an error for an empty/whitespace-only path")
	}
}
