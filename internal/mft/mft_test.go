package mft

import (
	"sync"
	"testing"
)

type fakeLoadSource struct {
	records []RawRecord
}

func (s *fakeLoadSource) Close() error { return nil }

func (s *fakeLoadSource) Load(report func(decoded, total uint64)) ([]RawRecord, error) {
	total := uint64(len(s.records))
	for i := range s.records {
		if report != nil {
			report(uint64(i+1), total)
		}
	}
	return s.records, nil
}

func TestLoadWithoutProgressJustDelegates(t *testing.T) {
	src := &fakeLoadSource{records: []RawRecord{{RecordNumber: 5}}}
	recs, err := Load(src, nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
}

func TestLoadForwardsProgressWithoutBlockingDecode(t *testing.T) {
	src := &fakeLoadSource{records: make([]RawRecord, 200)}

	var mu sync.Mutex
	var calls int
	recs, err := Load(src, func(count uint64, message string) {
		mu.Lock()
		calls++
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(recs) != 200 {
		t.Fatalf("got %d records, want 200", len(recs))
	}
	mu.Lock()
	defer mu.Unlock()
	if calls == 0 {
		t.Errorf("expected at least one progress call")
	}
}
