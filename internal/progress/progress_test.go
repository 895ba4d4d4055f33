package progress

import "testing"

func TestParsePercent(t *testing.T) {
	cases := []struct {
		msg  string
		want int
		ok   bool
	}{
		{"[scan:mft] Loading MFT 0%", 0, true},
		{"[scan:mft] Loading MFT 57%", 57, true},
		{"[scan:mft] Loading MFT 100%", 100, true},
		{"F:\\Users\\a.bin", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := parsePercent(c.msg)
		if ok != c.ok || (ok && got != c.want) {
			t.Errorf("parsePercent(%q) = (%d, %v), want (%d, %v)", c.msg, got, ok, c.want, c.ok)
		}
	}
}

func TestDisabledBarIsNoop(t *testing.T) {
	b := NewSpinner(false)
	b.Set(5)
	b.Describe("x")
	b.Finish("done")

	p := NewPercent(false)
	p.Set(50)
}

func TestSinkRoutesByMessageShape(t *testing.T) {
	spinner := NewSpinner(false)
	percent := NewPercent(false)
	sink := Sink(spinner, percent)

	sink(42, "[scan:mft] Loading MFT 10%")
	sink(100, `F:\a.bin`)
	sink(101, "")
}
