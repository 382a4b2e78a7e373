package observ

import (
	"strings"
	"testing"
	"time"
)

func fakeClock(step time.Duration) func() time.Time {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * step)
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)

	scan := tm.Begin("scan")
	tm.End(scan, "12 files")
	tm.Time("evaluate", func() string { return "" })

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phases = %d", len(r.Phases))
	}
	if r.Phases[0].DurationMS != 1 || r.Phases[0].Note != "12 files" {
		t.Errorf("scan phase = %+v", r.Phases[0])
	}
	if r.TotalMS != 2 {
		t.Errorf("total = %v, want 2", r.TotalMS)
	}
}

func TestTimerEndTwiceKeepsFirst(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)
	idx := tm.Begin("rewrite")
	first := tm.End(idx, "a")
	if second := tm.End(idx, "b"); second != 0 {
		t.Errorf("second End = %v", second)
	}
	if got := tm.Report().Phases[0]; got.Note != "a" || first != time.Millisecond {
		t.Errorf("phase = %+v", got)
	}
	tm.End(42, "") // out of range
}

func TestTimerSummary(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(2 * time.Millisecond)
	tm.End(tm.Begin("report"), "json")
	s := tm.Summary()
	for _, want := range []string{"timings:", "report", "// json", "total"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary missing %q:\n%s", want, s)
		}
	}
}
