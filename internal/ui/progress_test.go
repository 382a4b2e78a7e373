package ui

import (
	"strings"
	"testing"

	"lintnames/internal/pipeline"
)

func feed(m *progressModel, events ...pipeline.Event) {
	for _, ev := range events {
		m.Update(eventMsg(ev))
	}
}

func TestProgressWindow(t *testing.T) {
	m := NewProgressModel("lint-names", nil).(*progressModel)
	feed(m, pipeline.Event{Stage: pipeline.StageScan, Status: pipeline.StatusWorking})
	for i := 1; i <= 10; i++ {
		feed(m, pipeline.Event{
			File:   strings.Repeat("x", i) + ".ts",
			Stage:  pipeline.StageScan,
			Status: pipeline.StatusDone,
			Done:   i,
			Total:  12,
			Cached: i%2 == 0,
		})
	}

	if len(m.recent) != window {
		t.Fatalf("recent = %d, want %d", len(m.recent), window)
	}
	if m.recent[0].path != "xxx.ts" {
		t.Fatalf("oldest visible = %s", m.recent[0].path)
	}
	view := m.View()
	for _, want := range []string{"lint-names (scanning)", "10/12 files, 5 cached", "cached"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, " x.ts") {
		t.Errorf("files outside the window must not be shown:\n%s", view)
	}
}

func TestProgressOutOfOrderAndErrors(t *testing.T) {
	m := NewProgressModel("lint-names", nil).(*progressModel)
	feed(m,
		pipeline.Event{File: "b.ts", Stage: pipeline.StageScan, Status: pipeline.StatusDone, Done: 2, Total: 2},
		pipeline.Event{File: "a.ts", Stage: pipeline.StageScan, Status: pipeline.StatusError, Done: 1, Total: 2},
		pipeline.Event{Stage: pipeline.StageRewrite, Status: pipeline.StatusWorking},
	)
	if m.done != 2 || m.failed != 1 {
		t.Fatalf("done=%d failed=%d", m.done, m.failed)
	}
	view := m.View()
	if !strings.Contains(view, "(rewriting)") || !strings.Contains(view, "1 failed") {
		t.Fatalf("unexpected view:\n%s", view)
	}
}

func TestProgressDone(t *testing.T) {
	ch := make(chan pipeline.Event)
	close(ch)
	m := NewProgressModel("lint-names", ch).(*progressModel)
	msg := m.listenForEvent()()
	if _, ok := msg.(doneMsg); !ok {
		t.Fatalf("closed channel must yield doneMsg, got %T", msg)
	}
	_, cmd := m.Update(msg)
	if cmd == nil || !m.finished {
		t.Fatalf("done must quit")
	}
	if !strings.HasPrefix(m.View(), "done: ") && !strings.Contains(m.View(), "done: lint-names") {
		t.Fatalf("unexpected final view:\n%s", m.View())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.ts", 20, "short.ts"},
		{"very/long/path/name.ts", 10, "very/lo..."},
		{"abcdef", 2, "ab"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
