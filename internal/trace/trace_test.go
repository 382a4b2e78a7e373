package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"off", LevelOff, false},
		{"PHASE", LevelPhase, false},
		{"detail", LevelDetail, false},
		{"debug", LevelDebug, false},
		{"loud", LevelOff, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelShouldEmit(t *testing.T) {
	if LevelPhase.ShouldEmit(ScopeFile) {
		t.Error("phase level must drop file events")
	}
	if !LevelDetail.ShouldEmit(ScopeFile) {
		t.Error("detail level must keep file events")
	}
	if LevelOff.ShouldEmit(ScopeRun) {
		t.Error("off level emits nothing")
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Fatal("tracer should be disabled")
	}
	s := Begin(tr, ScopeRun, "run", 0)
	if s.ID() != 0 || s.End("") != 0 {
		t.Fatal("nop span must be inert")
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)

	ctx := WithTracer(context.Background(), tr)
	ctx, run := Start(ctx, ScopeRun, "run")
	_, scan := Start(ctx, ScopePhase, "scan")
	Point(tr, ScopeFile, "file:a.ts", "", scan.ID()) // dropped at phase level
	scan.WithExtra("files", "3").End("")
	run.End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d events, want 4:\n%s", len(lines), buf.String())
	}
	var ev struct {
		Kind     string            `json:"kind"`
		Name     string            `json:"name"`
		ParentID uint64            `json:"parent_id"`
		Extra    map[string]string `json:"extra"`
	}
	if err := json.Unmarshal([]byte(lines[2]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Kind != "end" || ev.Name != "scan" || ev.Extra["files"] != "3" {
		t.Errorf("unexpected scan end event: %+v", ev)
	}
	if ev.ParentID != run.ID() {
		t.Errorf("scan parent = %d, want %d", ev.ParentID, run.ID())
	}
}

func TestStreamChromeIsValidJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatChrome)
	s := Begin(tr, ScopePhase, "evaluate", 0)
	s.End("")
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
	var doc struct {
		TraceEvents []map[string]any `json:"traceEvents"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid chrome trace: %v\n%s", err, buf.String())
	}
	if len(doc.TraceEvents) != 2 {
		t.Fatalf("got %d events", len(doc.TraceEvents))
	}
}

func TestRingWrapsAround(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(r, ScopeFile, name, "", 0)
	}
	snap := r.Snapshot()
	var names []string
	for _, ev := range snap {
		names = append(names, ev.Name)
	}
	if got := strings.Join(names, ","); got != "c,d,e" {
		t.Fatalf("snapshot = %s, want c,d,e", got)
	}

	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Errorf("dump:\n%s", buf.String())
	}
}

func TestRingOfMulti(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopePhase, "report", 0).End("")
	r := RingOf(tr)
	if r == nil {
		t.Fatal("ring sink not found")
	}
	if len(r.Snapshot()) != 2 || buf.Len() == 0 {
		t.Errorf("events were not fanned out")
	}
}

func TestFormatForPath(t *testing.T) {
	tests := map[string]Format{
		"":              FormatText,
		"-":             FormatText,
		"t.ndjson":      FormatNDJSON,
		"t.chrome.json": FormatChrome,
		"t.log":         FormatText,
	}
	for path, want := range tests {
		if got := FormatForPath(path); got != want {
			t.Errorf("FormatForPath(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestHeartbeatNilSafe(t *testing.T) {
	h := StartHeartbeat(Nop, 0)
	if h != nil {
		t.Fatal("heartbeat should not start for Nop")
	}
	h.Stop()
}
