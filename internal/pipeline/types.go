package pipeline

import "time"

// Stage describes a high-level pipeline phase.
type Stage string

const (
	// StageScan lexes every source file.
	StageScan Stage = "scan"
	// StageEvaluate runs the naming rules.
	StageEvaluate Stage = "evaluate"
	// StageRewrite plans and applies renames.
	StageRewrite Stage = "rewrite"
	// StageReport builds the summary and writes the report file.
	StageReport Stage = "report"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the task is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the task is currently working.
	StatusWorking Status = "working"
	// StatusDone indicates the task is done.
	StatusDone Status = "done"
	// StatusError indicates the task encountered an error.
	StatusError Status = "error"
)

// State is the position of a run in its state machine:
// Idle -> Scanning -> Evaluating -> (Reporting | Rewriting -> Reporting) -> Done.
type State uint8

const (
	StateIdle State = iota
	StateScanning
	StateEvaluating
	StateRewriting
	StateReporting
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScanning:
		return "scanning"
	case StateEvaluating:
		return "evaluating"
	case StateRewriting:
		return "rewriting"
	case StateReporting:
		return "reporting"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// Event reports progress for a file (or for the overall pipeline when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
	// Done and Total count scanned files; set on per-file scan events.
	Done   int
	Total  int
	Cached bool
}

// ProgressSink consumes progress events. OnEvent may be called from scan
// workers concurrently.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings holds stage durations.
type Timings struct {
	stages map[Stage]time.Duration
}

func (t *Timings) ensure() {
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
}

// Set stores a duration for the given stage.
func (t *Timings) Set(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	t.ensure()
	t.stages[stage] = dur
}

// Has reports whether a duration for stage is recorded.
func (t Timings) Has(stage Stage) bool {
	if t.stages == nil {
		return false
	}
	_, ok := t.stages[stage]
	return ok
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	return t.stages[stage]
}

// Sum returns the sum of durations across the provided stages.
func (t Timings) Sum(stages ...Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}
