package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1 // начало операции
	KindSpanEnd                   // конец операции
	KindPoint                     // мгновенное событие
	KindHeartbeat                 // liveness
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	case KindHeartbeat:
		return "heartbeat"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity of the event.
// Lower values are coarser.
type Scope uint8

const (
	// ScopeRun covers a whole lint-names invocation.
	ScopeRun Scope = iota + 1
	// ScopePhase covers scan, evaluate, rewrite and report.
	ScopePhase
	// ScopeFile covers per-file work: lexing, cache lookups, writes.
	ScopeFile
	// ScopeToken is the token level, only useful for the tokenize command.
	ScopeToken
)

func (s Scope) String() string {
	switch s {
	case ScopeRun:
		return "run"
	case ScopePhase:
		return "phase"
	case ScopeFile:
		return "file"
	case ScopeToken:
		return "token"
	default:
		return "unknown"
	}
}

// Event is a single trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // монотонный номер
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 для корня
	GID      uint64
	Name     string // "scan", "file:src/user.ts"
	Detail   string
	Extra    map[string]string
}
