// Package trace records spans for a lint-names run.
//
// A run opens one ScopeRun span, one ScopePhase span per pipeline phase
// (scan, evaluate, rewrite, report) and, at LevelDetail, one ScopeFile span
// per lexed or written file.
//
//	lint-names --trace=trace.ndjson --trace-level=detail
//
// Sinks: StreamTracer writes immediately (text, NDJSON or chrome JSON),
// RingTracer keeps the tail in memory for dumps after an internal error,
// MultiTracer combines them. Nop is used when tracing is off.
//
// Tracers travel in context:
//
//	ctx = trace.WithTracer(ctx, t)
//	ctx, span := trace.Start(ctx, trace.ScopePhase, "scan")
//	defer span.End("")
package trace
