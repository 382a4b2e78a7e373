// Package diag defines the diagnostic model shared by the scanner, the rule
// engine and the rewriter.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error (severity.go).
//   - Code – compact numeric identifier with a stable string form (codes.go).
//     Ranges: LEX lexical, SYN delimiter structure, NAM naming rules,
//     IO file system, FIX rename conflicts.
//   - Message – short, actionable text.
//   - Primary – the source.Span the finding points at.
//   - Notes – secondary spans, e.g. the existing declaration a rename
//     would collide with.
//   - Fixes – rename suggestions expressed as guarded text edits.
//
// TextEdit carries an optional OldText guard. The fix engine refuses to apply
// an edit whose guard does not match the staged buffer.
//
// # Emitting diagnostics
//
// Producers report through a Reporter. BagReporter collects into a Bag and
// DedupReporter drops repeated findings. Scan workers each fill their own Bag,
// merged in file order after the barrier.
//
// Package diag does no formatting beyond FormatShortDiagnostics. Rendering
// lives in internal/diagfmt, and fixes are applied by internal/fix.
package diag
