package main

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"lintnames/internal/trace"
)

// tracing is the tracer attached to the command context plus its teardown.
type tracing struct {
	tracer    trace.Tracer
	heartbeat *trace.Heartbeat
	errOut    io.Writer
}

// setupTracing inspects trace-related flags and attaches a tracer to the
// command context. Level off without an output path attaches Nop.
func setupTracing(cmd *cobra.Command) (*tracing, error) {
	pflags := cmd.Root().PersistentFlags()

	traceOutput, err := pflags.GetString("trace")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get trace flag")
	}
	levelStr, err := pflags.GetString("trace-level")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get trace-level flag")
	}
	modeStr, err := pflags.GetString("trace-mode")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get trace-mode flag")
	}
	ringSize, err := pflags.GetInt("trace-ring-size")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get trace-ring-size flag")
	}
	heartbeatInterval, err := pflags.GetDuration("trace-heartbeat")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get trace-heartbeat flag")
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, errors.Wrap(err, "invalid trace level")
	}
	// --trace без уровня означает phase
	if level == trace.LevelOff && traceOutput != "" {
		level = trace.LevelPhase
	}
	t := &tracing{tracer: trace.Nop, errOut: cmd.ErrOrStderr()}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return t, nil
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, errors.Wrap(err, "invalid trace mode")
	}
	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     trace.FormatForPath(traceOutput),
		OutputPath: traceOutput,
		RingSize:   ringSize,
		Heartbeat:  heartbeatInterval,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create tracer")
	}
	t.tracer = tracer
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))

	if heartbeatInterval > 0 {
		t.heartbeat = trace.StartHeartbeat(tracer, heartbeatInterval)
	}
	return t, nil
}

// close stops the heartbeat, dumps the ring buffer when the run failed, and
// closes the tracer.
func (t *tracing) close(failed bool) {
	if t == nil || t.tracer == nil {
		return
	}
	if t.heartbeat != nil {
		t.heartbeat.Stop()
	}
	if ring := trace.RingOf(t.tracer); ring != nil && failed {
		fmt.Fprintln(t.errOut, "trace: last events before failure:")
		if err := ring.Dump(t.errOut, trace.FormatText); err != nil {
			fmt.Fprintf(t.errOut, "trace: dump error: %v\n", err)
		}
	}
	if err := t.tracer.Flush(); err != nil {
		fmt.Fprintf(t.errOut, "trace: flush error: %v\n", err)
	}
	if err := t.tracer.Close(); err != nil {
		fmt.Fprintf(t.errOut, "trace: close error: %v\n", err)
	}
}
