package main

import (
	"context"
	"io"

	"lintnames/internal/pipeline"
	"lintnames/internal/ui"
)

type runOutcome struct {
	result *pipeline.Result
	err    error
}

// runWithUI runs the pipeline in the background and renders its events on
// out until the run finishes.
func runWithUI(ctx context.Context, req *pipeline.Request, out io.Writer) (*pipeline.Result, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan runOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = pipeline.ChannelSink{Ch: events}
		res, err := pipeline.Run(ctx, &reqCopy)
		outcomeCh <- runOutcome{result: res, err: err}
		close(events)
	}()

	uiErr := ui.Run(ctx, "lint-names "+req.Mode.String(), events, out)
	// UI мог выйти раньше времени: дочитываем события, чтобы воркеры не заблокировались
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
