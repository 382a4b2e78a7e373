package main

import (
	"fmt"
	"io"
	"time"

	"lintnames/internal/pipeline"
)

func printStageTimings(out io.Writer, timings pipeline.Timings) {
	if out == nil {
		return
	}
	for _, stage := range []pipeline.Stage{pipeline.StageScan, pipeline.StageEvaluate, pipeline.StageRewrite, pipeline.StageReport} {
		if timings.Has(stage) {
			fmt.Fprintf(out, "%s %.1f ms\n", stage, toMillis(timings.Duration(stage)))
		}
	}
	all := timings.Sum(pipeline.StageScan, pipeline.StageEvaluate, pipeline.StageRewrite, pipeline.StageReport)
	fmt.Fprintf(out, "total %.1f ms\n", toMillis(all))
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
