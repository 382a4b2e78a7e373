package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"lintnames/internal/prof"
)

// setupProfiling inspects the persistent profiling flags and starts the
// requested profilers. The returned cleanup is safe to call more than once.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	pflags := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPUProfile, err = pflags.GetString("cpu-profile"); err != nil {
		return nil, errors.Wrap(err, "failed to get cpu-profile flag")
	}
	if opts.MemProfile, err = pflags.GetString("mem-profile"); err != nil {
		return nil, errors.Wrap(err, "failed to get mem-profile flag")
	}
	if opts.RuntimeTrace, err = pflags.GetString("runtime-trace"); err != nil {
		return nil, errors.Wrap(err, "failed to get runtime-trace flag")
	}
	if !opts.Enabled() {
		return func() {}, nil
	}

	session, err := prof.Start(opts)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "lint-names: %v\n", err)
		}
	}, nil
}
