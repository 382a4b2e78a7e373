package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"lintnames/internal/config"
	"lintnames/internal/errs"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default " + config.FileName,
		Long: `Write a default .lintnames.toml into dir (the current directory when
omitted). An existing file is left alone unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
	cmd.Flags().Bool("force", false, "overwrite an existing config")
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	st, err := os.Stat(target)
	if err != nil {
		return errs.NewIOError("stat", target, err)
	}
	if !st.IsDir() {
		return errors.Newf("%q is not a directory", target)
	}

	path := filepath.Join(target, config.FileName)
	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(path); err == nil && !force {
		return errors.WithHint(errors.Newf("%s already exists", path), "use --force to overwrite it")
	}

	data, err := config.Default().Encode()
	if err != nil {
		return err
	}
	header := "# lint-names configuration\n# Keys left out keep their defaults.\n\n"
	if err := os.WriteFile(path, append([]byte(header), data...), 0o644); err != nil {
		return errs.NewIOError("write", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
