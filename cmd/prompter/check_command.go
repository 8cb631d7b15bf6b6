package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"prompter/internal/config"
	"prompter/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var inputFlag string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the manifest, directories and viewer dependencies before a show",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			results := preflight.RunAll(cfg, inputFlag)
			out := cmd.OutOrStdout()
			for _, line := range preflightLines(results, shouldColorize(out)) {
				fmt.Fprintln(out, line)
			}
			if failed := preflight.Failed(results); len(failed) > 0 {
				return fmt.Errorf("%d check(s) failed", len(failed))
			}
			fmt.Fprintln(out, "Ready")
			return nil
		},
	}
	cmd.Flags().StringVarP(&inputFlag, "input", "i", config.DefaultManifestPath, "Document manifest (JSON)")
	return cmd
}
