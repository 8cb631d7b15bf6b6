package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"prompter/internal/config"
	"prompter/internal/manifest"
)

func newManifestCommand(ctx *commandContext) *cobra.Command {
	manifestCmd := &cobra.Command{
		Use:   "manifest",
		Short: "Document manifest utilities",
	}
	manifestCmd.AddCommand(newManifestValidateCommand(ctx))
	return manifestCmd
}

func newManifestValidateCommand(ctx *commandContext) *cobra.Command {
	var inputFlag string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that every document in the manifest exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			docs, err := manifest.Load(inputFlag, cfg.DocumentDir(inputFlag))
			if err != nil {
				return err
			}

			validateErr := docs.Validate()
			missing := map[int]bool{}
			var merr *manifest.Error
			if errors.As(validateErr, &merr) {
				for _, entry := range merr.Missing {
					missing[entry.Index] = true
				}
			}

			rows := make([][]string, 0, docs.Len())
			for _, entry := range docs.Entries() {
				status := "ok"
				if missing[entry.Index] {
					status = "missing"
				}
				rows = append(rows, []string{strconv.Itoa(entry.Index), entry.Path, status})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Manifest: %s\n", docs.Source())
			fmt.Fprintf(out, "Documents: %s\n", docs.Dir())
			fmt.Fprintln(out, renderTable([]string{"#", "Path", "Status"}, rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft}))
			if validateErr != nil {
				return validateErr
			}
			fmt.Fprintln(out, "Manifest valid")
			return nil
		},
	}
	cmd.Flags().StringVarP(&inputFlag, "input", "i", config.DefaultManifestPath, "Document manifest (JSON)")
	return cmd
}
