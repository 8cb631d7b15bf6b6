package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"prompter/internal/config"
	"prompter/internal/showrun"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevelFlag string
	var inputFlag string
	var portFlag string
	var channelFlag int
	var noMIDI bool

	ctx := newCommandContext(&configFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:   "prompter",
		Short: "Turn PDF pages from a MIDI controller",
		Long: "prompter opens the documents listed in a JSON manifest in zathura and turns\n" +
			"pages on MIDI note-on messages. Program changes select a document by number.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.validateLogLevel(); err != nil {
				return err
			}
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if port := strings.TrimSpace(portFlag); port != "" {
				cfg.MIDI.Port = port
			}
			if cmd.Flags().Changed("channel") {
				if channelFlag < 1 || channelFlag > 16 {
					return fmt.Errorf("invalid --channel %d: want 1-16", channelFlag)
				}
				cfg.MIDI.Channel = channelFlag
			}

			return showrun.Run(cmd.Context(), cfg, showrun.Options{
				ManifestPath: inputFlag,
				LogLevel:     ctx.logLevel(),
				NoMIDI:       noMIDI,
				Interactive:  isInteractive(cmd.InOrStdin()),
				Stdin:        cmd.InOrStdin(),
				Stdout:       cmd.OutOrStdout(),
				Stderr:       cmd.ErrOrStderr(),
			})
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level override (debug, info, warn, error)")

	rootCmd.Flags().StringVarP(&inputFlag, "input", "i", config.DefaultManifestPath, "Document manifest (JSON)")
	rootCmd.Flags().StringVar(&portFlag, "port", "", "MIDI input port number or name fragment")
	rootCmd.Flags().IntVar(&channelFlag, "channel", 1, "MIDI channel to listen on (1-16)")
	rootCmd.Flags().BoolVar(&noMIDI, "no-midi", false, "Keyboard input only")

	rootCmd.AddCommand(newPortsCommand())
	rootCmd.AddCommand(newManifestCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newLogsCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
