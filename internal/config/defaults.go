package config

const (
	defaultLogDir           = "~/.local/share/prompter/logs"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLogRetentionDays = 14
	defaultMIDIChannel      = 1
	defaultNextPageNote     = 48 // C3
	defaultViewerBinary     = "zathura"
	defaultViewerMode       = "presentation"
	defaultLaunchSettleMS   = 4000
	defaultOpenSettleMS     = 100
	defaultConnectTimeoutMS = 5000
	defaultPollIntervalMS   = 100

	// DefaultManifestPath is the manifest used when no --input flag is given.
	DefaultManifestPath = "pdf_files.json"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		MIDI: MIDI{
			Channel:      defaultMIDIChannel,
			NextPageNote: defaultNextPageNote,
			Thru:         true,
		},
		Viewer: Viewer{
			Binary:           defaultViewerBinary,
			Mode:             defaultViewerMode,
			LaunchSettleMS:   defaultLaunchSettleMS,
			OpenSettleMS:     defaultOpenSettleMS,
			ConnectTimeoutMS: defaultConnectTimeoutMS,
			ClearHistory:     true,
		},
		Dispatch: Dispatch{
			PollIntervalMS: defaultPollIntervalMS,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
