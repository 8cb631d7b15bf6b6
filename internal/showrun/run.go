// Package showrun wires a complete prompter session: configuration, logging,
// the document manifest, the viewer session, the input producers and the
// dispatch loop that ties them together.
package showrun

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"prompter/internal/actionqueue"
	"prompter/internal/config"
	"prompter/internal/console"
	"prompter/internal/decoder"
	"prompter/internal/deps"
	"prompter/internal/dispatch"
	"prompter/internal/instance"
	"prompter/internal/logging"
	"prompter/internal/manifest"
	"prompter/internal/midiin"
	"prompter/internal/viewer"
	"prompter/internal/viewer/zathura"
)

// Options configures one show run.
type Options struct {
	ManifestPath string
	LogLevel     string
	Development  bool
	// NoMIDI runs with keyboard input only.
	NoMIDI bool
	// Interactive allows prompting on Stdin for a MIDI port.
	Interactive bool

	Stdin  io.Reader
	Stdout io.Writer
	// Stderr receives console log output.
	Stderr io.Writer

	// Backend replaces the zathura backend.
	Backend *viewer.Backend
}

// Run blocks until the show ends through an exit command or an interrupt.
// Only an unusable manifest (or a second running instance) is returned as an
// error. Viewer and MIDI failures are logged and the show keeps serving
// commands; an interrupt is not an error.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}
	opts = withDefaults(opts)

	ctx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	// Locked before the run log exists, so a refused second instance leaves
	// no log behind.
	lock, err := instance.Acquire(cfg.Paths.LogDir)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	runID := time.Now().UTC().Format("20060102T150405.000Z")
	logPath := filepath.Join(cfg.Paths.LogDir, fmt.Sprintf("prompter-%s.log", runID))
	level := opts.LogLevel
	if strings.TrimSpace(level) == "" {
		level = cfg.Logging.Level
	}
	logger, err := logging.New(logging.Options{
		Level:       level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{logPath},
		Writer:      opts.Stderr,
		Development: opts.Development,
		SessionID:   uuid.NewString(),
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logging.PruneRunLogs(logger, cfg.Paths.LogDir, "prompter-*.log", logPath, cfg.Logging.RetentionDays)

	docs, err := loadManifest(cfg, opts.ManifestPath)
	if err != nil {
		logging.ErrorWithContext(logger, "manifest rejected", "manifest_invalid",
			logging.String("manifest", opts.ManifestPath),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "fix the manifest or add the listed documents"),
		)
		return err
	}
	logger.Info("manifest loaded",
		logging.String("manifest", docs.Source()),
		logging.String("document_dir", docs.Dir()),
		logging.Int("documents", docs.Len()),
	)

	backend := resolveBackend(cfg, opts, logger)

	queue := actionqueue.New()
	defer queue.Close()

	// One reader for stdin: the port chooser and the prompt consume it in turn.
	stdin := console.NewLines(opts.Stdin)

	if !opts.NoMIDI {
		stopMIDI, err := startMIDI(cfg, opts, stdin, queue, logger)
		if err != nil {
			logging.ErrorWithContext(logger, "MIDI input unavailable; keyboard only", "midi_start_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "run 'prompter ports' and set midi.port or --port"),
				logging.String(logging.FieldImpact, "only keyboard commands are accepted"),
			)
		} else {
			defer stopMIDI()
		}
	}

	session, err := viewer.NewSession(docs, backend, viewer.Options{
		LaunchSettle: cfg.LaunchSettle(),
		OpenSettle:   cfg.OpenSettle(),
	}, logger)
	if err != nil {
		return err
	}
	if err := session.Start(ctx); err != nil {
		if ctx.Err() != nil {
			_ = session.Close(context.WithoutCancel(ctx))
			return nil
		}
		// Not fatal: the next document command relaunches the viewer.
		logging.ErrorWithContext(logger, "viewer start failed", "viewer_start_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the viewer binary and the D-Bus session bus"),
			logging.String(logging.FieldImpact, "no document is shown until a document number is entered"),
		)
	}

	prompt := &console.Prompt{In: stdin, Out: opts.Stdout, Queue: queue, Logger: logger}
	go func() {
		if err := prompt.Run(ctx); err != nil && !errors.Is(err, actionqueue.ErrClosed) {
			logger.Warn("keyboard input stopped", logging.Error(err))
		}
	}()

	logger.Info("prompter ready",
		logging.String(logging.FieldEventType, "ready"),
		logging.String("log_path", logPath),
	)
	loop := &dispatch.Loop{
		Queue:        queue,
		Executor:     session,
		Logger:       logger,
		PollInterval: cfg.PollInterval(),
	}
	if err := loop.Run(ctx); err != nil {
		return err
	}
	logger.Info("prompter stopped", logging.Int("viewer_restarts", session.Restarts()))
	return nil
}

func withDefaults(opts Options) Options {
	if strings.TrimSpace(opts.ManifestPath) == "" {
		opts.ManifestPath = config.DefaultManifestPath
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	return opts
}

func loadManifest(cfg *config.Config, path string) (*manifest.Manifest, error) {
	docs, err := manifest.Load(path, cfg.DocumentDir(path))
	if err != nil {
		return nil, err
	}
	if err := docs.Validate(); err != nil {
		return nil, err
	}
	return docs, nil
}

// resolveBackend never fails: missing dependencies are reported and the
// zathura backend is used regardless, so the failure surfaces on launch.
func resolveBackend(cfg *config.Config, opts Options, logger *slog.Logger) viewer.Backend {
	if opts.Backend != nil {
		return *opts.Backend
	}
	statuses := deps.CheckBinaries(deps.ViewerRequirements(cfg))
	statuses = append(statuses, deps.CheckSessionBus())
	for _, s := range statuses {
		logger.Debug("dependency",
			logging.String("name", s.Name),
			logging.Bool("available", s.Available),
			logging.String("path", s.Path),
			logging.String("detail", s.Detail),
		)
	}
	if missing := deps.MissingRequired(statuses); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, s := range missing {
			names[i] = fmt.Sprintf("%s (%s)", s.Name, s.Detail)
		}
		logging.ErrorWithContext(logger, "viewer dependencies missing", "dependencies_missing",
			logging.String("missing", strings.Join(names, ", ")),
			logging.String(logging.FieldErrorHint, "run 'prompter check' for details"),
			logging.String(logging.FieldImpact, "the viewer cannot be launched"),
		)
	}
	return zathura.NewBackend(cfg)
}

func startMIDI(cfg *config.Config, opts Options, stdin *console.Lines, queue *actionqueue.Queue, logger *slog.Logger) (func(), error) {
	client, err := midiin.NewClient(logger)
	if err != nil {
		return nil, err
	}
	ports, err := client.Ports()
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	if len(ports) == 0 {
		logging.WarnWithContext(logger, "no MIDI inputs found; keyboard only", "midi_unavailable",
			logging.String(logging.FieldErrorHint, "connect a MIDI device or pass --no-midi"),
			logging.String(logging.FieldImpact, "only keyboard commands are accepted"),
		)
		_ = client.Close()
		return func() {}, nil
	}

	var port midiin.Port
	switch {
	case cfg.MIDI.Port != "":
		port, err = midiin.Select(ports, cfg.MIDI.Port)
	case opts.Interactive:
		port, err = console.ChoosePort(stdin, opts.Stdout, ports)
	default:
		port = ports[0]
		logger.Info("no MIDI port configured; using the first input", logging.String(logging.FieldPort, port.Name))
	}
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	listener, err := client.Listen(port, midiin.ListenOptions{
		Decoder: decoder.New(cfg.ChannelNibble(), uint8(cfg.MIDI.NextPageNote)),
		Queue:   queue,
		Thru:    cfg.MIDI.Thru,
	})
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return func() {
		_ = listener.Close()
		_ = client.Close()
	}, nil
}
