package testsupport

import (
	"path/filepath"
	"testing"

	"prompter/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Settle intervals are zeroed so tests never sleep on the viewer.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.DocumentDir = filepath.Join(base, "pdf")
	cfgVal.Viewer.DataDir = filepath.Join(base, "share")
	cfgVal.Viewer.LaunchSettleMS = 0
	cfgVal.Viewer.OpenSettleMS = 0
	cfgVal.Viewer.ConnectTimeoutMS = 200
	cfgVal.Dispatch.PollIntervalMS = 10

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithClearHistory toggles viewer artifact cleanup.
func WithClearHistory(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Viewer.ClearHistory = enabled
	}
}

// BaseDir returns the temp root used by NewConfig. It is derived from the log
// directory and is only meaningful for configs built by NewConfig.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}
