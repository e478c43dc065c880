package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Capacity:  4096,
		Source:    SourceHeap,
		Budget:    0,
		Frames:    5,
		LogLevel:  "INFO",
		LogFormat: "text",
	}, cfg)
}

func TestLoadPrecedence(t *testing.T) {
	t.Setenv("ARENADEMO_CAPACITY", "64KiB")
	t.Setenv("ARENADEMO_FRAMES", "3")
	t.Setenv("ARENADEMO_LOG_LEVEL", "DEBUG")

	t.Run("EnvOverridesDefaults", func(t *testing.T) {
		cfg, err := Load(newFlags(t))
		require.NoError(t, err)
		assert.Equal(t, 64*1024, cfg.Capacity)
		assert.Equal(t, 3, cfg.Frames)
		assert.Equal(t, "DEBUG", cfg.LogLevel)
		assert.Equal(t, SourceHeap, cfg.Source)
	})

	t.Run("FlagsOverrideEnv", func(t *testing.T) {
		cfg, err := Load(newFlags(t, "--capacity=1KiB", "--frames=7", "--source=MMAP", "--budget=1MiB", "--metrics"))
		require.NoError(t, err)
		assert.Equal(t, 1024, cfg.Capacity)
		assert.Equal(t, 7, cfg.Frames)
		assert.Equal(t, SourceMmap, cfg.Source)
		assert.Equal(t, 1<<20, cfg.Budget)
		assert.True(t, cfg.Metrics)
		assert.Equal(t, "DEBUG", cfg.LogLevel, "unset flag keeps env value")
	})
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"BadSize", []string{"--capacity=lots"}},
		{"ZeroCapacity", []string{"--capacity=0"}},
		{"BudgetBelowCapacity", []string{"--capacity=4KiB", "--budget=1KiB"}},
		{"UnknownSource", []string{"--source=disk"}},
		{"NegativeFrames", []string{"--frames=-1"}},
		{"UnknownLevel", []string{"--log-level=loud"}},
		{"UnknownFormat", []string{"--log-format=xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(newFlags(t, tt.args...))
			assert.Error(t, err)
		})
	}
}

func TestLoggerConfig(t *testing.T) {
	cfg := &Config{LogLevel: "WARN", LogFormat: "json"}
	lc := cfg.Logger()
	assert.Equal(t, "WARN", lc.Level)
	assert.Equal(t, "json", lc.Format)
}
