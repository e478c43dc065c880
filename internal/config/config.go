package config

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pavanmanishd/regionarena/internal/logger"
)

// EnvPrefix is prepended to every environment override, e.g. ARENADEMO_LOG_LEVEL.
const EnvPrefix = "ARENADEMO"

// Keys shared between flags, environment variables and viper.
const (
	KeyCapacity  = "capacity"
	KeySource    = "source"
	KeyBudget    = "budget"
	KeyFrames    = "frames"
	KeyMetrics   = "metrics"
	KeyLogLevel  = "log-level"
	KeyLogFormat = "log-format"
)

// Sources understood by the demo.
const (
	SourceHeap = "heap"
	SourceMmap = "mmap"
)

// Config is the demo's runtime configuration.
type Config struct {
	Capacity  int    // initial chunk size for demos that take the default
	Source    string // heap or mmap
	Budget    int    // total bytes the arena may reserve; 0 is unlimited
	Frames    int    // iterations of the frame loop
	Metrics   bool   // print Prometheus text exposition after each demo
	LogLevel  string
	LogFormat string
}

var defaults = map[string]any{
	KeyCapacity:  "4096",
	KeySource:    SourceHeap,
	KeyBudget:    "0",
	KeyFrames:    5,
	KeyMetrics:   false,
	KeyLogLevel:  "INFO",
	KeyLogFormat: "text",
}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(KeyCapacity, "4096", "initial arena capacity (e.g. 4096, 64KiB)")
	fs.String(KeySource, SourceHeap, "chunk source: heap or mmap")
	fs.String(KeyBudget, "0", "maximum bytes the arena may reserve, 0 for unlimited")
	fs.Int(KeyFrames, 5, "number of frames in the frame demo")
	fs.Bool(KeyMetrics, false, "print Prometheus metrics after each demo")
	fs.String(KeyLogLevel, "INFO", "log level: DEBUG, INFO, WARN, ERROR")
	fs.String(KeyLogFormat, "text", "log format: text or json")
}

// Load resolves the configuration from defaults, then ARENADEMO_* environment
// variables, then flags that were set explicitly. flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, errors.Wrap(err, "bind flags")
		}
	}

	capacity, err := parseSize(v.GetString(KeyCapacity))
	if err != nil {
		return nil, errors.Wrap(err, KeyCapacity)
	}
	budget, err := parseSize(v.GetString(KeyBudget))
	if err != nil {
		return nil, errors.Wrap(err, KeyBudget)
	}

	cfg := &Config{
		Capacity:  capacity,
		Source:    strings.ToLower(v.GetString(KeySource)),
		Budget:    budget,
		Frames:    v.GetInt(KeyFrames),
		Metrics:   v.GetBool(KeyMetrics),
		LogLevel:  v.GetString(KeyLogLevel),
		LogFormat: strings.ToLower(v.GetString(KeyLogFormat)),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the demo cannot run with.
func (c *Config) Validate() error {
	if c.Capacity <= 0 {
		return errors.Errorf("capacity must be positive, got %d", c.Capacity)
	}
	if c.Budget < 0 {
		return errors.Errorf("budget must not be negative, got %d", c.Budget)
	}
	if c.Budget > 0 && c.Budget < c.Capacity {
		return errors.Errorf("budget %d is smaller than capacity %d", c.Budget, c.Capacity)
	}
	switch c.Source {
	case SourceHeap, SourceMmap:
	default:
		return errors.Errorf("unknown source %q", c.Source)
	}
	if c.Frames < 0 {
		return errors.Errorf("frames must not be negative, got %d", c.Frames)
	}
	if !logger.ValidLevel(c.LogLevel) {
		return errors.Errorf("unknown log level %q", c.LogLevel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return errors.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// Logger returns the logger settings for this configuration.
func (c *Config) Logger() logger.Config {
	return logger.Config{Level: c.LogLevel, Format: c.LogFormat}
}

func parseSize(s string) (int, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, errors.Wrapf(err, "parse size %q", s)
	}
	if n > uint64(int(^uint(0)>>1)) {
		return 0, errors.Errorf("size %q overflows int", s)
	}
	return int(n), nil
}
