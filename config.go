package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/shazow/wifisearch/internal/tui"
	"github.com/shazow/wifisearch/wifi/search"
)

const defaultTimeout = 10 * time.Second

// Duration is a time.Duration that decodes from strings like "1500ms".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Config is the optional TOML config file. Flags and WIFISEARCH_ environment
// variables override it.
type Config struct {
	Interval     Duration      `toml:"interval"`
	SignalLevels int           `toml:"signal_levels"`
	Timeout      Duration      `toml:"timeout"`
	Strongest    bool          `toml:"strongest"`
	Fixture      string        `toml:"fixture"`
	Theme        tui.ThemeFile `toml:"theme"`
}

// DefaultConfig returns the settings used when nothing else is given.
func DefaultConfig() Config {
	return Config{
		Interval: Duration{search.DefaultInterval},
		Timeout:  Duration{defaultTimeout},
	}
}

// LoadConfig reads the config file at path over the defaults. An empty path
// returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("unknown config keys in %s: %v", path, undecoded)
	}
	if cfg.Interval.Duration <= 0 {
		return cfg, fmt.Errorf("interval must be positive, got %s", cfg.Interval)
	}
	if cfg.Timeout.Duration < 0 {
		return cfg, fmt.Errorf("timeout must not be negative, got %s", cfg.Timeout)
	}
	return cfg, nil
}

// isSet reports whether the named flag was given on the command line or
// through the environment.
func isSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// rootFlags are the global flags that can override the config file.
type rootFlags struct {
	interval     time.Duration
	signalLevels int
	fixture      string
}

// Apply overrides cfg with the flags that were set on fs.
func (f rootFlags) Apply(fs *flag.FlagSet, cfg Config) Config {
	if isSet(fs, "interval") {
		cfg.Interval.Duration = f.interval
	}
	if isSet(fs, "signal-levels") {
		cfg.SignalLevels = f.signalLevels
	}
	if isSet(fs, "fixture") {
		cfg.Fixture = f.fixture
	}
	return cfg
}
