package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	profanity "github.com/jamesainslie/go-profanity"
	"github.com/jamesainslie/go-profanity/normalize"
)

// Config is the file form of the command line flags.
type Config struct {
	Model       string  `toml:"model"`
	Vocab       string  `toml:"vocab"`
	Library     string  `toml:"library"`
	Normalizers string  `toml:"normalizers"`
	Mode        string  `toml:"mode"`
	Threshold   float64 `toml:"threshold"`
	Bypass      bool    `toml:"bypass"`
	Budget      string  `toml:"budget"`
	LogLevel    string  `toml:"logLevel"`
}

func defaultConfig() Config {
	return Config{
		Normalizers: "unicode,leet",
		Mode:        "native",
		Threshold:   profanity.DefaultThreshold,
		LogLevel:    "info",
	}
}

// loadConfig decodes a TOML file over the defaults. Unknown keys are an
// error so typos do not go unnoticed.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// budget returns the bypass time budget; empty means unbounded.
func (c Config) budget() (time.Duration, error) {
	if c.Budget == "" || c.Budget == "unbounded" {
		return profanity.Unbounded, nil
	}
	d, err := time.ParseDuration(c.Budget)
	if err != nil {
		return 0, fmt.Errorf("budget: %w", err)
	}
	return d, nil
}

func (c Config) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}

// options converts the configuration to checker options.
func (c Config) options(logger *slog.Logger) ([]profanity.Option, error) {
	chain, err := normalize.ParseChain(c.Normalizers)
	if err != nil {
		return nil, err
	}

	opts := []profanity.Option{
		profanity.WithLibraryPath(c.Library),
		profanity.WithNormalizers(chain...),
		profanity.WithLogger(logger),
	}

	switch c.Mode {
	case "native", "":
		opts = append(opts, profanity.WithAutomaticChecking())
	case "threshold":
		opts = append(opts, profanity.WithThreshold(c.Threshold))
	default:
		return nil, fmt.Errorf("unknown mode %q (want native or threshold)", c.Mode)
	}

	return opts, nil
}
