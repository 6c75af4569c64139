package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	EnvConfig      = "PRL_CONFIG"
	EnvLogLevel    = "PRL_LOG_LEVEL"
	EnvMetricsFile = "PRL_METRICS_FILE"
)

// Config holds launch defaults. Command line flags override it.
type Config struct {
	TimeoutSeconds uint
	MemoryLimit    uint64
	Stdin          *string
	Stdout         *string
	Stderr         *string
	LogLevel       string
	MetricsFile    string
}

type fileConfig struct {
	TimeoutSeconds int64  `toml:"timeout_seconds"`
	MemoryLimit    string `toml:"memory_limit"`
	Stdin          string `toml:"stdin"`
	Stdout         string `toml:"stdout"`
	Stderr         string `toml:"stderr"`
	LogLevel       string `toml:"log_level"`
	MetricsFile    string `toml:"metrics_file"`
}

func defaultConfig() Config {
	return Config{LogLevel: "info"}
}

// loadConfig reads path over the defaults. An empty path yields the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("timeout_seconds") {
		if raw.TimeoutSeconds < 0 {
			return Config{}, fmt.Errorf("timeout_seconds must not be negative")
		}
		cfg.TimeoutSeconds = uint(raw.TimeoutSeconds)
	}

	if meta.IsDefined("memory_limit") {
		limit, err := parseSize(raw.MemoryLimit)
		if err != nil {
			return Config{}, fmt.Errorf("parse memory_limit: %w", err)
		}
		cfg.MemoryLimit = limit
	}

	// An empty string is meaningful here: it redirects to the null device.
	if meta.IsDefined("stdin") {
		cfg.Stdin = &raw.Stdin
	}
	if meta.IsDefined("stdout") {
		cfg.Stdout = &raw.Stdout
	}
	if meta.IsDefined("stderr") {
		cfg.Stderr = &raw.Stderr
	}

	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	if meta.IsDefined("metrics_file") {
		cfg.MetricsFile = strings.TrimSpace(raw.MetricsFile)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvMetricsFile)); v != "" {
		cfg.MetricsFile = v
	}
}

// parseSize parses a byte count with an optional binary suffix (K, M, G,
// optionally followed by "iB" or "B").
func parseSize(raw string) (uint64, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return 0, nil
	}
	s = strings.TrimSuffix(s, "IB")
	s = strings.TrimSuffix(s, "B")

	shift := 0
	switch {
	case strings.HasSuffix(s, "K"):
		shift = 10
	case strings.HasSuffix(s, "M"):
		shift = 20
	case strings.HasSuffix(s, "G"):
		shift = 30
	}
	if shift > 0 {
		s = s[:len(s)-1]
	}

	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q", raw)
	}
	if shift > 0 && n > (^uint64(0))>>shift {
		return 0, fmt.Errorf("size %q overflows", raw)
	}
	return n << shift, nil
}
