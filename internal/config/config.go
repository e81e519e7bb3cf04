package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/pior/kvline"
)

const (
	EnvHost    = "KVLINE_HOST"
	EnvPort    = "KVLINE_PORT"
	EnvTimeout = "KVLINE_TIMEOUT"
)

// Config is the CLI configuration.
type Config struct {
	Client kvline.Config

	// MetricsAddr serves /metrics when not empty.
	MetricsAddr string

	// Breaker enables the circuit breaker.
	Breaker        bool
	BreakerTimeout time.Duration
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Client:         kvline.DefaultConfig(),
		BreakerTimeout: 10 * time.Second,
	}
}

type fileConfig struct {
	Host           string `toml:"host"`
	Port           int    `toml:"port"`
	DialTimeout    string `toml:"dial_timeout"`
	Timeout        string `toml:"timeout"`
	MetricsAddr    string `toml:"metrics_addr"`
	Breaker        bool   `toml:"circuit_breaker"`
	BreakerTimeout string `toml:"circuit_breaker_timeout"`
}

// Load reads path (when not empty) on top of the defaults, then applies
// environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg, os.Getenv); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("host") {
		cfg.Client.Host = strings.TrimSpace(raw.Host)
	}

	if meta.IsDefined("port") {
		cfg.Client.Port = raw.Port
	}

	if meta.IsDefined("dial_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.DialTimeout))
		if err != nil {
			return fmt.Errorf("parse dial_timeout: %w", err)
		}
		cfg.Client.DialTimeout = d
	}

	if meta.IsDefined("timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Timeout))
		if err != nil {
			return fmt.Errorf("parse timeout: %w", err)
		}
		cfg.Client.Timeout = d
	}

	if meta.IsDefined("metrics_addr") {
		cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)
	}

	if meta.IsDefined("circuit_breaker") {
		cfg.Breaker = raw.Breaker
	}

	if meta.IsDefined("circuit_breaker_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.BreakerTimeout))
		if err != nil {
			return fmt.Errorf("parse circuit_breaker_timeout: %w", err)
		}
		cfg.BreakerTimeout = d
	}

	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	if host := strings.TrimSpace(getenv(EnvHost)); host != "" {
		cfg.Client.Host = host
	}

	if raw := strings.TrimSpace(getenv(EnvPort)); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvPort, err)
		}
		cfg.Client.Port = port
	}

	if raw := strings.TrimSpace(getenv(EnvTimeout)); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvTimeout, err)
		}
		cfg.Client.Timeout = d
	}

	return nil
}
