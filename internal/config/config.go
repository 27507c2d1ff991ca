package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// BuildAPIBase is the API base baked in at build time:
//
//	go build -ldflags "-X github.com/five82/epicview/internal/config.BuildAPIBase=https://epic.example"
//
// Empty means same-origin.
var BuildAPIBase = ""

// Config is read once at startup and passed by value afterwards.
type Config struct {
	APIBase        string
	Origin         string
	RequestTimeout time.Duration
	RefreshEvery   time.Duration
	DiscardStale   bool
	Listen         string
	LogFile        string
}

// Overrides carry command-line values; nil fields leave the loaded value alone.
type Overrides struct {
	APIBase      *string
	Origin       *string
	RefreshEvery *time.Duration
	DiscardStale *bool
	Listen       *string
}

const (
	defaultConfigPath = "~/.config/epicview/config.toml"
	defaultLogFile    = "~/.local/state/epicview/epicview.log"
	defaultOrigin     = "http://127.0.0.1:5000"
	defaultListen     = "127.0.0.1:8080"
)

// Load locates and parses the epicview config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.LogFile = mustExpand(defaultLogFile)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase        *string `toml:"api_base"`
		Origin         string  `toml:"origin"`
		RequestTimeout string  `toml:"request_timeout"`
		RefreshEvery   string  `toml:"refresh_every"`
		DiscardStale   bool    `toml:"discard_stale"`
		Listen         string  `toml:"listen"`
		LogFile        string  `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	// An explicit api_base, even an empty one, overrides the build-time value.
	if raw.APIBase != nil {
		cfg.APIBase = normalizeBase(*raw.APIBase)
	}
	if origin := strings.TrimSpace(raw.Origin); origin != "" {
		cfg.Origin = origin
	}
	if cfg.RequestTimeout, err = parseDuration(raw.RequestTimeout); err != nil {
		return Config{}, fmt.Errorf("parse request_timeout: %w", err)
	}
	if cfg.RefreshEvery, err = parseDuration(raw.RefreshEvery); err != nil {
		return Config{}, fmt.Errorf("parse refresh_every: %w", err)
	}
	cfg.DiscardStale = raw.DiscardStale
	if listen := strings.TrimSpace(raw.Listen); listen != "" {
		cfg.Listen = listen
	}

	cfg.LogFile = strings.TrimSpace(raw.LogFile)
	if cfg.LogFile == "" {
		cfg.LogFile = defaultLogFile
	}
	cfg.LogFile = mustExpand(cfg.LogFile)

	return cfg, nil
}

// Apply returns a copy of c with the non-nil overrides applied.
func (c Config) Apply(o Overrides) Config {
	if o.APIBase != nil {
		c.APIBase = normalizeBase(*o.APIBase)
	}
	if o.Origin != nil && strings.TrimSpace(*o.Origin) != "" {
		c.Origin = strings.TrimSpace(*o.Origin)
	}
	if o.RefreshEvery != nil {
		c.RefreshEvery = *o.RefreshEvery
	}
	if o.DiscardStale != nil {
		c.DiscardStale = *o.DiscardStale
	}
	if o.Listen != nil && strings.TrimSpace(*o.Listen) != "" {
		c.Listen = strings.TrimSpace(*o.Listen)
	}
	return c
}

// SameOrigin reports whether API and image requests are relative to the
// page origin.
func (c Config) SameOrigin() bool {
	return c.APIBase == ""
}

func defaults() Config {
	return Config{
		APIBase: normalizeBase(BuildAPIBase),
		Origin:  defaultOrigin,
		Listen:  defaultListen,
		LogFile: defaultLogFile,
	}
}

func normalizeBase(base string) string {
	return strings.TrimRight(strings.TrimSpace(base), "/")
}

func parseDuration(value string) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || trimmed == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration %q is negative", trimmed)
	}
	return d, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
