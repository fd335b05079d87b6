package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields the client needs.
type Config struct {
	APIBase        string
	StatePath      string
	RefreshSeconds int
}

const (
	defaultConfigPath     = "~/.config/restyle/config.toml"
	defaultAPIBase        = "http://127.0.0.1:3000"
	defaultStatePath      = "~/.local/share/restyle/state.toml"
	defaultRefreshSeconds = 30
)

// Load locates and parses the client config, falling back to defaults
// when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIBase:        defaultAPIBase,
		StatePath:      defaultStatePath,
		RefreshSeconds: defaultRefreshSeconds,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.StatePath = mustExpand(cfg.StatePath)
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
		APIBase        string `toml:"api_base"`
		StatePath      string `toml:"state_path"`
		RefreshSeconds int    `toml:"refresh_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIBase = strings.TrimSpace(raw.APIBase)
	if cfg.APIBase == "" {
		cfg.APIBase = defaultAPIBase
	}

	cfg.StatePath = strings.TrimSpace(raw.StatePath)
	if cfg.StatePath == "" {
		cfg.StatePath = defaultStatePath
	}
	cfg.StatePath = mustExpand(cfg.StatePath)

	cfg.RefreshSeconds = raw.RefreshSeconds
	if cfg.RefreshSeconds <= 0 {
		cfg.RefreshSeconds = defaultRefreshSeconds
	}

	return cfg, nil
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
