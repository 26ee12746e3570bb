package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-coursepage/internal/fileutil"
	"github.com/alnah/go-coursepage/internal/hints"
	"github.com/alnah/go-coursepage/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
)

// Config holds all configuration for the web application.
type Config struct {
	Listen         string `yaml:"listen"`         // HTTP listen address
	Model          string `yaml:"model"`          // hosted model identifier
	PandocBinary   string `yaml:"pandocBinary"`   // pandoc executable name or path
	TimeoutSeconds int    `yaml:"timeoutSeconds"` // overall conversion timeout
	MaxUploadMiB   int    `yaml:"maxUploadMiB"`   // upload size cap
}

// DefaultConfig returns the configuration used when no file is provided.
func DefaultConfig() *Config {
	return &Config{
		Listen:         ":8080",
		Model:          "gemini-2.5-pro",
		PandocBinary:   "pandoc",
		TimeoutSeconds: 120,
		MaxUploadMiB:   20,
	}
}

// LoadConfig loads configuration from an explicit path, or searches standard
// locations when path is empty. An explicit path that does not exist is an
// error; an empty search falls back to defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		searched := defaultConfigPaths()
		for _, p := range searched {
			if fileutil.FileExists(p) {
				path = p
				break
			}
		}
		if path == "" {
			return DefaultConfig(), nil
		}
	}

	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s%s", ErrConfigNotFound, path, hints.ForConfigNotFound(defaultConfigPaths()))
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	return cfg, nil
}

// defaultConfigPaths returns the locations searched when no --config flag is
// given, in priority order.
func defaultConfigPaths() []string {
	paths := []string{"coursepage.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "coursepage", "config.yaml"))
	}
	return paths
}
