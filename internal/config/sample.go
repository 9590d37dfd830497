package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed sample_config.toml
var sampleConfig string

// ErrExists is returned by WriteSample when a config file is already present.
var ErrExists = errors.New("config file already exists")

// WriteSample writes a commented sample config to path unless one exists.
func WriteSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return ErrExists
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("writing sample config: %w", err)
	}
	return nil
}
