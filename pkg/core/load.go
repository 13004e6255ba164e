// pkg/core/load.go
package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	manifest "github.com/joeydtaylor/steeze-runtime/pkg/manifest"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads a TOML (default) or YAML manifest, applies environment
// overrides and validates the result.
func LoadConfig(path string) (manifest.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return manifest.Config{}, err
	}
	return ParseConfig(b, filepath.Ext(path), os.Getenv)
}

// ParseConfig decodes b according to ext (".toml", ".yaml" or ".yml").
func ParseConfig(b []byte, ext string, getenv func(string) string) (manifest.Config, error) {
	var cfg manifest.Config
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return manifest.Config{}, fmt.Errorf("manifest yaml: %w", err)
		}
	default:
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return manifest.Config{}, fmt.Errorf("manifest toml: %w", err)
		}
	}
	if getenv != nil {
		cfg.ApplyEnv(getenv)
	}
	if err := cfg.Validate(); err != nil {
		return manifest.Config{}, fmt.Errorf("manifest: %w", err)
	}
	return cfg, nil
}
