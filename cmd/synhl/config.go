package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// config is the optional ~/.synhl.yaml file's shape: defaults for the
// grammars directory, the grammar to use, and palette colors, grounded
// in the pack's YAML-configured registries.
type config struct {
	GrammarsDir string            `yaml:"grammarsDir"`
	Grammar     string            `yaml:"grammar"`
	Palette     map[string]string `yaml:"palette"`
}

func defaultConfig() *config {
	return &config{GrammarsDir: "."}
}

// loadConfig reads ~/.synhl.yaml if present; its absence is not an
// error, only a read or parse failure on an existing file is.
func loadConfig() (*config, error) {
	cfg := defaultConfig()

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, nil
	}

	path := filepath.Join(home, ".synhl.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
