package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// DefaultPath is read when CONFIG_PATH is unset and the file exists
	DefaultPath = "config.yaml"

	// SourceEnv reports that no YAML file was read
	SourceEnv = "env"
)

// configFile returns the YAML path to try and whether it must exist
func configFile() (string, bool) {
	if path := strings.TrimSpace(os.Getenv("CONFIG_PATH")); path != "" {
		return path, true
	}
	return DefaultPath, false
}

// Load is LoadWithSource without the source
func Load() (*Config, error) {
	cfg, _, err := LoadWithSource()
	return cfg, err
}

// LoadWithSource builds the site configuration. Environment variables override
// the YAML file, which overrides env-default tags. The second value is the YAML
// path that was read, or SourceEnv. A CONFIG_PATH that cannot be read is an
// error; a missing DefaultPath is not.
func LoadWithSource() (*Config, string, error) {
	var cfg Config
	path, required := configFile()

	source := SourceEnv
	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, "", fmt.Errorf("config: parse %s: %w", path, err)
		}
		source = path
	case required:
		return nil, "", fmt.Errorf("config: CONFIG_PATH %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, "", fmt.Errorf("config: environment: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("config: invalid settings from %s: %w", source, err)
	}
	return &cfg, source, nil
}
