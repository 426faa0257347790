package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all application configuration for dataprof.
// Configuration can come from a YAML file (config.yaml) or environment
// variables. Environment variables always override YAML values.
type Config struct {
	Env     string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version string `yaml:"-"` // Set at load time, not from config

	// KeywordsPath locates the detection keyword/date-format file.
	KeywordsPath string `yaml:"keywords_path" env:"DATAPROF_KEYWORDS" env-default:"config/column_keywords.yaml"`

	// Output configuration
	Output OutputConfig `yaml:"output"`
}

// OutputConfig holds default artifact destinations. The CLI can override
// both per invocation.
type OutputConfig struct {
	SchemaPath string `yaml:"schema_path" env:"DATAPROF_SCHEMA_PATH" env-default:"schema.csv"`
	DDLPath    string `yaml:"ddl_path" env:"DATAPROF_DDL_PATH" env-default:"schema.sql"`
}

// Load reads configuration from path with environment variable overrides.
// The version parameter is injected at build time and set on the returned
// Config.
func Load(path, version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}
	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv builds a Config from environment variables and defaults only,
// used when no config file is present.
func FromEnv(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return cfg, nil
}
