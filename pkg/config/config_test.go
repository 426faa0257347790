package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: production
keywords_path: custom/keywords.yaml
output:
  schema_path: out/schema.csv
  ddl_path: out/schema.sql
`), 0o644))

	cfg, err := Load(path, "1.2.3")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "1.2.3", cfg.Version)
	assert.Equal(t, "custom/keywords.yaml", cfg.KeywordsPath)
	assert.Equal(t, "out/schema.csv", cfg.Output.SchemaPath)
	assert.Equal(t, "out/schema.sql", cfg.Output.DDLPath)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "dev")
	require.Error(t, err)
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv("dev")
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "config/column_keywords.yaml", cfg.KeywordsPath)
	assert.Equal(t, "schema.csv", cfg.Output.SchemaPath)
	assert.Equal(t, "schema.sql", cfg.Output.DDLPath)
}

func TestEnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("env: production\n"), 0o644))

	t.Setenv("ENVIRONMENT", "staging")
	cfg, err := Load(path, "dev")
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.Env)
}
