package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("GOOGLE_KEY", "")
	t.Setenv("GOOGLE_SEARCH_ENGINE_ID", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "dinnerplan.db", cfg.DBPath)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.False(t, cfg.RedisConfigured())
	assert.False(t, cfg.ImageSearchConfigured())
}

func TestValidateConfigRejectsUnknownDriver(t *testing.T) {
	err := ValidateConfig(&Config{DBDriver: "oracle"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
}

func TestValidateConfigRequiresPostgresCredentials(t *testing.T) {
	err := ValidateConfig(&Config{DBDriver: "postgres"})
	assert.Error(t, err)

	err = ValidateConfig(&Config{DBDriver: "postgres", DBUser: "app", DBPassword: "secret"})
	assert.NoError(t, err)
}

func TestValidateConfigRequiresImageSearchPair(t *testing.T) {
	cfg := &Config{DBDriver: "sqlite", DBPath: "test.db", ImageSearchKey: "key"}
	err := ValidateConfig(cfg)
	assert.Error(t, err)

	cfg.ImageSearchEngineID = "engine"
	assert.NoError(t, ValidateConfig(cfg))
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_DB", "2")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.True(t, cfg.RedisConfigured())
}
