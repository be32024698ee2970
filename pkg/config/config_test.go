package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("test-version")
	require.NoError(t, err)

	assert.Equal(t, "test-version", cfg.Version)
	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "waypoint_engine", cfg.Database.Database)
	assert.Equal(t, "gpt-4o", cfg.Counselor.Model)
	assert.Equal(t, "claude-3-5-sonnet-20240620", cfg.Strategist.Model)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("PGDATABASE", "waypoint_test")
	t.Setenv("COUNSELOR_AI_MODEL", "gpt-4o-mini")

	cfg, err := Load("dev")
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "waypoint_test", cfg.Database.Database)
	assert.Equal(t, "gpt-4o-mini", cfg.Counselor.Model)
}

func TestStrategistConfig_Availability(t *testing.T) {
	cfg := StrategistAIConfig{}
	assert.False(t, cfg.IsAvailable())

	cfg.APIKey = "sk-ant-test"
	assert.True(t, cfg.IsAvailable())
}

func TestStrategistConfig_Timeout(t *testing.T) {
	cfg := StrategistAIConfig{TimeoutSeconds: 30}
	assert.Equal(t, 30*time.Second, cfg.Timeout())
}

func TestCacheConfig_ResearchTTL(t *testing.T) {
	cfg := CacheConfig{ResearchTTLMinutes: 240}
	assert.Equal(t, 4*time.Hour, cfg.ResearchTTL())
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "waypoint",
		Password: "secret",
		Database: "waypoint_engine",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=waypoint password=secret dbname=waypoint_engine sslmode=require",
		cfg.ConnectionString(),
	)
}
