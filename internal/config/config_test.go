package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	t.Run("set", func(t *testing.T) {
		t.Setenv("TEST_KEY", "value")
		assert.Equal(t, "value", GetEnv("TEST_KEY", "default"))
	})

	t.Run("unset falls back", func(t *testing.T) {
		assert.Equal(t, "default", GetEnv("TEST_KEY_UNSET", "default"))
	})
}

func TestGetEnvInt(t *testing.T) {
	t.Run("set", func(t *testing.T) {
		t.Setenv("TEST_INT", "42")
		assert.Equal(t, 42, GetEnvInt("TEST_INT", 7))
	})

	t.Run("invalid falls back", func(t *testing.T) {
		t.Setenv("TEST_INT", "not-a-number")
		assert.Equal(t, 7, GetEnvInt("TEST_INT", 7))
	})
}

func TestGetEnvDuration(t *testing.T) {
	t.Run("set", func(t *testing.T) {
		t.Setenv("TEST_DUR", "30s")
		assert.Equal(t, 30*time.Second, GetEnvDuration("TEST_DUR", time.Minute))
	})

	t.Run("invalid falls back", func(t *testing.T) {
		t.Setenv("TEST_DUR", "soon")
		assert.Equal(t, time.Minute, GetEnvDuration("TEST_DUR", time.Minute))
	})
}

func TestServerConfig(t *testing.T) {
	t.Run("address without host keeps port form", func(t *testing.T) {
		cfg := ServerConfig{Port: ":8080"}
		assert.Equal(t, ":8080", cfg.GetAddress())
	})

	t.Run("address joins host and port", func(t *testing.T) {
		cfg := ServerConfig{Host: "127.0.0.1", Port: ":8080"}
		assert.Equal(t, "127.0.0.1:8080", cfg.GetAddress())
	})

	t.Run("validate rejects non-positive timeouts", func(t *testing.T) {
		cfg := LoadServerConfigFromEnv()
		require.NoError(t, cfg.Validate())

		cfg.ReadTimeout = 0
		assert.Error(t, cfg.Validate())
	})
}

func TestModerationConfig(t *testing.T) {
	t.Run("default threshold", func(t *testing.T) {
		cfg := LoadModerationConfigFromEnv()
		assert.Equal(t, 3, cfg.ReportThreshold)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("threshold from env", func(t *testing.T) {
		t.Setenv("REPORT_THRESHOLD", "5")
		cfg := LoadModerationConfigFromEnv()
		assert.Equal(t, 5, cfg.ReportThreshold)
	})

	t.Run("threshold below two is rejected", func(t *testing.T) {
		cfg := ModerationConfig{ReportThreshold: 1}
		assert.Error(t, cfg.Validate())
	})
}

func TestLoggerConfig(t *testing.T) {
	t.Run("defaults validate", func(t *testing.T) {
		cfg := LoadLoggerConfigFromEnv()
		assert.NoError(t, cfg.Validate())
		assert.True(t, cfg.IsProduction())
	})

	t.Run("invalid level", func(t *testing.T) {
		cfg := LoggerConfig{Level: "verbose", Format: "json"}
		assert.Error(t, cfg.Validate())
	})

	t.Run("debug console is not production", func(t *testing.T) {
		cfg := LoggerConfig{Level: "debug", Format: "console"}
		assert.False(t, cfg.IsProduction())
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := LoadFromEnv()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("invalid gin mode", func(t *testing.T) {
		cfg := LoadFromEnv()
		cfg.GinMode = "verbose"
		assert.Error(t, cfg.Validate())
	})
}
