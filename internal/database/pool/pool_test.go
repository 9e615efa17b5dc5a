package pool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := LoadConfigFromEnv()
		assert.Equal(t, 25, cfg.MaxOpenConns)
		assert.Equal(t, 5, cfg.MaxIdleConns)
		assert.Equal(t, 5*time.Minute, cfg.ConnMaxLifetime)
		assert.Equal(t, 10*time.Minute, cfg.ConnMaxIdleTime)
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("DB_POOL_MAX_OPEN_CONNS", "50")
		t.Setenv("DB_POOL_MAX_IDLE_CONNS", "10")
		t.Setenv("DB_POOL_CONN_MAX_LIFETIME", "1m")
		cfg := LoadConfigFromEnv()
		assert.Equal(t, 50, cfg.MaxOpenConns)
		assert.Equal(t, 10, cfg.MaxIdleConns)
		assert.Equal(t, time.Minute, cfg.ConnMaxLifetime)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, DefaultConfig().Validate())
	})

	t.Run("zero open conns", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MaxOpenConns = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("negative idle conns", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MaxIdleConns = -1
		assert.Error(t, cfg.Validate())
	})

	t.Run("idle exceeds open", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MaxIdleConns = cfg.MaxOpenConns + 1
		assert.Error(t, cfg.Validate())
	})
}

func TestConfigApply(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	cfg := Config{
		MaxOpenConns:    3,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
		ConnMaxIdleTime: time.Minute,
	}
	require.NoError(t, cfg.Apply(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 3, sqlDB.Stats().MaxOpenConnections)
}
