package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Engine.MaxBatchSize)
	assert.Equal(t, 5*time.Minute, cfg.Engine.DuplicateWindow)
	assert.Equal(t, StoragePostgres, cfg.Engine.StorageDriver)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "postgres://postgres:@localhost:5432/bancosemillas?sslmode=disable", cfg.DB.ConnectionString())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("ENGINE_MAX_BATCH_SIZE", "10")
	v.Set("ENGINE_DUPLICATE_WINDOW", "90s")
	v.Set("STORAGE_DRIVER", "memory")
	v.Set("DB_PASSWORD", "p@ss:word")
	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Engine.MaxBatchSize)
	assert.Equal(t, 90*time.Second, cfg.Engine.DuplicateWindow)
	assert.Equal(t, StorageMemory, cfg.Engine.StorageDriver)
	assert.Contains(t, cfg.DB.DSN(), "p%40ss%3Aword", "la contraseña se codifica en la URL")
}

func TestFromViper_Invalidos(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "mongo")
	_, err := fromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("ENGINE_DUPLICATE_WINDOW", "cinco minutos")
	_, err = fromViper(v)
	assert.Error(t, err)
}
