// pkg/config/loader_test.go
package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lk2023060901/sm3fold/pkg/config"
	"github.com/lk2023060901/sm3fold/pkg/integrity"
)

const testYAML = `
engine:
  strategy: unrolled
  workers: 8
  output_bits: 128
  enable_prefetch: true
  pool_size: 16
logger:
  level: debug
  format: json
`

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sm3fold.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadEngineConfig(t *testing.T) {
	loader := config.NewLoader()
	require.NoError(t, loader.LoadFile(writeTempConfig(t, testYAML), "yaml"))

	cfg := integrity.DefaultConfig()
	require.NoError(t, loader.UnmarshalKey("engine", cfg))

	assert.Equal(t, "unrolled", cfg.Strategy)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 128, cfg.OutputBits)
	assert.True(t, cfg.EnablePrefetch)
	assert.Equal(t, 16, cfg.PoolSize)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileMissing(t *testing.T) {
	loader := config.NewLoader()
	err := loader.LoadFile("/nonexistent/sm3fold.yaml", "yaml")
	assert.Error(t, err)
}

func TestUnmarshalWholeFile(t *testing.T) {
	loader := config.NewLoader()
	require.NoError(t, loader.LoadFile(writeTempConfig(t, testYAML), "yaml"))

	var full struct {
		Engine integrity.Config `mapstructure:"engine"`
		Logger struct {
			Level  string `mapstructure:"level"`
			Format string `mapstructure:"format"`
		} `mapstructure:"logger"`
	}
	require.NoError(t, loader.Unmarshal(&full))
	assert.Equal(t, "unrolled", full.Engine.Strategy)
	assert.Equal(t, "debug", full.Logger.Level)
}

func TestSetDefault(t *testing.T) {
	loader := config.NewLoader()
	loader.SetDefault("engine.workers", 4)
	require.NoError(t, loader.LoadFile(writeTempConfig(t, "engine:\n  strategy: generic\n"), "yaml"))

	cfg := integrity.DefaultConfig()
	require.NoError(t, loader.UnmarshalKey("engine", cfg))
	assert.Equal(t, "generic", cfg.Strategy)
}

func TestInvalidEngineConfig(t *testing.T) {
	cfg := integrity.DefaultConfig()
	cfg.Strategy = "simd512"
	assert.Error(t, cfg.Validate())

	cfg = integrity.DefaultConfig()
	cfg.OutputBits = 64
	assert.ErrorIs(t, cfg.Validate(), integrity.ErrOutputBits)

	cfg = integrity.DefaultConfig()
	cfg.Workers = -1
	assert.ErrorIs(t, cfg.Validate(), integrity.ErrWorkerCount)
}
