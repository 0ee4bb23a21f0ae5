package config

import (
	"encoding/binary"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "little", cfg.Wire.ByteOrder)
	assert.Equal(t, time.Second, cfg.Journal.FsyncInterval)

	order, err := cfg.Wire.Order()
	require.NoError(t, err)
	assert.Equal(t, binary.LittleEndian, order)
}

func TestConfig_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Port = 9300
	cfg.Wire.ByteOrder = "big"
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9300, loaded.Port)

	order, err := loaded.Wire.Order()
	require.NoError(t, err)
	assert.Equal(t, binary.BigEndian, order)
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_BadByteOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Wire.ByteOrder = "middle"
	require.NoError(t, SaveConfig(cfg, path))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestWire_OrderDefaultsToLittle(t *testing.T) {
	order, err := Wire{}.Order()
	require.NoError(t, err)
	assert.Equal(t, binary.LittleEndian, order)
}

func TestConfigExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.False(t, ConfigExists(path))

	require.NoError(t, SaveConfig(DefaultConfig(), path))
	assert.True(t, ConfigExists(path))
}
