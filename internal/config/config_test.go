package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dimensional/internal/errors"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, Default().Display, cfg.Display)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	extra := filepath.Join(dir, "extra.hcl")
	require.NoError(t, os.WriteFile(extra, nil, 0644))

	path := filepath.Join(dir, "config.json")
	cfg := Default()
	cfg.Display.Precision = 3
	cfg.Display.ProductGlyph = "*"
	require.NoError(t, cfg.Save(path))

	t.Setenv("DIMENSIONAL_ASCII", "true")
	t.Setenv("DIMENSIONAL_CATALOG", extra)
	t.Setenv("DIMENSIONAL_LOG_LEVEL", "debug")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int32(3), loaded.Display.Precision)
	assert.Equal(t, "*", loaded.Display.ProductGlyph)
	assert.True(t, loaded.Display.ASCII)
	assert.Equal(t, []string{extra}, loaded.Catalog.Extra)
	assert.Equal(t, "debug", loaded.Logging.Level)
	assert.NoError(t, loaded.Validate())
}

func TestLoadRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))

	_, err := Load(path)
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Display.ProductGlyph = ""
	assert.True(t, errors.IsType(cfg.Validate(), errors.TypeConfig))

	cfg = Default()
	cfg.Display.Precision = -1
	assert.True(t, errors.IsType(cfg.Validate(), errors.TypeConfig))

	cfg = Default()
	cfg.Catalog.Extra = []string{filepath.Join(t.TempDir(), "missing.hcl")}
	assert.True(t, errors.IsType(cfg.Validate(), errors.TypeConfig))
}

func TestGlobal(t *testing.T) {
	prev := Get()
	t.Cleanup(func() { Set(prev) })

	cfg := Default()
	cfg.Version = "test"
	Set(cfg)
	assert.Equal(t, "test", Get().Version)
}
