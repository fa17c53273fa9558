package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safehold-dev/safehold/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Store.Format)
	assert.Equal(t, "SAFEHOUSE", cfg.Safehouse.Name)
	assert.True(t, cfg.Notices.Enabled)
}

func TestLoad_FileOverride(t *testing.T) {
	dir := t.TempDir()
	content := "[store]\nformat = \"yaml\"\n\n[safehouse]\nname = \"ATTIC\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "safehold.toml"), []byte(content), 0644))

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.Store.Format)
	assert.Equal(t, "ATTIC", cfg.Safehouse.Name)
	assert.True(t, cfg.Notices.Enabled, "untouched keys keep their defaults")
}

func TestLoad_DottedFileWins(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".safehold.toml"),
		[]byte("[store]\nformat = \"toml\"\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "safehold.toml"),
		[]byte("[store]\nformat = \"yaml\"\n"), 0644))

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "toml", cfg.Store.Format)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SAFEHOLD_STORE_FORMAT", "toml")

	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "toml", cfg.Store.Format)
}

func TestLoad_BadFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "safehold.toml"),
		[]byte("not [valid toml"), 0644))

	_, err := config.Load(dir)
	assert.Error(t, err)
}
