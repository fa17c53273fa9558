package fileguard_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safehold-dev/safehold/pkg/serialize"
)

func TestProtectedStore_FirstWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "target.txt")

	s, err := serialize.New(serialize.JSON)
	require.NoError(t, err)

	guard, rec := newGuard()
	written, err := guard.ProtectedStore(map[string]interface{}{"a": 1}, path, s)
	require.NoError(t, err)
	assert.Equal(t, path, written)
	assert.Empty(t, rec.Notices)

	loaded, err := s.Load(path)
	require.NoError(t, err)
	m := loaded.(map[string]interface{})
	assert.Equal(t, float64(1), m["a"])
}

func TestProtectedStore_OverwriteKeepsBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "target.txt")

	s, err := serialize.New(serialize.YAML)
	require.NoError(t, err)

	guard, rec := newGuard()
	_, err = guard.ProtectedStore("first", path, s)
	require.NoError(t, err)
	_, err = guard.ProtectedStore("second", path, s)
	require.NoError(t, err)

	loaded, err := s.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "second", loaded)

	backups := findBackups(t, dir)
	require.Len(t, backups, 1)
	prior, err := os.ReadFile(backups[0])
	require.NoError(t, err)
	assert.Contains(t, string(prior), "first")
	require.Len(t, rec.Notices, 1)
}
