package serialize_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safehold-dev/safehold/pkg/errors"
	"github.com/safehold-dev/safehold/pkg/serialize"
)

func TestNew_UnknownFormat(t *testing.T) {
	_, err := serialize.New("xml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestStoreLoad(t *testing.T) {
	value := map[string]interface{}{
		"name":  "refuge",
		"count": int64(3),
	}

	for _, format := range []serialize.Format{serialize.JSON, serialize.TOML, serialize.YAML} {
		t.Run(string(format), func(t *testing.T) {
			s, err := serialize.New(format)
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), "value."+string(format))
			require.NoError(t, s.Store(value, path))

			loaded, err := s.Load(path)
			require.NoError(t, err)

			m, ok := loaded.(map[string]interface{})
			require.True(t, ok, "loaded value should decode to a map, got %T", loaded)
			assert.Equal(t, "refuge", m["name"])
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	s, err := serialize.New(serialize.JSON)
	require.NoError(t, err)

	_, err = s.Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrIOFailure))
}

func TestLoad_Garbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	s, err := serialize.New(serialize.JSON)
	require.NoError(t, err)

	_, err = s.Load(path)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDeserialize))
}

func TestStore_Overwrites(t *testing.T) {
	s, err := serialize.New(serialize.YAML)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "value.yaml")
	require.NoError(t, s.Store("first", path))
	require.NoError(t, s.Store("second", path))

	loaded, err := s.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "second", loaded)
}
