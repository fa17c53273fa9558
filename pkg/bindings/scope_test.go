package bindings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/safehold-dev/safehold/pkg/bindings"
)

func TestMapScope(t *testing.T) {
	scope := bindings.NewScope("test")
	assert.Equal(t, "test", scope.Name())

	t.Run("set and get", func(t *testing.T) {
		scope.Set("a", 1)

		value, ok := scope.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 1, value)
		assert.True(t, scope.Exists("a"))
		assert.False(t, scope.IsImmutable("a"))
	})

	t.Run("missing name", func(t *testing.T) {
		_, ok := scope.Get("missing")
		assert.False(t, ok)
		assert.False(t, scope.Exists("missing"))
		assert.False(t, scope.IsImmutable("missing"))
	})

	t.Run("immutable binding", func(t *testing.T) {
		scope.SetImmutable("c", 3)
		assert.True(t, scope.IsImmutable("c"))

		// A plain Set clears the immutability mark.
		scope.Set("c", 4)
		assert.False(t, scope.IsImmutable("c"))
	})

	t.Run("delete", func(t *testing.T) {
		scope.SetImmutable("d", 4)
		scope.Delete("d")
		assert.False(t, scope.Exists("d"))
		assert.False(t, scope.IsImmutable("d"))
	})

	t.Run("names are sorted", func(t *testing.T) {
		s := bindings.NewScope("sorted")
		s.Set("zebra", 1)
		s.Set("apple", 2)
		s.Set("mango", 3)
		assert.Equal(t, []string{"apple", "mango", "zebra"}, s.Names())
	})
}

func TestValidateName(t *testing.T) {
	valid := []string{"x", "camelCase", "snake_case", "_private", "x9", "SAFEHOUSE"}
	for _, name := range valid {
		assert.NoError(t, bindings.ValidateName(name), "name %q should be accepted", name)
	}

	invalid := []string{"", "9x", "a b", "a-b", "for", "func", "return", "a.b"}
	for _, name := range invalid {
		assert.Error(t, bindings.ValidateName(name), "name %q should be rejected", name)
	}
}
