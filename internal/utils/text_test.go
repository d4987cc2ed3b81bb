package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"mixed case", "Clean Code", "clean code"},
		{"surrounding whitespace", "  Refactoring \n", "refactoring"},
		{"accented upper case", "ÉPICOS & FICÇÃO", "épicos & ficção"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeTitle(tt.input))
		})
	}
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("Machine Learning Aplicado", "machine learning"))
	assert.True(t, ContainsFold("ESTATÍSTICA básica", "Estatística"))
	assert.False(t, ContainsFold("Programação", "Cosmologia"))
}

func TestRuneLen(t *testing.T) {
	assert.Equal(t, 4, RuneLen("ação"))
	assert.Equal(t, 0, RuneLen(""))
}

func TestDecodeOrderedObject(t *testing.T) {
	t.Run("preserves document order", func(t *testing.T) {
		var keys []string
		err := DecodeOrderedObject([]byte(`{"z": 1, "a": [1,2], "m": {"x": true}}`), func(key string, raw []byte) error {
			keys = append(keys, key)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"z", "a", "m"}, keys)
	})

	t.Run("passes raw values", func(t *testing.T) {
		values := map[string]string{}
		err := DecodeOrderedObject([]byte(`{"a": [1, 2], "b": "x"}`), func(key string, raw []byte) error {
			values[key] = string(raw)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "[1, 2]", values["a"])
		assert.Equal(t, `"x"`, values["b"])
	})

	t.Run("null and empty are no-ops", func(t *testing.T) {
		calls := 0
		fn := func(string, []byte) error { calls++; return nil }
		require.NoError(t, DecodeOrderedObject([]byte("null"), fn))
		require.NoError(t, DecodeOrderedObject(nil, fn))
		require.NoError(t, DecodeOrderedObject([]byte("{}"), fn))
		assert.Equal(t, 0, calls)
	})

	t.Run("rejects arrays", func(t *testing.T) {
		err := DecodeOrderedObject([]byte(`[1,2]`), func(string, []byte) error { return nil })
		assert.Error(t, err)
	})

	t.Run("propagates callback error", func(t *testing.T) {
		boom := errors.New("boom")
		err := DecodeOrderedObject([]byte(`{"a": 1}`), func(string, []byte) error { return boom })
		assert.ErrorIs(t, err, boom)
	})
}

func TestIsJSONArray(t *testing.T) {
	assert.True(t, IsJSONArray([]byte("  [1]")))
	assert.False(t, IsJSONArray([]byte(`{"a":1}`)))
	assert.False(t, IsJSONArray(nil))
}
