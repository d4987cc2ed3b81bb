package audit

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchive(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	archive := NewArchive(dir)

	t.Run("Save creates directory and file", func(t *testing.T) {
		report := map[string]any{
			"health_percentage": 87.5,
			"problem_classes":   []string{"Ficção"},
		}

		name, err := archive.Save(report)
		require.NoError(t, err)
		assert.Equal(t, ".json", filepath.Ext(name))

		_, err = os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)

		var loaded map[string]any
		require.NoError(t, archive.Load(name, &loaded))
		assert.Equal(t, 87.5, loaded["health_percentage"])
		assert.Equal(t, []any{"Ficção"}, loaded["problem_classes"])
	})

	t.Run("Save generates unique names", func(t *testing.T) {
		first, err := archive.Save(map[string]string{"k": "v"})
		require.NoError(t, err)
		second, err := archive.Save(map[string]string{"k": "v"})
		require.NoError(t, err)
		assert.NotEqual(t, first, second)

		names, err := archive.List()
		require.NoError(t, err)
		assert.Len(t, names, 3)
	})

	t.Run("Load rejects foreign names", func(t *testing.T) {
		for _, name := range []string{
			"../secrets.json",
			"report.json",
			"urn:uuid:6ba7b810-9dad-11d1-80b4-00c04fd430c8.json",
			"6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		} {
			var v any
			assert.ErrorIs(t, archive.Load(name, &v), ErrInvalidReportName, name)
		}
	})

	t.Run("Load reports missing files", func(t *testing.T) {
		var v any
		err := archive.Load("6ba7b810-9dad-11d1-80b4-00c04fd430c8.json", &v)
		assert.True(t, os.IsNotExist(err))
	})
}

func TestArchive_ListMissingDir(t *testing.T) {
	names, err := NewArchive(filepath.Join(t.TempDir(), "none")).List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestArchive_Prune(t *testing.T) {
	dir := t.TempDir()
	archive := NewArchive(dir)

	oldName, err := archive.Save(map[string]int{"findings": 3})
	require.NoError(t, err)
	newName, err := archive.Save(map[string]int{"findings": 1})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep"), 0o644))

	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, oldName), old, old))
	require.NoError(t, os.Chtimes(filepath.Join(dir, "notes.txt"), old, old))

	removed, err := archive.Prune(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	names, err := archive.List()
	require.NoError(t, err)
	assert.Equal(t, []string{newName}, names)

	_, err = os.Stat(filepath.Join(dir, "notes.txt"))
	assert.NoError(t, err)

	removed, err = NewArchive(filepath.Join(dir, "missing")).Prune(time.Now())
	require.NoError(t, err)
	assert.Zero(t, removed)
}
