package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Storage {
	local, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return map[string]Storage{
		"local":  local,
		"memory": NewMemoryStorage(),
	}
}

func TestStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Write(ctx, "tasks/a.yaml", []byte("a")))
			require.NoError(t, s.Write(ctx, "tasks/b.yaml", []byte("b")))
			require.NoError(t, s.Write(ctx, "tasks/nested/c.yaml", []byte("c")))

			data, err := s.Read(ctx, "tasks/a.yaml")
			require.NoError(t, err)
			assert.Equal(t, "a", string(data))

			paths, err := s.List(ctx, "tasks")
			require.NoError(t, err)
			assert.Equal(t, []string{"tasks/a.yaml", "tasks/b.yaml"}, paths)

			ok, err := s.Exists(ctx, "tasks/b.yaml")
			require.NoError(t, err)
			assert.True(t, ok)

			require.NoError(t, s.Delete(ctx, "tasks/b.yaml"))
			ok, err = s.Exists(ctx, "tasks/b.yaml")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestStorageNotFound(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Read(ctx, "missing.yaml")
			assert.True(t, errors.Is(err, ErrNotFound))

			err = s.Delete(ctx, "missing.yaml")
			assert.True(t, errors.Is(err, ErrNotFound))

			paths, err := s.List(ctx, "nothing-here")
			require.NoError(t, err)
			assert.Empty(t, paths)
		})
	}
}

func TestReadIfExists(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			data, err := ReadIfExists(ctx, s, "events/2025-03-10.jsonl")
			require.NoError(t, err)
			assert.Nil(t, data)

			require.NoError(t, s.Write(ctx, "events/2025-03-10.jsonl", []byte("{}\n")))
			data, err = ReadIfExists(ctx, s, "events/2025-03-10.jsonl")
			require.NoError(t, err)
			assert.Equal(t, "{}\n", string(data))
		})
	}
}

func TestLocalStorageStaysUnderBase(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	s, err := NewLocalStorage(filepath.Join(base, "data"))
	require.NoError(t, err)

	require.NoError(t, s.Write(ctx, "../../escape.yaml", []byte("x")))
	_, err = os.Stat(filepath.Join(base, "escape.yaml"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	data, err := s.Read(ctx, "escape.yaml")
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))

	paths, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"escape.yaml"}, paths)
}
