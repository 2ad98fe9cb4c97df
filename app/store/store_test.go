package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func openAll(t *testing.T) map[Kind]Store {
	t.Helper()
	stores := make(map[Kind]Store)
	for _, kind := range Kinds {
		s, err := Open(zap.NewNop(), kind, t.TempDir())
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		stores[kind] = s
	}
	return stores
}

func TestStore_Contract(t *testing.T) {
	for kind, s := range openAll(t) {
		t.Run(kind.String(), func(t *testing.T) {
			value, ok, err := s.Get("writing-saved-prompts")
			require.NoError(t, err)
			assert.False(t, ok, "empty store must report absent keys")
			assert.Nil(t, value)

			require.NoError(t, s.Set("writing-saved-prompts", []byte(`["a"]`)))
			value, ok, err = s.Get("writing-saved-prompts")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `["a"]`, string(value))

			// last writer wins, no merge
			require.NoError(t, s.Set("writing-saved-prompts", []byte(`["b"]`)))
			value, _, err = s.Get("writing-saved-prompts")
			require.NoError(t, err)
			assert.Equal(t, `["b"]`, string(value))

			_, ok, err = s.Get("writing-favorites")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestJSONHelpers(t *testing.T) {
	for kind, s := range openAll(t) {
		t.Run(kind.String(), func(t *testing.T) {
			var got []string
			ok, err := GetJSON(s, "list", &got)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, SetJSON(s, "list", []string{"x", "y"}))
			ok, err = GetJSON(s, "list", &got)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, []string{"x", "y"}, got)

			require.NoError(t, s.Set("broken", []byte("{")))
			_, err = GetJSON(s, "broken", &got)
			assert.Error(t, err)
		})
	}
}

func TestFile_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	first, err := NewFile(zap.NewNop(), dir)
	require.NoError(t, err)
	require.NoError(t, first.Set("names-history", []byte(`[]`)))

	_, err = os.Stat(filepath.Join(dir, "names-history.json"))
	require.NoError(t, err)

	second, err := NewFile(zap.NewNop(), dir)
	require.NoError(t, err)
	value, ok, err := second.Get("names-history")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", string(value))
}

func TestFile_InvalidKey(t *testing.T) {
	s, err := NewFile(zap.NewNop(), t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../escape", "a/b", "with space"} {
		err := s.Set(key, []byte("x"))
		assert.True(t, errors.Is(err, ErrInvalidKey), "key %q", key)
		_, _, err = s.Get(key)
		assert.True(t, errors.Is(err, ErrInvalidKey), "key %q", key)
	}
}

func TestNewFile_EmptyDir(t *testing.T) {
	_, err := NewFile(zap.NewNop(), "")
	assert.Error(t, err)
}

func TestSQLite_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	first, err := NewSQLite(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set("k", []byte("v")))
	require.NoError(t, first.Close())

	second, err := NewSQLite(dir)
	require.NoError(t, err)
	defer func() { _ = second.Close() }()

	value, ok, err := second.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", string(value))
}

func TestSQLite_InMemory(t *testing.T) {
	s, err := NewSQLite("")
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	require.NoError(t, s.Set("k", []byte("v")))
	value, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", string(value))
}

func TestMemory_CopiesValues(t *testing.T) {
	m := NewMemory()
	in := []byte("abc")
	require.NoError(t, m.Set("k", in))
	in[0] = 'z'

	out, _, _ := m.Get("k")
	assert.Equal(t, "abc", string(out))
}

func TestOpen_Unsupported(t *testing.T) {
	_, err := Open(zap.NewNop(), Kind("redis"), t.TempDir())
	assert.Error(t, err)
	assert.True(t, IsKind("sqlite"))
	assert.False(t, IsKind("redis"))
}
