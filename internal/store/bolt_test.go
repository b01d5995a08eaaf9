package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobStore_RoundtripOnDisk(t *testing.T) {
	dir := t.TempDir()

	s, err := NewBlobStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set("doc", []byte(`{"hello":"world"}`)))

	got, ok := s.Get("doc")
	require.True(t, ok)
	assert.Equal(t, `{"hello":"world"}`, string(got))

	require.NoError(t, s.Close())

	// Reopen: data survives the process.
	s, err = NewBlobStore(dir)
	require.NoError(t, err)
	defer s.Close()

	got, ok = s.Get("doc")
	require.True(t, ok)
	assert.Equal(t, `{"hello":"world"}`, string(got))
}

func TestBlobStore_MissingKey(t *testing.T) {
	s, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	_, ok := s.Get("absent")
	assert.False(t, ok)
}

func TestBlobStore_Overwrite(t *testing.T) {
	s, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set("doc", []byte("v1")))
	require.NoError(t, s.Set("doc", []byte("v2")))

	got, ok := s.Get("doc")
	require.True(t, ok)
	assert.Equal(t, "v2", string(got))
}

func TestBlobStore_Delete(t *testing.T) {
	s, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set("doc", []byte("v1")))
	s.Delete("doc")

	_, ok := s.Get("doc")
	assert.False(t, ok)
}

func TestBlobStore_MemoryOnlyMode(t *testing.T) {
	s, err := NewBlobStore("")
	require.NoError(t, err)

	require.NoError(t, s.Set("doc", []byte("ephemeral")))
	got, ok := s.Get("doc")
	require.True(t, ok)
	assert.Equal(t, "ephemeral", string(got))

	assert.NoError(t, s.Close())
}

func TestBlobStore_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	s, err := NewBlobStore(dir)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set("doc", []byte("x")))
}
