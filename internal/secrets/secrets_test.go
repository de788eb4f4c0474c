// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ReadsKeyFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "together-api-key"), []byte("tok-123\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "anthropic-api-key"), []byte("  sk-456  "), 0o600))

	store, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "tok-123", store["together-api-key"])
	assert.Equal(t, "sk-456", store["anthropic-api-key"])
}

func TestLoad_MissingDirectoryIsEmpty(t *testing.T) {
	store, err := Load(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, store)
}

func TestLoad_SkipsDotfilesAndEmptyValues(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("*"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty-key"), []byte("   \n"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))

	store, err := Load(dir)
	require.NoError(t, err)
	assert.Empty(t, store)
}

func TestStore_Get(t *testing.T) {
	store := Store{"together-api-key": "tok"}

	assert.Equal(t, "tok", store.Get("together-api-key", "fallback"))
	assert.Equal(t, "fallback", store.Get("missing", "fallback"))
	assert.Equal(t, "", store.Get("missing", ""))
}
