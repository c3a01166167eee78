package settings_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pas-services/pas-profile/internal/settings"
)

func writeSettings(t *testing.T, dataPath, name, content string) {
	t.Helper()

	dir := filepath.Join(dataPath, "settings")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestReadFile(t *testing.T) {
	dataPath := t.TempDir()
	writeSettings(t, dataPath, "pas_user_profile.json", `{"pas_user_profile_password_length": 12}`)

	store := settings.New(dataPath, 0)

	v, found, err := store.ReadFile("pas_user_profile.json")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 12, v.GetInt("pas_user_profile_password_length"))
}

func TestReadFileIsCached(t *testing.T) {
	dataPath := t.TempDir()
	writeSettings(t, dataPath, "core.json", `{"lang": "en"}`)

	store := settings.New(dataPath, 0)

	v, _, err := store.ReadFile("core.json")
	require.NoError(t, err)
	assert.Equal(t, "en", v.GetString("lang"))

	writeSettings(t, dataPath, "core.json", `{"lang": "de"}`)

	v, _, err = store.ReadFile("core.json")
	require.NoError(t, err)
	assert.Equal(t, "en", v.GetString("lang"), "cached copy expected")

	store.Forget("core.json")

	v, _, err = store.ReadFile("core.json")
	require.NoError(t, err)
	assert.Equal(t, "de", v.GetString("lang"))
}

func TestReadFileMissing(t *testing.T) {
	store := settings.New(t.TempDir(), 0)

	v, found, err := store.ReadFile("missing.json")
	require.NoError(t, err)
	assert.False(t, found)
	require.NotNil(t, v)
	assert.Empty(t, v.AllKeys())
}

func TestReadFileBroken(t *testing.T) {
	dataPath := t.TempDir()
	writeSettings(t, dataPath, "broken.json", `{"lang": `)

	_, _, err := settings.New(dataPath, 0).ReadFile("broken.json")
	require.Error(t, err)
}
