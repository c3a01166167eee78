package app

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pas-services/pas-profile/internal/db/instance"
	"github.com/pas-services/pas-profile/internal/user"
)

const testConfig = `
DataPath = %q

[DB]
Engine = "sqlite"
Name = %q

[Log]
LogLevel = "error"
AppName = "pas-profile"
ServiceName = "pas-profile-test"

[Log.Console]
enabled = false
`

func setupConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	content := []byte(fmtConfig(dir))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.toml"), content, 0o600))

	return dir + string(filepath.Separator)
}

func fmtConfig(dir string) string {
	return fmt.Sprintf(testConfig, dir, filepath.Join(dir, "pas.db"))
}

// run executes the command line args and returns its output.
func run(t *testing.T, configDir string, args ...string) (string, error) {
	t.Helper()

	// flag variables keep their values between executions
	seedAdmin, deny, ownedID, newPassword = false, false, "", ""
	listOffset, listLimit, listType = 0, 0, ""

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", configDir}, args...))

	err := rootCmd.Execute()

	return out.String(), err
}

func mustRun(t *testing.T, configDir string, args ...string) string {
	t.Helper()

	out, err := run(t, configDir, args...)
	require.NoError(t, err, "pas-profile %v", args)

	return out
}

func TestProfileCommands(t *testing.T) {
	dir := setupConfig(t)

	out := mustRun(t, dir, "migrate", "--seed")
	match := regexp.MustCompile(`created profile admin with password (\S+)`).FindStringSubmatch(out)
	require.Len(t, match, 2, out)
	assert.Len(t, match[1], 16)

	out = mustRun(t, dir, "migrate", "--seed")
	assert.Empty(t, out, "admin is created once")

	out = mustRun(t, dir, "profile", "show", "ADMIN")
	assert.Contains(t, out, "administrator")
	assert.Contains(t, out, "valid")

	mustRun(t, dir, "profile", "lock", "admin")
	assert.Contains(t, mustRun(t, dir, "profile", "show", "admin"), "locked")

	mustRun(t, dir, "profile", "unlock", "admin")
	mustRun(t, dir, "profile", "set", "admin", "type=moderator", "email=admin@example.com", "credits=5")

	out = mustRun(t, dir, "profile", "show", "admin")
	assert.Contains(t, out, "moderator")
	assert.Contains(t, out, "admin@example.com")
	assert.NotContains(t, out, "locked")

	out = mustRun(t, dir, "profile", "list", "--type", "moderator")
	assert.Contains(t, out, "admin\tmoderator\tvalid")

	out = mustRun(t, dir, "profile", "list", "--type", "guest")
	assert.Empty(t, out)

	out = mustRun(t, dir, "profile", "passwd", "admin")
	assert.Contains(t, out, "new password: ")

	out = mustRun(t, dir, "profile", "passwd", "admin", "--password", "correct-horse")
	assert.Empty(t, out)

	_, err := run(t, dir, "profile", "passwd", "admin", "--password", "short")
	require.Error(t, err)

	_, err = run(t, dir, "profile", "set", "admin", "type")
	require.ErrorIs(t, err, errInvalidAssignment)

	out = mustRun(t, dir, "profile", "add", "jane", "jane@example.com")
	assert.Contains(t, out, "created profile ")

	_, err = run(t, dir, "profile", "add", "Jane", "other@example.com", "--password", "correct-horse")
	require.ErrorIs(t, err, user.ErrNameOrEmailExists)

	out = mustRun(t, dir, "profile", "list")
	assert.Contains(t, out, "\tjane\tmember\tvalid")

	_, err = run(t, dir, "profile", "show", "nobody")
	require.ErrorIs(t, err, instance.ErrNothingMatched)

	// names are matched literally, a wildcard does not select another profile
	for _, key := range []string{"%", "adm%", "a_min"} {
		_, err = run(t, dir, "profile", "passwd", key, "--password", "wildcard-horse")
		require.ErrorIs(t, err, instance.ErrNothingMatched, key)
	}
}

func TestBrokenSettingsFile(t *testing.T) {
	dir := setupConfig(t)

	settingsDir := filepath.Join(dir, "settings")
	require.NoError(t, os.MkdirAll(settingsDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(settingsDir, user.SettingsFile),
		[]byte(`{"pas_user_profile_password_length": 2}`), 0o600))

	_, err := run(t, dir, "profile", "list")
	require.Error(t, err)
}

func TestACLCommands(t *testing.T) {
	dir := setupConfig(t)
	mustRun(t, dir, "migrate")

	_, err := run(t, dir, "acl", "grant", "group_42", "read")
	require.ErrorIs(t, err, errOwnedIDMissing)

	mustRun(t, dir, "acl", "grant", "group_42", "read", "--owned", "doc-1")
	mustRun(t, dir, "acl", "grant", "group_42", "write", "--deny")

	out := mustRun(t, dir, "acl", "show", "group_42")
	assert.Equal(t, "group_42\towned by doc-1\n\tread\tgranted\n\twrite\tdenied\n", out)

	mustRun(t, dir, "acl", "grant", "group_42", "read", "--deny")
	mustRun(t, dir, "acl", "revoke", "group_42", "write")

	out = mustRun(t, dir, "acl", "owned", "doc-1")
	assert.Equal(t, "group_42\towned by doc-1\n\tread\tdenied\n", out)

	_, err = run(t, dir, "acl", "show", "bogus")
	require.ErrorIs(t, err, instance.ErrNothingMatched)
}
