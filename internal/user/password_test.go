package user_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pas-services/pas-profile/internal/user"
)

func TestRandomString(t *testing.T) {
	chars := []byte("ab")

	assert.Empty(t, user.RandomString(0, chars))

	s := user.RandomString(64, chars)
	assert.Len(t, s, 64)
	assert.Empty(t, strings.Trim(s, "ab"))

	assert.Panics(t, func() { user.RandomString(4, []byte("a")) })
}

func TestGeneratePassword(t *testing.T) {
	p := newUnsaved(t)

	first := p.GeneratePassword()
	second := p.GeneratePassword()

	assert.Len(t, first, user.DefaultSettings().PasswordLength)
	assert.NotEqual(t, first, second)
}

func TestGenerateSecID(t *testing.T) {
	p := newUnsaved(t)

	secID := p.GenerateSecID()
	assert.Len(t, secID, user.DefaultSettings().SecIDLength)
	assert.Equal(t, secID, p.SecID())
}

func TestSetPassword(t *testing.T) {
	p := newUnsaved(t)

	assert.False(t, p.VerifyPassword("anything"), "no password set")

	require.ErrorIs(t, p.SetPassword("short"), user.ErrPasswordTooShort)

	require.NoError(t, p.SetPassword("changeme!"))
	assert.True(t, strings.HasPrefix(p.PasswordHash(), "$argon2id$"))
	assert.True(t, p.VerifyPassword("changeme!"))
	assert.False(t, p.VerifyPassword("changeme?"))
}

func TestVerifyPasswordBrokenHash(t *testing.T) {
	p := newUnsaved(t)
	p.SetDataAttributes(user.Attributes{Password: ptr("not-a-hash")})

	assert.False(t, p.VerifyPassword("not-a-hash"))
}
