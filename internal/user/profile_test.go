package user_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pas-services/pas-profile/internal/db/instance"
	"github.com/pas-services/pas-profile/internal/user"
)

func newUnsaved(t *testing.T) *user.Profile {
	t.Helper()

	return user.NewProfilesWithSettings(nil, user.DefaultSettings()).New()
}

func TestNewProfileDefaults(t *testing.T) {
	s := user.DefaultSettings()
	s.DefaultTheme = "dark"

	p := user.NewProfilesWithSettings(nil, s).New()

	assert.Equal(t, user.TypeMember, p.Type())
	assert.Equal(t, "en", p.Lang())
	assert.Equal(t, "dark", p.Theme())
	assert.Positive(t, p.RegistrationTime())
	assert.Empty(t, p.ID())
	assert.True(t, p.IsValid())
}

func TestStatusPredicates(t *testing.T) {
	tests := []struct {
		banned, deleted, locked bool
	}{
		{false, false, false},
		{true, false, false},
		{false, true, false},
		{false, false, true},
		{true, true, false},
		{true, false, true},
		{false, true, true},
		{true, true, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("banned=%t deleted=%t locked=%t", tt.banned, tt.deleted, tt.locked), func(t *testing.T) {
			p := newUnsaved(t)
			p.SetDataAttributes(user.Attributes{
				Banned:  ptr(tt.banned),
				Deleted: ptr(tt.deleted),
				Locked:  ptr(tt.locked),
			})

			assert.Equal(t, tt.banned, p.IsBanned())
			assert.Equal(t, tt.deleted, p.IsDeleted())
			assert.Equal(t, tt.locked, p.IsLocked())
			assert.Equal(t, !tt.banned && !tt.deleted && !tt.locked, p.IsValid())
		})
	}
}

func TestLockUnlock(t *testing.T) {
	p := newUnsaved(t)

	p.Lock()
	assert.True(t, p.IsLocked())
	assert.False(t, p.IsValid())

	p.Unlock()
	assert.False(t, p.IsLocked())
	assert.True(t, p.IsValid())
}

func TestTypeComparisons(t *testing.T) {
	for _, stored := range user.Types() {
		for _, given := range user.Types() {
			t.Run(stored.String()+"/"+given.String(), func(t *testing.T) {
				p := newUnsaved(t)
				p.SetDataAttributes(user.Attributes{Type: ptr(stored)})

				higher := p.IsTypeOrHigher(given)
				lower := p.IsTypeOrLower(given)

				if stored == given {
					assert.True(t, p.IsType(given))
					assert.True(t, higher)
					assert.True(t, lower)

					return
				}

				assert.False(t, p.IsType(given))
				assert.True(t, higher != lower, "exactly one of higher/lower expected")
				assert.Equal(t, stored > given, higher)
			})
		}
	}
}

func TestTypeNameComparisons(t *testing.T) {
	p := newUnsaved(t)
	p.SetDataAttributes(user.Attributes{Type: ptr(user.TypeModerator)})

	is, err := p.IsTypeName("moderator")
	require.NoError(t, err)
	assert.True(t, is)

	higher, err := p.IsTypeNameOrHigher("member")
	require.NoError(t, err)
	assert.True(t, higher)

	lower, err := p.IsTypeNameOrLower("member")
	require.NoError(t, err)
	assert.False(t, lower)

	_, err = p.IsTypeName("overlord")
	require.ErrorIs(t, err, user.ErrUnknownType)
	_, err = p.IsTypeNameOrHigher("overlord")
	require.ErrorIs(t, err, user.ErrUnknownType)
	_, err = p.IsTypeNameOrLower("overlord")
	require.ErrorIs(t, err, user.ErrUnknownType)
}

func TestSetDataAttributes(t *testing.T) {
	p := newUnsaved(t)

	p.SetDataAttributes(user.Attributes{Name: ptr("x"), Email: ptr("y@z")})
	assert.Equal(t, "x", p.Name())
	assert.Equal(t, "y@z", p.Email())

	p.SetDataAttributes(user.Attributes{
		TypeEx:           ptr("ext"),
		Name:             ptr("Ame\u0301lie"),
		Title:            ptr("bad\xffbyte"),
		Signature:        ptr("cafe\u0301"),
		Lang:             ptr("de"),
		Theme:            ptr("light"),
		EmailPublic:      ptr(true),
		Credits:          ptr(10),
		Avatar:           ptr("avatar.png"),
		RegistrationIP:   ptr("192.0.2.1"),
		RegistrationTime: ptr(int64(1700000000)),
		SecID:            ptr("secid"),
		LastvisitIP:      ptr("192.0.2.2"),
		LastvisitTime:    ptr(int64(1700000100)),
		Rating:           ptr(5),
		Timezone:         ptr(1.5),
	})

	assert.Equal(t, "ext", p.TypeEx())
	assert.Equal(t, "Am\u00e9lie", p.Name(), "free text is NFC normalized")
	assert.Equal(t, "bad\ufffdbyte", p.Title())
	assert.Equal(t, "caf\u00e9", p.Signature())
	assert.Equal(t, "y@z", p.Email(), "untouched fields keep their value")
	assert.Equal(t, "de", p.Lang())
	assert.Equal(t, "light", p.Theme())
	assert.True(t, p.IsEmailPublic())
	assert.Equal(t, 10, p.Credits())
	assert.Equal(t, "avatar.png", p.Avatar())
	assert.Equal(t, "192.0.2.1", p.RegistrationIP())
	assert.Equal(t, int64(1700000000), p.RegistrationTime())
	assert.Equal(t, "secid", p.SecID())
	assert.Equal(t, "192.0.2.2", p.LastvisitIP())
	assert.Equal(t, int64(1700000100), p.LastvisitTime())
	assert.Equal(t, 5, p.Rating())
	assert.InDelta(t, 1.5, p.Timezone(), 0.001)
}

func TestSetDataAttributesConcurrently(t *testing.T) {
	p := newUnsaved(t)

	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			p.SetDataAttributes(user.Attributes{Credits: ptr(i)})
			_ = p.IsValid()
		}()
	}

	wg.Wait()
	assert.GreaterOrEqual(t, p.Credits(), 0)
}

func TestIsReloadable(t *testing.T) {
	ctx := context.Background()
	profiles := user.NewProfilesWithSettings(setupTestDB(t), user.DefaultSettings())

	p := profiles.New()
	assert.False(t, p.IsReloadable())
	require.ErrorIs(t, p.Reload(ctx), instance.ErrNotReloadable)

	p.SetDataAttributes(user.Attributes{Name: ptr("reload")})
	require.NoError(t, p.Save(ctx))
	assert.True(t, p.IsReloadable())
	assert.NotEmpty(t, p.ID())

	// discard an unsaved change
	p.SetDataAttributes(user.Attributes{Name: ptr("changed")})
	require.NoError(t, p.Reload(ctx))
	assert.Equal(t, "reload", p.Name())
}

func TestSaveUpdatesExistingRow(t *testing.T) {
	ctx := context.Background()
	profiles := user.NewProfilesWithSettings(setupTestDB(t), user.DefaultSettings())

	p := seedProfile(t, profiles, user.Attributes{Name: ptr("anna"), Email: ptr("anna@example.com")})
	id := p.ID()

	p.Lock()
	require.NoError(t, p.Save(ctx))
	assert.Equal(t, id, p.ID())

	loaded, err := profiles.LoadID(ctx, id)
	require.NoError(t, err)
	assert.True(t, loaded.IsLocked())
	assert.Equal(t, "anna@example.com", loaded.Email())

	data := loaded.DataAttributes()
	assert.Equal(t, "anna", data.Name)
	assert.True(t, data.Locked)
}
