package user

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/pas-services/pas-profile/internal/settings"
)

// SettingsFile is the settings file of the profile service below {DataPath}/settings.
const SettingsFile = "pas_user_profile.json"

const (
	keyDefaultType       = "pas_user_profile_default_type"
	keyDefaultLang       = "pas_user_profile_default_lang"
	keyDefaultTheme      = "pas_user_profile_default_theme"
	keyPasswordLength    = "pas_user_profile_password_length"
	keyPasswordMinLength = "pas_user_profile_password_min_length"
	keySecIDLength       = "pas_user_profile_secid_length"
)

// Settings are the profile defaults read from SettingsFile.
type Settings struct {
	DefaultType       Type
	DefaultLang       string
	DefaultTheme      string
	PasswordLength    int // length of generated passwords
	PasswordMinLength int // minimum length accepted by SetPassword
	SecIDLength       int // length of generated security ids
}

// DefaultSettings returns the settings used when the settings file does not define a value.
func DefaultSettings() Settings {
	return Settings{
		DefaultType:       TypeMember,
		DefaultLang:       "en",
		PasswordLength:    16, //nolint:mnd
		PasswordMinLength: 8,  //nolint:mnd
		SecIDLength:       20, //nolint:mnd
	}
}

// LoadSettings reads SettingsFile from store. A missing file yields DefaultSettings.
func LoadSettings(store *settings.Store) (Settings, error) {
	s := DefaultSettings()

	if store == nil {
		return s, nil
	}

	// v is shared through the store cache and is only read here
	v, _, err := store.ReadFile(SettingsFile)
	if err != nil {
		return s, err
	}

	if s.DefaultType, err = ParseType(stringSetting(v, keyDefaultType, s.DefaultType.String())); err != nil {
		return s, fmt.Errorf("%s: %w", keyDefaultType, err)
	}

	s.DefaultLang = stringSetting(v, keyDefaultLang, s.DefaultLang)
	s.DefaultTheme = stringSetting(v, keyDefaultTheme, s.DefaultTheme)
	s.PasswordLength = intSetting(v, keyPasswordLength, s.PasswordLength)
	s.PasswordMinLength = intSetting(v, keyPasswordMinLength, s.PasswordMinLength)
	s.SecIDLength = intSetting(v, keySecIDLength, s.SecIDLength)

	if s.PasswordLength < s.PasswordMinLength {
		return s, fmt.Errorf("%s must not be lower than %s", keyPasswordLength, keyPasswordMinLength)
	}

	return s, nil
}

func stringSetting(v *viper.Viper, key, fallback string) string {
	if !v.IsSet(key) {
		return fallback
	}

	return v.GetString(key)
}

func intSetting(v *viper.Viper, key string, fallback int) int {
	if !v.IsSet(key) {
		return fallback
	}

	return v.GetInt(key)
}
