package user

import (
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"

	"github.com/pas-services/pas-profile/internal/db/models"
)

// ErrPasswordTooShort is returned by SetPassword for passwords below the configured minimum length.
var ErrPasswordTooShort = errors.New("password is too short")

// passwordChars are the characters of generated passwords and security ids.
var passwordChars = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789") //nolint:gochecknoglobals

// RandomString returns a random string of length characters from chars.
// Bytes above the largest multiple of len(chars) are skipped to avoid modulo bias.
func RandomString(length int, chars []byte) string {
	if length <= 0 {
		return ""
	}

	if len(chars) < 2 || len(chars) > 256 { //nolint:mnd
		panic("user: RandomString needs between 2 and 256 characters")
	}

	limit := 256 - (256 % len(chars)) //nolint:mnd
	out := make([]byte, 0, length)
	buf := make([]byte, length+length/2) //nolint:mnd

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			panic("user: error reading random bytes: " + err.Error())
		}

		for _, b := range buf {
			if int(b) >= limit {
				continue
			}

			out = append(out, chars[int(b)%len(chars)])
			if len(out) == length {
				break
			}
		}
	}

	return string(out)
}

// GeneratePassword returns a random password of the configured length.
func (s *Profiles) GeneratePassword() string {
	return RandomString(s.settings.PasswordLength, passwordChars)
}

// GeneratePassword returns a random password of the configured length.
func (p *Profile) GeneratePassword() string {
	return RandomString(p.settings.PasswordLength, passwordChars)
}

// GenerateSecID assigns and returns a new random security id.
func (p *Profile) GenerateSecID() string {
	secID := RandomString(p.settings.SecIDLength, passwordChars)
	p.SetDataAttributes(Attributes{SecID: &secID})

	return secID
}

// SetPassword stores the Argon2id hash of password.
func (p *Profile) SetPassword(password string) error {
	if len([]rune(password)) < p.settings.PasswordMinLength {
		return fmt.Errorf("%w: at least %d characters required", ErrPasswordTooShort, p.settings.PasswordMinLength)
	}

	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	p.SetDataAttributes(Attributes{Password: &hash})

	return nil
}

// VerifyPassword checks password against the stored hash in constant time.
func (p *Profile) VerifyPassword(password string) bool {
	var hash string

	p.inst.View(func(row *models.UserProfile) { hash = row.Password })

	if hash == "" {
		return false
	}

	match, err := argon2id.ComparePasswordAndHash(password, hash)
	if err != nil {
		log.Error().Err(err).Str("profile", p.ID()).Msg("failed to verify password")

		return false
	}

	return match
}
