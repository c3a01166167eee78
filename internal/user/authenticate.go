package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pas-services/pas-profile/internal/db/instance"
	"github.com/pas-services/pas-profile/internal/db/models"
)

var (
	// ErrNameOrEmailExists is returned by Register when the user name or e-mail address is taken.
	ErrNameOrEmailExists = errors.New("profile with user name or e-mail already exists")

	// ErrProfileNotValid is returned by Authenticate for banned, deleted or locked profiles.
	ErrProfileNotValid = errors.New("profile is not valid")

	// ErrInvalidPassword is returned by Authenticate when the password does not match.
	ErrInvalidPassword = errors.New("invalid password")
)

// Register creates and stores a profile with the configured defaults.
// User names and e-mail addresses are compared case-insensitively and literally.
// The check runs before the insert; concurrent registrations of one name are not prevented.
func (s *Profiles) Register(ctx context.Context, name, email, password, ip string) (*Profile, error) {
	for _, lookup := range []func() (*Profile, error){
		func() (*Profile, error) { return s.FindUsername(ctx, name) },
		func() (*Profile, error) { return s.FindEmail(ctx, email) },
	} {
		_, err := lookup()
		if err == nil {
			return nil, ErrNameOrEmailExists
		}

		if !errors.Is(err, instance.ErrNothingMatched) {
			return nil, fmt.Errorf("failed to check existing profile: %w", err)
		}
	}

	p := s.New()
	p.SetDataAttributes(Attributes{Name: &name, Email: &email, RegistrationIP: &ip})
	p.GenerateSecID()

	if err := p.SetPassword(password); err != nil {
		return nil, err
	}

	if err := p.Save(ctx); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	log.Info().Str("profile", p.ID()).Str("name", p.Name()).Msg("profile registered")

	return p, nil
}

// Authenticate checks the password of the profile name and records the visit from ip.
func (s *Profiles) Authenticate(ctx context.Context, name, password, ip string) (*Profile, error) {
	p, err := s.FindUsername(ctx, name)
	if err != nil {
		return nil, err
	}

	if !p.IsValid() {
		return nil, ErrProfileNotValid
	}

	if !p.VerifyPassword(password) {
		return nil, ErrInvalidPassword
	}

	now := time.Now().Unix()

	p.inst.Update(func(row *models.UserProfile) {
		row.LastvisitTime = now
		row.LastvisitIP = ip
	})

	if err := p.Save(ctx); err != nil {
		return nil, fmt.Errorf("failed to record visit: %w", err)
	}

	return p, nil
}
