package user

import (
	"context"
	"errors"
	"iter"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/pas-services/pas-profile/internal/db/instance"
	"github.com/pas-services/pas-profile/internal/db/models"
	"github.com/pas-services/pas-profile/internal/settings"
	"github.com/pas-services/pas-profile/internal/text"
)

// Profiles creates and loads user profiles.
type Profiles struct {
	db       *gorm.DB
	settings Settings
}

// NewProfiles creates the profile service. The profile settings are read once from store.
func NewProfiles(db *gorm.DB, store *settings.Store) (*Profiles, error) {
	s, err := LoadSettings(store)
	if err != nil {
		return nil, err
	}

	return NewProfilesWithSettings(db, s), nil
}

// NewProfilesWithSettings creates the profile service using s.
func NewProfilesWithSettings(db *gorm.DB, s Settings) *Profiles {
	return &Profiles{db: db, settings: s}
}

// Settings returns the profile settings in use.
func (s *Profiles) Settings() Settings {
	return s.settings
}

// New returns an unsaved profile initialized with the configured defaults.
func (s *Profiles) New() *Profile {
	return newProfile(s.db, &models.UserProfile{
		Type:             int(s.settings.DefaultType),
		Lang:             s.settings.DefaultLang,
		Theme:            s.settings.DefaultTheme,
		RegistrationTime: time.Now().Unix(),
	}, s.settings)
}

// LoadID loads the profile with the given id.
func (s *Profiles) LoadID(ctx context.Context, id string) (*Profile, error) {
	if id == "" {
		return nil, instance.NothingMatched("Profile ID is invalid")
	}

	return s.loadOne("load_id", s.db.WithContext(ctx).Where("id = ?", id),
		instance.NothingMatchedf("Profile ID '%s' is invalid", id))
}

// LoadUsername loads the profile with the given user name.
// With insensitive set the name is matched case-insensitively using LIKE.
func (s *Profiles) LoadUsername(ctx context.Context, username string, insensitive bool) (*Profile, error) {
	if username == "" {
		return nil, instance.NothingMatched("Profile user name is invalid")
	}

	return s.loadOne("load_username", s.match(ctx, "name", username, insensitive),
		instance.NothingMatchedf("Profile user name '%s' is invalid", username))
}

// LoadEmail loads the profile with the given e-mail address.
// With insensitive set the address is matched case-insensitively using LIKE.
func (s *Profiles) LoadEmail(ctx context.Context, email string, insensitive bool) (*Profile, error) {
	if email == "" {
		return nil, instance.NothingMatched("Profile e-mail is invalid")
	}

	return s.loadOne("load_email", s.match(ctx, "email", email, insensitive),
		instance.NothingMatchedf("Profile e-mail '%s' is invalid", email))
}

// FindUsername loads the profile whose user name equals username ignoring case.
// No character of username acts as a wildcard.
func (s *Profiles) FindUsername(ctx context.Context, username string) (*Profile, error) {
	if username == "" {
		return nil, instance.NothingMatched("Profile user name is invalid")
	}

	return s.loadOne("find_username", s.equalFold(ctx, "name", username),
		instance.NothingMatchedf("Profile user name '%s' is invalid", username))
}

// FindEmail loads the profile whose e-mail address equals email ignoring case.
// No character of email acts as a wildcard.
func (s *Profiles) FindEmail(ctx context.Context, email string) (*Profile, error) {
	if email == "" {
		return nil, instance.NothingMatched("Profile e-mail is invalid")
	}

	return s.loadOne("find_email", s.equalFold(ctx, "email", email),
		instance.NothingMatchedf("Profile e-mail '%s' is invalid", email))
}

// equalFold compares column with the normalized value ignoring case.
func (s *Profiles) equalFold(ctx context.Context, column, value string) *gorm.DB {
	return s.db.WithContext(ctx).Where("LOWER("+column+") = LOWER(?)", text.Normalize(value))
}

// match builds the query for column; column is one of the fixed lookup columns.
func (s *Profiles) match(ctx context.Context, column, value string, insensitive bool) *gorm.DB {
	tx := s.db.WithContext(ctx)

	if insensitive {
		return tx.Where("LOWER("+column+") LIKE LOWER(?)", value)
	}

	return tx.Where(column+" = ?", value)
}

func (s *Profiles) loadOne(operation string, query *gorm.DB, notFound error) (*Profile, error) {
	var row models.UserProfile

	err := query.Order("registration_time ASC").First(&row).Error
	instance.Observe(entityProfile, operation, err)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound
	}

	if err != nil {
		return nil, err
	}

	return newProfile(s.db, &row, s.settings), nil
}

// ListOptions restrict LoadList.
type ListOptions struct {
	Offset int   // rows to skip, ignored unless positive
	Limit  int   // maximum number of rows, ignored unless positive
	Type   *Type // only profiles of this type
}

// LoadList returns the profiles not deleted, sorted by registration time.
// The profiles are read while ranging over the sequence. The sequence can be
// ranged over once; a second range yields ErrListConsumed.
func (s *Profiles) LoadList(ctx context.Context, opts ListOptions) iter.Seq2[*Profile, error] {
	var consumed atomic.Bool

	return func(yield func(*Profile, error) bool) {
		if consumed.Swap(true) {
			yield(nil, ErrListConsumed)

			return
		}

		query := s.db.WithContext(ctx).Model(&models.UserProfile{}).Where("deleted = ?", false)

		if opts.Type != nil {
			query = query.Where("type = ?", int(*opts.Type))
		}

		if opts.Offset > 0 {
			query = query.Offset(opts.Offset)
		}

		if opts.Limit > 0 {
			query = query.Limit(opts.Limit)
		}

		rows, err := query.Order("registration_time ASC").Order("id ASC").Rows()
		instance.Observe(entityProfile, "load_list", err)

		if err != nil {
			yield(nil, err)

			return
		}

		defer func() {
			if err := rows.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close profile list")
			}
		}()

		for rows.Next() {
			row := new(models.UserProfile)

			if err := s.db.ScanRows(rows, row); err != nil {
				yield(nil, err)

				return
			}

			if !yield(newProfile(s.db, row, s.settings), nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(nil, err)
		}
	}
}

// CollectList ranges over LoadList and returns all profiles.
func (s *Profiles) CollectList(ctx context.Context, opts ListOptions) ([]*Profile, error) {
	var profiles []*Profile

	for p, err := range s.LoadList(ctx, opts) {
		if err != nil {
			return nil, err
		}

		profiles = append(profiles, p)
	}

	return profiles, nil
}
