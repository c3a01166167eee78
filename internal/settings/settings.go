// Package settings reads the JSON settings files of the framework below
// {DataPath}/settings and keeps the parsed result in memory.
package settings

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/patrickmn/go-cache"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Store caches parsed settings files.
type Store struct {
	dataPath string
	cache    *cache.Cache
}

// New creates a store for the settings below dataPath.
// Parsed files are kept for ttl; a ttl <= 0 keeps them until the process exits.
func New(dataPath string, ttl time.Duration) *Store {
	expiration := ttl
	cleanup := 2 * ttl //nolint:mnd

	if ttl <= 0 {
		expiration = cache.NoExpiration
		cleanup = 0
	}

	return &Store{
		dataPath: dataPath,
		cache:    cache.New(expiration, cleanup),
	}
}

// Path returns the full path of the settings file name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dataPath, "settings", name)
}

// ReadFile returns the settings of file name. A missing file results in an
// empty set of settings and found == false; defaults are applied by the caller.
func (s *Store) ReadFile(name string) (settings *viper.Viper, found bool, err error) {
	path := s.Path(name)

	if cached, ok := s.cache.Get(path); ok {
		v, _ := cached.(*viper.Viper)

		return v, true, nil
	}

	v := viper.New()

	if _, err = os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("path", path).Msg("settings file not found, using defaults")

		return v, false, nil
	}

	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err = v.ReadInConfig(); err != nil {
		return nil, false, pkgerrors.Wrapf(err, "failed to read settings file %s", path)
	}

	s.cache.SetDefault(path, v)
	log.Debug().Str("path", path).Int("keys", len(v.AllKeys())).Msg("settings file read")

	return v, true, nil
}

// Forget drops the cached copy of file name so the next ReadFile reads it again.
func (s *Store) Forget(name string) {
	s.cache.Delete(s.Path(name))
}
