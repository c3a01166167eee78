package instance

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

var (
	// ErrNothingMatched is returned when a lookup is given an invalid key or matches no row.
	ErrNothingMatched = errors.New("nothing matched")

	// ErrNotReloadable is returned when reloading a row that has not been stored yet.
	ErrNotReloadable = errors.New("instance has no database id")
)

// NothingMatched wraps ErrNothingMatched with a description of the failing key.
func NothingMatched(msg string) error {
	return pkgerrors.Wrap(ErrNothingMatched, msg)
}

// NothingMatchedf wraps ErrNothingMatched with a formatted description of the failing key.
func NothingMatchedf(format string, args ...any) error {
	return pkgerrors.Wrapf(ErrNothingMatched, format, args...)
}
