package user

import "errors"

var (
	// ErrUnknownType is returned when a type name has no rank.
	ErrUnknownType = errors.New("unknown user type")

	// ErrListConsumed is returned when a profile list is ranged over a second time.
	ErrListConsumed = errors.New("profile list has already been consumed")
)
