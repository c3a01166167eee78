package config

import (
	"errors"
)

// ErrInvalidConfig is returned if the configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")
