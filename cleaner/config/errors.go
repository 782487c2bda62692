package config

import "errors"

var (
	ErrInvalidConfig        = errors.New("invalid cleaner config")
	ErrInconsistentSentinel = errors.New("inconsistent passenger count sentinel")
)
