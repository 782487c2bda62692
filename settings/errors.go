package settings

import "errors"

var (
	ErrInvalidSettings  = errors.New("invalid settings")
	ErrInvalidRunParams = errors.New("invalid run parameters")
)
