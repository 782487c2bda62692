package datasource

import "errors"

var (
	ErrMissingResource = errors.New("missing resource")
	ErrMissingColumn   = errors.New("missing column")
	ErrUnsupportedType = errors.New("unsupported column type")
)
