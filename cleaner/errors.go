package cleaner

import "errors"

var ErrNilConfig = errors.New("cleaner config cannot be nil")
