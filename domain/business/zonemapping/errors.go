package zonemapping

import "errors"

var ErrMismatchedColumns = errors.New("location ID and borough columns have different lengths")
