package publisher

import "errors"

var ErrInvalidBatchSize = errors.New("batch size must be greater than 0")
