package nbsvm

import "errors"

// Sentinel errors for common failure cases
var (
	ErrNotFitted     = errors.New("vectorizer has not been fitted")
	ErrEmptyCorpus   = errors.New("corpus is empty")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrBadLabel      = errors.New("label must be 0 or 1")
)
