package compliance

import "errors"

// ErrInvalidInput marks portfolio inputs that cannot be evaluated: an empty
// weight map, a negative or non-finite weight, or a zero total (normalization
// by zero is undefined). Callers can match it with errors.Is.
var ErrInvalidInput = errors.New("invalid portfolio input")
