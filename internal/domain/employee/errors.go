package employee

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("employee: validation failed")
	ErrNotFound   = errors.New("employee: not found")
	// ErrMalformedRecord is also an ErrValidation.
	ErrMalformedRecord = fmt.Errorf("%w: malformed record", ErrValidation)
)
