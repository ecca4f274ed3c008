package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is returned when a domain entity fails validation.
// Every specific validation error below wraps it.
var ErrValidation = errors.New("validation failed")

var (
	ErrEmptyToken   = fmt.Errorf("%w: user token cannot be empty", ErrValidation)
	ErrEmptyTitle   = fmt.Errorf("%w: task title cannot be empty", ErrValidation)
	ErrTitleTooLong = fmt.Errorf("%w: task title exceeds %d characters", ErrValidation, MaxTitleLength)
	ErrNullDone     = fmt.Errorf("%w: task done flag cannot be null", ErrValidation)
	ErrMissingOwner = fmt.Errorf("%w: task must have an owner", ErrValidation)
)
