package ir

import (
	"errors"
)

var (
	// ErrValidation reports literal constructor arguments which are out of
	// range or of the wrong shape.
	ErrValidation = errors.New("validation error")
	ErrType       = errors.New("wrong value type")
	ErrRegistered = errors.New("literal already registered")
)
