package profile

import "errors"

var (
	ErrNotFound    = errors.New("pay profile not found")
	ErrInvalidName = errors.New("pay profile name must be 1 to 120 characters")
)
