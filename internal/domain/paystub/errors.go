package paystub

import "errors"

var ErrInvalidDate = errors.New("invalid calendar date")
