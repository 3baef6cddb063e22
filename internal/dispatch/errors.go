package dispatch

import "errors"

var ErrInvalidInput = errors.New("invalid dispatch input")
