package repository

import "errors"

var (
	ErrNotFound       = errors.New("alert not found")
	ErrStatusConflict = errors.New("alert status changed concurrently")
)
