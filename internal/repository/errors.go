package repository

import "errors"

var (
	ErrNotFound  = errors.New("file not found")
	ErrMalformed = errors.New("malformed file")
)
