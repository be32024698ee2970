package apperrors

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrOracleUnavailable = errors.New("oracle not configured")
	ErrInvalidArgument   = errors.New("invalid argument")
)
