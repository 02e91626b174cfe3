package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrPrivateLeague         = errors.New("fantasy league is private")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
