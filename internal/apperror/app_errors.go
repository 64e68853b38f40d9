package apperror

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNameRequired    = errors.New("display name is required")
)
