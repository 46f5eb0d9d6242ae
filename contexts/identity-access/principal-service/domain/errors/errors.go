package errors

import "errors"

var (
	ErrPrincipalNotFound   = errors.New("principal not found")
	ErrPrincipalInactive   = errors.New("principal is inactive")
	ErrInvalidCredentials  = errors.New("invalid login or password")
	ErrDuplicateIdentity   = errors.New("identity already registered")
	ErrDuplicateProfile    = errors.New("profile already registered")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrInvalidRegistration = errors.New("invalid registration input")
	ErrUnknownRole         = errors.New("unknown role")
	ErrUnavailable         = errors.New("identity storage unavailable")
)
