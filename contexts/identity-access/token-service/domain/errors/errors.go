package errors

import "errors"

var (
	ErrInvalidSignature  = errors.New("token signature is invalid")
	ErrTokenExpired      = errors.New("token is expired")
	ErrMalformedSubject  = errors.New("token subject is malformed")
	ErrSecretRequired    = errors.New("token signing secret is required")
	ErrPrincipalRequired = errors.New("principal id is required")
)
