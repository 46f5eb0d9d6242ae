package errors

import "errors"

var (
	ErrPermissionDenied       = errors.New("insufficient permission")
	ErrAuthenticationRequired = errors.New("authentication required")
)
