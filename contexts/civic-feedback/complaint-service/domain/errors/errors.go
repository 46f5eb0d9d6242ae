package errors

import "errors"

var (
	ErrComplaintNotFound = errors.New("complaint not found")
	ErrAlreadyResolved   = errors.New("complaint is already resolved")
	ErrInvalidComplaint  = errors.New("invalid complaint input")
	ErrUnavailable       = errors.New("complaint storage unavailable")
)
