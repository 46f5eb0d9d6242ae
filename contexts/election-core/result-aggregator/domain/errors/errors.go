package errors

import "errors"

var (
	ErrBallotNotFound = errors.New("ballot not found")
	ErrUnavailable    = errors.New("result storage unavailable")
)
