package errors

import "errors"

var (
	ErrBallotNotFound     = errors.New("ballot not found")
	ErrOptionNotFound     = errors.New("ballot option not found")
	ErrInvalidBallotInput = errors.New("invalid ballot input")
	ErrInvalidTransition  = errors.New("invalid ballot status transition")
	ErrBallotNotEditable  = errors.New("ballot is not editable after opening")
	ErrUnavailable        = errors.New("ballot storage unavailable")
)
