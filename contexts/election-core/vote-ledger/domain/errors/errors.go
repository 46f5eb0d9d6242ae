package errors

import "errors"

var (
	ErrBallotNotFound       = errors.New("ballot not found")
	ErrBallotNotOpen        = errors.New("ballot is not open for voting")
	ErrOptionNotInBallot    = errors.New("option does not belong to ballot")
	ErrVoterProfileRequired = errors.New("voter profile is required to cast a vote")
	ErrAlreadyVoted         = errors.New("already voted")
	ErrVoteNotFound         = errors.New("vote not found")
	ErrUnavailable          = errors.New("vote storage unavailable")
)
