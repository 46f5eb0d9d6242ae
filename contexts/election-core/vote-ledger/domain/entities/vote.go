package entities

import "time"

// Vote links a voter profile to the option it chose on one ballot.
// VoterID is the voter profile ID, not the principal ID.
type Vote struct {
	ID       string
	VoterID  string
	BallotID string
	OptionID string
	CastAt   time.Time
}

const (
	EventTypeVoteCast    = "election-core.vote.cast"
	EventTypeVoteRemoved = "election-core.vote.removed"
)

// VoteCastPayload is the outbox event payload for both cast and removal.
type VoteCastPayload struct {
	VoteID   string    `json:"vote_id"`
	VoterID  string    `json:"voter_id"`
	BallotID string    `json:"ballot_id"`
	OptionID string    `json:"option_id"`
	CastAt   time.Time `json:"cast_at"`
}
