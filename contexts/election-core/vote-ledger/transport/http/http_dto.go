package http

type CastVoteRequest struct {
	BallotID string `json:"ballot_id"`
	OptionID string `json:"option_id"`
}

type VoteResponse struct {
	VoteID   string `json:"vote_id"`
	VoterID  string `json:"voter_id"`
	BallotID string `json:"ballot_id"`
	OptionID string `json:"option_id"`
	CastAt   string `json:"cast_at"`
}

type VoteListResponse struct {
	Votes []VoteResponse `json:"votes"`
}

type VoteStatusResponse struct {
	BallotID string `json:"ballot_id"`
	HasVoted bool   `json:"has_voted"`
	VoteID   string `json:"vote_id,omitempty"`
}
