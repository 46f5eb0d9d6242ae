package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"electra/contexts/election-core/vote-ledger/application/commands"
	"electra/contexts/election-core/vote-ledger/application/queries"
	"electra/contexts/election-core/vote-ledger/domain/entities"
	httptransport "electra/contexts/election-core/vote-ledger/transport/http"
)

type Handler struct {
	Cast   commands.CastUseCase
	Remove commands.RemoveUseCase
	Votes  queries.VotesUseCase
	Logger *slog.Logger
}

// CastVoteHandler records a vote for the authenticated voter's profile.
func (h Handler) CastVoteHandler(ctx context.Context, voterProfileID string, req httptransport.CastVoteRequest) (httptransport.VoteResponse, error) {
	vote, err := h.Cast.Cast(ctx, commands.CastVoteCommand{
		VoterProfileID: voterProfileID,
		BallotID:       req.BallotID,
		OptionID:       req.OptionID,
	})
	if err != nil {
		return httptransport.VoteResponse{}, err
	}
	return voteResponse(vote), nil
}

func (h Handler) RemoveVoteHandler(ctx context.Context, voteID string) (httptransport.VoteResponse, error) {
	vote, err := h.Remove.Remove(ctx, voteID)
	if err != nil {
		return httptransport.VoteResponse{}, err
	}
	return voteResponse(vote), nil
}

func (h Handler) GetVoteHandler(ctx context.Context, voteID string) (httptransport.VoteResponse, error) {
	vote, err := h.Votes.GetVote(ctx, voteID)
	if err != nil {
		return httptransport.VoteResponse{}, err
	}
	return voteResponse(vote), nil
}

func (h Handler) ListBallotVotesHandler(ctx context.Context, ballotID string) (httptransport.VoteListResponse, error) {
	votes, err := h.Votes.ListByBallot(ctx, ballotID)
	if err != nil {
		return httptransport.VoteListResponse{}, err
	}
	return voteListResponse(votes), nil
}

func (h Handler) ListVoterVotesHandler(ctx context.Context, voterProfileID string) (httptransport.VoteListResponse, error) {
	votes, err := h.Votes.ListByVoter(ctx, voterProfileID)
	if err != nil {
		return httptransport.VoteListResponse{}, err
	}
	return voteListResponse(votes), nil
}

func (h Handler) VoteStatusHandler(ctx context.Context, voterProfileID, ballotID string) (httptransport.VoteStatusResponse, error) {
	status, err := h.Votes.StatusFor(ctx, voterProfileID, ballotID)
	if err != nil {
		return httptransport.VoteStatusResponse{}, err
	}
	return httptransport.VoteStatusResponse{
		BallotID: status.BallotID,
		HasVoted: status.HasVoted,
		VoteID:   status.VoteID,
	}, nil
}

func voteResponse(vote entities.Vote) httptransport.VoteResponse {
	return httptransport.VoteResponse{
		VoteID:   vote.ID,
		VoterID:  vote.VoterID,
		BallotID: vote.BallotID,
		OptionID: vote.OptionID,
		CastAt:   vote.CastAt.UTC().Format(time.RFC3339),
	}
}

func voteListResponse(votes []entities.Vote) httptransport.VoteListResponse {
	resp := httptransport.VoteListResponse{Votes: make([]httptransport.VoteResponse, 0, len(votes))}
	for _, vote := range votes {
		resp.Votes = append(resp.Votes, voteResponse(vote))
	}
	return resp
}
