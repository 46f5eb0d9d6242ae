package queries

import (
	"context"
	"log/slog"
	"strings"

	"electra/contexts/election-core/vote-ledger/domain/entities"
	domainerrors "electra/contexts/election-core/vote-ledger/domain/errors"
	"electra/contexts/election-core/vote-ledger/ports"
)

type VotesUseCase struct {
	Votes  ports.VoteRepository
	Logger *slog.Logger
}

func (uc VotesUseCase) GetVote(ctx context.Context, voteID string) (entities.Vote, error) {
	vote, found, err := uc.Votes.GetVote(ctx, strings.TrimSpace(voteID))
	if err != nil {
		return entities.Vote{}, err
	}
	if !found {
		return entities.Vote{}, domainerrors.ErrVoteNotFound
	}
	return vote, nil
}

func (uc VotesUseCase) ListByBallot(ctx context.Context, ballotID string) ([]entities.Vote, error) {
	return uc.Votes.ListVotesByBallot(ctx, strings.TrimSpace(ballotID))
}

func (uc VotesUseCase) ListByVoter(ctx context.Context, voterID string) ([]entities.Vote, error) {
	return uc.Votes.ListVotesByVoter(ctx, strings.TrimSpace(voterID))
}

// VoterStatus reports whether the voter has a recorded vote on the ballot.
type VoterStatus struct {
	BallotID string
	HasVoted bool
	VoteID   string
}

func (uc VotesUseCase) StatusFor(ctx context.Context, voterID, ballotID string) (VoterStatus, error) {
	vote, found, err := uc.Votes.FindVote(ctx, strings.TrimSpace(voterID), strings.TrimSpace(ballotID))
	if err != nil {
		return VoterStatus{}, err
	}
	status := VoterStatus{BallotID: strings.TrimSpace(ballotID), HasVoted: found}
	if found {
		status.VoteID = vote.ID
	}
	return status, nil
}
