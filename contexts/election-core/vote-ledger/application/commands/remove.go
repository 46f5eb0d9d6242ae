package commands

import (
	"context"
	"log/slog"
	"strings"

	"electra/contexts/election-core/vote-ledger/application"
	"electra/contexts/election-core/vote-ledger/domain/entities"
	domainerrors "electra/contexts/election-core/vote-ledger/domain/errors"
	"electra/contexts/election-core/vote-ledger/ports"
)

// RemoveUseCase deletes a recorded vote. Admin-only at the transport layer;
// the ballot cache recount happens inside the repository transaction.
type RemoveUseCase struct {
	Votes  ports.VoteRepository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc RemoveUseCase) Remove(ctx context.Context, voteID string) (entities.Vote, error) {
	logger := application.ResolveLogger(uc.Logger)

	voteID = strings.TrimSpace(voteID)
	vote, found, err := uc.Votes.GetVote(ctx, voteID)
	if err != nil {
		return entities.Vote{}, err
	}
	if !found {
		return entities.Vote{}, domainerrors.ErrVoteNotFound
	}

	message, err := buildOutboxMessage(ctx, uc.IDGen, uc.Clock, entities.EventTypeVoteRemoved, vote)
	if err != nil {
		return entities.Vote{}, err
	}

	removed, err := uc.Votes.DeleteVote(ctx, voteID, message)
	if err != nil {
		return entities.Vote{}, err
	}

	logger.Info("vote removed",
		slog.String("event", "vote_removed"),
		slog.String("ballot_id", removed.BallotID),
		slog.String("vote_id", removed.ID),
	)
	return removed, nil
}
