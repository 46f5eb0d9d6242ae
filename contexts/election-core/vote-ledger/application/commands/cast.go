package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"electra/contexts/election-core/vote-ledger/application"
	"electra/contexts/election-core/vote-ledger/domain/entities"
	domainerrors "electra/contexts/election-core/vote-ledger/domain/errors"
	"electra/contexts/election-core/vote-ledger/ports"
	"electra/internal/shared/events"
	"electra/internal/shared/outbox"
)

const sourceService = "vote-ledger"

type CastVoteCommand struct {
	VoterProfileID string
	BallotID       string
	OptionID       string
}

type CastUseCase struct {
	Votes   ports.VoteRepository
	Ballots ports.BallotDirectory
	Voters  ports.VoterDirectory
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Logger  *slog.Logger
}

// Cast validates ballot, window, option, and voter profile, then hands the
// vote to the repository. A caster whose identity links no voter profile is
// rejected with ErrVoterProfileRequired; Cast never provisions one. The
// repository's uniqueness constraint is the final duplicate check, so the
// precondition reads here never need a lock.
func (uc CastUseCase) Cast(ctx context.Context, command CastVoteCommand) (entities.Vote, error) {
	logger := application.ResolveLogger(uc.Logger)

	ballotID := strings.TrimSpace(command.BallotID)
	optionID := strings.TrimSpace(command.OptionID)
	voterID := strings.TrimSpace(command.VoterProfileID)

	ballot, found, err := uc.Ballots.GetBallot(ctx, ballotID)
	if err != nil {
		return entities.Vote{}, err
	}
	if !found {
		return entities.Vote{}, domainerrors.ErrBallotNotFound
	}

	now := uc.Clock.Now().UTC()
	if !ballot.OpenFor(now) {
		return entities.Vote{}, domainerrors.ErrBallotNotOpen
	}

	hasOption, err := uc.Ballots.BallotHasOption(ctx, ballotID, optionID)
	if err != nil {
		return entities.Vote{}, err
	}
	if !hasOption {
		return entities.Vote{}, domainerrors.ErrOptionNotInBallot
	}

	hasProfile, err := uc.Voters.VoterProfileExists(ctx, voterID)
	if err != nil {
		return entities.Vote{}, err
	}
	if !hasProfile {
		return entities.Vote{}, domainerrors.ErrVoterProfileRequired
	}

	voteID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Vote{}, err
	}
	vote := entities.Vote{
		ID:       voteID,
		VoterID:  voterID,
		BallotID: ballotID,
		OptionID: optionID,
		CastAt:   now,
	}

	message, err := buildOutboxMessage(ctx, uc.IDGen, uc.Clock, entities.EventTypeVoteCast, vote)
	if err != nil {
		return entities.Vote{}, err
	}

	if err := uc.Votes.InsertVote(ctx, vote, message); err != nil {
		return entities.Vote{}, err
	}

	logger.Info("vote cast",
		slog.String("event", "vote_cast"),
		slog.String("ballot_id", vote.BallotID),
		slog.String("vote_id", vote.ID),
	)
	return vote, nil
}

func buildOutboxMessage(
	ctx context.Context,
	idGen ports.IDGenerator,
	clock ports.Clock,
	eventType string,
	vote entities.Vote,
) (outbox.Message, error) {
	eventID, err := idGen.NewID(ctx)
	if err != nil {
		return outbox.Message{}, err
	}
	envelope := events.Envelope{
		EventID:        eventID,
		EventType:      eventType,
		SourceService:  sourceService,
		OccurredAtUTC:  clock.Now().UTC(),
		EntityType:     "vote",
		EntityID:       vote.ID,
		PayloadVersion: 1,
		Payload: entities.VoteCastPayload{
			VoteID:   vote.ID,
			VoterID:  vote.VoterID,
			BallotID: vote.BallotID,
			OptionID: vote.OptionID,
			CastAt:   vote.CastAt,
		},
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return outbox.Message{}, err
	}
	return outbox.Message{
		ID:        eventID,
		EventType: eventType,
		Payload:   payload,
		Status:    "pending",
	}, nil
}
