package queries

import (
	"context"
	"log/slog"
	"strings"

	"electra/contexts/election-core/ballot-service/domain/entities"
	domainerrors "electra/contexts/election-core/ballot-service/domain/errors"
	"electra/contexts/election-core/ballot-service/ports"
)

type ListUseCase struct {
	Repo   ports.BallotRepository
	Logger *slog.Logger
}

func (uc ListUseCase) ListBallots(ctx context.Context) ([]entities.Ballot, error) {
	return uc.Repo.ListBallots(ctx)
}

func (uc ListUseCase) GetBallot(ctx context.Context, ballotID string) (entities.Ballot, error) {
	ballot, found, err := uc.Repo.GetBallot(ctx, strings.TrimSpace(ballotID))
	if err != nil {
		return entities.Ballot{}, err
	}
	if !found {
		return entities.Ballot{}, domainerrors.ErrBallotNotFound
	}
	return ballot, nil
}

// GetBallotWithOptions loads the ballot and its options in presentation order.
func (uc ListUseCase) GetBallotWithOptions(ctx context.Context, ballotID string) (entities.Ballot, []entities.Option, error) {
	ballot, err := uc.GetBallot(ctx, ballotID)
	if err != nil {
		return entities.Ballot{}, nil, err
	}
	options, err := uc.Repo.ListOptions(ctx, ballot.ID)
	if err != nil {
		return entities.Ballot{}, nil, err
	}
	return ballot, options, nil
}
