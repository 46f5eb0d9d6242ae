package gateway

import (
	"context"
	"errors"

	ballotqueries "electra/contexts/election-core/ballot-service/application/queries"
	balloterrors "electra/contexts/election-core/ballot-service/domain/errors"
	"electra/contexts/election-core/vote-ledger/ports"
	principalqueries "electra/contexts/identity-access/principal-service/application/queries"
	principalerrors "electra/contexts/identity-access/principal-service/domain/errors"
)

// BallotGateway bridges the ledger's ballot port to the ballot module's
// query layer inside the same process.
type BallotGateway struct {
	Ballots ballotqueries.ListUseCase
}

func (g BallotGateway) GetBallot(ctx context.Context, ballotID string) (ports.BallotView, bool, error) {
	ballot, err := g.Ballots.GetBallot(ctx, ballotID)
	if errors.Is(err, balloterrors.ErrBallotNotFound) {
		return ports.BallotView{}, false, nil
	}
	if err != nil {
		return ports.BallotView{}, false, err
	}
	return ports.BallotView{
		ID:     ballot.ID,
		Status: string(ballot.Status),
		Start:  ballot.Start,
		End:    ballot.End,
	}, true, nil
}

func (g BallotGateway) BallotHasOption(ctx context.Context, ballotID, optionID string) (bool, error) {
	_, options, err := g.Ballots.GetBallotWithOptions(ctx, ballotID)
	if errors.Is(err, balloterrors.ErrBallotNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	for _, option := range options {
		if option.ID == optionID {
			return true, nil
		}
	}
	return false, nil
}

// VoterGateway answers profile existence checks from the identity module.
type VoterGateway struct {
	Loader principalqueries.LoadUseCase
}

func (g VoterGateway) VoterProfileExists(ctx context.Context, voterProfileID string) (bool, error) {
	_, err := g.Loader.VoterProfile(ctx, voterProfileID)
	if errors.Is(err, principalerrors.ErrProfileNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

var (
	_ ports.BallotDirectory = BallotGateway{}
	_ ports.VoterDirectory  = VoterGateway{}
)
