package gateway

import (
	"context"
	"errors"

	ballotqueries "electra/contexts/election-core/ballot-service/application/queries"
	balloterrors "electra/contexts/election-core/ballot-service/domain/errors"
	"electra/contexts/election-core/result-aggregator/ports"
)

// BallotGateway bridges the aggregator's ballot port to the ballot module's
// query layer inside the same process.
type BallotGateway struct {
	Ballots ballotqueries.ListUseCase
}

func (g BallotGateway) GetBallot(ctx context.Context, ballotID string) (ports.BallotInfo, bool, error) {
	ballot, err := g.Ballots.GetBallot(ctx, ballotID)
	if errors.Is(err, balloterrors.ErrBallotNotFound) {
		return ports.BallotInfo{}, false, nil
	}
	if err != nil {
		return ports.BallotInfo{}, false, err
	}
	return ports.BallotInfo{
		ID:     ballot.ID,
		Name:   ballot.Name,
		Status: string(ballot.Status),
	}, true, nil
}

func (g BallotGateway) ListOptions(ctx context.Context, ballotID string) ([]ports.OptionInfo, error) {
	_, options, err := g.Ballots.GetBallotWithOptions(ctx, ballotID)
	if err != nil {
		return nil, err
	}
	infos := make([]ports.OptionInfo, 0, len(options))
	for _, option := range options {
		infos = append(infos, ports.OptionInfo{
			ID:       option.ID,
			Name:     option.Name,
			Position: option.Position,
		})
	}
	return infos, nil
}

var _ ports.BallotDirectory = BallotGateway{}
