package queries

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"electra/contexts/election-core/result-aggregator/domain/entities"
	domainerrors "electra/contexts/election-core/result-aggregator/domain/errors"
	"electra/contexts/election-core/result-aggregator/domain/services"
	"electra/contexts/election-core/result-aggregator/ports"
)

type TallyUseCase struct {
	Ballots ports.BallotDirectory
	Counts  ports.CountSource
	Cache   ports.ResultCache
	Clock   ports.Clock
	Logger  *slog.Logger
}

// Tally recomputes the result from the count source. Every option of the
// ballot appears in the result, zero-vote options included.
func (uc TallyUseCase) Tally(ctx context.Context, ballotID string) (entities.BallotResult, error) {
	ballotID = strings.TrimSpace(ballotID)

	ballot, found, err := uc.Ballots.GetBallot(ctx, ballotID)
	if err != nil {
		return entities.BallotResult{}, err
	}
	if !found {
		return entities.BallotResult{}, domainerrors.ErrBallotNotFound
	}

	options, err := uc.Ballots.ListOptions(ctx, ballotID)
	if err != nil {
		return entities.BallotResult{}, err
	}
	counts, err := uc.Counts.CountVotes(ctx, ballotID)
	if err != nil {
		return entities.BallotResult{}, err
	}

	votesByOption := make(map[string]int64, len(counts))
	var total int64
	for _, count := range counts {
		votesByOption[count.OptionID] = count.Votes
		total += count.Votes
	}

	result := entities.BallotResult{
		BallotID:   ballot.ID,
		BallotName: ballot.Name,
		Status:     ballot.Status,
		Total:      total,
		Options:    make([]entities.OptionResult, 0, len(options)),
		ComputedAt: uc.Clock.Now().UTC(),
	}
	for _, option := range options {
		votes := votesByOption[option.ID]
		result.Options = append(result.Options, entities.OptionResult{
			OptionID: option.ID,
			Name:     option.Name,
			Position: option.Position,
			Votes:    votes,
			Percent:  services.Share(votes, total),
		})
	}
	sort.Slice(result.Options, func(i, j int) bool {
		return result.Options[i].Position < result.Options[j].Position
	})
	return result, nil
}

// Refresh recomputes the result and rewrites the stored snapshot. Callers
// are served by Tally directly; the snapshot exists for offline consumers
// and always holds exactly what a recount produced.
func (uc TallyUseCase) Refresh(ctx context.Context, ballotID string) (entities.BallotResult, error) {
	result, err := uc.Tally(ctx, ballotID)
	if err != nil {
		return entities.BallotResult{}, err
	}
	if err := uc.Cache.Save(ctx, result); err != nil {
		return entities.BallotResult{}, err
	}
	return result, nil
}
