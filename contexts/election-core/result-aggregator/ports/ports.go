package ports

import (
	"context"
	"time"

	"electra/contexts/election-core/result-aggregator/domain/entities"
)

// BallotInfo is the ballot metadata needed to label a tally.
type BallotInfo struct {
	ID     string
	Name   string
	Status string
}

type OptionInfo struct {
	ID       string
	Name     string
	Position int
}

type BallotDirectory interface {
	GetBallot(ctx context.Context, ballotID string) (BallotInfo, bool, error)
	ListOptions(ctx context.Context, ballotID string) ([]OptionInfo, error)
}

// CountSource provides the per-option counts a tally is computed from. The
// SQL implementation reads the transactional count table the ledger
// maintains.
type CountSource interface {
	CountVotes(ctx context.Context, ballotID string) ([]entities.OptionCount, error)
}

type ResultCache interface {
	Save(ctx context.Context, result entities.BallotResult) error
	Load(ctx context.Context, ballotID string) (entities.BallotResult, bool, error)
}

type Clock interface {
	Now() time.Time
}
