package ports

import (
	"context"
	"time"

	"electra/contexts/election-core/ballot-service/domain/entities"
)

type BallotRepository interface {
	CreateBallot(ctx context.Context, ballot entities.Ballot, options []entities.Option) error
	UpdateBallot(ctx context.Context, ballot entities.Ballot) error
	GetBallot(ctx context.Context, ballotID string) (entities.Ballot, bool, error)
	ListBallots(ctx context.Context) ([]entities.Ballot, error)
	ListOptions(ctx context.Context, ballotID string) ([]entities.Option, error)
	AddOption(ctx context.Context, option entities.Option) error
	SetStatus(ctx context.Context, ballotID string, status entities.BallotStatus, now time.Time) error

	// Scheduler reads: planned ballots whose window has started, and active
	// ballots whose window has ended, as of now.
	ListPlannedDue(ctx context.Context, now time.Time) ([]entities.Ballot, error)
	ListActiveDue(ctx context.Context, now time.Time) ([]entities.Ballot, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
