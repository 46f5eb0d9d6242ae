package ports

import (
	"context"
	"time"

	"electra/contexts/election-core/vote-ledger/domain/entities"
	"electra/internal/shared/outbox"
)

const (
	BallotStatusPlanned = "planned"
	BallotStatusActive  = "active"
	BallotStatusClosed  = "closed"
)

// BallotView is the slice of ballot state the ledger needs; the ballot
// module stays the source of truth.
type BallotView struct {
	ID     string
	Status string
	Start  time.Time
	End    time.Time
}

func (v BallotView) OpenFor(t time.Time) bool {
	return v.Status == BallotStatusActive && !t.Before(v.Start) && t.Before(v.End)
}

type BallotDirectory interface {
	GetBallot(ctx context.Context, ballotID string) (BallotView, bool, error)
	BallotHasOption(ctx context.Context, ballotID, optionID string) (bool, error)
}

type VoterDirectory interface {
	VoterProfileExists(ctx context.Context, voterProfileID string) (bool, error)
}

type VoteRepository interface {
	// InsertVote persists the vote, refreshes the ballot count cache, and
	// enqueues message atomically. Returns ErrAlreadyVoted when the
	// (voter, ballot) pairing already exists.
	InsertVote(ctx context.Context, vote entities.Vote, message outbox.Message) error
	// DeleteVote removes the vote, recounts the ballot cache, and enqueues
	// message atomically.
	DeleteVote(ctx context.Context, voteID string, message outbox.Message) (entities.Vote, error)
	GetVote(ctx context.Context, voteID string) (entities.Vote, bool, error)
	ListVotesByBallot(ctx context.Context, ballotID string) ([]entities.Vote, error)
	ListVotesByVoter(ctx context.Context, voterID string) ([]entities.Vote, error)
	FindVote(ctx context.Context, voterID, ballotID string) (entities.Vote, bool, error)
}

type OutboxRepository interface {
	ListPending(ctx context.Context, limit int) ([]outbox.Message, error)
	MarkPublished(ctx context.Context, messageID string) error
	MarkFailed(ctx context.Context, messageID string) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
