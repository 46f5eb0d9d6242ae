package entities

import "time"

type BallotStatus string

const (
	BallotStatusPlanned BallotStatus = "planned"
	BallotStatusActive  BallotStatus = "active"
	BallotStatusClosed  BallotStatus = "closed"
)

// Ballot is an election or poll instance with a half-open voting window
// [Start, End).
type Ballot struct {
	ID        string
	Name      string
	Kind      string
	Start     time.Time
	End       time.Time
	Status    BallotStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b Ballot) WindowContains(t time.Time) bool {
	return !t.Before(b.Start) && t.Before(b.End)
}

// OpenFor reports whether votes are accepted at t: status and window are
// both required, never one alone.
func (b Ballot) OpenFor(t time.Time) bool {
	return b.Status == BallotStatusActive && b.WindowContains(t)
}

// Option is owned by exactly one ballot; Position fixes presentation order.
type Option struct {
	ID          string
	BallotID    string
	Name        string
	Description string
	Position    int
}
