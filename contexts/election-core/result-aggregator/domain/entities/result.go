package entities

import "time"

// OptionCount is a raw per-option vote count before shares are computed.
type OptionCount struct {
	OptionID string
	Votes    int64
}

type OptionResult struct {
	OptionID string
	Name     string
	Position int
	Votes    int64
	Percent  float64
}

type BallotResult struct {
	BallotID   string
	BallotName string
	Status     string
	Total      int64
	Options    []OptionResult
	ComputedAt time.Time
}
