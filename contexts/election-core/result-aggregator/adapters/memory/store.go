package memory

import (
	"context"
	"sync"
	"time"

	"electra/contexts/election-core/result-aggregator/domain/entities"
	"electra/contexts/election-core/result-aggregator/ports"
)

// Store backs the aggregator's ports for tests and local wiring. Ballots,
// options, and counts are seeded directly.
type Store struct {
	mu      sync.Mutex
	ballots map[string]ports.BallotInfo
	options map[string][]ports.OptionInfo
	counts  map[string][]entities.OptionCount
	cache   map[string]entities.BallotResult
	now     time.Time
}

func NewStore() *Store {
	return &Store{
		ballots: make(map[string]ports.BallotInfo),
		options: make(map[string][]ports.OptionInfo),
		counts:  make(map[string][]entities.OptionCount),
		cache:   make(map[string]entities.BallotResult),
	}
}

func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.now.IsZero() {
		return time.Now().UTC()
	}
	return s.now
}

func (s *Store) SeedBallot(info ports.BallotInfo, options ...ports.OptionInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ballots[info.ID] = info
	s.options[info.ID] = append([]ports.OptionInfo(nil), options...)
}

func (s *Store) SeedCounts(ballotID string, counts ...entities.OptionCount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[ballotID] = append([]entities.OptionCount(nil), counts...)
}

func (s *Store) GetBallot(_ context.Context, ballotID string) (ports.BallotInfo, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	info, ok := s.ballots[ballotID]
	return info, ok, nil
}

func (s *Store) ListOptions(_ context.Context, ballotID string) ([]ports.OptionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ports.OptionInfo(nil), s.options[ballotID]...), nil
}

func (s *Store) CountVotes(_ context.Context, ballotID string) ([]entities.OptionCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entities.OptionCount(nil), s.counts[ballotID]...), nil
}

func (s *Store) Save(_ context.Context, result entities.BallotResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[result.BallotID] = result
	return nil
}

func (s *Store) Load(_ context.Context, ballotID string) (entities.BallotResult, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result, ok := s.cache[ballotID]
	return result, ok, nil
}

var (
	_ ports.BallotDirectory = (*Store)(nil)
	_ ports.CountSource     = (*Store)(nil)
	_ ports.ResultCache     = (*Store)(nil)
	_ ports.Clock           = (*Store)(nil)
)
