package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"electra/contexts/election-core/ballot-service/domain/entities"
	domainerrors "electra/contexts/election-core/ballot-service/domain/errors"
	"electra/contexts/election-core/ballot-service/ports"
)

// Store is the in-memory ballot repository used by tests and local wiring.
// It also provides Clock and IDGenerator so a module can run with no
// external dependencies.
type Store struct {
	mu      sync.Mutex
	ballots map[string]entities.Ballot
	options map[string][]entities.Option
	now     time.Time
}

func NewStore() *Store {
	return &Store{
		ballots: make(map[string]entities.Ballot),
		options: make(map[string][]entities.Option),
	}
}

// SetNow pins the clock for deterministic window tests. Zero restores
// wall-clock time.
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

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) CreateBallot(_ context.Context, ballot entities.Ballot, options []entities.Option) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ballots[ballot.ID] = ballot
	s.options[ballot.ID] = append([]entities.Option(nil), options...)
	return nil
}

func (s *Store) UpdateBallot(_ context.Context, ballot entities.Ballot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ballots[ballot.ID]; !ok {
		return domainerrors.ErrBallotNotFound
	}
	s.ballots[ballot.ID] = ballot
	return nil
}

func (s *Store) GetBallot(_ context.Context, ballotID string) (entities.Ballot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ballot, ok := s.ballots[ballotID]
	return ballot, ok, nil
}

func (s *Store) ListBallots(_ context.Context) ([]entities.Ballot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ballots := make([]entities.Ballot, 0, len(s.ballots))
	for _, ballot := range s.ballots {
		ballots = append(ballots, ballot)
	}
	sort.Slice(ballots, func(i, j int) bool {
		if !ballots[i].Start.Equal(ballots[j].Start) {
			return ballots[i].Start.Before(ballots[j].Start)
		}
		return ballots[i].ID < ballots[j].ID
	})
	return ballots, nil
}

func (s *Store) ListOptions(_ context.Context, ballotID string) ([]entities.Option, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	options := append([]entities.Option(nil), s.options[ballotID]...)
	sort.Slice(options, func(i, j int) bool { return options[i].Position < options[j].Position })
	return options, nil
}

func (s *Store) AddOption(_ context.Context, option entities.Option) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ballots[option.BallotID]; !ok {
		return domainerrors.ErrBallotNotFound
	}
	s.options[option.BallotID] = append(s.options[option.BallotID], option)
	return nil
}

func (s *Store) SetStatus(_ context.Context, ballotID string, status entities.BallotStatus, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ballot, ok := s.ballots[ballotID]
	if !ok {
		return domainerrors.ErrBallotNotFound
	}
	ballot.Status = status
	ballot.UpdatedAt = now.UTC()
	s.ballots[ballotID] = ballot
	return nil
}

func (s *Store) ListPlannedDue(_ context.Context, now time.Time) ([]entities.Ballot, error) {
	return s.listDue(entities.BallotStatusPlanned, func(b entities.Ballot) bool {
		return !b.Start.After(now)
	}), nil
}

func (s *Store) ListActiveDue(_ context.Context, now time.Time) ([]entities.Ballot, error) {
	return s.listDue(entities.BallotStatusActive, func(b entities.Ballot) bool {
		return !b.End.After(now)
	}), nil
}

func (s *Store) listDue(status entities.BallotStatus, due func(entities.Ballot) bool) []entities.Ballot {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []entities.Ballot
	for _, ballot := range s.ballots {
		if ballot.Status == status && due(ballot) {
			matched = append(matched, ballot)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Start.Before(matched[j].Start) })
	return matched
}

var (
	_ ports.BallotRepository = (*Store)(nil)
	_ ports.Clock            = (*Store)(nil)
	_ ports.IDGenerator      = (*Store)(nil)
)
