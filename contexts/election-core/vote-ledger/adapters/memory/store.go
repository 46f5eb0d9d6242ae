package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"electra/contexts/election-core/vote-ledger/domain/entities"
	domainerrors "electra/contexts/election-core/vote-ledger/domain/errors"
	"electra/contexts/election-core/vote-ledger/ports"
	"electra/internal/shared/outbox"
)

// Store is the in-memory ledger used by tests and local wiring. It plays
// every port the module needs, with seed setters standing in for the
// ballot and voter modules.
type Store struct {
	mu            sync.Mutex
	votes         map[string]entities.Vote
	byVoterBallot map[string]string
	counts        map[string]map[string]int64
	messages      []outbox.Message
	ballots       map[string]ports.BallotView
	ballotOptions map[string]map[string]bool
	voterProfiles map[string]bool
	now           time.Time
}

func NewStore() *Store {
	return &Store{
		votes:         make(map[string]entities.Vote),
		byVoterBallot: make(map[string]string),
		counts:        make(map[string]map[string]int64),
		ballots:       make(map[string]ports.BallotView),
		ballotOptions: make(map[string]map[string]bool),
		voterProfiles: make(map[string]bool),
	}
}

func pairKey(voterID, ballotID string) string { return voterID + "|" + ballotID }

// SetNow pins the clock for deterministic tests. Zero restores wall-clock
// time.
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

// SeedBallot registers a ballot view and its option IDs.
func (s *Store) SeedBallot(view ports.BallotView, optionIDs ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ballots[view.ID] = view
	options := make(map[string]bool, len(optionIDs))
	for _, optionID := range optionIDs {
		options[optionID] = true
	}
	s.ballotOptions[view.ID] = options
}

func (s *Store) SeedVoterProfile(voterProfileID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voterProfiles[voterProfileID] = true
}

func (s *Store) GetBallot(_ context.Context, ballotID string) (ports.BallotView, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	view, ok := s.ballots[ballotID]
	return view, ok, nil
}

func (s *Store) BallotHasOption(_ context.Context, ballotID, optionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ballotOptions[ballotID][optionID], nil
}

func (s *Store) VoterProfileExists(_ context.Context, voterProfileID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.voterProfiles[voterProfileID], nil
}

// InsertVote holds the lock across the duplicate check and all three
// writes, mirroring the single-transaction guarantee of the SQL adapter.
func (s *Store) InsertVote(_ context.Context, vote entities.Vote, message outbox.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey(vote.VoterID, vote.BallotID)
	if _, taken := s.byVoterBallot[key]; taken {
		return domainerrors.ErrAlreadyVoted
	}

	s.votes[vote.ID] = vote
	s.byVoterBallot[key] = vote.ID
	if s.counts[vote.BallotID] == nil {
		s.counts[vote.BallotID] = make(map[string]int64)
	}
	s.counts[vote.BallotID][vote.OptionID]++
	s.messages = append(s.messages, message)
	return nil
}

func (s *Store) DeleteVote(_ context.Context, voteID string, message outbox.Message) (entities.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vote, ok := s.votes[voteID]
	if !ok {
		return entities.Vote{}, domainerrors.ErrVoteNotFound
	}

	delete(s.votes, voteID)
	delete(s.byVoterBallot, pairKey(vote.VoterID, vote.BallotID))

	counts := make(map[string]int64)
	for _, remaining := range s.votes {
		if remaining.BallotID == vote.BallotID {
			counts[remaining.OptionID]++
		}
	}
	s.counts[vote.BallotID] = counts
	s.messages = append(s.messages, message)
	return vote, nil
}

func (s *Store) GetVote(_ context.Context, voteID string) (entities.Vote, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	vote, ok := s.votes[voteID]
	return vote, ok, nil
}

func (s *Store) ListVotesByBallot(_ context.Context, ballotID string) ([]entities.Vote, error) {
	return s.listVotes(func(v entities.Vote) bool { return v.BallotID == ballotID }), nil
}

func (s *Store) ListVotesByVoter(_ context.Context, voterID string) ([]entities.Vote, error) {
	return s.listVotes(func(v entities.Vote) bool { return v.VoterID == voterID }), nil
}

func (s *Store) listVotes(match func(entities.Vote) bool) []entities.Vote {
	s.mu.Lock()
	defer s.mu.Unlock()

	var votes []entities.Vote
	for _, vote := range s.votes {
		if match(vote) {
			votes = append(votes, vote)
		}
	}
	sort.Slice(votes, func(i, j int) bool {
		if !votes[i].CastAt.Equal(votes[j].CastAt) {
			return votes[i].CastAt.Before(votes[j].CastAt)
		}
		return votes[i].ID < votes[j].ID
	})
	return votes
}

func (s *Store) FindVote(_ context.Context, voterID, ballotID string) (entities.Vote, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	voteID, ok := s.byVoterBallot[pairKey(voterID, ballotID)]
	if !ok {
		return entities.Vote{}, false, nil
	}
	return s.votes[voteID], true, nil
}

// CountsFor exposes the cached counts for test assertions.
func (s *Store) CountsFor(ballotID string) map[string]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int64, len(s.counts[ballotID]))
	for optionID, count := range s.counts[ballotID] {
		counts[optionID] = count
	}
	return counts
}

func (s *Store) ListPending(_ context.Context, limit int) ([]outbox.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pending []outbox.Message
	for _, message := range s.messages {
		if message.Status == "pending" {
			pending = append(pending, message)
			if len(pending) == limit {
				break
			}
		}
	}
	return pending, nil
}

func (s *Store) MarkPublished(_ context.Context, messageID string) error {
	return s.setMessageStatus(messageID, "published", false)
}

func (s *Store) MarkFailed(_ context.Context, messageID string) error {
	return s.setMessageStatus(messageID, "failed", true)
}

func (s *Store) setMessageStatus(messageID, status string, bumpRetry bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.messages {
		if s.messages[i].ID == messageID {
			s.messages[i].Status = status
			if bumpRetry {
				s.messages[i].RetryCount++
			}
			return nil
		}
	}
	return nil
}

var (
	_ ports.VoteRepository   = (*Store)(nil)
	_ ports.OutboxRepository = (*Store)(nil)
	_ ports.BallotDirectory  = (*Store)(nil)
	_ ports.VoterDirectory   = (*Store)(nil)
	_ ports.Clock            = (*Store)(nil)
	_ ports.IDGenerator      = (*Store)(nil)
)
