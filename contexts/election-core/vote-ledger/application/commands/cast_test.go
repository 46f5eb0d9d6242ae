package commands

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"electra/contexts/election-core/vote-ledger/adapters/memory"
	domainerrors "electra/contexts/election-core/vote-ledger/domain/errors"
	"electra/contexts/election-core/vote-ledger/ports"
)

const (
	testBallotID = "ballot-1"
	testOptionA  = "option-a"
	testOptionB  = "option-b"
	testVoterID  = "voter-profile-1"
)

func newCastFixture(t *testing.T) (*memory.Store, CastUseCase) {
	t.Helper()
	store := memory.NewStore()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	store.SetNow(now)
	store.SeedBallot(ports.BallotView{
		ID:     testBallotID,
		Status: ports.BallotStatusActive,
		Start:  now.Add(-time.Hour),
		End:    now.Add(time.Hour),
	}, testOptionA, testOptionB)
	store.SeedVoterProfile(testVoterID)
	uc := CastUseCase{Votes: store, Ballots: store, Voters: store, Clock: store, IDGen: store}
	return store, uc
}

func castCommand(voterID string) CastVoteCommand {
	return CastVoteCommand{VoterProfileID: voterID, BallotID: testBallotID, OptionID: testOptionA}
}

func TestCastRecordsVoteAndOutboxMessage(t *testing.T) {
	store, uc := newCastFixture(t)

	vote, err := uc.Cast(context.Background(), castCommand(testVoterID))
	if err != nil {
		t.Fatalf("cast failed: %v", err)
	}
	if vote.VoterID != testVoterID || vote.BallotID != testBallotID || vote.OptionID != testOptionA {
		t.Fatalf("unexpected vote: %+v", vote)
	}

	counts := store.CountsFor(testBallotID)
	if counts[testOptionA] != 1 {
		t.Fatalf("expected cached count 1, got %d", counts[testOptionA])
	}

	pending, err := store.ListPending(context.Background(), 10)
	if err != nil {
		t.Fatalf("outbox read failed: %v", err)
	}
	if len(pending) != 1 || pending[0].EventType != "election-core.vote.cast" {
		t.Fatalf("expected one pending cast event, got %+v", pending)
	}
}

func TestCastRejectsSecondVote(t *testing.T) {
	_, uc := newCastFixture(t)

	if _, err := uc.Cast(context.Background(), castCommand(testVoterID)); err != nil {
		t.Fatalf("first cast failed: %v", err)
	}

	second := CastVoteCommand{VoterProfileID: testVoterID, BallotID: testBallotID, OptionID: testOptionB}
	if _, err := uc.Cast(context.Background(), second); !errors.Is(err, domainerrors.ErrAlreadyVoted) {
		t.Fatalf("expected already voted, got %v", err)
	}
}

func TestCastConcurrentDuplicatesYieldOneVote(t *testing.T) {
	store, uc := newCastFixture(t)

	const attempts = 16
	results := make(chan error, attempts)
	var start sync.WaitGroup
	start.Add(1)

	for i := 0; i < attempts; i++ {
		go func() {
			start.Wait()
			_, err := uc.Cast(context.Background(), castCommand(testVoterID))
			results <- err
		}()
	}
	start.Done()

	var succeeded, duplicates int
	for i := 0; i < attempts; i++ {
		switch err := <-results; {
		case err == nil:
			succeeded++
		case errors.Is(err, domainerrors.ErrAlreadyVoted):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || duplicates != attempts-1 {
		t.Fatalf("expected exactly one success, got %d successes and %d duplicates", succeeded, duplicates)
	}

	votes, err := store.ListVotesByBallot(context.Background(), testBallotID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(votes) != 1 {
		t.Fatalf("expected one recorded vote, got %d", len(votes))
	}
}

func TestCastPreconditionOrder(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		prepare func(store *memory.Store)
		command CastVoteCommand
		want    error
	}{
		{
			name:    "unknown ballot",
			prepare: func(store *memory.Store) {},
			command: CastVoteCommand{VoterProfileID: testVoterID, BallotID: "missing", OptionID: testOptionA},
			want:    domainerrors.ErrBallotNotFound,
		},
		{
			name: "ballot still planned",
			prepare: func(store *memory.Store) {
				store.SeedBallot(ports.BallotView{
					ID:     testBallotID,
					Status: ports.BallotStatusPlanned,
					Start:  now.Add(-time.Hour),
					End:    now.Add(time.Hour),
				}, testOptionA)
			},
			command: castCommand(testVoterID),
			want:    domainerrors.ErrBallotNotOpen,
		},
		{
			name: "active ballot outside window",
			prepare: func(store *memory.Store) {
				store.SeedBallot(ports.BallotView{
					ID:     testBallotID,
					Status: ports.BallotStatusActive,
					Start:  now.Add(-3 * time.Hour),
					End:    now.Add(-time.Hour),
				}, testOptionA)
			},
			command: castCommand(testVoterID),
			want:    domainerrors.ErrBallotNotOpen,
		},
		{
			name: "foreign option",
			prepare: func(store *memory.Store) {
				store.SeedBallot(ports.BallotView{
					ID:     testBallotID,
					Status: ports.BallotStatusActive,
					Start:  now.Add(-time.Hour),
					End:    now.Add(time.Hour),
				}, testOptionA)
			},
			command: CastVoteCommand{VoterProfileID: testVoterID, BallotID: testBallotID, OptionID: "option-elsewhere"},
			want:    domainerrors.ErrOptionNotInBallot,
		},
		{
			name: "missing voter profile",
			prepare: func(store *memory.Store) {
				store.SeedBallot(ports.BallotView{
					ID:     testBallotID,
					Status: ports.BallotStatusActive,
					Start:  now.Add(-time.Hour),
					End:    now.Add(time.Hour),
				}, testOptionA)
			},
			command: CastVoteCommand{VoterProfileID: "no-profile", BallotID: testBallotID, OptionID: testOptionA},
			want:    domainerrors.ErrVoterProfileRequired,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := memory.NewStore()
			store.SetNow(now)
			tc.prepare(store)
			uc := CastUseCase{Votes: store, Ballots: store, Voters: store, Clock: store, IDGen: store}
			if _, err := uc.Cast(context.Background(), tc.command); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestRemoveVoteRecountsBallot(t *testing.T) {
	store, uc := newCastFixture(t)
	store.SeedVoterProfile("voter-profile-2")

	first, err := uc.Cast(context.Background(), castCommand(testVoterID))
	if err != nil {
		t.Fatalf("first cast failed: %v", err)
	}
	if _, err := uc.Cast(context.Background(), castCommand("voter-profile-2")); err != nil {
		t.Fatalf("second cast failed: %v", err)
	}

	remove := RemoveUseCase{Votes: store, Clock: store, IDGen: store}
	removed, err := remove.Remove(context.Background(), first.ID)
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if removed.ID != first.ID {
		t.Fatalf("expected removed vote %s, got %s", first.ID, removed.ID)
	}

	counts := store.CountsFor(testBallotID)
	if counts[testOptionA] != 1 {
		t.Fatalf("expected recounted cache 1, got %d", counts[testOptionA])
	}

	// The voter may cast again after an admin removal.
	if _, err := uc.Cast(context.Background(), castCommand(testVoterID)); err != nil {
		t.Fatalf("recast after removal failed: %v", err)
	}
}

func TestRemoveUnknownVote(t *testing.T) {
	store, _ := newCastFixture(t)
	remove := RemoveUseCase{Votes: store, Clock: store, IDGen: store}
	if _, err := remove.Remove(context.Background(), "missing"); !errors.Is(err, domainerrors.ErrVoteNotFound) {
		t.Fatalf("expected vote not found, got %v", err)
	}
}
