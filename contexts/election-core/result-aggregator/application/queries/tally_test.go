package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"electra/contexts/election-core/result-aggregator/adapters/memory"
	"electra/contexts/election-core/result-aggregator/domain/entities"
	domainerrors "electra/contexts/election-core/result-aggregator/domain/errors"
	"electra/contexts/election-core/result-aggregator/ports"
)

const ballotID = "ballot-1"

func newTallyFixture() (*memory.Store, TallyUseCase) {
	store := memory.NewStore()
	store.SetNow(time.Date(2026, 9, 1, 21, 0, 0, 0, time.UTC))
	store.SeedBallot(
		ports.BallotInfo{ID: ballotID, Name: "City Council 2026", Status: "closed"},
		ports.OptionInfo{ID: "option-a", Name: "Alpha Party", Position: 0},
		ports.OptionInfo{ID: "option-b", Name: "Beta Party", Position: 1},
	)
	uc := TallyUseCase{Ballots: store, Counts: store, Cache: store, Clock: store}
	return store, uc
}

func TestTallyReconciles(t *testing.T) {
	store, uc := newTallyFixture()
	store.SeedCounts(ballotID,
		entities.OptionCount{OptionID: "option-a", Votes: 2},
		entities.OptionCount{OptionID: "option-b", Votes: 1},
	)

	result, err := uc.Tally(context.Background(), ballotID)
	if err != nil {
		t.Fatalf("tally failed: %v", err)
	}
	if result.Total != 3 {
		t.Fatalf("expected total 3, got %d", result.Total)
	}

	var countSum int64
	for _, option := range result.Options {
		countSum += option.Votes
	}
	if countSum != result.Total {
		t.Fatalf("option counts sum to %d, total is %d", countSum, result.Total)
	}

	if result.Options[0].Percent != 66.67 || result.Options[1].Percent != 33.33 {
		t.Fatalf("unexpected shares: %v / %v", result.Options[0].Percent, result.Options[1].Percent)
	}
}

func TestTallyIncludesZeroVoteOptions(t *testing.T) {
	store, uc := newTallyFixture()
	store.SeedCounts(ballotID, entities.OptionCount{OptionID: "option-a", Votes: 4})

	result, err := uc.Tally(context.Background(), ballotID)
	if err != nil {
		t.Fatalf("tally failed: %v", err)
	}
	if len(result.Options) != 2 {
		t.Fatalf("expected both options present, got %d", len(result.Options))
	}
	if result.Options[1].Votes != 0 || result.Options[1].Percent != 0.0 {
		t.Fatalf("zero-vote option misrepresented: %+v", result.Options[1])
	}
}

func TestTallyEmptyBallot(t *testing.T) {
	_, uc := newTallyFixture()

	result, err := uc.Tally(context.Background(), ballotID)
	if err != nil {
		t.Fatalf("tally failed: %v", err)
	}
	if result.Total != 0 {
		t.Fatalf("expected total 0, got %d", result.Total)
	}
	for _, option := range result.Options {
		if option.Percent != 0.0 {
			t.Fatalf("empty ballot option should be 0.0, got %v", option.Percent)
		}
	}
}

func TestTallyUnknownBallot(t *testing.T) {
	_, uc := newTallyFixture()
	if _, err := uc.Tally(context.Background(), "missing"); !errors.Is(err, domainerrors.ErrBallotNotFound) {
		t.Fatalf("expected ballot not found, got %v", err)
	}
}

func TestTallyReflectsNewCountsImmediately(t *testing.T) {
	store, uc := newTallyFixture()
	store.SeedCounts(ballotID, entities.OptionCount{OptionID: "option-a", Votes: 1})

	first, err := uc.Tally(context.Background(), ballotID)
	if err != nil {
		t.Fatalf("tally failed: %v", err)
	}
	if first.Total != 1 {
		t.Fatalf("expected total 1, got %d", first.Total)
	}

	// The count table advances inside the vote transaction; the very next
	// read must see it.
	store.SeedCounts(ballotID, entities.OptionCount{OptionID: "option-a", Votes: 2})
	second, err := uc.Tally(context.Background(), ballotID)
	if err != nil {
		t.Fatalf("tally failed: %v", err)
	}
	if second.Total != 2 {
		t.Fatalf("expected total 2 immediately after count change, got %d", second.Total)
	}
}

func TestRefreshStoresExactlyTheRecount(t *testing.T) {
	store, uc := newTallyFixture()
	store.SeedCounts(ballotID,
		entities.OptionCount{OptionID: "option-a", Votes: 2},
		entities.OptionCount{OptionID: "option-b", Votes: 1},
	)

	refreshed, err := uc.Refresh(context.Background(), ballotID)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	stored, found, err := store.Load(context.Background(), ballotID)
	if err != nil || !found {
		t.Fatalf("snapshot missing after refresh: found=%v err=%v", found, err)
	}
	if stored.Total != refreshed.Total || len(stored.Options) != len(refreshed.Options) {
		t.Fatalf("snapshot diverges from recount: %+v vs %+v", stored, refreshed)
	}
	for i := range stored.Options {
		if stored.Options[i].Votes != refreshed.Options[i].Votes ||
			stored.Options[i].Percent != refreshed.Options[i].Percent {
			t.Fatalf("snapshot option diverges: %+v vs %+v", stored.Options[i], refreshed.Options[i])
		}
	}
}
