package workers

import (
	"context"
	"testing"
	"time"

	"electra/contexts/election-core/ballot-service/adapters/memory"
	"electra/contexts/election-core/ballot-service/domain/entities"
)

func seedBallot(t *testing.T, store *memory.Store, status entities.BallotStatus, start, end time.Time) entities.Ballot {
	t.Helper()
	id, err := store.NewID(context.Background())
	if err != nil {
		t.Fatalf("id generation failed: %v", err)
	}
	ballot := entities.Ballot{
		ID:     id,
		Name:   "Scheduled " + id[:8],
		Start:  start,
		End:    end,
		Status: status,
	}
	if err := store.CreateBallot(context.Background(), ballot, nil); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return ballot
}

func TestSchedulerOpensAndClosesDueBallots(t *testing.T) {
	store := memory.NewStore()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	store.SetNow(now)

	due := seedBallot(t, store, entities.BallotStatusPlanned, now.Add(-time.Hour), now.Add(time.Hour))
	future := seedBallot(t, store, entities.BallotStatusPlanned, now.Add(time.Hour), now.Add(2*time.Hour))
	expired := seedBallot(t, store, entities.BallotStatusActive, now.Add(-3*time.Hour), now.Add(-time.Hour))
	running := seedBallot(t, store, entities.BallotStatusActive, now.Add(-time.Hour), now.Add(time.Hour))

	scheduler := WindowScheduler{Repo: store, Clock: store}
	opened, closed, err := scheduler.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if opened != 1 || closed != 1 {
		t.Fatalf("expected 1 opened and 1 closed, got %d and %d", opened, closed)
	}

	assertStatus(t, store, due.ID, entities.BallotStatusActive)
	assertStatus(t, store, future.ID, entities.BallotStatusPlanned)
	assertStatus(t, store, expired.ID, entities.BallotStatusClosed)
	assertStatus(t, store, running.ID, entities.BallotStatusActive)
}

func TestSchedulerSkipsPlannedBallotPastItsWindow(t *testing.T) {
	store := memory.NewStore()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	store.SetNow(now)

	missed := seedBallot(t, store, entities.BallotStatusPlanned, now.Add(-3*time.Hour), now.Add(-time.Hour))

	scheduler := WindowScheduler{Repo: store, Clock: store}
	opened, closed, err := scheduler.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if opened != 0 || closed != 1 {
		t.Fatalf("expected the missed ballot to close, got opened=%d closed=%d", opened, closed)
	}
	assertStatus(t, store, missed.ID, entities.BallotStatusClosed)
}

func TestSchedulerIsIdempotent(t *testing.T) {
	store := memory.NewStore()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	store.SetNow(now)

	seedBallot(t, store, entities.BallotStatusPlanned, now.Add(-time.Hour), now.Add(time.Hour))

	scheduler := WindowScheduler{Repo: store, Clock: store}
	if _, _, err := scheduler.RunOnce(context.Background()); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	opened, closed, err := scheduler.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if opened != 0 || closed != 0 {
		t.Fatalf("second run should be a no-op, got opened=%d closed=%d", opened, closed)
	}
}

func assertStatus(t *testing.T, store *memory.Store, ballotID string, want entities.BallotStatus) {
	t.Helper()
	ballot, found, err := store.GetBallot(context.Background(), ballotID)
	if err != nil || !found {
		t.Fatalf("ballot %s lookup failed: found=%v err=%v", ballotID, found, err)
	}
	if ballot.Status != want {
		t.Fatalf("ballot %s: expected %s, got %s", ballotID, want, ballot.Status)
	}
}
