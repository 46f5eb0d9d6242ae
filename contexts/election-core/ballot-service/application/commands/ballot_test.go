package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"electra/contexts/election-core/ballot-service/adapters/memory"
	"electra/contexts/election-core/ballot-service/domain/entities"
	domainerrors "electra/contexts/election-core/ballot-service/domain/errors"
)

func newBallotUseCase(store *memory.Store) BallotUseCase {
	return BallotUseCase{Repo: store, Clock: store, IDGen: store}
}

func createCommand(name string) CreateBallotCommand {
	return CreateBallotCommand{
		Name:  name,
		Kind:  "general",
		Start: "2026-09-01T08:00:00Z",
		End:   "2026-09-01T20:00:00Z",
		Options: []OptionInput{
			{Name: "Alpha Party"},
			{Name: "Beta Party", Description: "incumbent"},
		},
	}
}

func TestCreateBallotWithOptions(t *testing.T) {
	store := memory.NewStore()
	uc := newBallotUseCase(store)

	ballot, options, err := uc.Create(context.Background(), createCommand("City Council 2026"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if ballot.Status != entities.BallotStatusPlanned {
		t.Fatalf("expected planned status, got %s", ballot.Status)
	}
	if len(options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(options))
	}
	for i, option := range options {
		if option.BallotID != ballot.ID {
			t.Fatalf("option %d not linked to ballot", i)
		}
		if option.Position != i {
			t.Fatalf("expected position %d, got %d", i, option.Position)
		}
	}
}

func TestCreateBallotRejectsInvalidInput(t *testing.T) {
	store := memory.NewStore()
	uc := newBallotUseCase(store)

	cases := map[string]CreateBallotCommand{
		"missing name": {
			Start:   "2026-09-01T08:00:00Z",
			End:     "2026-09-01T20:00:00Z",
			Options: []OptionInput{{Name: "A"}},
		},
		"no options": {
			Name:  "Empty",
			Start: "2026-09-01T08:00:00Z",
			End:   "2026-09-01T20:00:00Z",
		},
		"inverted window": {
			Name:    "Backwards",
			Start:   "2026-09-01T20:00:00Z",
			End:     "2026-09-01T08:00:00Z",
			Options: []OptionInput{{Name: "A"}},
		},
		"blank option name": {
			Name:    "Blank option",
			Start:   "2026-09-01T08:00:00Z",
			End:     "2026-09-01T20:00:00Z",
			Options: []OptionInput{{Name: "   "}},
		},
	}
	for name, command := range cases {
		if _, _, err := uc.Create(context.Background(), command); !errors.Is(err, domainerrors.ErrInvalidBallotInput) {
			t.Fatalf("%s: expected invalid input error, got %v", name, err)
		}
	}
}

func TestBallotTransitions(t *testing.T) {
	store := memory.NewStore()
	uc := newBallotUseCase(store)

	ballot, _, err := uc.Create(context.Background(), createCommand("Transition"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := uc.Close(context.Background(), ballot.ID); !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition closing planned ballot, got %v", err)
	}

	opened, err := uc.Open(context.Background(), ballot.ID)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if opened.Status != entities.BallotStatusActive {
		t.Fatalf("expected active, got %s", opened.Status)
	}

	if _, err := uc.Open(context.Background(), ballot.ID); !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition reopening active ballot, got %v", err)
	}

	closed, err := uc.Close(context.Background(), ballot.ID)
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if closed.Status != entities.BallotStatusClosed {
		t.Fatalf("expected closed, got %s", closed.Status)
	}

	if _, err := uc.Open(context.Background(), ballot.ID); !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected closed ballot to stay closed, got %v", err)
	}
}

func TestEditsLockAfterOpening(t *testing.T) {
	store := memory.NewStore()
	uc := newBallotUseCase(store)

	ballot, _, err := uc.Create(context.Background(), createCommand("Lockdown"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := uc.Open(context.Background(), ballot.ID); err != nil {
		t.Fatalf("open failed: %v", err)
	}

	update := UpdateBallotCommand{
		BallotID: ballot.ID,
		Name:     "Renamed",
		Start:    "2026-09-01T08:00:00Z",
		End:      "2026-09-01T20:00:00Z",
	}
	if _, err := uc.Update(context.Background(), update); !errors.Is(err, domainerrors.ErrBallotNotEditable) {
		t.Fatalf("expected not-editable on update, got %v", err)
	}
	if _, err := uc.AddOption(context.Background(), ballot.ID, OptionInput{Name: "Late entry"}); !errors.Is(err, domainerrors.ErrBallotNotEditable) {
		t.Fatalf("expected not-editable on add option, got %v", err)
	}
}

func TestAddOptionAppendsPosition(t *testing.T) {
	store := memory.NewStore()
	uc := newBallotUseCase(store)

	ballot, _, err := uc.Create(context.Background(), createCommand("Positions"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	option, err := uc.AddOption(context.Background(), ballot.ID, OptionInput{Name: "Gamma Party"})
	if err != nil {
		t.Fatalf("add option failed: %v", err)
	}
	if option.Position != 2 {
		t.Fatalf("expected appended position 2, got %d", option.Position)
	}
}

func TestBallotNotFound(t *testing.T) {
	store := memory.NewStore()
	uc := newBallotUseCase(store)

	if _, err := uc.Open(context.Background(), "missing"); !errors.Is(err, domainerrors.ErrBallotNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestWindowContainsIsHalfOpen(t *testing.T) {
	start := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC)
	ballot := entities.Ballot{Start: start, End: end, Status: entities.BallotStatusActive}

	if !ballot.OpenFor(start) {
		t.Fatal("window start should accept votes")
	}
	if ballot.OpenFor(end) {
		t.Fatal("window end should reject votes")
	}
	if ballot.OpenFor(start.Add(-time.Second)) {
		t.Fatal("pre-window instant should reject votes")
	}
}
