package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"electra/contexts/election-core/ballot-service/application"
	"electra/contexts/election-core/ballot-service/domain/entities"
	domainerrors "electra/contexts/election-core/ballot-service/domain/errors"
	"electra/contexts/election-core/ballot-service/ports"
)

type OptionInput struct {
	Name        string
	Description string
}

type CreateBallotCommand struct {
	Name    string
	Kind    string
	Start   string
	End     string
	Options []OptionInput
}

type UpdateBallotCommand struct {
	BallotID string
	Name     string
	Kind     string
	Start    string
	End      string
}

type BallotUseCase struct {
	Repo   ports.BallotRepository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

const windowLayout = "2006-01-02T15:04:05Z07:00"

// Create persists a planned ballot with at least one option in one call.
func (uc BallotUseCase) Create(ctx context.Context, command CreateBallotCommand) (entities.Ballot, []entities.Option, error) {
	logger := application.ResolveLogger(uc.Logger)

	ballot, err := uc.buildBallot(ctx, command)
	if err != nil {
		return entities.Ballot{}, nil, err
	}
	if len(command.Options) == 0 {
		return entities.Ballot{}, nil, fmt.Errorf("%w: at least one option is required", domainerrors.ErrInvalidBallotInput)
	}

	options := make([]entities.Option, 0, len(command.Options))
	for position, input := range command.Options {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			return entities.Ballot{}, nil, fmt.Errorf("%w: option name is required", domainerrors.ErrInvalidBallotInput)
		}
		optionID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return entities.Ballot{}, nil, err
		}
		options = append(options, entities.Option{
			ID:          optionID,
			BallotID:    ballot.ID,
			Name:        name,
			Description: strings.TrimSpace(input.Description),
			Position:    position,
		})
	}

	if err := uc.Repo.CreateBallot(ctx, ballot, options); err != nil {
		return entities.Ballot{}, nil, err
	}

	logger.Info("ballot created",
		slog.String("event", "ballot_created"),
		slog.String("ballot_id", ballot.ID),
		slog.Int("options", len(options)),
	)
	return ballot, options, nil
}

// Update rewrites descriptive fields and the window while the ballot is
// still planned.
func (uc BallotUseCase) Update(ctx context.Context, command UpdateBallotCommand) (entities.Ballot, error) {
	ballot, err := uc.requireBallot(ctx, command.BallotID)
	if err != nil {
		return entities.Ballot{}, err
	}
	if ballot.Status != entities.BallotStatusPlanned {
		return entities.Ballot{}, domainerrors.ErrBallotNotEditable
	}

	name := strings.TrimSpace(command.Name)
	if name == "" {
		return entities.Ballot{}, fmt.Errorf("%w: name is required", domainerrors.ErrInvalidBallotInput)
	}
	start, end, err := parseWindow(command.Start, command.End)
	if err != nil {
		return entities.Ballot{}, err
	}

	ballot.Name = name
	ballot.Kind = strings.TrimSpace(command.Kind)
	ballot.Start = start
	ballot.End = end
	ballot.UpdatedAt = uc.Clock.Now().UTC()

	if err := uc.Repo.UpdateBallot(ctx, ballot); err != nil {
		return entities.Ballot{}, err
	}
	return ballot, nil
}

// AddOption appends an option to a planned ballot.
func (uc BallotUseCase) AddOption(ctx context.Context, ballotID string, input OptionInput) (entities.Option, error) {
	ballot, err := uc.requireBallot(ctx, ballotID)
	if err != nil {
		return entities.Option{}, err
	}
	if ballot.Status != entities.BallotStatusPlanned {
		return entities.Option{}, domainerrors.ErrBallotNotEditable
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return entities.Option{}, fmt.Errorf("%w: option name is required", domainerrors.ErrInvalidBallotInput)
	}

	existing, err := uc.Repo.ListOptions(ctx, ballot.ID)
	if err != nil {
		return entities.Option{}, err
	}
	optionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Option{}, err
	}

	option := entities.Option{
		ID:          optionID,
		BallotID:    ballot.ID,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Position:    len(existing),
	}
	if err := uc.Repo.AddOption(ctx, option); err != nil {
		return entities.Option{}, err
	}
	return option, nil
}

// Open transitions planned -> active.
func (uc BallotUseCase) Open(ctx context.Context, ballotID string) (entities.Ballot, error) {
	return uc.transition(ctx, ballotID, entities.BallotStatusPlanned, entities.BallotStatusActive, "ballot_opened")
}

// Close transitions active -> closed.
func (uc BallotUseCase) Close(ctx context.Context, ballotID string) (entities.Ballot, error) {
	return uc.transition(ctx, ballotID, entities.BallotStatusActive, entities.BallotStatusClosed, "ballot_closed")
}

func (uc BallotUseCase) transition(ctx context.Context, ballotID string, from, to entities.BallotStatus, event string) (entities.Ballot, error) {
	logger := application.ResolveLogger(uc.Logger)

	ballot, err := uc.requireBallot(ctx, ballotID)
	if err != nil {
		return entities.Ballot{}, err
	}
	if ballot.Status != from {
		return entities.Ballot{}, fmt.Errorf("%w: %s -> %s", domainerrors.ErrInvalidTransition, ballot.Status, to)
	}

	now := uc.Clock.Now().UTC()
	if err := uc.Repo.SetStatus(ctx, ballot.ID, to, now); err != nil {
		return entities.Ballot{}, err
	}
	ballot.Status = to
	ballot.UpdatedAt = now

	logger.Info("ballot status changed",
		slog.String("event", event),
		slog.String("ballot_id", ballot.ID),
		slog.String("status", string(to)),
	)
	return ballot, nil
}

func (uc BallotUseCase) buildBallot(ctx context.Context, command CreateBallotCommand) (entities.Ballot, error) {
	name := strings.TrimSpace(command.Name)
	if name == "" {
		return entities.Ballot{}, fmt.Errorf("%w: name is required", domainerrors.ErrInvalidBallotInput)
	}
	start, end, err := parseWindow(command.Start, command.End)
	if err != nil {
		return entities.Ballot{}, err
	}

	ballotID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Ballot{}, err
	}
	now := uc.Clock.Now().UTC()

	return entities.Ballot{
		ID:        ballotID,
		Name:      name,
		Kind:      strings.TrimSpace(command.Kind),
		Start:     start,
		End:       end,
		Status:    entities.BallotStatusPlanned,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (uc BallotUseCase) requireBallot(ctx context.Context, ballotID string) (entities.Ballot, error) {
	ballot, found, err := uc.Repo.GetBallot(ctx, strings.TrimSpace(ballotID))
	if err != nil {
		return entities.Ballot{}, err
	}
	if !found {
		return entities.Ballot{}, domainerrors.ErrBallotNotFound
	}
	return ballot, nil
}

func parseWindow(startRaw, endRaw string) (start, end time.Time, err error) {
	start, err = time.Parse(windowLayout, strings.TrimSpace(startRaw))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start must be RFC 3339", domainerrors.ErrInvalidBallotInput)
	}
	end, err = time.Parse(windowLayout, strings.TrimSpace(endRaw))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end must be RFC 3339", domainerrors.ErrInvalidBallotInput)
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start must precede end", domainerrors.ErrInvalidBallotInput)
	}
	return start.UTC(), end.UTC(), nil
}
