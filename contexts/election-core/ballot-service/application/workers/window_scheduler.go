package workers

import (
	"context"
	"log/slog"

	"electra/contexts/election-core/ballot-service/application"
	"electra/contexts/election-core/ballot-service/domain/entities"
	"electra/contexts/election-core/ballot-service/ports"
)

// WindowScheduler drives time-based ballot transitions. Each RunOnce pass
// activates planned ballots whose window has started and closes active
// ballots whose window has ended.
type WindowScheduler struct {
	Repo   ports.BallotRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (w WindowScheduler) RunOnce(ctx context.Context) (opened, closed int, err error) {
	logger := application.ResolveLogger(w.Logger)
	now := w.Clock.Now().UTC()

	due, err := w.Repo.ListPlannedDue(ctx, now)
	if err != nil {
		return 0, 0, err
	}
	for _, ballot := range due {
		// A planned ballot whose window already ended skips straight to
		// closed so it never accepts votes.
		target := entities.BallotStatusActive
		if !ballot.End.After(now) {
			target = entities.BallotStatusClosed
		}
		if err := w.Repo.SetStatus(ctx, ballot.ID, target, now); err != nil {
			return opened, closed, err
		}
		if target == entities.BallotStatusActive {
			opened++
		} else {
			closed++
		}
		logger.Info("ballot window transition",
			slog.String("event", "ballot_window_transition"),
			slog.String("ballot_id", ballot.ID),
			slog.String("status", string(target)),
		)
	}

	expired, err := w.Repo.ListActiveDue(ctx, now)
	if err != nil {
		return opened, closed, err
	}
	for _, ballot := range expired {
		if err := w.Repo.SetStatus(ctx, ballot.ID, entities.BallotStatusClosed, now); err != nil {
			return opened, closed, err
		}
		closed++
		logger.Info("ballot window transition",
			slog.String("event", "ballot_window_transition"),
			slog.String("ballot_id", ballot.ID),
			slog.String("status", string(entities.BallotStatusClosed)),
		)
	}

	return opened, closed, nil
}
