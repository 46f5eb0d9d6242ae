package workers

import (
	"context"
	"errors"
	"log/slog"

	"electra/contexts/election-core/result-aggregator/application"
	"electra/contexts/election-core/result-aggregator/application/queries"
	domainerrors "electra/contexts/election-core/result-aggregator/domain/errors"
	"electra/internal/shared/events"
)

// RefreshListener rebuilds the cached result for a ballot whenever a vote
// event arrives on the bus.
type RefreshListener struct {
	Tally  queries.TallyUseCase
	Logger *slog.Logger
}

func (l RefreshListener) HandleVoteEvent(ctx context.Context, event events.Envelope) error {
	logger := application.ResolveLogger(l.Logger)

	ballotID := ballotIDFromPayload(event.Payload)
	if ballotID == "" {
		logger.Warn("vote event without ballot id",
			slog.String("event", "result_refresh_skipped"),
			slog.String("event_id", event.EventID),
		)
		return nil
	}

	if _, err := l.Tally.Refresh(ctx, ballotID); err != nil {
		// Events can outlive their ballot; a missing ballot is not a relay
		// failure.
		if errors.Is(err, domainerrors.ErrBallotNotFound) {
			return nil
		}
		return err
	}

	logger.Info("cached result refreshed",
		slog.String("event", "result_refreshed"),
		slog.String("ballot_id", ballotID),
	)
	return nil
}

func ballotIDFromPayload(payload any) string {
	fields, ok := payload.(map[string]any)
	if !ok {
		return ""
	}
	ballotID, _ := fields["ballot_id"].(string)
	return ballotID
}
