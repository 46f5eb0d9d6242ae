package workers

import (
	"context"
	"encoding/json"
	"log/slog"

	"electra/contexts/election-core/vote-ledger/application"
	"electra/contexts/election-core/vote-ledger/ports"
	"electra/internal/shared/events"
)

const relayBatchSize = 50

type Publisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}

// OutboxRelay drains pending outbox rows and publishes them to the event
// bus. Rows that fail to decode or publish are marked failed and left for
// inspection rather than retried in a tight loop.
type OutboxRelay struct {
	Outbox    ports.OutboxRepository
	Publisher Publisher
	Logger    *slog.Logger
}

func (w OutboxRelay) RunOnce(ctx context.Context) (published int, err error) {
	logger := application.ResolveLogger(w.Logger)

	pending, err := w.Outbox.ListPending(ctx, relayBatchSize)
	if err != nil {
		return 0, err
	}

	for _, message := range pending {
		var envelope events.Envelope
		if err := json.Unmarshal(message.Payload, &envelope); err != nil {
			logger.Error("outbox payload decode failed",
				slog.String("event", "outbox_decode_failed"),
				slog.String("message_id", message.ID),
				slog.Any("error", err),
			)
			if err := w.Outbox.MarkFailed(ctx, message.ID); err != nil {
				return published, err
			}
			continue
		}

		if err := w.Publisher.Publish(ctx, message.EventType, envelope); err != nil {
			logger.Error("outbox publish failed",
				slog.String("event", "outbox_publish_failed"),
				slog.String("message_id", message.ID),
				slog.Any("error", err),
			)
			if err := w.Outbox.MarkFailed(ctx, message.ID); err != nil {
				return published, err
			}
			continue
		}

		if err := w.Outbox.MarkPublished(ctx, message.ID); err != nil {
			return published, err
		}
		published++
	}

	if published > 0 {
		logger.Info("outbox drained",
			slog.String("event", "outbox_drained"),
			slog.Int("published", published),
		)
	}
	return published, nil
}
