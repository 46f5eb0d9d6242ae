package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"electra/contexts/election-core/vote-ledger/domain/entities"
	domainerrors "electra/contexts/election-core/vote-ledger/domain/errors"
	"electra/contexts/election-core/vote-ledger/ports"
	"electra/internal/platform/db"
	"electra/internal/shared/outbox"
)

type voteModel struct {
	ID       string    `gorm:"column:id;primaryKey"`
	VoterID  string    `gorm:"column:voter_id;not null;uniqueIndex:idx_votes_voter_ballot"`
	BallotID string    `gorm:"column:ballot_id;not null;uniqueIndex:idx_votes_voter_ballot;index"`
	OptionID string    `gorm:"column:option_id;not null;index"`
	CastAt   time.Time `gorm:"column:cast_at;not null"`
}

func (voteModel) TableName() string { return "votes" }

type resultCountModel struct {
	BallotID  string `gorm:"column:ballot_id;primaryKey"`
	OptionID  string `gorm:"column:option_id;primaryKey"`
	VoteCount int64  `gorm:"column:vote_count;not null"`
}

func (resultCountModel) TableName() string { return "ballot_result_counts" }

type outboxModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	EventType  string    `gorm:"column:event_type;not null"`
	Payload    []byte    `gorm:"column:payload;not null"`
	Status     string    `gorm:"column:status;not null;index"`
	RetryCount int       `gorm:"column:retry_count;not null"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (outboxModel) TableName() string { return "vote_outbox" }

func voteModelFromEntity(vote entities.Vote) voteModel {
	return voteModel{
		ID:       vote.ID,
		VoterID:  vote.VoterID,
		BallotID: vote.BallotID,
		OptionID: vote.OptionID,
		CastAt:   vote.CastAt.UTC(),
	}
}

func (m voteModel) toEntity() entities.Vote {
	return entities.Vote{
		ID:       m.ID,
		VoterID:  m.VoterID,
		BallotID: m.BallotID,
		OptionID: m.OptionID,
		CastAt:   m.CastAt.UTC(),
	}
}

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&voteModel{}, &resultCountModel{}, &outboxModel{})
}

func (r *Repository) InsertVote(ctx context.Context, vote entities.Vote, message outbox.Message) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := voteModelFromEntity(vote)
		if err := tx.Create(&model).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrAlreadyVoted
			}
			return err
		}
		increment := tx.Exec(
			`INSERT INTO ballot_result_counts (ballot_id, option_id, vote_count)
			 VALUES (?, ?, 1)
			 ON CONFLICT (ballot_id, option_id)
			 DO UPDATE SET vote_count = ballot_result_counts.vote_count + 1`,
			vote.BallotID, vote.OptionID,
		)
		if increment.Error != nil {
			return increment.Error
		}
		return enqueue(tx, message)
	})
	if err != nil && !errors.Is(err, domainerrors.ErrAlreadyVoted) {
		err = r.logError("vote_insert_failed", err, slog.String("ballot_id", vote.BallotID))
	}
	return err
}

func (r *Repository) DeleteVote(ctx context.Context, voteID string, message outbox.Message) (entities.Vote, error) {
	var removed entities.Vote
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model voteModel
		if err := tx.Where("id = ?", voteID).First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrVoteNotFound
			}
			return err
		}
		if err := tx.Where("id = ?", voteID).Delete(&voteModel{}).Error; err != nil {
			return err
		}
		if err := recountBallot(tx, model.BallotID); err != nil {
			return err
		}
		if err := enqueue(tx, message); err != nil {
			return err
		}
		removed = model.toEntity()
		return nil
	})
	if err != nil && !errors.Is(err, domainerrors.ErrVoteNotFound) {
		err = r.logError("vote_delete_failed", err, slog.String("vote_id", voteID))
	}
	return removed, err
}

// recountBallot rebuilds the cached counts for one ballot from the votes
// table inside the caller's transaction.
func recountBallot(tx *gorm.DB, ballotID string) error {
	if err := tx.Exec(`DELETE FROM ballot_result_counts WHERE ballot_id = ?`, ballotID).Error; err != nil {
		return err
	}
	return tx.Exec(
		`INSERT INTO ballot_result_counts (ballot_id, option_id, vote_count)
		 SELECT ballot_id, option_id, COUNT(*)
		 FROM votes WHERE ballot_id = ?
		 GROUP BY ballot_id, option_id`,
		ballotID,
	).Error
}

func enqueue(tx *gorm.DB, message outbox.Message) error {
	row := outboxModel{
		ID:         message.ID,
		EventType:  message.EventType,
		Payload:    message.Payload,
		Status:     message.Status,
		RetryCount: message.RetryCount,
		CreatedAt:  time.Now().UTC(),
	}
	return tx.Create(&row).Error
}

func (r *Repository) GetVote(ctx context.Context, voteID string) (entities.Vote, bool, error) {
	var model voteModel
	err := r.db.WithContext(ctx).Where("id = ?", voteID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Vote{}, false, nil
	}
	if err != nil {
		return entities.Vote{}, false, r.logError("vote_lookup_failed", err, slog.String("vote_id", voteID))
	}
	return model.toEntity(), true, nil
}

func (r *Repository) ListVotesByBallot(ctx context.Context, ballotID string) ([]entities.Vote, error) {
	return r.listVotes(ctx, "ballot_id = ?", ballotID)
}

func (r *Repository) ListVotesByVoter(ctx context.Context, voterID string) ([]entities.Vote, error) {
	return r.listVotes(ctx, "voter_id = ?", voterID)
}

func (r *Repository) listVotes(ctx context.Context, clause string, value string) ([]entities.Vote, error) {
	var models []voteModel
	if err := r.db.WithContext(ctx).Where(clause, value).Order("cast_at ASC, id ASC").Find(&models).Error; err != nil {
		return nil, r.logError("vote_list_failed", err)
	}
	votes := make([]entities.Vote, 0, len(models))
	for _, model := range models {
		votes = append(votes, model.toEntity())
	}
	return votes, nil
}

func (r *Repository) FindVote(ctx context.Context, voterID, ballotID string) (entities.Vote, bool, error) {
	var model voteModel
	err := r.db.WithContext(ctx).
		Where("voter_id = ? AND ballot_id = ?", voterID, ballotID).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Vote{}, false, nil
	}
	if err != nil {
		return entities.Vote{}, false, r.logError("vote_find_failed", err, slog.String("ballot_id", ballotID))
	}
	return model.toEntity(), true, nil
}

func (r *Repository) ListPending(ctx context.Context, limit int) ([]outbox.Message, error) {
	var models []outboxModel
	err := r.db.WithContext(ctx).
		Where("status = ?", "pending").
		Order("created_at ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, r.logError("outbox_list_failed", err)
	}
	messages := make([]outbox.Message, 0, len(models))
	for _, model := range models {
		messages = append(messages, outbox.Message{
			ID:         model.ID,
			EventType:  model.EventType,
			Payload:    model.Payload,
			Status:     model.Status,
			RetryCount: model.RetryCount,
		})
	}
	return messages, nil
}

func (r *Repository) MarkPublished(ctx context.Context, messageID string) error {
	return r.setOutboxStatus(ctx, messageID, "published", false)
}

func (r *Repository) MarkFailed(ctx context.Context, messageID string) error {
	return r.setOutboxStatus(ctx, messageID, "failed", true)
}

func (r *Repository) setOutboxStatus(ctx context.Context, messageID, status string, bumpRetry bool) error {
	updates := map[string]any{"status": status}
	if bumpRetry {
		updates["retry_count"] = gorm.Expr("retry_count + 1")
	}
	err := r.db.WithContext(ctx).Model(&outboxModel{}).
		Where("id = ?", messageID).
		Updates(updates).Error
	if err != nil {
		return r.logError("outbox_status_update_failed", err, slog.String("message_id", messageID))
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	attrs := append([]any{
		slog.String("event", event),
		slog.String("module", "vote-ledger"),
		slog.String("layer", "postgres"),
		slog.Any("error", err),
	}, args...)
	r.logger.Error("vote repository operation failed", attrs...)
	if db.Unavailable(err) {
		return fmt.Errorf("%w: %v", domainerrors.ErrUnavailable, err)
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var (
	_ ports.VoteRepository   = (*Repository)(nil)
	_ ports.OutboxRepository = (*Repository)(nil)
)
