package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"electra/contexts/election-core/ballot-service/domain/entities"
	domainerrors "electra/contexts/election-core/ballot-service/domain/errors"
	"electra/contexts/election-core/ballot-service/ports"
	"electra/internal/platform/db"
)

type ballotModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Kind      string    `gorm:"column:kind"`
	StartsAt  time.Time `gorm:"column:starts_at;not null"`
	EndsAt    time.Time `gorm:"column:ends_at;not null"`
	Status    string    `gorm:"column:status;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (ballotModel) TableName() string { return "ballots" }

type ballotOptionModel struct {
	ID          string `gorm:"column:id;primaryKey"`
	BallotID    string `gorm:"column:ballot_id;not null;index"`
	Name        string `gorm:"column:name;not null"`
	Description string `gorm:"column:description"`
	Position    int    `gorm:"column:position;not null"`
}

func (ballotOptionModel) TableName() string { return "ballot_options" }

func ballotModelFromEntity(ballot entities.Ballot) ballotModel {
	return ballotModel{
		ID:        ballot.ID,
		Name:      ballot.Name,
		Kind:      ballot.Kind,
		StartsAt:  ballot.Start.UTC(),
		EndsAt:    ballot.End.UTC(),
		Status:    string(ballot.Status),
		CreatedAt: ballot.CreatedAt.UTC(),
		UpdatedAt: ballot.UpdatedAt.UTC(),
	}
}

func (m ballotModel) toEntity() entities.Ballot {
	return entities.Ballot{
		ID:        m.ID,
		Name:      m.Name,
		Kind:      m.Kind,
		Start:     m.StartsAt.UTC(),
		End:       m.EndsAt.UTC(),
		Status:    entities.BallotStatus(m.Status),
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

func optionModelFromEntity(option entities.Option) ballotOptionModel {
	return ballotOptionModel{
		ID:          option.ID,
		BallotID:    option.BallotID,
		Name:        option.Name,
		Description: option.Description,
		Position:    option.Position,
	}
}

func (m ballotOptionModel) toEntity() entities.Option {
	return entities.Option{
		ID:          m.ID,
		BallotID:    m.BallotID,
		Name:        m.Name,
		Description: m.Description,
		Position:    m.Position,
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
	return r.db.WithContext(ctx).AutoMigrate(&ballotModel{}, &ballotOptionModel{})
}

func (r *Repository) CreateBallot(ctx context.Context, ballot entities.Ballot, options []entities.Option) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := ballotModelFromEntity(ballot)
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		for _, option := range options {
			optionModel := optionModelFromEntity(option)
			if err := tx.Create(&optionModel).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return r.logError("ballot_create_failed", err, slog.String("ballot_id", ballot.ID))
	}
	return nil
}

func (r *Repository) UpdateBallot(ctx context.Context, ballot entities.Ballot) error {
	model := ballotModelFromEntity(ballot)
	result := r.db.WithContext(ctx).Model(&ballotModel{}).
		Where("id = ?", ballot.ID).
		Updates(map[string]any{
			"name":       model.Name,
			"kind":       model.Kind,
			"starts_at":  model.StartsAt,
			"ends_at":    model.EndsAt,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return r.logError("ballot_update_failed", result.Error, slog.String("ballot_id", ballot.ID))
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrBallotNotFound
	}
	return nil
}

func (r *Repository) GetBallot(ctx context.Context, ballotID string) (entities.Ballot, bool, error) {
	var model ballotModel
	err := r.db.WithContext(ctx).Where("id = ?", ballotID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Ballot{}, false, nil
	}
	if err != nil {
		return entities.Ballot{}, false, r.logError("ballot_lookup_failed", err, slog.String("ballot_id", ballotID))
	}
	return model.toEntity(), true, nil
}

func (r *Repository) ListBallots(ctx context.Context) ([]entities.Ballot, error) {
	var models []ballotModel
	if err := r.db.WithContext(ctx).Order("starts_at ASC, id ASC").Find(&models).Error; err != nil {
		return nil, r.logError("ballot_list_failed", err)
	}
	ballots := make([]entities.Ballot, 0, len(models))
	for _, model := range models {
		ballots = append(ballots, model.toEntity())
	}
	return ballots, nil
}

func (r *Repository) ListOptions(ctx context.Context, ballotID string) ([]entities.Option, error) {
	var models []ballotOptionModel
	err := r.db.WithContext(ctx).
		Where("ballot_id = ?", ballotID).
		Order("position ASC").
		Find(&models).Error
	if err != nil {
		return nil, r.logError("ballot_options_list_failed", err, slog.String("ballot_id", ballotID))
	}
	options := make([]entities.Option, 0, len(models))
	for _, model := range models {
		options = append(options, model.toEntity())
	}
	return options, nil
}

func (r *Repository) AddOption(ctx context.Context, option entities.Option) error {
	model := optionModelFromEntity(option)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return r.logError("ballot_option_create_failed", err, slog.String("ballot_id", option.BallotID))
	}
	return nil
}

func (r *Repository) SetStatus(ctx context.Context, ballotID string, status entities.BallotStatus, now time.Time) error {
	result := r.db.WithContext(ctx).Model(&ballotModel{}).
		Where("id = ?", ballotID).
		Updates(map[string]any{"status": string(status), "updated_at": now.UTC()})
	if result.Error != nil {
		return r.logError("ballot_status_update_failed", result.Error, slog.String("ballot_id", ballotID))
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrBallotNotFound
	}
	return nil
}

func (r *Repository) ListPlannedDue(ctx context.Context, now time.Time) ([]entities.Ballot, error) {
	return r.listByStatusDue(ctx, entities.BallotStatusPlanned, "starts_at <= ?", now)
}

func (r *Repository) ListActiveDue(ctx context.Context, now time.Time) ([]entities.Ballot, error) {
	return r.listByStatusDue(ctx, entities.BallotStatusActive, "ends_at <= ?", now)
}

func (r *Repository) listByStatusDue(ctx context.Context, status entities.BallotStatus, dueClause string, now time.Time) ([]entities.Ballot, error) {
	var models []ballotModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Where(dueClause, now.UTC()).
		Order("starts_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, r.logError("ballot_due_scan_failed", err, slog.String("status", string(status)))
	}
	ballots := make([]entities.Ballot, 0, len(models))
	for _, model := range models {
		ballots = append(ballots, model.toEntity())
	}
	return ballots, nil
}

// logError records the failure and maps connectivity faults onto
// ErrUnavailable so the transport answers 503 instead of 500.
func (r *Repository) logError(event string, err error, args ...any) error {
	attrs := append([]any{
		slog.String("event", event),
		slog.String("module", "ballot-service"),
		slog.String("layer", "postgres"),
		slog.Any("error", err),
	}, args...)
	r.logger.Error("ballot repository operation failed", attrs...)
	if db.Unavailable(err) {
		return fmt.Errorf("%w: %v", domainerrors.ErrUnavailable, err)
	}
	return err
}

var _ ports.BallotRepository = (*Repository)(nil)
