package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"electra/contexts/election-core/result-aggregator/domain/entities"
	domainerrors "electra/contexts/election-core/result-aggregator/domain/errors"
	"electra/contexts/election-core/result-aggregator/ports"
	"electra/internal/platform/db"
)

// countRow scans the transactional count table maintained by the vote
// ledger.
type countRow struct {
	OptionID  string `gorm:"column:option_id"`
	VoteCount int64  `gorm:"column:vote_count"`
}

type cachedResultModel struct {
	BallotID   string    `gorm:"column:ballot_id;primaryKey"`
	OptionID   string    `gorm:"column:option_id;primaryKey"`
	BallotName string    `gorm:"column:ballot_name"`
	Status     string    `gorm:"column:status"`
	OptionName string    `gorm:"column:option_name"`
	Position   int       `gorm:"column:position"`
	Votes      int64     `gorm:"column:votes;not null"`
	Percent    float64   `gorm:"column:percent;not null"`
	Total      int64     `gorm:"column:total;not null"`
	ComputedAt time.Time `gorm:"column:computed_at"`
}

func (cachedResultModel) TableName() string { return "ballot_results" }

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
	return r.db.WithContext(ctx).AutoMigrate(&cachedResultModel{})
}

func (r *Repository) CountVotes(ctx context.Context, ballotID string) ([]entities.OptionCount, error) {
	var rows []countRow
	err := r.db.WithContext(ctx).
		Table("ballot_result_counts").
		Where("ballot_id = ?", ballotID).
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("result_count_scan_failed", err, slog.String("ballot_id", ballotID))
	}
	counts := make([]entities.OptionCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, entities.OptionCount{OptionID: row.OptionID, Votes: row.VoteCount})
	}
	return counts, nil
}

func (r *Repository) Save(ctx context.Context, result entities.BallotResult) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ballot_id = ?", result.BallotID).Delete(&cachedResultModel{}).Error; err != nil {
			return err
		}
		for _, option := range result.Options {
			row := cachedResultModel{
				BallotID:   result.BallotID,
				OptionID:   option.OptionID,
				BallotName: result.BallotName,
				Status:     result.Status,
				OptionName: option.Name,
				Position:   option.Position,
				Votes:      option.Votes,
				Percent:    option.Percent,
				Total:      result.Total,
				ComputedAt: result.ComputedAt.UTC(),
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return r.logError("result_cache_save_failed", err, slog.String("ballot_id", result.BallotID))
	}
	return nil
}

func (r *Repository) Load(ctx context.Context, ballotID string) (entities.BallotResult, bool, error) {
	var rows []cachedResultModel
	err := r.db.WithContext(ctx).
		Where("ballot_id = ?", ballotID).
		Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return entities.BallotResult{}, false, r.logError("result_cache_load_failed", err, slog.String("ballot_id", ballotID))
	}
	if len(rows) == 0 {
		return entities.BallotResult{}, false, nil
	}

	result := entities.BallotResult{
		BallotID:   ballotID,
		BallotName: rows[0].BallotName,
		Status:     rows[0].Status,
		Total:      rows[0].Total,
		Options:    make([]entities.OptionResult, 0, len(rows)),
		ComputedAt: rows[0].ComputedAt.UTC(),
	}
	for _, row := range rows {
		result.Options = append(result.Options, entities.OptionResult{
			OptionID: row.OptionID,
			Name:     row.OptionName,
			Position: row.Position,
			Votes:    row.Votes,
			Percent:  row.Percent,
		})
	}
	return result, true, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	attrs := append([]any{
		slog.String("event", event),
		slog.String("module", "result-aggregator"),
		slog.String("layer", "postgres"),
		slog.Any("error", err),
	}, args...)
	r.logger.Error("result repository operation failed", attrs...)
	if db.Unavailable(err) {
		return fmt.Errorf("%w: %v", domainerrors.ErrUnavailable, err)
	}
	return err
}

var (
	_ ports.CountSource = (*Repository)(nil)
	_ ports.ResultCache = (*Repository)(nil)
)
