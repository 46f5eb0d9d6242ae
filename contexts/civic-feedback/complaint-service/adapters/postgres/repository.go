package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"electra/contexts/civic-feedback/complaint-service/domain/entities"
	domainerrors "electra/contexts/civic-feedback/complaint-service/domain/errors"
	"electra/contexts/civic-feedback/complaint-service/ports"
	"electra/internal/platform/db"
)

type complaintModel struct {
	ID             string     `gorm:"column:id;primaryKey"`
	FilerProfileID string     `gorm:"column:filer_profile_id;not null;index"`
	Subject        string     `gorm:"column:subject;not null"`
	Body           string     `gorm:"column:body;not null"`
	Status         string     `gorm:"column:status;not null;index"`
	Resolution     string     `gorm:"column:resolution"`
	ResolvedBy     string     `gorm:"column:resolved_by"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	ResolvedAt     *time.Time `gorm:"column:resolved_at"`
}

func (complaintModel) TableName() string { return "complaints" }

func complaintModelFromEntity(complaint entities.Complaint) complaintModel {
	return complaintModel{
		ID:             complaint.ID,
		FilerProfileID: complaint.FilerProfileID,
		Subject:        complaint.Subject,
		Body:           complaint.Body,
		Status:         string(complaint.Status),
		Resolution:     complaint.Resolution,
		ResolvedBy:     complaint.ResolvedBy,
		CreatedAt:      complaint.CreatedAt.UTC(),
		ResolvedAt:     complaint.ResolvedAt,
	}
}

func (m complaintModel) toEntity() entities.Complaint {
	return entities.Complaint{
		ID:             m.ID,
		FilerProfileID: m.FilerProfileID,
		Subject:        m.Subject,
		Body:           m.Body,
		Status:         entities.ComplaintStatus(m.Status),
		Resolution:     m.Resolution,
		ResolvedBy:     m.ResolvedBy,
		CreatedAt:      m.CreatedAt.UTC(),
		ResolvedAt:     m.ResolvedAt,
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
	return r.db.WithContext(ctx).AutoMigrate(&complaintModel{})
}

func (r *Repository) CreateComplaint(ctx context.Context, complaint entities.Complaint) error {
	model := complaintModelFromEntity(complaint)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return r.logError("complaint_create_failed", err, slog.String("complaint_id", complaint.ID))
	}
	return nil
}

func (r *Repository) GetComplaint(ctx context.Context, complaintID string) (entities.Complaint, bool, error) {
	var model complaintModel
	err := r.db.WithContext(ctx).Where("id = ?", complaintID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Complaint{}, false, nil
	}
	if err != nil {
		return entities.Complaint{}, false, r.logError("complaint_lookup_failed", err, slog.String("complaint_id", complaintID))
	}
	return model.toEntity(), true, nil
}

func (r *Repository) ListComplaints(ctx context.Context) ([]entities.Complaint, error) {
	return r.list(ctx, r.db.WithContext(ctx))
}

func (r *Repository) ListComplaintsByFiler(ctx context.Context, filerProfileID string) ([]entities.Complaint, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("filer_profile_id = ?", filerProfileID))
}

func (r *Repository) list(ctx context.Context, scope *gorm.DB) ([]entities.Complaint, error) {
	var models []complaintModel
	if err := scope.Order("created_at DESC, id ASC").Find(&models).Error; err != nil {
		return nil, r.logError("complaint_list_failed", err)
	}
	complaints := make([]entities.Complaint, 0, len(models))
	for _, model := range models {
		complaints = append(complaints, model.toEntity())
	}
	return complaints, nil
}

func (r *Repository) UpdateComplaint(ctx context.Context, complaint entities.Complaint) error {
	model := complaintModelFromEntity(complaint)
	result := r.db.WithContext(ctx).Model(&complaintModel{}).
		Where("id = ?", complaint.ID).
		Updates(map[string]any{
			"status":      model.Status,
			"resolution":  model.Resolution,
			"resolved_by": model.ResolvedBy,
			"resolved_at": model.ResolvedAt,
		})
	if result.Error != nil {
		return r.logError("complaint_update_failed", result.Error, slog.String("complaint_id", complaint.ID))
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrComplaintNotFound
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	attrs := append([]any{
		slog.String("event", event),
		slog.String("module", "complaint-service"),
		slog.String("layer", "postgres"),
		slog.Any("error", err),
	}, args...)
	r.logger.Error("complaint repository operation failed", attrs...)
	if db.Unavailable(err) {
		return fmt.Errorf("%w: %v", domainerrors.ErrUnavailable, err)
	}
	return err
}

var _ ports.ComplaintRepository = (*Repository)(nil)
