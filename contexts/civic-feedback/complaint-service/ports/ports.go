package ports

import (
	"context"
	"time"

	"electra/contexts/civic-feedback/complaint-service/domain/entities"
)

type ComplaintRepository interface {
	CreateComplaint(ctx context.Context, complaint entities.Complaint) error
	GetComplaint(ctx context.Context, complaintID string) (entities.Complaint, bool, error)
	ListComplaints(ctx context.Context) ([]entities.Complaint, error)
	ListComplaintsByFiler(ctx context.Context, filerProfileID string) ([]entities.Complaint, error)
	UpdateComplaint(ctx context.Context, complaint entities.Complaint) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
