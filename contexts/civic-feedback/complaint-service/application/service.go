package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"electra/contexts/civic-feedback/complaint-service/domain/entities"
	domainerrors "electra/contexts/civic-feedback/complaint-service/domain/errors"
	"electra/contexts/civic-feedback/complaint-service/ports"
)

type FileComplaintCommand struct {
	FilerProfileID string
	Subject        string
	Body           string
}

type ResolveComplaintCommand struct {
	ComplaintID string
	ResolvedBy  string
	Resolution  string
}

// Service carries the whole complaint workflow; the module is small enough
// that splitting commands from queries buys nothing.
type Service struct {
	Repo   ports.ComplaintRepository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (s Service) File(ctx context.Context, command FileComplaintCommand) (entities.Complaint, error) {
	logger := resolveLogger(s.Logger)

	subject := strings.TrimSpace(command.Subject)
	body := strings.TrimSpace(command.Body)
	if subject == "" {
		return entities.Complaint{}, fmt.Errorf("%w: subject is required", domainerrors.ErrInvalidComplaint)
	}
	if body == "" {
		return entities.Complaint{}, fmt.Errorf("%w: body is required", domainerrors.ErrInvalidComplaint)
	}

	complaintID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Complaint{}, err
	}
	complaint := entities.Complaint{
		ID:             complaintID,
		FilerProfileID: strings.TrimSpace(command.FilerProfileID),
		Subject:        subject,
		Body:           body,
		Status:         entities.ComplaintStatusOpen,
		CreatedAt:      s.Clock.Now().UTC(),
	}
	if err := s.Repo.CreateComplaint(ctx, complaint); err != nil {
		return entities.Complaint{}, err
	}

	logger.Info("complaint filed",
		slog.String("event", "complaint_filed"),
		slog.String("complaint_id", complaint.ID),
	)
	return complaint, nil
}

func (s Service) Get(ctx context.Context, complaintID string) (entities.Complaint, error) {
	complaint, found, err := s.Repo.GetComplaint(ctx, strings.TrimSpace(complaintID))
	if err != nil {
		return entities.Complaint{}, err
	}
	if !found {
		return entities.Complaint{}, domainerrors.ErrComplaintNotFound
	}
	return complaint, nil
}

// ListAll is the staff view across every filer.
func (s Service) ListAll(ctx context.Context) ([]entities.Complaint, error) {
	return s.Repo.ListComplaints(ctx)
}

// ListOwn is the voter view scoped to the caller's profile.
func (s Service) ListOwn(ctx context.Context, filerProfileID string) ([]entities.Complaint, error) {
	return s.Repo.ListComplaintsByFiler(ctx, strings.TrimSpace(filerProfileID))
}

func (s Service) Resolve(ctx context.Context, command ResolveComplaintCommand) (entities.Complaint, error) {
	logger := resolveLogger(s.Logger)

	complaint, err := s.Get(ctx, command.ComplaintID)
	if err != nil {
		return entities.Complaint{}, err
	}
	if complaint.Status == entities.ComplaintStatusResolved {
		return entities.Complaint{}, domainerrors.ErrAlreadyResolved
	}

	resolution := strings.TrimSpace(command.Resolution)
	if resolution == "" {
		return entities.Complaint{}, fmt.Errorf("%w: resolution is required", domainerrors.ErrInvalidComplaint)
	}

	now := s.Clock.Now().UTC()
	complaint.Status = entities.ComplaintStatusResolved
	complaint.Resolution = resolution
	complaint.ResolvedBy = strings.TrimSpace(command.ResolvedBy)
	complaint.ResolvedAt = &now

	if err := s.Repo.UpdateComplaint(ctx, complaint); err != nil {
		return entities.Complaint{}, err
	}

	logger.Info("complaint resolved",
		slog.String("event", "complaint_resolved"),
		slog.String("complaint_id", complaint.ID),
	)
	return complaint, nil
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
