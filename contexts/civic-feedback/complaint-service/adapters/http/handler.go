package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"electra/contexts/civic-feedback/complaint-service/application"
	"electra/contexts/civic-feedback/complaint-service/domain/entities"
	httptransport "electra/contexts/civic-feedback/complaint-service/transport/http"
)

type Handler struct {
	Complaints application.Service
	Logger     *slog.Logger
}

func (h Handler) FileComplaintHandler(ctx context.Context, filerProfileID string, req httptransport.FileComplaintRequest) (httptransport.ComplaintResponse, error) {
	complaint, err := h.Complaints.File(ctx, application.FileComplaintCommand{
		FilerProfileID: filerProfileID,
		Subject:        req.Subject,
		Body:           req.Body,
	})
	if err != nil {
		return httptransport.ComplaintResponse{}, err
	}
	return complaintResponse(complaint), nil
}

func (h Handler) GetComplaintHandler(ctx context.Context, complaintID string) (httptransport.ComplaintResponse, error) {
	complaint, err := h.Complaints.Get(ctx, complaintID)
	if err != nil {
		return httptransport.ComplaintResponse{}, err
	}
	return complaintResponse(complaint), nil
}

func (h Handler) ListAllComplaintsHandler(ctx context.Context) (httptransport.ComplaintListResponse, error) {
	complaints, err := h.Complaints.ListAll(ctx)
	if err != nil {
		return httptransport.ComplaintListResponse{}, err
	}
	return complaintListResponse(complaints), nil
}

func (h Handler) ListOwnComplaintsHandler(ctx context.Context, filerProfileID string) (httptransport.ComplaintListResponse, error) {
	complaints, err := h.Complaints.ListOwn(ctx, filerProfileID)
	if err != nil {
		return httptransport.ComplaintListResponse{}, err
	}
	return complaintListResponse(complaints), nil
}

func (h Handler) ResolveComplaintHandler(ctx context.Context, complaintID, resolvedBy string, req httptransport.ResolveComplaintRequest) (httptransport.ComplaintResponse, error) {
	complaint, err := h.Complaints.Resolve(ctx, application.ResolveComplaintCommand{
		ComplaintID: complaintID,
		ResolvedBy:  resolvedBy,
		Resolution:  req.Resolution,
	})
	if err != nil {
		return httptransport.ComplaintResponse{}, err
	}
	return complaintResponse(complaint), nil
}

func complaintResponse(complaint entities.Complaint) httptransport.ComplaintResponse {
	resp := httptransport.ComplaintResponse{
		ComplaintID:    complaint.ID,
		FilerProfileID: complaint.FilerProfileID,
		Subject:        complaint.Subject,
		Body:           complaint.Body,
		Status:         string(complaint.Status),
		Resolution:     complaint.Resolution,
		ResolvedBy:     complaint.ResolvedBy,
		CreatedAt:      complaint.CreatedAt.UTC().Format(time.RFC3339),
	}
	if complaint.ResolvedAt != nil {
		resp.ResolvedAt = complaint.ResolvedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func complaintListResponse(complaints []entities.Complaint) httptransport.ComplaintListResponse {
	resp := httptransport.ComplaintListResponse{Complaints: make([]httptransport.ComplaintResponse, 0, len(complaints))}
	for _, complaint := range complaints {
		resp.Complaints = append(resp.Complaints, complaintResponse(complaint))
	}
	return resp
}
