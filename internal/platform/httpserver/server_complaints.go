package httpserver

import (
	"net/http"

	complainthttp "electra/contexts/civic-feedback/complaint-service/transport/http"
	authzentities "electra/contexts/identity-access/authorization-service/domain/entities"
)

func (s *Server) handleFileComplaint(w http.ResponseWriter, r *http.Request) {
	req, ok := s.authorize(w, r, authzentities.ActionComplaintFile, authzentities.Resource{Kind: "complaint"})
	if !ok {
		return
	}
	profileID, ok := requireVoterProfile(w, req.Principal)
	if !ok {
		return
	}

	var body complainthttp.FileComplaintRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	resp, err := s.complaints.Handler.FileComplaintHandler(r.Context(), profileID, body)
	if err != nil {
		writeComplaintError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListComplaints(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorize(w, r, authzentities.ActionComplaintList, authzentities.Resource{Kind: "complaint"}); !ok {
		return
	}
	resp, err := s.complaints.Handler.ListAllComplaintsHandler(r.Context())
	if err != nil {
		writeComplaintError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleMyComplaints is the voter's own list; it reuses the complaint.file
// grant since the read is scoped to the caller's profile.
func (s *Server) handleMyComplaints(w http.ResponseWriter, r *http.Request) {
	req, ok := s.authorize(w, r, authzentities.ActionComplaintFile, authzentities.Resource{Kind: "complaint"})
	if !ok {
		return
	}
	profileID, ok := requireVoterProfile(w, req.Principal)
	if !ok {
		return
	}
	resp, err := s.complaints.Handler.ListOwnComplaintsHandler(r.Context(), profileID)
	if err != nil {
		writeComplaintError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleGetComplaint loads the complaint first so ownership can be checked
// against its filer.
func (s *Server) handleGetComplaint(w http.ResponseWriter, r *http.Request) {
	req, ok := s.resolveRequester(w, r)
	if !ok {
		return
	}
	if req.Ref.Anonymous {
		writeError(w, http.StatusUnauthorized, "authentication_required", "authentication is required")
		return
	}

	complaint, err := s.complaints.Complaints.Get(r.Context(), r.PathValue("complaint_id"))
	if err != nil {
		writeComplaintError(w, err)
		return
	}
	if !s.decide(w, req, authzentities.ActionComplaintRead, authzentities.Resource{
		Kind:           "complaint",
		OwnerProfileID: complaint.FilerProfileID,
		Owned:          true,
	}) {
		return
	}

	resp, err := s.complaints.Handler.GetComplaintHandler(r.Context(), complaint.ID)
	if err != nil {
		writeComplaintError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResolveComplaint(w http.ResponseWriter, r *http.Request) {
	req, ok := s.authorize(w, r, authzentities.ActionComplaintResolve, authzentities.Resource{Kind: "complaint"})
	if !ok {
		return
	}
	var body complainthttp.ResolveComplaintRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	resp, err := s.complaints.Handler.ResolveComplaintHandler(
		r.Context(),
		r.PathValue("complaint_id"),
		req.Principal.ID,
		body,
	)
	if err != nil {
		writeComplaintError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
