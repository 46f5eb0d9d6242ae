package http

type FileComplaintRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type ResolveComplaintRequest struct {
	Resolution string `json:"resolution"`
}

type ComplaintResponse struct {
	ComplaintID    string `json:"complaint_id"`
	FilerProfileID string `json:"filer_profile_id"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
	Status         string `json:"status"`
	Resolution     string `json:"resolution,omitempty"`
	ResolvedBy     string `json:"resolved_by,omitempty"`
	CreatedAt      string `json:"created_at"`
	ResolvedAt     string `json:"resolved_at,omitempty"`
}

type ComplaintListResponse struct {
	Complaints []ComplaintResponse `json:"complaints"`
}
