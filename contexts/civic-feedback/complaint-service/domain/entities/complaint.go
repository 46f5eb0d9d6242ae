package entities

import "time"

type ComplaintStatus string

const (
	ComplaintStatusOpen     ComplaintStatus = "open"
	ComplaintStatusResolved ComplaintStatus = "resolved"
)

// Complaint is filed by a voter profile and resolved by a staff principal.
type Complaint struct {
	ID             string
	FilerProfileID string
	Subject        string
	Body           string
	Status         ComplaintStatus
	Resolution     string
	ResolvedBy     string
	CreatedAt      time.Time
	ResolvedAt     *time.Time
}
