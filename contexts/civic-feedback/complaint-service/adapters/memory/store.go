package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"electra/contexts/civic-feedback/complaint-service/domain/entities"
	domainerrors "electra/contexts/civic-feedback/complaint-service/domain/errors"
	"electra/contexts/civic-feedback/complaint-service/ports"
)

// Store is the in-memory complaint repository used by tests and local
// wiring. It also provides Clock and IDGenerator.
type Store struct {
	mu         sync.Mutex
	complaints map[string]entities.Complaint
	now        time.Time
}

func NewStore() *Store {
	return &Store{complaints: make(map[string]entities.Complaint)}
}

func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.now.IsZero() {
		return time.Now().UTC()
	}
	return s.now
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) CreateComplaint(_ context.Context, complaint entities.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.complaints[complaint.ID] = complaint
	return nil
}

func (s *Store) GetComplaint(_ context.Context, complaintID string) (entities.Complaint, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	complaint, ok := s.complaints[complaintID]
	return complaint, ok, nil
}

func (s *Store) ListComplaints(_ context.Context) ([]entities.Complaint, error) {
	return s.list(func(entities.Complaint) bool { return true }), nil
}

func (s *Store) ListComplaintsByFiler(_ context.Context, filerProfileID string) ([]entities.Complaint, error) {
	return s.list(func(c entities.Complaint) bool { return c.FilerProfileID == filerProfileID }), nil
}

func (s *Store) list(match func(entities.Complaint) bool) []entities.Complaint {
	s.mu.Lock()
	defer s.mu.Unlock()

	var complaints []entities.Complaint
	for _, complaint := range s.complaints {
		if match(complaint) {
			complaints = append(complaints, complaint)
		}
	}
	sort.Slice(complaints, func(i, j int) bool {
		if !complaints[i].CreatedAt.Equal(complaints[j].CreatedAt) {
			return complaints[i].CreatedAt.After(complaints[j].CreatedAt)
		}
		return complaints[i].ID < complaints[j].ID
	})
	return complaints
}

func (s *Store) UpdateComplaint(_ context.Context, complaint entities.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.complaints[complaint.ID]; !ok {
		return domainerrors.ErrComplaintNotFound
	}
	s.complaints[complaint.ID] = complaint
	return nil
}

var (
	_ ports.ComplaintRepository = (*Store)(nil)
	_ ports.Clock               = (*Store)(nil)
	_ ports.IDGenerator         = (*Store)(nil)
)
