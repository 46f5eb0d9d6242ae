package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"electra/contexts/identity-access/principal-service/domain/entities"
	domainerrors "electra/contexts/identity-access/principal-service/domain/errors"
	"electra/contexts/identity-access/principal-service/ports"

	"github.com/google/uuid"
)

// Store is the in-memory credential store used by tests and local wiring.
// Paired principal+profile creates hold the lock across both writes, so a
// failure injected between them leaves neither record visible.
type Store struct {
	mu sync.RWMutex

	principals map[string]entities.Principal
	voters     map[string]entities.VoterProfile
	parties    map[string]entities.PartyProfile
	staff      map[string]entities.StaffProfile

	failPrincipalInsert error
}

func NewStore() *Store {
	return &Store{
		principals: make(map[string]entities.Principal),
		voters:     make(map[string]entities.VoterProfile),
		parties:    make(map[string]entities.PartyProfile),
		staff:      make(map[string]entities.StaffProfile),
	}
}

// FailNextPrincipalInsert makes the next paired create fail after the
// profile write would have happened, to exercise registration atomicity.
func (s *Store) FailNextPrincipalInsert(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failPrincipalInsert = err
}

// SeedVoterProfile inserts a profile row with no owning principal, mirroring
// historical data that predates unified identity.
func (s *Store) SeedVoterProfile(profile entities.VoterProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voters[profile.ID] = profile
}

// Deactivate clears the active flag on a principal.
func (s *Store) Deactivate(principalID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if principal, ok := s.principals[principalID]; ok {
		principal.Active = false
		s.principals[principalID] = principal
	}
}

func (s *Store) GetPrincipal(_ context.Context, id string) (entities.Principal, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	principal, ok := s.principals[strings.TrimSpace(id)]
	return principal, ok, nil
}

func (s *Store) GetPrincipalByLogin(_ context.Context, login string) (entities.Principal, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findBy(func(p entities.Principal) bool {
		return strings.EqualFold(p.Login, strings.TrimSpace(login))
	})
}

func (s *Store) GetPrincipalByEmail(_ context.Context, email string) (entities.Principal, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findBy(func(p entities.Principal) bool {
		return strings.EqualFold(p.Email, strings.TrimSpace(email))
	})
}

func (s *Store) findBy(match func(entities.Principal) bool) (entities.Principal, bool, error) {
	for _, principal := range s.principals {
		if match(principal) {
			return principal, true, nil
		}
	}
	return entities.Principal{}, false, nil
}

func (s *Store) CreateAdminPrincipal(_ context.Context, principal entities.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertPrincipalLocked(principal)
}

func (s *Store) CreateVoterPrincipal(_ context.Context, principal entities.Principal, profile entities.VoterProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.voters {
		if strings.EqualFold(existing.Email, profile.Email) {
			return domainerrors.ErrDuplicateProfile
		}
	}
	if err := s.insertPrincipalLocked(principal); err != nil {
		return err
	}
	s.voters[profile.ID] = profile
	return nil
}

func (s *Store) CreatePartyPrincipal(_ context.Context, principal entities.Principal, profile entities.PartyProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.parties {
		if strings.EqualFold(existing.Name, profile.Name) {
			return domainerrors.ErrDuplicateProfile
		}
	}
	if err := s.insertPrincipalLocked(principal); err != nil {
		return err
	}
	s.parties[profile.ID] = profile
	return nil
}

func (s *Store) CreateStaffPrincipal(_ context.Context, principal entities.Principal, profile entities.StaffProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.staff {
		if strings.EqualFold(existing.Email, profile.Email) {
			return domainerrors.ErrDuplicateProfile
		}
	}
	if err := s.insertPrincipalLocked(principal); err != nil {
		return err
	}
	s.staff[profile.ID] = profile
	return nil
}

func (s *Store) insertPrincipalLocked(principal entities.Principal) error {
	if s.failPrincipalInsert != nil {
		err := s.failPrincipalInsert
		s.failPrincipalInsert = nil
		return err
	}
	for _, existing := range s.principals {
		if strings.EqualFold(existing.Email, principal.Email) || strings.EqualFold(existing.Login, principal.Login) {
			return domainerrors.ErrDuplicateIdentity
		}
	}
	if strings.TrimSpace(principal.ID) == "" {
		principal.ID = uuid.NewString()
	}
	s.principals[principal.ID] = principal
	return nil
}

func (s *Store) VoterProfileEmailExists(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, profile := range s.voters {
		if strings.EqualFold(profile.Email, strings.TrimSpace(email)) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) PartyProfileNameExists(_ context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, profile := range s.parties {
		if strings.EqualFold(profile.Name, strings.TrimSpace(name)) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) StaffProfileEmailExists(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, profile := range s.staff {
		if strings.EqualFold(profile.Email, strings.TrimSpace(email)) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) GetVoterProfile(_ context.Context, id string) (entities.VoterProfile, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.voters[strings.TrimSpace(id)]
	return profile, ok, nil
}

func (s *Store) GetPartyProfile(_ context.Context, id string) (entities.PartyProfile, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.parties[strings.TrimSpace(id)]
	return profile, ok, nil
}

func (s *Store) GetStaffProfile(_ context.Context, id string) (entities.StaffProfile, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.staff[strings.TrimSpace(id)]
	return profile, ok, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.Repository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
