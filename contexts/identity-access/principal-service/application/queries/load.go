package queries

import (
	"context"
	"strings"

	"electra/contexts/identity-access/principal-service/domain/entities"
	domainerrors "electra/contexts/identity-access/principal-service/domain/errors"
	"electra/contexts/identity-access/principal-service/ports"
)

// Profile is the read-model union of the three profile kinds, discriminated
// by Kind. Exactly the fields of the linked variant are populated.
type Profile struct {
	Kind  entities.LinkedKind
	Voter entities.VoterProfile
	Party entities.PartyProfile
	Staff entities.StaffProfile
}

type LoadUseCase struct {
	Repo ports.Repository
}

// Load resolves a validated principal id to a live principal.
func (uc LoadUseCase) Load(ctx context.Context, principalID string) (entities.Principal, error) {
	principal, found, err := uc.Repo.GetPrincipal(ctx, strings.TrimSpace(principalID))
	if err != nil {
		return entities.Principal{}, err
	}
	if !found {
		return entities.Principal{}, domainerrors.ErrPrincipalNotFound
	}
	if !principal.Active {
		return entities.Principal{}, domainerrors.ErrPrincipalInactive
	}
	return principal, nil
}

// ProfileOf loads the profile linked to a principal. The switch over the
// link discriminant is exhaustive; admins have no profile.
func (uc LoadUseCase) ProfileOf(ctx context.Context, principal entities.Principal) (Profile, error) {
	switch principal.LinkedKind {
	case entities.LinkedVoter:
		voter, found, err := uc.Repo.GetVoterProfile(ctx, principal.LinkedID)
		if err != nil {
			return Profile{}, err
		}
		if !found {
			return Profile{}, domainerrors.ErrProfileNotFound
		}
		return Profile{Kind: entities.LinkedVoter, Voter: voter}, nil
	case entities.LinkedParty:
		party, found, err := uc.Repo.GetPartyProfile(ctx, principal.LinkedID)
		if err != nil {
			return Profile{}, err
		}
		if !found {
			return Profile{}, domainerrors.ErrProfileNotFound
		}
		return Profile{Kind: entities.LinkedParty, Party: party}, nil
	case entities.LinkedStaff:
		staff, found, err := uc.Repo.GetStaffProfile(ctx, principal.LinkedID)
		if err != nil {
			return Profile{}, err
		}
		if !found {
			return Profile{}, domainerrors.ErrProfileNotFound
		}
		return Profile{Kind: entities.LinkedStaff, Staff: staff}, nil
	case entities.LinkedNone:
		return Profile{}, domainerrors.ErrProfileNotFound
	default:
		return Profile{}, domainerrors.ErrProfileNotFound
	}
}

// VoterProfile loads a voter profile by id for ownership-scoped reads.
func (uc LoadUseCase) VoterProfile(ctx context.Context, profileID string) (entities.VoterProfile, error) {
	voter, found, err := uc.Repo.GetVoterProfile(ctx, strings.TrimSpace(profileID))
	if err != nil {
		return entities.VoterProfile{}, err
	}
	if !found {
		return entities.VoterProfile{}, domainerrors.ErrProfileNotFound
	}
	return voter, nil
}
