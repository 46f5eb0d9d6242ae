package ports

import (
	"context"
	"time"

	"electra/contexts/identity-access/principal-service/domain/entities"
)

// Repository is the credential store boundary. Create* pair methods must be
// atomic: a failure leaves neither the principal nor the profile visible.
type Repository interface {
	GetPrincipal(ctx context.Context, id string) (entities.Principal, bool, error)
	GetPrincipalByLogin(ctx context.Context, login string) (entities.Principal, bool, error)
	GetPrincipalByEmail(ctx context.Context, email string) (entities.Principal, bool, error)

	CreateAdminPrincipal(ctx context.Context, principal entities.Principal) error
	CreateVoterPrincipal(ctx context.Context, principal entities.Principal, profile entities.VoterProfile) error
	CreatePartyPrincipal(ctx context.Context, principal entities.Principal, profile entities.PartyProfile) error
	CreateStaffPrincipal(ctx context.Context, principal entities.Principal, profile entities.StaffProfile) error

	VoterProfileEmailExists(ctx context.Context, email string) (bool, error)
	PartyProfileNameExists(ctx context.Context, name string) (bool, error)
	StaffProfileEmailExists(ctx context.Context, email string) (bool, error)

	GetVoterProfile(ctx context.Context, id string) (entities.VoterProfile, bool, error)
	GetPartyProfile(ctx context.Context, id string) (entities.PartyProfile, bool, error)
	GetStaffProfile(ctx context.Context, id string) (entities.StaffProfile, bool, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
