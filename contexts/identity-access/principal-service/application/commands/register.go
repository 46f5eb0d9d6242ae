package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "electra/contexts/identity-access/principal-service/application"
	"electra/contexts/identity-access/principal-service/domain/entities"
	domainerrors "electra/contexts/identity-access/principal-service/domain/errors"
	"electra/contexts/identity-access/principal-service/domain/services"
	"electra/contexts/identity-access/principal-service/ports"
)

type RegisterVoterCommand struct {
	FullName    string
	DateOfBirth time.Time
	Address     string
	Email       string
	Phone       string
	Password    string
}

type RegisterPartyCommand struct {
	Name         string
	Abbreviation string
	Description  string
	LeaderName   string
	Email        string
	Password     string
}

type RegisterStaffCommand struct {
	FullName       string
	Email          string
	Position       string
	PollingStation string
	Password       string
}

// RegisterUseCase creates principal + linked profile pairs. Uniqueness is
// checked in both the principal identity space and the profile's own natural
// key space because profile rows may predate unified identity; the paired
// insert itself is atomic at the repository boundary.
type RegisterUseCase struct {
	Repo   ports.Repository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc RegisterUseCase) RegisterVoter(ctx context.Context, cmd RegisterVoterCommand) (entities.Principal, error) {
	logger := application.ResolveLogger(uc.Logger)
	email := normalizeEmail(cmd.Email)
	if email == "" || strings.TrimSpace(cmd.FullName) == "" || strings.TrimSpace(cmd.Password) == "" {
		return entities.Principal{}, domainerrors.ErrInvalidRegistration
	}

	if err := uc.checkIdentityFree(ctx, email); err != nil {
		return entities.Principal{}, err
	}
	if exists, err := uc.Repo.VoterProfileEmailExists(ctx, email); err != nil {
		return entities.Principal{}, err
	} else if exists {
		return entities.Principal{}, domainerrors.ErrDuplicateProfile
	}

	now := uc.now()
	profileID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Principal{}, err
	}
	profile := entities.VoterProfile{
		ID:          profileID,
		FullName:    strings.TrimSpace(cmd.FullName),
		DateOfBirth: cmd.DateOfBirth,
		Address:     strings.TrimSpace(cmd.Address),
		Email:       email,
		Phone:       strings.TrimSpace(cmd.Phone),
		CreatedAt:   now,
	}

	principal, err := uc.newPrincipal(ctx, email, cmd.Password, entities.RoleVoter, profileID, now)
	if err != nil {
		return entities.Principal{}, err
	}
	if err := uc.Repo.CreateVoterPrincipal(ctx, principal, profile); err != nil {
		return entities.Principal{}, err
	}

	logger.Info("voter registered",
		"event", "identity_voter_registered",
		"module", "identity-access/principal-service",
		"layer", "application",
		"principal_id", principal.ID,
		"profile_id", profileID,
	)
	return principal, nil
}

func (uc RegisterUseCase) RegisterParty(ctx context.Context, cmd RegisterPartyCommand) (entities.Principal, error) {
	logger := application.ResolveLogger(uc.Logger)
	email := normalizeEmail(cmd.Email)
	name := strings.TrimSpace(cmd.Name)
	if email == "" || name == "" || strings.TrimSpace(cmd.Password) == "" {
		return entities.Principal{}, domainerrors.ErrInvalidRegistration
	}

	if err := uc.checkIdentityFree(ctx, email); err != nil {
		return entities.Principal{}, err
	}
	if exists, err := uc.Repo.PartyProfileNameExists(ctx, name); err != nil {
		return entities.Principal{}, err
	} else if exists {
		return entities.Principal{}, domainerrors.ErrDuplicateProfile
	}

	now := uc.now()
	profileID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Principal{}, err
	}
	profile := entities.PartyProfile{
		ID:           profileID,
		Name:         name,
		Abbreviation: strings.TrimSpace(cmd.Abbreviation),
		Description:  strings.TrimSpace(cmd.Description),
		LeaderName:   strings.TrimSpace(cmd.LeaderName),
		Email:        email,
		CreatedAt:    now,
	}

	principal, err := uc.newPrincipal(ctx, email, cmd.Password, entities.RoleParty, profileID, now)
	if err != nil {
		return entities.Principal{}, err
	}
	if err := uc.Repo.CreatePartyPrincipal(ctx, principal, profile); err != nil {
		return entities.Principal{}, err
	}

	logger.Info("party registered",
		"event", "identity_party_registered",
		"module", "identity-access/principal-service",
		"layer", "application",
		"principal_id", principal.ID,
		"profile_id", profileID,
	)
	return principal, nil
}

func (uc RegisterUseCase) RegisterStaff(ctx context.Context, cmd RegisterStaffCommand) (entities.Principal, error) {
	logger := application.ResolveLogger(uc.Logger)
	email := normalizeEmail(cmd.Email)
	if email == "" || strings.TrimSpace(cmd.FullName) == "" || strings.TrimSpace(cmd.Password) == "" {
		return entities.Principal{}, domainerrors.ErrInvalidRegistration
	}

	if err := uc.checkIdentityFree(ctx, email); err != nil {
		return entities.Principal{}, err
	}
	if exists, err := uc.Repo.StaffProfileEmailExists(ctx, email); err != nil {
		return entities.Principal{}, err
	} else if exists {
		return entities.Principal{}, domainerrors.ErrDuplicateProfile
	}

	now := uc.now()
	profileID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Principal{}, err
	}
	profile := entities.StaffProfile{
		ID:             profileID,
		FullName:       strings.TrimSpace(cmd.FullName),
		Email:          email,
		Position:       strings.TrimSpace(cmd.Position),
		PollingStation: strings.TrimSpace(cmd.PollingStation),
		CreatedAt:      now,
	}

	principal, err := uc.newPrincipal(ctx, email, cmd.Password, entities.RoleStaff, profileID, now)
	if err != nil {
		return entities.Principal{}, err
	}
	if err := uc.Repo.CreateStaffPrincipal(ctx, principal, profile); err != nil {
		return entities.Principal{}, err
	}

	logger.Info("staff registered",
		"event", "identity_staff_registered",
		"module", "identity-access/principal-service",
		"layer", "application",
		"principal_id", principal.ID,
		"profile_id", profileID,
	)
	return principal, nil
}

// BootstrapAdmin guarantees the first admin principal exists. Repeated calls
// are idempotent: the natural key (email) is checked before insert and an
// existing principal is returned untouched.
func (uc RegisterUseCase) BootstrapAdmin(ctx context.Context, email string, password string) (entities.Principal, error) {
	logger := application.ResolveLogger(uc.Logger)
	email = normalizeEmail(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return entities.Principal{}, domainerrors.ErrInvalidRegistration
	}

	if existing, found, err := uc.Repo.GetPrincipalByEmail(ctx, email); err != nil {
		return entities.Principal{}, err
	} else if found {
		return existing, nil
	}

	principal, err := uc.newPrincipal(ctx, email, password, entities.RoleAdmin, "", uc.now())
	if err != nil {
		return entities.Principal{}, err
	}
	if err := uc.Repo.CreateAdminPrincipal(ctx, principal); err != nil {
		return entities.Principal{}, err
	}

	logger.Info("admin bootstrapped",
		"event", "identity_admin_bootstrapped",
		"module", "identity-access/principal-service",
		"layer", "application",
		"principal_id", principal.ID,
	)
	return principal, nil
}

func (uc RegisterUseCase) checkIdentityFree(ctx context.Context, email string) error {
	if _, found, err := uc.Repo.GetPrincipalByEmail(ctx, email); err != nil {
		return err
	} else if found {
		return domainerrors.ErrDuplicateIdentity
	}
	if _, found, err := uc.Repo.GetPrincipalByLogin(ctx, email); err != nil {
		return err
	} else if found {
		return domainerrors.ErrDuplicateIdentity
	}
	return nil
}

func (uc RegisterUseCase) newPrincipal(
	ctx context.Context,
	email string,
	password string,
	role entities.Role,
	linkedID string,
	now time.Time,
) (entities.Principal, error) {
	id, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Principal{}, err
	}
	hash, err := services.HashPassword(password)
	if err != nil {
		return entities.Principal{}, err
	}
	return entities.Principal{
		ID:           id,
		Email:        email,
		Login:        email,
		PasswordHash: hash,
		Role:         role,
		LinkedKind:   entities.LinkedKindForRole(role),
		LinkedID:     linkedID,
		Active:       true,
		CreatedAt:    now,
	}, nil
}

func (uc RegisterUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
