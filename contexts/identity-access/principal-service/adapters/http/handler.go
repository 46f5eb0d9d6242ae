package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"electra/contexts/identity-access/principal-service/application/commands"
	"electra/contexts/identity-access/principal-service/application/queries"
	"electra/contexts/identity-access/principal-service/domain/entities"
	domainerrors "electra/contexts/identity-access/principal-service/domain/errors"
	httptransport "electra/contexts/identity-access/principal-service/transport/http"
)

const dateLayout = "2006-01-02"

type Handler struct {
	Register commands.RegisterUseCase
	Auth     commands.AuthenticateUseCase
	Loader   queries.LoadUseCase
	Logger   *slog.Logger
}

func (h Handler) RegisterVoterHandler(ctx context.Context, req httptransport.RegisterVoterRequest) (httptransport.PrincipalResponse, error) {
	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return httptransport.PrincipalResponse{}, domainerrors.ErrInvalidRegistration
	}
	principal, err := h.Register.RegisterVoter(ctx, commands.RegisterVoterCommand{
		FullName:    req.FullName,
		DateOfBirth: dob,
		Address:     req.Address,
		Email:       req.Email,
		Phone:       req.Phone,
		Password:    req.Password,
	})
	if err != nil {
		return httptransport.PrincipalResponse{}, err
	}
	return principalResponse(principal), nil
}

func (h Handler) RegisterPartyHandler(ctx context.Context, req httptransport.RegisterPartyRequest) (httptransport.PrincipalResponse, error) {
	principal, err := h.Register.RegisterParty(ctx, commands.RegisterPartyCommand{
		Name:         req.Name,
		Abbreviation: req.Abbreviation,
		Description:  req.Description,
		LeaderName:   req.LeaderName,
		Email:        req.Email,
		Password:     req.Password,
	})
	if err != nil {
		return httptransport.PrincipalResponse{}, err
	}
	return principalResponse(principal), nil
}

func (h Handler) RegisterStaffHandler(ctx context.Context, req httptransport.RegisterStaffRequest) (httptransport.PrincipalResponse, error) {
	principal, err := h.Register.RegisterStaff(ctx, commands.RegisterStaffCommand{
		FullName:       req.FullName,
		Email:          req.Email,
		Position:       req.Position,
		PollingStation: req.PollingStation,
		Password:       req.Password,
	})
	if err != nil {
		return httptransport.PrincipalResponse{}, err
	}
	return principalResponse(principal), nil
}

func (h Handler) AuthenticateHandler(ctx context.Context, req httptransport.LoginRequest) (entities.Principal, error) {
	return h.Auth.Authenticate(ctx, req.Login, req.Password)
}

func (h Handler) MeHandler(ctx context.Context, principal entities.Principal) httptransport.PrincipalResponse {
	return principalResponse(principal)
}

func (h Handler) ProfileHandler(ctx context.Context, principal entities.Principal) (httptransport.ProfileResponse, error) {
	profile, err := h.Loader.ProfileOf(ctx, principal)
	if err != nil {
		return httptransport.ProfileResponse{}, err
	}
	return profileResponse(profile), nil
}

func (h Handler) VoterProfileHandler(ctx context.Context, profileID string) (httptransport.VoterProfileResponse, error) {
	voter, err := h.Loader.VoterProfile(ctx, profileID)
	if err != nil {
		return httptransport.VoterProfileResponse{}, err
	}
	resp := voterProfileResponse(voter)
	return resp, nil
}

func principalResponse(principal entities.Principal) httptransport.PrincipalResponse {
	return httptransport.PrincipalResponse{
		PrincipalID: principal.ID,
		Email:       principal.Email,
		Login:       principal.Login,
		Role:        string(principal.Role),
		LinkedKind:  string(principal.LinkedKind),
		LinkedID:    principal.LinkedID,
		Active:      principal.Active,
		CreatedAt:   principal.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func profileResponse(profile queries.Profile) httptransport.ProfileResponse {
	switch profile.Kind {
	case entities.LinkedVoter:
		voter := voterProfileResponse(profile.Voter)
		return httptransport.ProfileResponse{Kind: string(profile.Kind), Voter: &voter}
	case entities.LinkedParty:
		party := httptransport.PartyProfileResponse{
			ProfileID:    profile.Party.ID,
			Name:         profile.Party.Name,
			Abbreviation: profile.Party.Abbreviation,
			Description:  profile.Party.Description,
			LeaderName:   profile.Party.LeaderName,
			Email:        profile.Party.Email,
		}
		return httptransport.ProfileResponse{Kind: string(profile.Kind), Party: &party}
	case entities.LinkedStaff:
		staff := httptransport.StaffProfileResponse{
			ProfileID:      profile.Staff.ID,
			FullName:       profile.Staff.FullName,
			Email:          profile.Staff.Email,
			Position:       profile.Staff.Position,
			PollingStation: profile.Staff.PollingStation,
		}
		return httptransport.ProfileResponse{Kind: string(profile.Kind), Staff: &staff}
	default:
		return httptransport.ProfileResponse{Kind: string(profile.Kind)}
	}
}

func voterProfileResponse(voter entities.VoterProfile) httptransport.VoterProfileResponse {
	resp := httptransport.VoterProfileResponse{
		ProfileID: voter.ID,
		FullName:  voter.FullName,
		Address:   voter.Address,
		Email:     voter.Email,
		Phone:     voter.Phone,
	}
	if !voter.DateOfBirth.IsZero() {
		resp.DateOfBirth = voter.DateOfBirth.UTC().Format(dateLayout)
	}
	return resp
}

func parseDate(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, strings.TrimSpace(raw))
}
