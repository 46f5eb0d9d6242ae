package httpserver

import (
	"net/http"
	"time"

	authzentities "electra/contexts/identity-access/authorization-service/domain/entities"
	principalentities "electra/contexts/identity-access/principal-service/domain/entities"
	principalhttp "electra/contexts/identity-access/principal-service/transport/http"
)

func (s *Server) handleRegisterVoter(w http.ResponseWriter, r *http.Request) {
	var req principalhttp.RegisterVoterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.principals.Handler.RegisterVoterHandler(r.Context(), req)
	if err != nil {
		writeIdentityError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleRegisterParty(w http.ResponseWriter, r *http.Request) {
	var req principalhttp.RegisterPartyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.principals.Handler.RegisterPartyHandler(r.Context(), req)
	if err != nil {
		writeIdentityError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleRegisterStaff(w http.ResponseWriter, r *http.Request) {
	var req principalhttp.RegisterStaffRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.principals.Handler.RegisterStaffHandler(r.Context(), req)
	if err != nil {
		writeIdentityError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req principalhttp.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	principal, err := s.principals.Handler.AuthenticateHandler(r.Context(), req)
	if err != nil {
		writeIdentityError(w, err)
		return
	}

	token, expiresAt, err := s.tokens.Tokens.Issue(principal.ID, string(principal.Role))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, principalhttp.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt.UTC().Format(time.RFC3339),
		Principal:   s.principals.Handler.MeHandler(r.Context(), principal),
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	req, ok := s.resolveRequester(w, r)
	if !ok {
		return
	}
	if !s.decide(w, req, authzentities.ActionPrincipalRead, authzentities.Resource{
		Kind:           "principal",
		OwnerProfileID: req.Ref.ProfileID,
		Owned:          true,
	}) {
		return
	}
	writeJSON(w, http.StatusOK, s.principals.Handler.MeHandler(r.Context(), req.Principal))
}

func (s *Server) handleMyProfile(w http.ResponseWriter, r *http.Request) {
	req, ok := s.resolveRequester(w, r)
	if !ok {
		return
	}
	if !s.decide(w, req, authzentities.ActionProfileRead, authzentities.Resource{
		Kind:           "profile",
		OwnerProfileID: req.Ref.ProfileID,
		Owned:          true,
	}) {
		return
	}
	resp, err := s.principals.Handler.ProfileHandler(r.Context(), req.Principal)
	if err != nil {
		writeIdentityError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleGetPrincipal serves one principal record. Principal records carry an
// email, so reads are scoped to the record's owner, staff, and admins.
func (s *Server) handleGetPrincipal(w http.ResponseWriter, r *http.Request) {
	req, ok := s.resolveRequester(w, r)
	if !ok {
		return
	}
	if req.Ref.Anonymous {
		writeError(w, http.StatusUnauthorized, "authentication_required", "authentication is required")
		return
	}

	principal, err := s.principals.Loader.Load(r.Context(), r.PathValue("principal_id"))
	if err != nil {
		writeIdentityError(w, err)
		return
	}
	if !s.decide(w, req, authzentities.ActionPrincipalRead, authzentities.Resource{
		Kind:           "principal",
		OwnerProfileID: principal.LinkedID,
		Owned:          true,
	}) {
		return
	}
	writeJSON(w, http.StatusOK, s.principals.Handler.MeHandler(r.Context(), principal))
}

func (s *Server) handleGetVoterProfile(w http.ResponseWriter, r *http.Request) {
	profileID := r.PathValue("profile_id")
	if _, ok := s.authorize(w, r, authzentities.ActionProfileRead, authzentities.Resource{
		Kind:           "profile",
		OwnerProfileID: profileID,
		Owned:          true,
	}); !ok {
		return
	}
	resp, err := s.principals.Handler.VoterProfileHandler(r.Context(), profileID)
	if err != nil {
		writeIdentityError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// requireVoterProfile rejects principals that do not carry a voter profile
// link. Used by the voter-scoped /auth/me subresources.
func requireVoterProfile(w http.ResponseWriter, principal principalentities.Principal) (string, bool) {
	if principal.LinkedKind != principalentities.LinkedVoter || principal.LinkedID == "" {
		writeError(w, http.StatusForbidden, "voter_profile_required", "a voter profile is required")
		return "", false
	}
	return principal.LinkedID, true
}
