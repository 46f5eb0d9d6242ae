package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	complaintservice "electra/contexts/civic-feedback/complaint-service"
	complainterrors "electra/contexts/civic-feedback/complaint-service/domain/errors"
	ballotservice "electra/contexts/election-core/ballot-service"
	balloterrors "electra/contexts/election-core/ballot-service/domain/errors"
	resultaggregator "electra/contexts/election-core/result-aggregator"
	resulterrors "electra/contexts/election-core/result-aggregator/domain/errors"
	voteledger "electra/contexts/election-core/vote-ledger"
	voteerrors "electra/contexts/election-core/vote-ledger/domain/errors"
	authorization "electra/contexts/identity-access/authorization-service"
	authzentities "electra/contexts/identity-access/authorization-service/domain/entities"
	principalservice "electra/contexts/identity-access/principal-service"
	principalentities "electra/contexts/identity-access/principal-service/domain/entities"
	principalerrors "electra/contexts/identity-access/principal-service/domain/errors"
	tokenservice "electra/contexts/identity-access/token-service"
	tokenerrors "electra/contexts/identity-access/token-service/domain/errors"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "electra/internal/platform/httpserver/docs"
)

type Server struct {
	mux           *http.ServeMux
	logger        *slog.Logger
	addr          string
	principals    principalservice.Module
	tokens        tokenservice.Module
	authorization authorization.Module
	ballots       ballotservice.Module
	votes         voteledger.Module
	results       resultaggregator.Module
	complaints    complaintservice.Module
}

type Modules struct {
	Principals    principalservice.Module
	Tokens        tokenservice.Module
	Authorization authorization.Module
	Ballots       ballotservice.Module
	Votes         voteledger.Module
	Results       resultaggregator.Module
	Complaints    complaintservice.Module
}

func New(modules Modules, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:           http.NewServeMux(),
		logger:        logger,
		addr:          addr,
		principals:    modules.Principals,
		tokens:        modules.Tokens,
		authorization: modules.Authorization,
		ballots:       modules.Ballots,
		votes:         modules.Votes,
		results:       modules.Results,
		complaints:    modules.Complaints,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for in-process tests.
func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	s.mux.HandleFunc("POST /auth/register/voter", s.handleRegisterVoter)
	s.mux.HandleFunc("POST /auth/register/party", s.handleRegisterParty)
	s.mux.HandleFunc("POST /auth/register/staff", s.handleRegisterStaff)
	s.mux.HandleFunc("POST /auth/login", s.handleLogin)
	s.mux.HandleFunc("GET /auth/me", s.handleMe)
	s.mux.HandleFunc("GET /auth/me/profile", s.handleMyProfile)
	s.mux.HandleFunc("GET /auth/me/votes", s.handleMyVotes)
	s.mux.HandleFunc("GET /auth/me/votes/{ballot_id}", s.handleMyVoteStatus)
	s.mux.HandleFunc("GET /auth/me/complaints", s.handleMyComplaints)
	s.mux.HandleFunc("GET /principals/{principal_id}", s.handleGetPrincipal)
	s.mux.HandleFunc("GET /profiles/voters/{profile_id}", s.handleGetVoterProfile)

	s.mux.HandleFunc("POST /ballots", s.handleCreateBallot)
	s.mux.HandleFunc("GET /ballots", s.handleListBallots)
	s.mux.HandleFunc("GET /ballots/{ballot_id}", s.handleGetBallot)
	s.mux.HandleFunc("PUT /ballots/{ballot_id}", s.handleUpdateBallot)
	s.mux.HandleFunc("POST /ballots/{ballot_id}/options", s.handleAddBallotOption)
	s.mux.HandleFunc("POST /ballots/{ballot_id}/open", s.handleOpenBallot)
	s.mux.HandleFunc("POST /ballots/{ballot_id}/close", s.handleCloseBallot)

	s.mux.HandleFunc("POST /votes", s.handleCastVote)
	s.mux.HandleFunc("GET /votes/{vote_id}", s.handleGetVote)
	s.mux.HandleFunc("DELETE /votes/{vote_id}", s.handleRemoveVote)
	s.mux.HandleFunc("GET /ballots/{ballot_id}/votes", s.handleListBallotVotes)

	s.mux.HandleFunc("GET /ballots/{ballot_id}/results", s.handleBallotResults)
	s.mux.HandleFunc("POST /ballots/{ballot_id}/results/refresh", s.handleRefreshResults)

	s.mux.HandleFunc("POST /complaints", s.handleFileComplaint)
	s.mux.HandleFunc("GET /complaints", s.handleListComplaints)
	s.mux.HandleFunc("GET /complaints/{complaint_id}", s.handleGetComplaint)
	s.mux.HandleFunc("POST /complaints/{complaint_id}/resolve", s.handleResolveComplaint)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requester is the resolved caller of a request. A nil principal together
// with Anonymous=true means no credentials were presented.
type requester struct {
	Principal principalentities.Principal
	Ref       authzentities.PrincipalRef
}

// resolveRequester turns the bearer token, when present, into a live
// principal. Requests without an Authorization header proceed as anonymous;
// a presented but invalid token is always a 401.
func (s *Server) resolveRequester(w http.ResponseWriter, r *http.Request) (requester, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return requester{Ref: authzentities.PrincipalRef{Anonymous: true}}, true
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		writeError(w, http.StatusUnauthorized, "invalid_token", "authorization header must be a bearer token")
		return requester{}, false
	}

	claims, err := s.tokens.Tokens.Validate(strings.TrimSpace(token))
	if err != nil {
		writeTokenError(w, err)
		return requester{}, false
	}

	principal, err := s.principals.Loader.Load(r.Context(), claims.PrincipalID)
	if err != nil {
		switch {
		case errors.Is(err, principalerrors.ErrPrincipalNotFound):
			writeError(w, http.StatusUnauthorized, "invalid_token", "token subject is unknown")
		case errors.Is(err, principalerrors.ErrPrincipalInactive):
			writeError(w, http.StatusForbidden, "principal_inactive", "principal is deactivated")
		case errors.Is(err, principalerrors.ErrUnavailable):
			writeError(w, http.StatusServiceUnavailable, "unavailable", "service temporarily unavailable")
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		}
		return requester{}, false
	}

	return requester{
		Principal: principal,
		Ref: authzentities.PrincipalRef{
			ID:        principal.ID,
			Role:      string(principal.Role),
			ProfileID: principal.LinkedID,
		},
	}, true
}

// authorize resolves the requester and evaluates the policy for action
// against resource, writing the HTTP error itself on failure.
func (s *Server) authorize(
	w http.ResponseWriter,
	r *http.Request,
	action authzentities.Action,
	resource authzentities.Resource,
) (requester, bool) {
	req, ok := s.resolveRequester(w, r)
	if !ok {
		return requester{}, false
	}
	if !s.decide(w, req, action, resource) {
		return requester{}, false
	}
	return req, true
}

// decide evaluates the policy for an already-resolved requester, writing
// the HTTP error itself on denial.
func (s *Server) decide(
	w http.ResponseWriter,
	req requester,
	action authzentities.Action,
	resource authzentities.Resource,
) bool {
	decision := s.authorization.Decide(req.Ref, action, resource)
	if !decision.Allowed {
		if req.Ref.Anonymous {
			writeError(w, http.StatusUnauthorized, "authentication_required", "authentication is required")
		} else {
			writeError(w, http.StatusForbidden, "permission_denied", "permission denied")
		}
		return false
	}
	return true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return false
	}
	return true
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, errorBody{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeTokenError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tokenerrors.ErrTokenExpired):
		writeError(w, http.StatusUnauthorized, "token_expired", "token has expired")
	case errors.Is(err, tokenerrors.ErrMalformedSubject):
		writeError(w, http.StatusUnauthorized, "invalid_token", "token subject is malformed")
	default:
		writeError(w, http.StatusUnauthorized, "invalid_token", "token is invalid")
	}
}

func writeIdentityError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, principalerrors.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, principalerrors.ErrPrincipalInactive):
		writeError(w, http.StatusForbidden, "principal_inactive", err.Error())
	case errors.Is(err, principalerrors.ErrPrincipalNotFound),
		errors.Is(err, principalerrors.ErrProfileNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, principalerrors.ErrDuplicateIdentity),
		errors.Is(err, principalerrors.ErrDuplicateProfile):
		writeError(w, http.StatusConflict, "duplicate", err.Error())
	case errors.Is(err, principalerrors.ErrInvalidRegistration),
		errors.Is(err, principalerrors.ErrUnknownRole):
		writeError(w, http.StatusUnprocessableEntity, "invalid_registration", err.Error())
	case errors.Is(err, principalerrors.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "unavailable", "service temporarily unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeBallotError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, balloterrors.ErrBallotNotFound),
		errors.Is(err, balloterrors.ErrOptionNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, balloterrors.ErrInvalidBallotInput):
		writeError(w, http.StatusUnprocessableEntity, "invalid_ballot", err.Error())
	case errors.Is(err, balloterrors.ErrInvalidTransition),
		errors.Is(err, balloterrors.ErrBallotNotEditable):
		writeError(w, http.StatusConflict, "ballot_state_conflict", err.Error())
	case errors.Is(err, balloterrors.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "unavailable", "service temporarily unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeVoteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, voteerrors.ErrBallotNotFound),
		errors.Is(err, voteerrors.ErrVoteNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, voteerrors.ErrAlreadyVoted):
		writeError(w, http.StatusConflict, "already_voted", err.Error())
	case errors.Is(err, voteerrors.ErrBallotNotOpen):
		writeError(w, http.StatusConflict, "ballot_not_open", err.Error())
	case errors.Is(err, voteerrors.ErrOptionNotInBallot):
		writeError(w, http.StatusUnprocessableEntity, "option_not_in_ballot", err.Error())
	case errors.Is(err, voteerrors.ErrVoterProfileRequired):
		writeError(w, http.StatusForbidden, "voter_profile_required", err.Error())
	case errors.Is(err, voteerrors.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "unavailable", "service temporarily unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeResultError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, resulterrors.ErrBallotNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, resulterrors.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "unavailable", "service temporarily unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeComplaintError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, complainterrors.ErrComplaintNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, complainterrors.ErrAlreadyResolved):
		writeError(w, http.StatusConflict, "already_resolved", err.Error())
	case errors.Is(err, complainterrors.ErrInvalidComplaint):
		writeError(w, http.StatusUnprocessableEntity, "invalid_complaint", err.Error())
	case errors.Is(err, complainterrors.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "unavailable", "service temporarily unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
