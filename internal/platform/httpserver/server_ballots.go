package httpserver

import (
	"net/http"

	ballothttp "electra/contexts/election-core/ballot-service/transport/http"
	authzentities "electra/contexts/identity-access/authorization-service/domain/entities"
)

func (s *Server) handleCreateBallot(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorize(w, r, authzentities.ActionBallotCreate, authzentities.Resource{Kind: "ballot"}); !ok {
		return
	}
	var req ballothttp.CreateBallotRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.ballots.Handler.CreateBallotHandler(r.Context(), req)
	if err != nil {
		writeBallotError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListBallots(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorize(w, r, authzentities.ActionBallotList, authzentities.Resource{Kind: "ballot"}); !ok {
		return
	}
	resp, err := s.ballots.Handler.ListBallotsHandler(r.Context())
	if err != nil {
		writeBallotError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetBallot(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorize(w, r, authzentities.ActionBallotRead, authzentities.Resource{Kind: "ballot"}); !ok {
		return
	}
	resp, err := s.ballots.Handler.GetBallotHandler(r.Context(), r.PathValue("ballot_id"))
	if err != nil {
		writeBallotError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateBallot(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorize(w, r, authzentities.ActionBallotUpdate, authzentities.Resource{Kind: "ballot"}); !ok {
		return
	}
	var req ballothttp.UpdateBallotRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.ballots.Handler.UpdateBallotHandler(r.Context(), r.PathValue("ballot_id"), req)
	if err != nil {
		writeBallotError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddBallotOption(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorize(w, r, authzentities.ActionBallotUpdate, authzentities.Resource{Kind: "ballot"}); !ok {
		return
	}
	var req ballothttp.OptionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.ballots.Handler.AddOptionHandler(r.Context(), r.PathValue("ballot_id"), req)
	if err != nil {
		writeBallotError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleOpenBallot(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorize(w, r, authzentities.ActionBallotOpen, authzentities.Resource{Kind: "ballot"}); !ok {
		return
	}
	resp, err := s.ballots.Handler.OpenBallotHandler(r.Context(), r.PathValue("ballot_id"))
	if err != nil {
		writeBallotError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCloseBallot(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorize(w, r, authzentities.ActionBallotClose, authzentities.Resource{Kind: "ballot"}); !ok {
		return
	}
	resp, err := s.ballots.Handler.CloseBallotHandler(r.Context(), r.PathValue("ballot_id"))
	if err != nil {
		writeBallotError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
