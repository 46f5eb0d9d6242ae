package httpserver

import (
	"net/http"

	authzentities "electra/contexts/identity-access/authorization-service/domain/entities"
)

func (s *Server) handleBallotResults(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorize(w, r, authzentities.ActionResultRead, authzentities.Resource{Kind: "result"}); !ok {
		return
	}
	resp, err := s.results.Handler.ResultsHandler(r.Context(), r.PathValue("ballot_id"))
	if err != nil {
		writeResultError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRefreshResults(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorize(w, r, authzentities.ActionResultRefresh, authzentities.Resource{Kind: "result"}); !ok {
		return
	}
	resp, err := s.results.Handler.RefreshHandler(r.Context(), r.PathValue("ballot_id"))
	if err != nil {
		writeResultError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
