package httpserver

import (
	"net/http"

	votehttp "electra/contexts/election-core/vote-ledger/transport/http"
	authzentities "electra/contexts/identity-access/authorization-service/domain/entities"
)

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	req, ok := s.authorize(w, r, authzentities.ActionVoteCast, authzentities.Resource{Kind: "vote"})
	if !ok {
		return
	}
	profileID, ok := requireVoterProfile(w, req.Principal)
	if !ok {
		return
	}

	var body votehttp.CastVoteRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	resp, err := s.votes.Handler.CastVoteHandler(r.Context(), profileID, body)
	if err != nil {
		writeVoteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetVote(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorize(w, r, authzentities.ActionVoteRead, authzentities.Resource{Kind: "vote"}); !ok {
		return
	}
	resp, err := s.votes.Handler.GetVoteHandler(r.Context(), r.PathValue("vote_id"))
	if err != nil {
		writeVoteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRemoveVote(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorize(w, r, authzentities.ActionVoteRemove, authzentities.Resource{Kind: "vote"}); !ok {
		return
	}
	resp, err := s.votes.Handler.RemoveVoteHandler(r.Context(), r.PathValue("vote_id"))
	if err != nil {
		writeVoteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListBallotVotes(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorize(w, r, authzentities.ActionVoteList, authzentities.Resource{Kind: "vote"}); !ok {
		return
	}
	resp, err := s.votes.Handler.ListBallotVotesHandler(r.Context(), r.PathValue("ballot_id"))
	if err != nil {
		writeVoteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleMyVotes and handleMyVoteStatus are the voter's own participation
// reads; they reuse the vote.cast grant since both are scoped to the
// caller's profile.
func (s *Server) handleMyVotes(w http.ResponseWriter, r *http.Request) {
	req, ok := s.authorize(w, r, authzentities.ActionVoteCast, authzentities.Resource{Kind: "vote"})
	if !ok {
		return
	}
	profileID, ok := requireVoterProfile(w, req.Principal)
	if !ok {
		return
	}
	resp, err := s.votes.Handler.ListVoterVotesHandler(r.Context(), profileID)
	if err != nil {
		writeVoteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMyVoteStatus(w http.ResponseWriter, r *http.Request) {
	req, ok := s.authorize(w, r, authzentities.ActionVoteCast, authzentities.Resource{Kind: "vote"})
	if !ok {
		return
	}
	profileID, ok := requireVoterProfile(w, req.Principal)
	if !ok {
		return
	}
	resp, err := s.votes.Handler.VoteStatusHandler(r.Context(), profileID, r.PathValue("ballot_id"))
	if err != nil {
		writeVoteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
