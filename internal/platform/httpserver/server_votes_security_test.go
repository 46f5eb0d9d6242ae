package httpserver

import (
	"net/http"
	"testing"

	votehttp "electra/contexts/election-core/vote-ledger/transport/http"
)

func TestCastVoteOverHTTP(t *testing.T) {
	server := newTestServer()
	seedOpenBallot(t, server, "ballot-1", "option-a", "option-b")

	email := uniqueEmail("voter")
	voter := registerVoter(t, server, email)
	server.votes.Store.SeedVoterProfile(voter.LinkedID)
	token := login(t, server, email, testPassword)

	payload := votehttp.CastVoteRequest{BallotID: "ballot-1", OptionID: "option-a"}

	if rr := doJSON(t, server, http.MethodPost, "/votes", "", payload); rr.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous cast: expected 401, got %d", rr.Code)
	}

	rr := doJSON(t, server, http.MethodPost, "/votes", token, payload)
	if rr.Code != http.StatusCreated {
		t.Fatalf("voter cast: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	vote := decodeBody[votehttp.VoteResponse](t, rr)
	if vote.VoterID != voter.LinkedID || vote.BallotID != "ballot-1" || vote.OptionID != "option-a" {
		t.Fatalf("unexpected vote: %+v", vote)
	}

	if again := doJSON(t, server, http.MethodPost, "/votes", token, payload); again.Code != http.StatusConflict {
		t.Fatalf("second cast: expected 409, got %d body=%s", again.Code, again.Body.String())
	}

	status := decodeBody[votehttp.VoteStatusResponse](t, doJSON(t, server, http.MethodGet, "/auth/me/votes/ballot-1", token, nil))
	if !status.HasVoted || status.VoteID != vote.VoteID {
		t.Fatalf("unexpected vote status: %+v", status)
	}
}

func TestCastRequiresVoterProfile(t *testing.T) {
	server := newTestServer()
	seedOpenBallot(t, server, "ballot-1", "option-a")

	admin := adminToken(t, server)
	payload := votehttp.CastVoteRequest{BallotID: "ballot-1", OptionID: "option-a"}
	if rr := doJSON(t, server, http.MethodPost, "/votes", admin, payload); rr.Code != http.StatusForbidden {
		t.Fatalf("admin cast without voter profile: expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestVoteInspectionRequiresAdmin(t *testing.T) {
	server := newTestServer()
	seedOpenBallot(t, server, "ballot-1", "option-a")

	email := uniqueEmail("voter")
	voter := registerVoter(t, server, email)
	server.votes.Store.SeedVoterProfile(voter.LinkedID)
	token := login(t, server, email, testPassword)

	cast := doJSON(t, server, http.MethodPost, "/votes", token, votehttp.CastVoteRequest{BallotID: "ballot-1", OptionID: "option-a"})
	if cast.Code != http.StatusCreated {
		t.Fatalf("cast failed: %d %s", cast.Code, cast.Body.String())
	}
	voteID := decodeBody[votehttp.VoteResponse](t, cast).VoteID

	if rr := doJSON(t, server, http.MethodGet, "/votes/"+voteID, token, nil); rr.Code != http.StatusForbidden {
		t.Fatalf("voter vote read: expected 403, got %d", rr.Code)
	}
	if rr := doJSON(t, server, http.MethodGet, "/ballots/ballot-1/votes", token, nil); rr.Code != http.StatusForbidden {
		t.Fatalf("voter ballot votes: expected 403, got %d", rr.Code)
	}

	staffEmail := uniqueEmail("staff")
	registerStaff(t, server, staffEmail)
	staffToken := login(t, server, staffEmail, testPassword)
	if rr := doJSON(t, server, http.MethodGet, "/votes/"+voteID, staffToken, nil); rr.Code != http.StatusForbidden {
		t.Fatalf("staff vote read: expected 403, got %d", rr.Code)
	}

	admin := adminToken(t, server)
	if rr := doJSON(t, server, http.MethodGet, "/votes/"+voteID, admin, nil); rr.Code != http.StatusOK {
		t.Fatalf("admin vote read: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	list := decodeBody[votehttp.VoteListResponse](t, doJSON(t, server, http.MethodGet, "/ballots/ballot-1/votes", admin, nil))
	if len(list.Votes) != 1 {
		t.Fatalf("expected 1 vote in listing, got %+v", list)
	}
}

func TestVoteRemovalRequiresAdmin(t *testing.T) {
	server := newTestServer()
	seedOpenBallot(t, server, "ballot-1", "option-a")

	email := uniqueEmail("voter")
	voter := registerVoter(t, server, email)
	server.votes.Store.SeedVoterProfile(voter.LinkedID)
	token := login(t, server, email, testPassword)

	cast := doJSON(t, server, http.MethodPost, "/votes", token, votehttp.CastVoteRequest{BallotID: "ballot-1", OptionID: "option-a"})
	voteID := decodeBody[votehttp.VoteResponse](t, cast).VoteID

	if rr := doJSON(t, server, http.MethodDelete, "/votes/"+voteID, token, nil); rr.Code != http.StatusForbidden {
		t.Fatalf("voter remove: expected 403, got %d", rr.Code)
	}

	admin := adminToken(t, server)
	if rr := doJSON(t, server, http.MethodDelete, "/votes/"+voteID, admin, nil); rr.Code != http.StatusOK {
		t.Fatalf("admin remove: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	// After removal the voter can cast again.
	if rr := doJSON(t, server, http.MethodPost, "/votes", token, votehttp.CastVoteRequest{BallotID: "ballot-1", OptionID: "option-a"}); rr.Code != http.StatusCreated {
		t.Fatalf("recast after removal: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
}
