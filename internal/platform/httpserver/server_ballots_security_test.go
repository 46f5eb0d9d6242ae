package httpserver

import (
	"net/http"
	"testing"
	"time"

	ballothttp "electra/contexts/election-core/ballot-service/transport/http"
)

func createBallotPayload() ballothttp.CreateBallotRequest {
	now := time.Now().UTC()
	return ballothttp.CreateBallotRequest{
		Name:  "City Council 2026",
		Kind:  "municipal",
		Start: now.Add(time.Hour).Format(time.RFC3339),
		End:   now.Add(48 * time.Hour).Format(time.RFC3339),
		Options: []ballothttp.OptionRequest{
			{Name: "Alpha Party"},
			{Name: "Beta Party"},
		},
	}
}

func TestBallotCreationRequiresAdmin(t *testing.T) {
	server := newTestServer()

	if rr := doJSON(t, server, http.MethodPost, "/ballots", "", createBallotPayload()); rr.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous create: expected 401, got %d", rr.Code)
	}

	voterEmail := uniqueEmail("voter")
	registerVoter(t, server, voterEmail)
	voterToken := login(t, server, voterEmail, testPassword)
	if rr := doJSON(t, server, http.MethodPost, "/ballots", voterToken, createBallotPayload()); rr.Code != http.StatusForbidden {
		t.Fatalf("voter create: expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}

	staffEmail := uniqueEmail("staff")
	registerStaff(t, server, staffEmail)
	staffToken := login(t, server, staffEmail, testPassword)
	if rr := doJSON(t, server, http.MethodPost, "/ballots", staffToken, createBallotPayload()); rr.Code != http.StatusForbidden {
		t.Fatalf("staff create: expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}

	admin := adminToken(t, server)
	rr := doJSON(t, server, http.MethodPost, "/ballots", admin, createBallotPayload())
	if rr.Code != http.StatusCreated {
		t.Fatalf("admin create: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	created := decodeBody[ballothttp.BallotResponse](t, rr)
	if created.BallotID == "" || created.Status != "planned" {
		t.Fatalf("unexpected created ballot: %+v", created)
	}
}

func TestBallotListingIsPublic(t *testing.T) {
	server := newTestServer()
	admin := adminToken(t, server)
	createRR := doJSON(t, server, http.MethodPost, "/ballots", admin, createBallotPayload())
	if createRR.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", createRR.Code, createRR.Body.String())
	}
	created := decodeBody[ballothttp.BallotResponse](t, createRR)

	listRR := doJSON(t, server, http.MethodGet, "/ballots", "", nil)
	if listRR.Code != http.StatusOK {
		t.Fatalf("anonymous list: expected 200, got %d", listRR.Code)
	}
	list := decodeBody[ballothttp.BallotListResponse](t, listRR)
	if len(list.Ballots) != 1 || list.Ballots[0].BallotID != created.BallotID {
		t.Fatalf("unexpected listing: %+v", list)
	}

	getRR := doJSON(t, server, http.MethodGet, "/ballots/"+created.BallotID, "", nil)
	if getRR.Code != http.StatusOK {
		t.Fatalf("anonymous get: expected 200, got %d", getRR.Code)
	}
	single := decodeBody[ballothttp.BallotResponse](t, getRR)
	if len(single.Options) != 2 {
		t.Fatalf("expected 2 options on detail view, got %+v", single.Options)
	}
}

func TestBallotLifecycleTransitionsRequireAdmin(t *testing.T) {
	server := newTestServer()
	admin := adminToken(t, server)
	created := decodeBody[ballothttp.BallotResponse](t, doJSON(t, server, http.MethodPost, "/ballots", admin, createBallotPayload()))

	voterEmail := uniqueEmail("voter")
	registerVoter(t, server, voterEmail)
	voterToken := login(t, server, voterEmail, testPassword)

	openPath := "/ballots/" + created.BallotID + "/open"
	closePath := "/ballots/" + created.BallotID + "/close"

	if rr := doJSON(t, server, http.MethodPost, openPath, voterToken, nil); rr.Code != http.StatusForbidden {
		t.Fatalf("voter open: expected 403, got %d", rr.Code)
	}

	openRR := doJSON(t, server, http.MethodPost, openPath, admin, nil)
	if openRR.Code != http.StatusOK {
		t.Fatalf("admin open: expected 200, got %d body=%s", openRR.Code, openRR.Body.String())
	}
	if got := decodeBody[ballothttp.BallotResponse](t, openRR).Status; got != "active" {
		t.Fatalf("expected active after open, got %q", got)
	}

	// Opening twice is a state conflict, not a permission problem.
	if rr := doJSON(t, server, http.MethodPost, openPath, admin, nil); rr.Code != http.StatusConflict {
		t.Fatalf("double open: expected 409, got %d", rr.Code)
	}

	closeRR := doJSON(t, server, http.MethodPost, closePath, admin, nil)
	if closeRR.Code != http.StatusOK {
		t.Fatalf("admin close: expected 200, got %d body=%s", closeRR.Code, closeRR.Body.String())
	}
	if got := decodeBody[ballothttp.BallotResponse](t, closeRR).Status; got != "closed" {
		t.Fatalf("expected closed after close, got %q", got)
	}
}

func TestBallotEditLockAfterOpening(t *testing.T) {
	server := newTestServer()
	admin := adminToken(t, server)
	created := decodeBody[ballothttp.BallotResponse](t, doJSON(t, server, http.MethodPost, "/ballots", admin, createBallotPayload()))

	optionPath := "/ballots/" + created.BallotID + "/options"
	if rr := doJSON(t, server, http.MethodPost, optionPath, admin, ballothttp.OptionRequest{Name: "Gamma Party"}); rr.Code != http.StatusCreated {
		t.Fatalf("add option while planned: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	if rr := doJSON(t, server, http.MethodPost, "/ballots/"+created.BallotID+"/open", admin, nil); rr.Code != http.StatusOK {
		t.Fatalf("open failed: %d %s", rr.Code, rr.Body.String())
	}

	if rr := doJSON(t, server, http.MethodPost, optionPath, admin, ballothttp.OptionRequest{Name: "Delta Party"}); rr.Code != http.StatusConflict {
		t.Fatalf("add option while active: expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}

	update := ballothttp.UpdateBallotRequest{
		Name:  "Renamed",
		Start: created.Start,
		End:   created.End,
	}
	if rr := doJSON(t, server, http.MethodPut, "/ballots/"+created.BallotID, admin, update); rr.Code != http.StatusConflict {
		t.Fatalf("update while active: expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}
}
