package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	complaintservice "electra/contexts/civic-feedback/complaint-service"
	ballotservice "electra/contexts/election-core/ballot-service"
	resultaggregator "electra/contexts/election-core/result-aggregator"
	voteledger "electra/contexts/election-core/vote-ledger"
	voteports "electra/contexts/election-core/vote-ledger/ports"
	authorization "electra/contexts/identity-access/authorization-service"
	principalservice "electra/contexts/identity-access/principal-service"
	principalhttp "electra/contexts/identity-access/principal-service/transport/http"
	tokenservice "electra/contexts/identity-access/token-service"
	"electra/internal/platform/messaging"
)

const (
	testAdminEmail    = "admin@example.org"
	testAdminPassword = "bootstrap secret"
	testPassword      = "correct horse"
)

func newTestServer() *Server {
	modules := Modules{
		Principals:    principalservice.NewInMemoryModule(nil),
		Tokens:        tokenservice.NewModule(tokenservice.Dependencies{Secret: []byte("test-secret")}),
		Authorization: authorization.NewModule(nil),
		Ballots:       ballotservice.NewInMemoryModule(nil),
		Votes:         voteledger.NewInMemoryModule(messaging.NewBus(nil), nil),
		Results:       resultaggregator.NewInMemoryModule(nil),
		Complaints:    complaintservice.NewInMemoryModule(nil),
	}
	return New(modules, nil, ":0")
}

func doJSON(t *testing.T, server *Server, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return out
}

func registerVoter(t *testing.T, server *Server, email string) principalhttp.PrincipalResponse {
	t.Helper()
	rr := doJSON(t, server, http.MethodPost, "/auth/register/voter", "", principalhttp.RegisterVoterRequest{
		FullName:    "Ada Quorum",
		DateOfBirth: "1990-05-01",
		Address:     "1 Precinct Way",
		Email:       email,
		Phone:       "555-0100",
		Password:    testPassword,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("voter registration failed: %d %s", rr.Code, rr.Body.String())
	}
	return decodeBody[principalhttp.PrincipalResponse](t, rr)
}

func registerStaff(t *testing.T, server *Server, email string) principalhttp.PrincipalResponse {
	t.Helper()
	rr := doJSON(t, server, http.MethodPost, "/auth/register/staff", "", principalhttp.RegisterStaffRequest{
		FullName: "Sam Station",
		Email:    email,
		Position: "precinct lead",
		Password: testPassword,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("staff registration failed: %d %s", rr.Code, rr.Body.String())
	}
	return decodeBody[principalhttp.PrincipalResponse](t, rr)
}

func login(t *testing.T, server *Server, email, password string) string {
	t.Helper()
	rr := doJSON(t, server, http.MethodPost, "/auth/login", "", principalhttp.LoginRequest{
		Login:    email,
		Password: password,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rr.Code, rr.Body.String())
	}
	return decodeBody[principalhttp.LoginResponse](t, rr).AccessToken
}

func adminToken(t *testing.T, server *Server) string {
	t.Helper()
	if _, err := server.principals.Register.BootstrapAdmin(context.Background(), testAdminEmail, testAdminPassword); err != nil {
		t.Fatalf("bootstrap admin failed: %v", err)
	}
	return login(t, server, testAdminEmail, testAdminPassword)
}

// seedOpenBallot plants an active ballot directly in the ledger's
// directory so cast routes can be exercised without the ballot module.
func seedOpenBallot(t *testing.T, server *Server, ballotID string, optionIDs ...string) {
	t.Helper()
	now := time.Now().UTC()
	server.votes.Store.SeedBallot(voteports.BallotView{
		ID:     ballotID,
		Status: voteports.BallotStatusActive,
		Start:  now.Add(-time.Hour),
		End:    now.Add(time.Hour),
	}, optionIDs...)
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.org", prefix, time.Now().UnixNano())
}
