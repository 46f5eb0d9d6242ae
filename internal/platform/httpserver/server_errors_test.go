package httpserver

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	complainterrors "electra/contexts/civic-feedback/complaint-service/domain/errors"
	balloterrors "electra/contexts/election-core/ballot-service/domain/errors"
	resulterrors "electra/contexts/election-core/result-aggregator/domain/errors"
	voteerrors "electra/contexts/election-core/vote-ledger/domain/errors"
	principalerrors "electra/contexts/identity-access/principal-service/domain/errors"
)

// Storage outages surface as 503 so clients can retry, never as a generic 500.
func TestStorageOutagesMapToServiceUnavailable(t *testing.T) {
	cases := []struct {
		name  string
		write func(http.ResponseWriter, error)
		err   error
	}{
		{"identity", writeIdentityError, principalerrors.ErrUnavailable},
		{"ballot", writeBallotError, balloterrors.ErrUnavailable},
		{"vote", writeVoteError, voteerrors.ErrUnavailable},
		{"result", writeResultError, resulterrors.ErrUnavailable},
		{"complaint", writeComplaintError, complainterrors.ErrUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tc.write(rec, fmt.Errorf("query: %w", tc.err))
			if rec.Code != http.StatusServiceUnavailable {
				t.Fatalf("expected 503, got %d body=%s", rec.Code, rec.Body.String())
			}
			body := decodeBody[errorBody](t, rec)
			if body.Code != "unavailable" {
				t.Fatalf("expected code %q, got %q", "unavailable", body.Code)
			}
		})
	}
}

// An unknown storage failure still falls through to 500.
func TestUnknownStorageErrorsStayInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	writeBallotError(rec, fmt.Errorf("unexpected driver state"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
