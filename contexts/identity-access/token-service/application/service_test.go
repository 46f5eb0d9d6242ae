package application

import (
	"errors"
	"strings"
	"testing"
	"time"

	domainerrors "electra/contexts/identity-access/token-service/domain/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func newService(now time.Time, ttl time.Duration) Service {
	return Service{
		Secret: []byte("unit-test-secret"),
		Issuer: "electra",
		TTL:    ttl,
		Clock:  fixedClock{now: now},
	}
}

func TestTokenRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newService(now, 30*time.Minute)
	principalID := uuid.NewString()

	token, expiresAt, err := svc.Issue(principalID, "voter")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if !expiresAt.Equal(now.Add(30 * time.Minute)) {
		t.Fatalf("unexpected expiry %v", expiresAt)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.PrincipalID != principalID {
		t.Fatalf("expected subject %s, got %s", principalID, claims.PrincipalID)
	}
	if claims.Role != "voter" {
		t.Fatalf("expected role voter, got %s", claims.Role)
	}
}

func TestTokenExpired(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newService(issuedAt, 10*time.Minute)

	token, _, err := svc.Issue(uuid.NewString(), "voter")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	late := newService(issuedAt.Add(11*time.Minute), 10*time.Minute)
	if _, err := late.Validate(token); !errors.Is(err, domainerrors.ErrTokenExpired) {
		t.Fatalf("expected expired error, got %v", err)
	}
}

func TestTokenTamperedSignature(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newService(now, 30*time.Minute)

	token, _, err := svc.Issue(uuid.NewString(), "voter")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if tampered == token {
		tampered = token[:len(token)-2] + "yy"
	}
	if _, err := svc.Validate(tampered); !errors.Is(err, domainerrors.ErrInvalidSignature) {
		t.Fatalf("expected invalid signature error, got %v", err)
	}
}

func TestTokenRejectsForeignAlgorithm(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newService(now, 30*time.Minute)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": uuid.NewString(),
		"iss": "electra",
		"exp": now.Add(time.Hour).Unix(),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token failed: %v", err)
	}

	if _, err := svc.Validate(token); !errors.Is(err, domainerrors.ErrInvalidSignature) {
		t.Fatalf("expected invalid signature error, got %v", err)
	}
}

func TestTokenMalformedSubject(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newService(now, 30*time.Minute)

	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "not-a-principal-id",
		"iss": "electra",
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	})
	token, err := raw.SignedString(svc.Secret)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := svc.Validate(token); !errors.Is(err, domainerrors.ErrMalformedSubject) {
		t.Fatalf("expected malformed subject error, got %v", err)
	}
}

func TestTokenGarbageInput(t *testing.T) {
	svc := newService(time.Now().UTC(), 30*time.Minute)
	for _, input := range []string{"", "garbage", strings.Repeat("a.b.c", 3)} {
		if _, err := svc.Validate(input); !errors.Is(err, domainerrors.ErrInvalidSignature) {
			t.Fatalf("expected invalid signature for %q, got %v", input, err)
		}
	}
}
