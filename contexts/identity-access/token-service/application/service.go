package application

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	domainerrors "electra/contexts/identity-access/token-service/domain/errors"
	"electra/contexts/identity-access/token-service/ports"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the validated content of an access token.
type Claims struct {
	PrincipalID string
	Role        string
	ExpiresAt   time.Time
}

// Service issues and validates HS256-signed bearer tokens. The signing
// algorithm is pinned: tokens carrying any other alg fail validation as
// invalid signatures.
type Service struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
	Clock  ports.Clock
	Logger *slog.Logger
}

func (s Service) Issue(principalID string, role string) (string, time.Time, error) {
	if len(s.Secret) == 0 {
		return "", time.Time{}, domainerrors.ErrSecretRequired
	}
	if strings.TrimSpace(principalID) == "" {
		return "", time.Time{}, domainerrors.ErrPrincipalRequired
	}

	now := s.now()
	expiresAt := now.Add(s.ttl())
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  strings.TrimSpace(principalID),
		"role": strings.TrimSpace(role),
		"iss":  s.issuer(),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	})

	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s Service) Validate(tokenString string) (Claims, error) {
	if len(s.Secret) == 0 {
		return Claims{}, domainerrors.ErrSecretRequired
	}

	token, err := jwt.Parse(
		tokenString,
		func(t *jwt.Token) (interface{}, error) {
			if t.Method == nil || t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, domainerrors.ErrInvalidSignature
			}
			return s.Secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer()),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, domainerrors.ErrTokenExpired
		}
		return Claims{}, domainerrors.ErrInvalidSignature
	}

	raw, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, domainerrors.ErrInvalidSignature
	}

	subject, err := raw.GetSubject()
	if err != nil || strings.TrimSpace(subject) == "" {
		return Claims{}, domainerrors.ErrMalformedSubject
	}
	if _, err := uuid.Parse(subject); err != nil {
		return Claims{}, domainerrors.ErrMalformedSubject
	}

	claims := Claims{PrincipalID: subject}
	if role, ok := raw["role"].(string); ok {
		claims.Role = role
	}
	if exp, err := raw.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time.UTC()
	}
	return claims, nil
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (s Service) ttl() time.Duration {
	if s.TTL <= 0 {
		return 30 * time.Minute
	}
	return s.TTL
}

func (s Service) issuer() string {
	if strings.TrimSpace(s.Issuer) == "" {
		return "electra"
	}
	return s.Issuer
}
