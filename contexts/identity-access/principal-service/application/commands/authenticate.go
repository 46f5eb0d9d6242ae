package commands

import (
	"context"
	"log/slog"
	"strings"

	application "electra/contexts/identity-access/principal-service/application"
	"electra/contexts/identity-access/principal-service/domain/entities"
	domainerrors "electra/contexts/identity-access/principal-service/domain/errors"
	"electra/contexts/identity-access/principal-service/domain/services"
	"electra/contexts/identity-access/principal-service/ports"
)

// AuthenticateUseCase resolves a login credential to a live principal.
// Unknown login and wrong password return the same error so callers cannot
// enumerate registered identities.
type AuthenticateUseCase struct {
	Repo   ports.Repository
	Logger *slog.Logger
}

func (uc AuthenticateUseCase) Authenticate(ctx context.Context, login string, password string) (entities.Principal, error) {
	logger := application.ResolveLogger(uc.Logger)
	login = strings.ToLower(strings.TrimSpace(login))
	if login == "" || password == "" {
		return entities.Principal{}, domainerrors.ErrInvalidCredentials
	}

	principal, found, err := uc.Repo.GetPrincipalByLogin(ctx, login)
	if err != nil {
		return entities.Principal{}, err
	}
	if !found || !services.VerifyPassword(principal.PasswordHash, password) {
		logger.Warn("authentication rejected",
			"event", "identity_authentication_rejected",
			"module", "identity-access/principal-service",
			"layer", "application",
		)
		return entities.Principal{}, domainerrors.ErrInvalidCredentials
	}
	if !principal.Active {
		return entities.Principal{}, domainerrors.ErrPrincipalInactive
	}

	logger.Info("principal authenticated",
		"event", "identity_authenticated",
		"module", "identity-access/principal-service",
		"layer", "application",
		"principal_id", principal.ID,
		"role", string(principal.Role),
	)
	return principal, nil
}
