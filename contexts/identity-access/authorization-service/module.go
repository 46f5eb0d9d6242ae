package authorization

import (
	"log/slog"

	"electra/contexts/identity-access/authorization-service/domain/entities"
	"electra/contexts/identity-access/authorization-service/domain/services"
)

type Module struct {
	Logger *slog.Logger
}

func NewModule(logger *slog.Logger) Module {
	return Module{Logger: logger}
}

// Decide evaluates the policy table and logs denials for audit.
func (m Module) Decide(principal entities.PrincipalRef, action entities.Action, resource entities.Resource) entities.Decision {
	decision := services.Decide(principal, action, resource)
	if !decision.Allowed && m.Logger != nil {
		m.Logger.Warn("authorization denied",
			"event", "authz_denied",
			"module", "identity-access/authorization-service",
			"layer", "application",
			"principal_id", principal.ID,
			"role", principal.Role,
			"action", string(action),
			"resource_kind", resource.Kind,
			"reason", decision.Reason,
		)
	}
	return decision
}
