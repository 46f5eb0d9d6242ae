package tokenservice

import (
	"log/slog"
	"time"

	"electra/contexts/identity-access/token-service/application"
	"electra/contexts/identity-access/token-service/ports"
)

type Module struct {
	Tokens application.Service
}

type Dependencies struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
	Clock  ports.Clock
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Tokens: application.Service{
			Secret: deps.Secret,
			Issuer: deps.Issuer,
			TTL:    deps.TTL,
			Clock:  deps.Clock,
			Logger: deps.Logger,
		},
	}
}
