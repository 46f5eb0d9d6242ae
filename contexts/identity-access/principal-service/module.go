package principalservice

import (
	"log/slog"

	httpadapter "electra/contexts/identity-access/principal-service/adapters/http"
	"electra/contexts/identity-access/principal-service/adapters/memory"
	"electra/contexts/identity-access/principal-service/application/commands"
	"electra/contexts/identity-access/principal-service/application/queries"
	"electra/contexts/identity-access/principal-service/ports"
)

type Module struct {
	Handler  httpadapter.Handler
	Register commands.RegisterUseCase
	Auth     commands.AuthenticateUseCase
	Loader   queries.LoadUseCase
	Store    *memory.Store
}

type Dependencies struct {
	Repo   ports.Repository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	register := commands.RegisterUseCase{
		Repo:   deps.Repo,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	auth := commands.AuthenticateUseCase{
		Repo:   deps.Repo,
		Logger: deps.Logger,
	}
	loader := queries.LoadUseCase{Repo: deps.Repo}
	return Module{
		Handler: httpadapter.Handler{
			Register: register,
			Auth:     auth,
			Loader:   loader,
			Logger:   deps.Logger,
		},
		Register: register,
		Auth:     auth,
		Loader:   loader,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repo:   store,
		Clock:  store,
		IDGen:  store,
		Logger: logger,
	})
	module.Store = store
	return module
}
