package ballotservice

import (
	"log/slog"

	httpadapter "electra/contexts/election-core/ballot-service/adapters/http"
	"electra/contexts/election-core/ballot-service/adapters/memory"
	"electra/contexts/election-core/ballot-service/application/commands"
	"electra/contexts/election-core/ballot-service/application/queries"
	"electra/contexts/election-core/ballot-service/application/workers"
	"electra/contexts/election-core/ballot-service/ports"
)

type Module struct {
	Handler   httpadapter.Handler
	Ballots   commands.BallotUseCase
	Lister    queries.ListUseCase
	Scheduler workers.WindowScheduler
	Store     *memory.Store
}

type Dependencies struct {
	Repo   ports.BallotRepository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	ballots := commands.BallotUseCase{
		Repo:   deps.Repo,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	lister := queries.ListUseCase{Repo: deps.Repo, Logger: deps.Logger}
	scheduler := workers.WindowScheduler{
		Repo:   deps.Repo,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Ballots: ballots,
			Lister:  lister,
			Logger:  deps.Logger,
		},
		Ballots:   ballots,
		Lister:    lister,
		Scheduler: scheduler,
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
