package resultaggregator

import (
	"log/slog"

	httpadapter "electra/contexts/election-core/result-aggregator/adapters/http"
	"electra/contexts/election-core/result-aggregator/adapters/memory"
	"electra/contexts/election-core/result-aggregator/application/queries"
	"electra/contexts/election-core/result-aggregator/application/workers"
	"electra/contexts/election-core/result-aggregator/ports"
)

type Module struct {
	Handler  httpadapter.Handler
	Tally    queries.TallyUseCase
	Listener workers.RefreshListener
	Store    *memory.Store
}

type Dependencies struct {
	Ballots ports.BallotDirectory
	Counts  ports.CountSource
	Cache   ports.ResultCache
	Clock   ports.Clock
	Logger  *slog.Logger
}

func NewModule(deps Dependencies) Module {
	tally := queries.TallyUseCase{
		Ballots: deps.Ballots,
		Counts:  deps.Counts,
		Cache:   deps.Cache,
		Clock:   deps.Clock,
		Logger:  deps.Logger,
	}
	return Module{
		Handler:  httpadapter.Handler{Tally: tally, Logger: deps.Logger},
		Tally:    tally,
		Listener: workers.RefreshListener{Tally: tally, Logger: deps.Logger},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Ballots: store,
		Counts:  store,
		Cache:   store,
		Clock:   store,
		Logger:  logger,
	})
	module.Store = store
	return module
}
