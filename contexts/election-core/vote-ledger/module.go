package voteledger

import (
	"log/slog"

	httpadapter "electra/contexts/election-core/vote-ledger/adapters/http"
	"electra/contexts/election-core/vote-ledger/adapters/memory"
	"electra/contexts/election-core/vote-ledger/application/commands"
	"electra/contexts/election-core/vote-ledger/application/queries"
	"electra/contexts/election-core/vote-ledger/application/workers"
	"electra/contexts/election-core/vote-ledger/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Cast    commands.CastUseCase
	Remove  commands.RemoveUseCase
	Votes   queries.VotesUseCase
	Relay   workers.OutboxRelay
	Store   *memory.Store
}

type Dependencies struct {
	Votes     ports.VoteRepository
	Outbox    ports.OutboxRepository
	Ballots   ports.BallotDirectory
	Voters    ports.VoterDirectory
	Publisher workers.Publisher
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	cast := commands.CastUseCase{
		Votes:   deps.Votes,
		Ballots: deps.Ballots,
		Voters:  deps.Voters,
		Clock:   deps.Clock,
		IDGen:   deps.IDGen,
		Logger:  deps.Logger,
	}
	remove := commands.RemoveUseCase{
		Votes:  deps.Votes,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	votes := queries.VotesUseCase{Votes: deps.Votes, Logger: deps.Logger}
	relay := workers.OutboxRelay{
		Outbox:    deps.Outbox,
		Publisher: deps.Publisher,
		Logger:    deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Cast:   cast,
			Remove: remove,
			Votes:  votes,
			Logger: deps.Logger,
		},
		Cast:   cast,
		Remove: remove,
		Votes:  votes,
		Relay:  relay,
	}
}

// NewInMemoryModule wires the module onto a single in-memory store; the
// store also stands in for the ballot and voter directories via its seed
// setters.
func NewInMemoryModule(publisher workers.Publisher, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Votes:     store,
		Outbox:    store,
		Ballots:   store,
		Voters:    store,
		Publisher: publisher,
		Clock:     store,
		IDGen:     store,
		Logger:    logger,
	})
	module.Store = store
	return module
}
