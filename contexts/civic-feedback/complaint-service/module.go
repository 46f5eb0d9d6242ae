package complaintservice

import (
	"log/slog"

	httpadapter "electra/contexts/civic-feedback/complaint-service/adapters/http"
	"electra/contexts/civic-feedback/complaint-service/adapters/memory"
	"electra/contexts/civic-feedback/complaint-service/application"
	"electra/contexts/civic-feedback/complaint-service/ports"
)

type Module struct {
	Handler    httpadapter.Handler
	Complaints application.Service
	Store      *memory.Store
}

type Dependencies struct {
	Repo   ports.ComplaintRepository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repo,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	return Module{
		Handler:    httpadapter.Handler{Complaints: service, Logger: deps.Logger},
		Complaints: service,
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
