package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	complaintservice "electra/contexts/civic-feedback/complaint-service"
	complaintpostgres "electra/contexts/civic-feedback/complaint-service/adapters/postgres"
	ballotservice "electra/contexts/election-core/ballot-service"
	ballotpostgres "electra/contexts/election-core/ballot-service/adapters/postgres"
	ballotworkers "electra/contexts/election-core/ballot-service/application/workers"
	resultaggregator "electra/contexts/election-core/result-aggregator"
	resultgateway "electra/contexts/election-core/result-aggregator/adapters/gateway"
	resultpostgres "electra/contexts/election-core/result-aggregator/adapters/postgres"
	voteledger "electra/contexts/election-core/vote-ledger"
	votegateway "electra/contexts/election-core/vote-ledger/adapters/gateway"
	votepostgres "electra/contexts/election-core/vote-ledger/adapters/postgres"
	voteworkers "electra/contexts/election-core/vote-ledger/application/workers"
	voteentities "electra/contexts/election-core/vote-ledger/domain/entities"
	authorization "electra/contexts/identity-access/authorization-service"
	principalservice "electra/contexts/identity-access/principal-service"
	principalpostgres "electra/contexts/identity-access/principal-service/adapters/postgres"
	tokenservice "electra/contexts/identity-access/token-service"
	"electra/internal/platform/config"
	"electra/internal/platform/db"
	"electra/internal/platform/httpserver"
	"electra/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so context code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	scheduler    ballotworkers.WindowScheduler
	relay        voteworkers.OutboxRelay
	listener     func(ctx context.Context)
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.TokenSecret) == "" {
		return nil, errors.New("TOKEN_SECRET is required")
	}

	pg, err := connect(cfg)
	if err != nil {
		return nil, err
	}
	modules, _, err := buildModules(pg, cfg, logger)
	if err != nil {
		_ = pg.Close()
		return nil, err
	}

	if strings.TrimSpace(cfg.BootstrapAdminPassword) != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := modules.Principals.Register.BootstrapAdmin(ctx, cfg.BootstrapAdminEmail, cfg.BootstrapAdminPassword); err != nil {
			_ = pg.Close()
			return nil, err
		}
	}

	return &APIApp{
		server:   httpserver.New(modules, logger, normalizeAddr(cfg.HTTPPort)),
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	pg, err := connect(cfg)
	if err != nil {
		return nil, err
	}
	modules, bus, err := buildModules(pg, cfg, logger)
	if err != nil {
		_ = pg.Close()
		return nil, err
	}

	listener := modules.Results.Listener
	subscribe := func(ctx context.Context) {
		bus.Subscribe(ctx, voteentities.EventTypeVoteCast, listener.HandleVoteEvent)
		bus.Subscribe(ctx, voteentities.EventTypeVoteRemoved, listener.HandleVoteEvent)
	}

	return &WorkerApp{
		postgres:     pg,
		scheduler:    modules.Ballots.Scheduler,
		relay:        modules.Votes.Relay,
		listener:     subscribe,
		pollInterval: cfg.WorkerPollInterval,
		logger:       logger,
	}, nil
}

// buildModules wires every context onto one Postgres handle and one in-process
// bus. Migrations run here so both processes can start against a fresh
// database.
func buildModules(pg *db.Postgres, cfg config.Config, logger *slog.Logger) (httpserver.Modules, *messaging.Bus, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	principalRepo := principalpostgres.NewRepository(pg.DB, logger)
	ballotRepo := ballotpostgres.NewRepository(pg.DB, logger)
	voteRepo := votepostgres.NewRepository(pg.DB, logger)
	resultRepo := resultpostgres.NewRepository(pg.DB, logger)
	complaintRepo := complaintpostgres.NewRepository(pg.DB, logger)

	for _, migrate := range []func(context.Context) error{
		principalRepo.Migrate,
		ballotRepo.Migrate,
		voteRepo.Migrate,
		resultRepo.Migrate,
		complaintRepo.Migrate,
	} {
		if err := migrate(ctx); err != nil {
			return httpserver.Modules{}, nil, err
		}
	}

	bus := messaging.NewBus(logger)

	principals := principalservice.NewModule(principalservice.Dependencies{
		Repo:   principalRepo,
		Clock:  principalpostgres.SystemClock{},
		IDGen:  principalpostgres.UUIDGenerator{},
		Logger: logger,
	})
	tokens := tokenservice.NewModule(tokenservice.Dependencies{
		Secret: []byte(cfg.TokenSecret),
		Issuer: cfg.TokenIssuer,
		TTL:    cfg.TokenTTL,
		Logger: logger,
	})
	ballots := ballotservice.NewModule(ballotservice.Dependencies{
		Repo:   ballotRepo,
		Clock:  ballotpostgres.SystemClock{},
		IDGen:  ballotpostgres.UUIDGenerator{},
		Logger: logger,
	})
	votes := voteledger.NewModule(voteledger.Dependencies{
		Votes:     voteRepo,
		Outbox:    voteRepo,
		Ballots:   votegateway.BallotGateway{Ballots: ballots.Lister},
		Voters:    votegateway.VoterGateway{Loader: principals.Loader},
		Publisher: bus,
		Clock:     votepostgres.SystemClock{},
		IDGen:     votepostgres.UUIDGenerator{},
		Logger:    logger,
	})
	results := resultaggregator.NewModule(resultaggregator.Dependencies{
		Ballots: resultgateway.BallotGateway{Ballots: ballots.Lister},
		Counts:  resultRepo,
		Cache:   resultRepo,
		Clock:   resultpostgres.SystemClock{},
		Logger:  logger,
	})
	complaints := complaintservice.NewModule(complaintservice.Dependencies{
		Repo:   complaintRepo,
		Clock:  complaintpostgres.SystemClock{},
		IDGen:  complaintpostgres.UUIDGenerator{},
		Logger: logger,
	})

	return httpserver.Modules{
		Principals:    principals,
		Tokens:        tokens,
		Authorization: authorization.NewModule(logger),
		Ballots:       ballots,
		Votes:         votes,
		Results:       results,
		Complaints:    complaints,
	}, bus, nil
}

func connect(cfg config.Config) (*db.Postgres, error) {
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	return db.Connect(cfg.PostgresDSN)
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	w.listener(ctx)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if _, _, err := w.scheduler.RunOnce(ctx); err != nil {
			return err
		}
		if _, err := w.relay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
