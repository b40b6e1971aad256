// Package app assembles the service: storage, external feeds, use cases,
// and the HTTP surface.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/gridiron-league/pairdraft/external/sleeper"
	"github.com/gridiron-league/pairdraft/internal/config"
	"github.com/gridiron-league/pairdraft/internal/domain/draft"
	"github.com/gridiron-league/pairdraft/internal/domain/league"
	"github.com/gridiron-league/pairdraft/internal/domain/player"
	"github.com/gridiron-league/pairdraft/internal/domain/pool"
	"github.com/gridiron-league/pairdraft/internal/draftroom"
	"github.com/gridiron-league/pairdraft/internal/infrastructure/repository/memory"
	"github.com/gridiron-league/pairdraft/internal/infrastructure/repository/postgres"
	"github.com/gridiron-league/pairdraft/internal/interfaces/httpapi"
	"github.com/gridiron-league/pairdraft/internal/platform/id"
	"github.com/gridiron-league/pairdraft/internal/platform/logging"
	"github.com/gridiron-league/pairdraft/internal/platform/random"
	"github.com/gridiron-league/pairdraft/internal/usecase"
)

// App holds the running server and the resources it owns.
type App struct {
	Server *http.Server
	db     *sqlx.DB
}

func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		playerRepo player.Repository
		leagueRepo league.Repository
		draftRepo  draft.Repository
		db         *sqlx.DB
	)

	switch cfg.StorageBackend {
	case config.StoragePostgres:
		var err error
		db, err = openDB(cfg)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		playerRepo = postgres.NewPlayerRepository(db)
		leagueRepo = postgres.NewLeagueRepository(db)
		draftRepo = postgres.NewDraftRepository(db)
		logger.Info("storage ready", "backend", cfg.StorageBackend, "database", dbNameFromURL(cfg.DBURL))
	default:
		memPlayers := memory.NewPlayerRepository(seedPlayers(cfg))
		memLeagues := memory.NewLeagueRepository()
		if cfg.SeedDemoData {
			if err := seedDemoLeague(memLeagues); err != nil {
				return nil, fmt.Errorf("seed demo league: %w", err)
			}
		}
		playerRepo = memPlayers
		leagueRepo = memLeagues
		draftRepo = memory.NewDraftRepository()
		logger.Info("storage ready", "backend", cfg.StorageBackend, "seeded", cfg.SeedDemoData)
	}

	var feed usecase.RosterFeed
	if cfg.SleeperEnabled {
		feed = sleeper.NewClient(sleeper.ClientConfig{
			BaseURL:          cfg.SleeperBaseURL,
			Timeout:          cfg.SleeperTimeout,
			MaxRetries:       cfg.SleeperMaxRetries,
			BreakerThreshold: cfg.SleeperCircuitFailureCount,
			BreakerCooldown:  cfg.SleeperCircuitOpenTimeout,
			Logger:           logging.NewJSON(cfg.LogLevel),
		})
	}

	idgen := id.NewUUIDGenerator()
	rooms := draftroom.NewRegistry()

	handler := httpapi.NewHandler(httpapi.HandlerConfig{
		LeagueService:   usecase.NewLeagueService(leagueRepo, idgen, random.New(), logger),
		PlayerService:   usecase.NewPlayerService(playerRepo),
		DivisionService: usecase.NewDivisionService(playerRepo, pool.DefaultConfig(), logger),
		DraftService: usecase.NewDraftService(
			draftRepo, leagueRepo, playerRepo, rooms, idgen, clockwork.NewRealClock(), logger,
		),
		RosterSyncService: usecase.NewRosterSyncService(playerRepo, feed, idgen, logger),
		Rooms:             rooms,
		Logger:            logger,
	})

	server := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: httpapi.NewRouter(httpapi.RouterConfig{
			Handler:        handler,
			Logger:         logger,
			AllowedOrigins: cfg.CORSAllowedOrigins,
		}),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{Server: server, db: db}, nil
}

// Close releases resources the server does not own itself.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func seedPlayers(cfg config.Config) []player.Player {
	if !cfg.SeedDemoData {
		return nil
	}
	return memory.SeedPlayers()
}

func seedDemoLeague(repo league.Repository) error {
	demo, members := memory.SeedDemoLeague()
	ctx := context.Background()
	if err := repo.CreateLeague(ctx, demo); err != nil {
		return err
	}
	for _, m := range members {
		if err := repo.AddMember(ctx, m); err != nil {
			return err
		}
	}
	return nil
}
