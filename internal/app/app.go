package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/riskibarqy/faceit-scope/external/faceit"
	"github.com/riskibarqy/faceit-scope/external/steam"
	"github.com/riskibarqy/faceit-scope/internal/config"
	"github.com/riskibarqy/faceit-scope/internal/domain/identity"
	cacherepo "github.com/riskibarqy/faceit-scope/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/faceit-scope/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/faceit-scope/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/faceit-scope/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/faceit-scope/internal/platform/cache"
	idgen "github.com/riskibarqy/faceit-scope/internal/platform/id"
	"github.com/riskibarqy/faceit-scope/internal/platform/logging"
	"github.com/riskibarqy/faceit-scope/internal/platform/resilience"
	"github.com/riskibarqy/faceit-scope/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	slogger := logging.NewSlogBridge(logger)

	profileRepo, err := newProfileRepository(cfg, logger)
	if err != nil {
		return nil, err
	}

	faceitClient := newFaceitClient(cfg, logger)
	steamClient := newSteamClient(cfg, logger)

	resolverSvc := usecase.NewResolverService(faceitClient, steamClient, profileRepo, logger)
	statsSvc := usecase.NewStatsService(faceitClient, cfg.MatchHistoryLimit, cfg.MatchHydrationWorkers, logger)
	reportSvc := usecase.NewReportService(resolverSvc, statsSvc, steamClient, idgen.NewRandomGenerator(), logger)

	handler := httpapi.NewHandler(reportSvc, resolverSvc, profileRepo, slogger)
	router := httpapi.NewRouter(handler, slogger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

// newProfileRepository picks postgres when DB_URL is configured and falls
// back to the in-memory store otherwise, so the service still runs without
// any infrastructure around it.
func newProfileRepository(cfg config.Config, logger *logging.Logger) (identity.Repository, error) {
	var repo identity.Repository
	if cfg.DBURL == "" {
		logger.Info("no DB_URL configured, using in-memory profile store")
		repo = memory.NewProfileRepository()
	} else {
		db, err := openDB(cfg)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		repo = postgres.NewProfileRepository(db)
	}

	if cfg.CacheEnabled {
		repo = cacherepo.NewProfileRepository(repo, basecache.NewStore(cfg.CacheTTL))
	}

	return repo, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// newFaceitClient returns nil when no API key is configured. A nil gateway
// flips the resolver into demo mode, which must be loud in the logs.
func newFaceitClient(cfg config.Config, logger *logging.Logger) usecase.FaceitGateway {
	if cfg.FaceitAPIKey == "" {
		logger.Warn("FACEIT_API_KEY is not set, running in demo mode with canned profiles")
		return nil
	}

	return faceit.NewClient(faceit.ClientConfig{
		APIKey:           cfg.FaceitAPIKey,
		BaseURL:          cfg.FaceitBaseURL,
		GameID:           cfg.FaceitGameID,
		FallbackGameID:   cfg.FaceitFallbackGameID,
		Timeout:          cfg.FaceitTimeout,
		MaxRetries:       cfg.FaceitMaxRetries,
		MaxRateLimitWait: cfg.FaceitRateLimitMaxBackoff,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FaceitCircuitEnabled,
			FailureThreshold: cfg.FaceitCircuitFailureCount,
			OpenTimeout:      cfg.FaceitCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FaceitCircuitHalfOpenMaxReq,
		},
		Logger: logger,
	})
}

func newSteamClient(cfg config.Config, logger *logging.Logger) usecase.SteamGateway {
	if cfg.SteamAPIKey == "" {
		logger.Info("STEAM_API_KEY is not set, steam enrichment disabled")
		return nil
	}

	return steam.NewClient(steam.ClientConfig{
		APIKey:  cfg.SteamAPIKey,
		BaseURL: cfg.SteamBaseURL,
		Timeout: cfg.SteamTimeout,
		Logger:  logger,
	})
}
