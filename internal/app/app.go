package app

import (
	"fmt"
	"net/http"

	"github.com/atsilverman/fpl-research/external/fpl"
	"github.com/atsilverman/fpl-research/internal/config"
	"github.com/atsilverman/fpl-research/internal/infrastructure/repository/rest"
	snapfile "github.com/atsilverman/fpl-research/internal/infrastructure/snapshot"
	"github.com/atsilverman/fpl-research/internal/infrastructure/store"
	"github.com/atsilverman/fpl-research/internal/interfaces/httpapi"
	"github.com/atsilverman/fpl-research/internal/platform/logging"
	"github.com/atsilverman/fpl-research/internal/platform/resilience"
	"github.com/atsilverman/fpl-research/internal/usecase"
)

// App bundles the wired service graph. StatusServer is nil when the status
// surface is disabled.
type App struct {
	Monitor      *usecase.MonitorService
	Scheduler    *usecase.Scheduler
	StatusServer *http.Server
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	feed := fpl.NewClient(fpl.ClientConfig{
		BaseURL:        cfg.FeedBaseURL,
		Timeout:        cfg.FeedTimeout,
		MaxRetries:     cfg.FeedMaxRetries,
		RateLimitDelay: cfg.FeedRateLimitDelay,
		Logger:         logger,
		CircuitBreaker: resilience.BreakerConfig{
			Enabled:           cfg.FeedCircuitEnabled,
			FailureThreshold:  cfg.FeedCircuitFailureCount,
			OpenTimeout:       cfg.FeedCircuitOpenTimeout,
			HalfOpenMaxProbes: cfg.FeedCircuitHalfOpenMaxReq,
		},
	})

	storeClient := store.NewClient(store.ClientConfig{
		BaseURL: cfg.StoreURL,
		APIKey:  cfg.StoreAPIKey,
		Timeout: cfg.StoreTimeout,
		Logger:  logger,
	})

	teamRepo := rest.NewTeamRepository(storeClient)
	playerRepo := rest.NewPlayerRepository(storeClient)
	gameweekRepo := rest.NewGameweekRepository(storeClient)
	fixtureRepo := rest.NewFixtureRepository(storeClient)
	statRepo := rest.NewPlayerStatRepository(storeClient)
	entryRepo := rest.NewEntryRepository(storeClient)
	aggregateRepo := rest.NewAggregateRepository(storeClient)

	snapshots := snapfile.NewFileStore(cfg.SnapshotPath)

	metricsSvc := usecase.NewMetricsService(gameweekRepo, logger)
	detector := usecase.NewChangeDetector(cfg.Location, cfg.DeadlineGrace)
	refreshSvc := usecase.NewRefreshService(
		feed,
		storeClient,
		teamRepo,
		playerRepo,
		gameweekRepo,
		fixtureRepo,
		statRepo,
		entryRepo,
		aggregateRepo,
		cfg.SyncWorkers,
		logger,
	)
	monitor := usecase.NewMonitorService(
		metricsSvc,
		detector,
		refreshSvc,
		snapshots,
		feed,
		storeClient,
		aggregateRepo,
		logger,
	)
	scheduler := usecase.NewScheduler(monitor, cfg.CheckInterval, logger)

	app := &App{
		Monitor:   monitor,
		Scheduler: scheduler,
	}

	if cfg.StatusEnabled {
		if cfg.StatusAddr == "" {
			return nil, fmt.Errorf("status server addr cannot be empty")
		}
		handler := httpapi.NewHandler(monitor, logger, cfg.ServiceName, cfg.ServiceVersion)
		app.StatusServer = &http.Server{
			Addr:         cfg.StatusAddr,
			Handler:      httpapi.NewRouter(handler, logger),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		}
	}

	return app, nil
}
