package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/atsilverman/fpl-research/internal/app"
	"github.com/atsilverman/fpl-research/internal/config"
	"github.com/atsilverman/fpl-research/internal/observability"
	"github.com/atsilverman/fpl-research/internal/platform/logging"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "fplsync",
		Short:         "Mirrors the Fantasy Premier League feed into the backing store",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runLoop,
	}

	root.AddCommand(
		newRunCommand(),
		newCheckCommand(),
		newRefreshCommand(),
		newTestCommand(),
		newStatsCommand(),
	)

	return root
}

// bootstrap loads configuration, installs the process logger and starts the
// optional observability sinks. The returned cleanup flushes all of them.
func bootstrap() (config.Config, *logging.Logger, func(), error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return config.Config{}, nil, nil, err
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		return config.Config{}, nil, nil, err
	}

	stopPyroscope, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		return config.Config{}, nil, nil, err
	}

	cleanup := func() {
		if err := stopPyroscope(); err != nil {
			logger.Warn("stop pyroscope", "error", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdownUptrace(ctx); err != nil {
			logger.Warn("shutdown uptrace", "error", err)
		}
		_ = logger.Sync()
	}

	return cfg, logger, cleanup, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the monitoring loop until interrupted",
		RunE:  runLoop,
	}
}

// runLoop backs both the bare binary and the run subcommand. Invoking
// fplsync with no arguments starts the continuous loop.
func runLoop(_ *cobra.Command, _ []string) error {
	cfg, logger, cleanup, err := bootstrap()
	if err != nil {
		return err
	}
	defer cleanup()

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	pprofSrv, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		logger.Error("start pprof server", "error", err)
		return err
	}
	defer func() {
		if err := observability.StopPprofServer(pprofSrv, logger, 5*time.Second); err != nil {
			logger.Warn("stop pprof server", "error", err)
		}
	}()

	if application.StatusServer != nil {
		go func() {
			logger.Info("status server starting", "addr", application.StatusServer.Addr)
			if err := application.StatusServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("status server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := application.StatusServer.Shutdown(shutdownCtx); err != nil {
				logger.Warn("status server shutdown failed", "error", err)
			}
		}()
	}

	logger.Info("service starting",
		"check_interval", cfg.CheckInterval.String(),
		"timezone", cfg.TimeZoneName,
		"workers", cfg.SyncWorkers,
	)

	if err := application.Scheduler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("scheduler stopped", "error", err)
		return err
	}

	logger.Info("service stopped")
	return nil
}

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run one sample-detect-refresh cycle and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, cleanup, err := bootstrap()
			if err != nil {
				return err
			}
			defer cleanup()

			application, err := app.New(cfg, logger)
			if err != nil {
				logger.Error("build app", "error", err)
				return err
			}

			ctx, stop := signalContext()
			defer stop()

			result, err := application.Monitor.CheckOnce(ctx)
			if err != nil {
				logger.Error("check failed", "error", err)
				return err
			}

			logger.Info("check finished",
				"refreshed", result.Refreshed,
				"reasons", result.Decision.Reasons,
				"finished_count", result.Metrics.FinishedCount,
				"current_gameweek", result.Metrics.CurrentGameweek,
			)
			return nil
		},
	}
}

func newRefreshCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Force a full refresh regardless of detected changes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, cleanup, err := bootstrap()
			if err != nil {
				return err
			}
			defer cleanup()

			application, err := app.New(cfg, logger)
			if err != nil {
				logger.Error("build app", "error", err)
				return err
			}

			ctx, stop := signalContext()
			defer stop()

			result, err := application.Monitor.ForceRefresh(ctx)
			if err != nil {
				logger.Error("refresh failed", "error", err)
				return err
			}

			logger.Info("refresh finished",
				"partial", result.Refresh.Partial(),
				"window", result.Refresh.Window,
				"warnings", result.Refresh.Warnings,
			)
			return nil
		},
	}
}

func newTestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Probe the feed and store, then dry-run the change detector",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, cleanup, err := bootstrap()
			if err != nil {
				return err
			}
			defer cleanup()

			application, err := app.New(cfg, logger)
			if err != nil {
				logger.Error("build app", "error", err)
				return err
			}

			ctx, stop := signalContext()
			defer stop()

			report, err := application.Monitor.Test(ctx)
			if err != nil {
				logger.Error("connectivity test failed",
					"feed_ok", report.FeedOK,
					"store_ok", report.StoreOK,
					"error", err,
				)
				return err
			}

			logger.Info("connectivity test passed",
				"feed_ok", report.FeedOK,
				"store_ok", report.StoreOK,
				"finished_count", report.Metrics.FinishedCount,
				"current_gameweek", report.Metrics.CurrentGameweek,
				"would_refresh", report.Decision.Refresh,
				"reasons", report.Decision.Reasons,
			)
			return nil
		},
	}
}

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Trigger the store-side aggregate recomputation alone",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, cleanup, err := bootstrap()
			if err != nil {
				return err
			}
			defer cleanup()

			application, err := app.New(cfg, logger)
			if err != nil {
				logger.Error("build app", "error", err)
				return err
			}

			ctx, stop := signalContext()
			defer stop()

			if err := application.Monitor.RecomputeAggregates(ctx); err != nil {
				logger.Error("aggregate recompute failed", "error", err)
				return err
			}

			logger.Info("aggregate recompute finished")
			return nil
		},
	}
}
