// Command simulator drives a scoreboard through a scripted world-cup style
// session and exposes the board's metrics on a Prometheus endpoint. It is a
// demo harness for the library, not a product surface.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stelmah/live-scoreboard/internal/config"
	"github.com/stelmah/live-scoreboard/internal/domain/teams"
	"github.com/stelmah/live-scoreboard/internal/logging"
	"github.com/stelmah/live-scoreboard/internal/metrics"
	"github.com/stelmah/live-scoreboard/internal/scoreboard"
)

const appVersion = "dev"

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.Metrics.ServiceName,
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recorder, promHandler, metricsStop, err := metrics.Setup(ctx, metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	})
	if err != nil {
		logging.Error(logger, "failed to set up metrics", err)
		os.Exit(1)
	}

	metricsSrv := startMetricsServer(cfg.Metrics, promHandler, logger)

	board := scoreboard.New(
		scoreboard.WithLogger(logger),
		scoreboard.WithMetrics(recorder),
	)
	runFixtures(board, logger)

	<-ctx.Done()
	logging.Info(logger, "shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if metricsStop != nil {
		if err := metricsStop(shutdownCtx); err != nil {
			logging.Warn(logger, "metrics shutdown failed", "error", err)
		}
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logging.Warn(logger, "metrics server shutdown failed", "error", err)
		}
	}
	logging.Info(logger, "shutdown complete")
}

func startMetricsServer(cfg config.MetricsConfig, handler http.Handler, logger *slog.Logger) *http.Server {
	if handler == nil {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: mux}

	logging.Info(logger, "metrics server starting", slog.String("addr", srv.Addr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error(logger, "metrics server failed", err)
		}
	}()
	return srv
}

// runFixtures walks the board through a small scripted session and logs the
// ranked summary.
func runFixtures(board *scoreboard.Scoreboard, logger *slog.Logger) {
	fixtures := []struct {
		home, away           string
		homeScore, awayScore int
	}{
		{"Mexico", "Canada", 0, 5},
		{"Spain", "Brazil", 10, 2},
		{"Germany", "France", 2, 2},
		{"Uruguay", "Italy", 6, 6},
		{"Argentina", "Australia", 3, 1},
	}

	for _, f := range fixtures {
		home := teams.Team{Name: f.home}
		away := teams.Team{Name: f.away}
		if err := board.StartGame(home, away); err != nil {
			logging.Error(logger, "start failed", err)
			continue
		}
		if err := board.UpdateGame(home, away, f.homeScore, f.awayScore); err != nil {
			logging.Error(logger, "update failed", err)
		}
	}

	for i, entry := range board.Summary() {
		logging.Info(logger, "summary entry",
			slog.Int("rank", i+1),
			slog.String("home", entry.HomeTeam.Name),
			slog.String("away", entry.AwayTeam.Name),
			slog.Int("home_score", entry.Score.Home),
			slog.Int("away_score", entry.Score.Away),
			slog.Int("total", entry.Total()),
		)
	}
}
