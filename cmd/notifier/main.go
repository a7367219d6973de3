// Command notifier polls the NWS alert feed for one forecast zone and
// forwards new or updated important alerts to a webhook target.
//
// It normally runs as a long-lived service with a cron poll schedule; with
// -once it performs a single pass and exits, for use under an external
// scheduler such as a systemd timer.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	httpadapter "github.com/couchcryptid/storm-alert-notifier/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/storm-alert-notifier/internal/adapter/kafka"
	"github.com/couchcryptid/storm-alert-notifier/internal/adapter/nws"
	"github.com/couchcryptid/storm-alert-notifier/internal/adapter/shoutrrr"
	"github.com/couchcryptid/storm-alert-notifier/internal/cache"
	"github.com/couchcryptid/storm-alert-notifier/internal/config"
	"github.com/couchcryptid/storm-alert-notifier/internal/observability"
	"github.com/couchcryptid/storm-alert-notifier/internal/pipeline"
)

func main() {
	once := flag.Bool("once", false, "run a single polling pass and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	feed := nws.NewClient(cfg.FeedBaseURL, cfg.Zone, cfg.FetchTimeout, logger)

	notifier, err := shoutrrr.NewNotifier(cfg.NotifyURL, cfg.NotifyTimeout, logger)
	if err != nil {
		logger.Error("failed to build notifier", "error", err)
		os.Exit(1)
	}

	// Notification-event sink (feature-flagged via KAFKA_ENABLED).
	var sink pipeline.EventSink
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		sink = writer
		logger.Info("kafka event sink enabled", "topic", cfg.KafkaSinkTopic)
	} else {
		logger.Info("kafka event sink disabled")
	}

	store := cache.New(cfg.CachePath, logger)

	p := pipeline.New(feed, notifier, sink, store, cfg, logger, metrics, clockwork.NewRealClock())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *once {
		if err := p.RunPass(ctx); err != nil {
			logger.Error("pass aborted", "error", err)
			os.Exit(1)
		}
		closeWriter(writer, logger)
		return
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, cfg.Zone, p, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start the poll scheduler.
	runErr := make(chan error, 1)
	go func() {
		runErr <- p.Run(ctx, cfg.PollSchedule)
	}()

	select {
	case <-ctx.Done():
	case err := <-runErr:
		if err != nil {
			logger.Error("scheduler error", "error", err)
		}
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	closeWriter(writer, logger)

	logger.Info("shutdown complete")
}

func closeWriter(writer *kafkaadapter.Writer, logger *slog.Logger) {
	if writer == nil {
		return
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}
}
