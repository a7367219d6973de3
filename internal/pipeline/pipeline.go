// Package pipeline drives polling passes: fetch the zone feed, classify each
// entry, decide against the alert cache, notify, and persist the cache.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"

	"github.com/couchcryptid/storm-alert-notifier/internal/cache"
	"github.com/couchcryptid/storm-alert-notifier/internal/config"
	"github.com/couchcryptid/storm-alert-notifier/internal/domain"
	"github.com/couchcryptid/storm-alert-notifier/internal/observability"
)

// FeedSource fetches the zone's raw alert feed.
type FeedSource interface {
	Fetch(ctx context.Context) (domain.Feed, error)
}

// Notifier attempts delivery of one notification, once.
type Notifier interface {
	Send(ctx context.Context, msg domain.Notification) error
}

// EventSink receives a record of each notification attempt.
type EventSink interface {
	Publish(ctx context.Context, event domain.NotificationEvent) error
}

// Pipeline owns the alert cache and runs one pass at a time. Passes never
// overlap: the scheduler skips a tick while the previous pass is running.
type Pipeline struct {
	source   FeedSource
	notifier Notifier
	sink     EventSink // nil when the Kafka sink is disabled
	store    *cache.Store

	zone        string
	policy      domain.Policy
	sendUpdates bool
	maxEntries  int

	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
	ready   atomic.Bool
}

// New creates a Pipeline. Pass a nil sink to disable event publishing.
func New(source FeedSource, notifier Notifier, sink EventSink, store *cache.Store,
	cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Pipeline {
	return &Pipeline{
		source:      source,
		notifier:    notifier,
		sink:        sink,
		store:       store,
		zone:        cfg.Zone,
		policy:      cfg.Policy,
		sendUpdates: cfg.SendUpdates,
		maxEntries:  cfg.CacheMaxEntries,
		logger:      logger,
		metrics:     metrics,
		clock:       clock,
	}
}

// CheckReadiness returns nil once at least one pass has completed.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no polling pass has completed yet")
	}
	return nil
}

// Run schedules passes on the configured cron expression until the context
// is cancelled, then waits for any in-flight pass to finish.
func (p *Pipeline) Run(ctx context.Context, schedule string) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := c.AddFunc(schedule, func() {
		if err := p.RunPass(ctx); err != nil {
			p.logger.Error("pass aborted", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("parse poll schedule %q: %w", schedule, err)
	}

	p.logger.Info("poll scheduler started", "schedule", schedule, "zone", p.zone)
	p.metrics.ServiceRunning.Set(1)
	defer p.metrics.ServiceRunning.Set(0)

	c.Start()
	<-ctx.Done()

	p.logger.Info("poll scheduler stopping", "reason", ctx.Err())
	<-c.Stop().Done()
	return nil
}

// RunPass executes one polling pass. The only pass-fatal condition is a feed
// fetch failure, which aborts before the cache is touched; every other
// failure degrades to a logged skip.
func (p *Pipeline) RunPass(ctx context.Context) error {
	start := p.clock.Now()

	feed, err := p.source.Fetch(ctx)
	if err != nil {
		p.metrics.PassesTotal.WithLabelValues("aborted").Inc()
		return fmt.Errorf("fetch alert feed: %w", err)
	}

	p.store.Load()
	p.processEntries(ctx, feed)
	p.store.Trim(p.maxEntries)
	if err := p.store.Save(); err != nil {
		// Stale state reloads next pass; worst case is a repeated notification.
		p.logger.Error("persist alert cache failed", "error", err)
		p.metrics.CachePersistErrors.Inc()
	}
	p.metrics.CacheEntries.Set(float64(p.store.Len()))

	p.metrics.PassesTotal.WithLabelValues("completed").Inc()
	p.metrics.PassDuration.Observe(p.clock.Since(start).Seconds())
	p.ready.Store(true)

	p.logger.Info("pass completed", "zone", p.zone, "entries", len(feed.Entries), "cache_entries", p.store.Len())
	return nil
}

func (p *Pipeline) processEntries(ctx context.Context, feed domain.Feed) {
	for _, raw := range feed.Entries {
		alert := domain.NormalizeEntry(raw)

		// A placeholder entry whose id is the feed's own URL means the zone
		// has no active alerts.
		if alert.ID == feed.ID {
			p.logger.Info("no active alerts for zone", "zone", p.zone)
			return
		}

		p.metrics.EntriesSeen.Inc()

		if !domain.IsImportant(alert, p.policy, p.clock.Now()) {
			p.logger.Debug("alert not important, skipping",
				"alert_id", alert.ID, "event", alert.Event, "status", alert.Status, "severity", alert.Severity)
			continue
		}

		var cached *domain.Alert
		if snapshot, ok := p.store.Get(alert.ID); ok {
			cached = &snapshot
		}

		outcome := domain.Decide(alert, cached, p.sendUpdates)
		if outcome == domain.Skip {
			p.logger.Debug("alert already notified, skipping", "alert_id", alert.ID)
			continue
		}

		p.notify(ctx, alert, outcome)
		p.store.Put(alert)
	}
}

// notify attempts delivery once. Failure is logged and recorded but never
// blocks the cache update: staying silent beats notifying twice.
func (p *Pipeline) notify(ctx context.Context, alert domain.Alert, outcome domain.Outcome) {
	msg := domain.BuildNotification(alert, outcome)

	delivered := true
	if err := p.notifier.Send(ctx, msg); err != nil {
		delivered = false
		p.logger.Warn("notification failed", "alert_id", alert.ID, "kind", outcome.String(), "error", err)
		p.metrics.NotifyErrors.Inc()
	} else {
		p.logger.Info("notification sent", "alert_id", alert.ID, "kind", outcome.String(), "event", alert.Event)
		p.metrics.Notifications.WithLabelValues(outcome.String()).Inc()
	}

	p.publishEvent(ctx, alert, outcome, delivered)
}

func (p *Pipeline) publishEvent(ctx context.Context, alert domain.Alert, outcome domain.Outcome, delivered bool) {
	if p.sink == nil {
		return
	}

	event := domain.NotificationEvent{
		AlertID:   alert.ID,
		Zone:      p.zone,
		Outcome:   outcome.String(),
		Event:     alert.Event,
		Severity:  alert.Severity,
		Delivered: delivered,
		SentAt:    p.clock.Now().UTC(),
	}
	if err := p.sink.Publish(ctx, event); err != nil {
		p.logger.Warn("publish notification event failed", "alert_id", alert.ID, "error", err)
		p.metrics.SinkErrors.Inc()
		return
	}
	p.metrics.SinkEvents.Inc()
}
