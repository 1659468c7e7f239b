package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"brewery_dashboard/internal/engine"
	"brewery_dashboard/internal/logger"
	"brewery_dashboard/internal/models"
	"brewery_dashboard/internal/repository"
)

// RefreshService fetches both sources and publishes a new snapshot.
type RefreshService struct {
	store     *snapshotStore
	sheets    TableSource
	telemetry TelemetrySource
	trigger   RefreshTrigger
	eventRepo repository.EventRepo
	log       *logger.Logger

	manual atomic.Bool
	now    func() time.Time
}

func NewRefreshService(
	store *snapshotStore,
	sheets TableSource,
	telemetry TelemetrySource,
	trigger RefreshTrigger,
	eventRepo repository.EventRepo,
	log *logger.Logger,
) *RefreshService {
	return &RefreshService{
		store:     store,
		sheets:    sheets,
		telemetry: telemetry,
		trigger:   trigger,
		eventRepo: eventRepo,
		log:       log,
		now:       time.Now,
	}
}

// Run refreshes at the given interval until ctx is canceled. Failures are
// logged and the previous snapshot stays published.
func (s *RefreshService) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if _, err := s.Refresh(ctx, models.TriggerTimer); err != nil && ctx.Err() == nil {
				s.log.Errorw("refresh_failed", "err", err, "trigger", models.TriggerTimer)
			}
		}
	}
}

// ManualRefresh runs the sheet trigger, then a refresh. Only one manual
// refresh runs at a time; a second caller gets ErrRefreshInProgress.
func (s *RefreshService) ManualRefresh(ctx context.Context) (models.Snapshot, error) {
	if !s.manual.CompareAndSwap(false, true) {
		return models.Snapshot{}, ErrRefreshInProgress
	}
	defer s.manual.Store(false)

	if s.trigger != nil {
		if err := s.trigger.Trigger(ctx); err != nil {
			refreshTotal.WithLabelValues(models.TriggerManual, outcomeTriggerFailed).Inc()
			s.appendEvent(ctx, models.EventTriggerFailed, "sheet refresh trigger failed", map[string]any{"error": err.Error()})
			return models.Snapshot{}, err
		}
	}
	return s.Refresh(ctx, models.TriggerManual)
}

// Refresh fetches, reconstructs and publishes. A run that finishes after a
// newer run has published is discarded and the newer snapshot is returned.
func (s *RefreshService) Refresh(ctx context.Context, trigger string) (models.Snapshot, error) {
	gen := s.store.begin()
	start := s.now()
	s.appendEvent(ctx, models.EventStart, "refresh started", map[string]any{"trigger": trigger, "generation": gen})

	table, feed, err := s.fetch(ctx)
	if err != nil {
		return s.fail(ctx, trigger, start, err)
	}

	snap, published, err := s.store.commit(gen, table, feed, trigger, s.now())
	if err != nil {
		return s.fail(ctx, trigger, start, err)
	}
	elapsed := s.now().Sub(start)
	refreshDuration.WithLabelValues(trigger).Observe(elapsed.Seconds())

	if !published {
		refreshTotal.WithLabelValues(trigger, outcomeStale).Inc()
		s.log.Infow("refresh_discarded", "trigger", trigger, "generation", gen)
		return snap, nil
	}

	refreshTotal.WithLabelValues(trigger, outcomeSuccess).Inc()
	observeSnapshot(snap)
	s.appendEvent(ctx, models.EventSuccess, "snapshot published", map[string]any{
		"trigger":     trigger,
		"snapshot_id": snap.ID,
		"telemetry":   snap.TelemetryAvailable,
		"duration_ms": elapsed.Milliseconds(),
	})
	s.log.Infow("refresh_published", "trigger", trigger, "snapshot_id", snap.ID, "telemetry", snap.TelemetryAvailable)
	return snap, nil
}

// fetch reads both sources concurrently. The sheet is required; telemetry
// fails open to a nil feed.
func (s *RefreshService) fetch(ctx context.Context) (engine.Table, *engine.TelemetryFeed, error) {
	var (
		table        engine.Table
		feed         *engine.TelemetryFeed
		telemetryErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.sheets.FetchTable(gctx)
		if err != nil {
			return fmt.Errorf("fetch sheet: %w", err)
		}
		table = t
		return nil
	})
	if s.telemetry != nil {
		g.Go(func() error {
			samples, err := s.telemetry.FetchTelemetry(gctx)
			if err != nil {
				telemetryErr = err
				return nil
			}
			feed = &engine.TelemetryFeed{Samples: samples}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return engine.Table{}, nil, err
	}

	if telemetryErr != nil {
		telemetryFailures.Inc()
		s.log.Warnw("telemetry_unavailable", "err", telemetryErr)
		s.appendEvent(ctx, models.EventTelemetryUnavailable, "telemetry feed unavailable; occupancy from sheet only",
			map[string]any{"error": telemetryErr.Error()})
	}
	return table, feed, nil
}

func (s *RefreshService) fail(ctx context.Context, trigger string, start time.Time, err error) (models.Snapshot, error) {
	refreshDuration.WithLabelValues(trigger).Observe(s.now().Sub(start).Seconds())
	refreshTotal.WithLabelValues(trigger, outcomeFailure).Inc()

	meta := map[string]any{"trigger": trigger, "error": err.Error()}
	var noData *engine.NoDataError
	if errors.As(err, &noData) {
		meta["no_data"] = true
	}
	s.appendEvent(ctx, models.EventFailure, "refresh failed; previous snapshot kept", meta)
	return models.Snapshot{}, err
}

// appendEvent records to the audit log. A failing log write never fails the refresh.
func (s *RefreshService) appendEvent(ctx context.Context, typ, desc string, meta map[string]any) {
	if s.eventRepo == nil {
		return
	}
	err := s.eventRepo.Append(ctx, models.RefreshEvent{
		OccurredAt:  s.now().UTC(),
		Type:        typ,
		Description: desc,
		Metadata:    meta,
	})
	if err != nil {
		s.log.Errorw("refresh_event_append_failed", "err", err, "type", typ)
	}
}
