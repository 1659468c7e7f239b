package service

import (
	"context"
	"errors"
	"time"

	"brewery_dashboard/internal/engine"
	"brewery_dashboard/internal/logger"
	"brewery_dashboard/internal/models"
	"brewery_dashboard/internal/repository"
)

var (
	ErrNoSnapshot        = errors.New("no snapshot available yet")
	ErrUnknownVessel     = errors.New("unknown vessel")
	ErrInvalidAdjustment = errors.New("invalid adjustment")
	ErrRefreshInProgress = errors.New("refresh already in progress")
	errInvalidTimeRange  = errors.New("invalid time range: From must be <= To")
)

// TableSource supplies the raw form-response sheet.
type TableSource interface {
	FetchTable(ctx context.Context) (engine.Table, error)
}

// TelemetrySource supplies the live vessel list from the temperature controller.
type TelemetrySource interface {
	FetchTelemetry(ctx context.Context) ([]models.TelemetrySample, error)
}

// RefreshTrigger asks the sheet to pull fresh form responses.
type RefreshTrigger interface {
	Trigger(ctx context.Context) error
}

// Dashboard exposes the latest snapshot and the per-vessel adjustments.
type Dashboard interface {
	Snapshot(ctx context.Context) (models.Snapshot, error)
	Vessel(ctx context.Context, id string) (models.VesselState, error)
	SetAdjustment(ctx context.Context, id string, adj models.Adjustment) (models.VesselState, error)
	ClearAdjustment(ctx context.Context, id string) (models.VesselState, error)
}

// Refresher rebuilds snapshots, on a timer via Run or on demand.
// Stop Run via context cancellation in main() for graceful shutdown.
type Refresher interface {
	Run(ctx context.Context, interval time.Duration)
	Refresh(ctx context.Context, trigger string) (models.Snapshot, error)
	ManualRefresh(ctx context.Context) (models.Snapshot, error)
}

// EventLog exposes the refresh audit log with filtering.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.RefreshEvent, error)
}

// Service aggregates all sub-services.
type Service struct {
	Dashboard
	Refresher
	EventLog
}

// Deps are the collaborators outside the repository layer. Telemetry and
// Trigger may be nil: without telemetry every snapshot is built as if the feed
// were down, without a trigger manual refreshes skip straight to the fetch.
type Deps struct {
	Engine    *engine.Engine
	Sheets    TableSource
	Telemetry TelemetrySource
	Trigger   RefreshTrigger
	Log       *logger.Logger
}

// NewService wires the repositories and collaborators into concrete services.
// Stored adjustments are loaded once here; afterwards the store's copy is
// authoritative and every change is written through.
func NewService(ctx context.Context, repos *repository.Repository, deps Deps) (*Service, error) {
	if deps.Log == nil {
		deps.Log = logger.NewNop()
	}
	adj, err := repos.AdjustmentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	st := newSnapshotStore(deps.Engine, adj)

	return &Service{
		Dashboard: NewDashboardService(st, repos.AdjustmentRepo, deps.Log),
		Refresher: NewRefreshService(st, deps.Sheets, deps.Telemetry, deps.Trigger, repos.EventRepo, deps.Log),
		EventLog:  NewEventLogService(repos.EventRepo),
	}, nil
}
