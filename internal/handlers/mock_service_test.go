package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"brewery_dashboard/internal/models"
	"brewery_dashboard/internal/service"
)

// ---- Service Mocks ----

type mockDashboard struct {
	mu      sync.Mutex
	snap    models.Snapshot
	err     error
	adjErr  error
	lastID  string
	lastAdj models.Adjustment
	cleared int
}

func (m *mockDashboard) Snapshot(ctx context.Context) (models.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap, m.err
}

func (m *mockDashboard) Vessel(ctx context.Context, id string) (models.VesselState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return models.VesselState{}, m.err
	}
	v, ok := m.snap.Vessel(id)
	if !ok {
		return models.VesselState{}, service.ErrUnknownVessel
	}
	return v, nil
}

func (m *mockDashboard) SetAdjustment(ctx context.Context, id string, adj models.Adjustment) (models.VesselState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastID = id
	m.lastAdj = adj
	if m.adjErr != nil {
		return models.VesselState{}, m.adjErr
	}
	v, _ := m.snap.Vessel(id)
	v.Adjustment = adj
	return v, nil
}

func (m *mockDashboard) ClearAdjustment(ctx context.Context, id string) (models.VesselState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastID = id
	m.cleared++
	if m.adjErr != nil {
		return models.VesselState{}, m.adjErr
	}
	v, _ := m.snap.Vessel(id)
	v.Adjustment = models.Adjustment{}
	return v, nil
}

// setSnapshot swaps the served snapshot; safe while a stream is reading.
func (m *mockDashboard) setSnapshot(s models.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = s
	m.err = nil
}

type mockRefresher struct {
	snap   models.Snapshot
	err    error
	called int
}

func (m *mockRefresher) Run(ctx context.Context, interval time.Duration) { <-ctx.Done() }

func (m *mockRefresher) Refresh(ctx context.Context, trigger string) (models.Snapshot, error) {
	return m.snap, m.err
}

func (m *mockRefresher) ManualRefresh(ctx context.Context) (models.Snapshot, error) {
	m.called++
	return m.snap, m.err
}

type mockEventLog struct {
	resp     []models.RefreshEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.RefreshEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	return newTestRouterWith(s, Config{})
}

func newTestRouterWith(s *service.Service, cfg Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewHandler(s, nil, cfg).InitRoutes()
}

func ptr(f float64) *float64 { return &f }

// sampleSnapshot has one fermenting and one empty vessel.
func sampleSnapshot(id string) models.Snapshot {
	fv1 := models.VesselState{
		VesselID:               "FV1",
		BatchID:                "B-042 West Coast IPA with a long name",
		StageText:              "Fermentation",
		Stage:                  models.StageFermenting,
		CurrentKind:            models.KindFermentation,
		AverageOriginalExtract: ptr(12.2),
		ActualExtract:          ptr(2.5),
		Gravity:                ptr(2.5),
		ABV:                    ptr(5.1),
		FillVolumeTotal:        1000,
		DisplayVolume:          1000,
		GravityHistory: []models.GravityPoint{
			{Time: time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC), Gravity: 8},
			{Time: time.Date(2024, 5, 5, 9, 30, 0, 0, time.UTC), Gravity: 2.5},
		},
		LastEventTimestamp: time.Date(2024, 5, 5, 9, 30, 0, 0, time.UTC),
	}
	return models.Snapshot{
		ID:          id,
		GeneratedAt: time.Date(2024, 5, 5, 10, 0, 0, 0, time.UTC),
		Trigger:     models.TriggerTimer,
		Vessels:     []models.VesselState{fv1, models.EmptyVessel("FV2", time.Time{})},
	}
}
