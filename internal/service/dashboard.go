package service

import (
	"context"
	"fmt"
	"time"

	"brewery_dashboard/internal/logger"
	"brewery_dashboard/internal/models"
	"brewery_dashboard/internal/repository"
)

// DashboardService serves the published snapshot and applies adjustments.
type DashboardService struct {
	store   *snapshotStore
	adjRepo repository.AdjustmentRepo
	log     *logger.Logger
	now     func() time.Time
}

func NewDashboardService(store *snapshotStore, adjRepo repository.AdjustmentRepo, log *logger.Logger) *DashboardService {
	return &DashboardService{store: store, adjRepo: adjRepo, log: log, now: time.Now}
}

// Snapshot returns the latest published snapshot, or ErrNoSnapshot before the
// first successful refresh.
func (s *DashboardService) Snapshot(ctx context.Context) (models.Snapshot, error) {
	snap, ok := s.store.latest()
	if !ok {
		return models.Snapshot{}, ErrNoSnapshot
	}
	return snap, nil
}

func (s *DashboardService) Vessel(ctx context.Context, id string) (models.VesselState, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return models.VesselState{}, err
	}
	v, ok := snap.Vessel(id)
	if !ok {
		return models.VesselState{}, fmt.Errorf("%w: %q", ErrUnknownVessel, id)
	}
	return v, nil
}

// SetAdjustment persists the adjustment and republishes the snapshot from the
// inputs of the last refresh, returning the recomputed vessel.
func (s *DashboardService) SetAdjustment(ctx context.Context, id string, adj models.Adjustment) (models.VesselState, error) {
	if adj.DexCount < 0 || adj.FruitVolume < 0 {
		return models.VesselState{}, fmt.Errorf("%w: dex_count and fruit_volume must be >= 0", ErrInvalidAdjustment)
	}
	vessel, ok := s.store.known(id)
	if !ok {
		return models.VesselState{}, fmt.Errorf("%w: %q", ErrUnknownVessel, id)
	}
	if _, ok := s.store.latest(); !ok {
		return models.VesselState{}, ErrNoSnapshot
	}

	if err := s.adjRepo.Save(ctx, vessel, adj); err != nil {
		return models.VesselState{}, fmt.Errorf("save adjustment: %w", err)
	}
	snap, err := s.store.setAdjustment(vessel, adj, s.now())
	if err != nil {
		return models.VesselState{}, err
	}
	observeSnapshot(snap)
	s.log.Infow("adjustment_applied", "vessel", vessel, "dex_count", adj.DexCount, "fruit_volume", adj.FruitVolume)

	v, _ := snap.Vessel(vessel)
	return v, nil
}

// ClearAdjustment removes the vessel's adjustment.
func (s *DashboardService) ClearAdjustment(ctx context.Context, id string) (models.VesselState, error) {
	return s.SetAdjustment(ctx, id, models.Adjustment{})
}
