package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"brewery_dashboard/internal/engine"
	"brewery_dashboard/internal/models"
)

// snapshotStore owns the published snapshot, the inputs it was built from and
// the adjustment overlay. Every rebuild happens under mu, so an adjustment
// change and a refresh never publish from different overlays.
type snapshotStore struct {
	eng *engine.Engine

	mu        sync.RWMutex
	snap      *models.Snapshot
	table     engine.Table
	feed      *engine.TelemetryFeed
	adj       engine.Adjustments
	published uint64 // generation of the run behind snap
	issued    uint64 // last generation handed out by begin
}

func newSnapshotStore(eng *engine.Engine, adj map[string]models.Adjustment) *snapshotStore {
	overlay := make(engine.Adjustments, len(adj))
	for k, v := range adj {
		overlay[models.NormalizeVesselID(k)] = v
	}
	return &snapshotStore{eng: eng, adj: overlay}
}

// begin hands out the generation for a new refresh run.
func (s *snapshotStore) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// commit rebuilds from fresh inputs and publishes unless a newer run got
// there first, in which case the newer snapshot is returned with ok=false.
func (s *snapshotStore) commit(gen uint64, table engine.Table, feed *engine.TelemetryFeed, trigger string, now time.Time) (snap models.Snapshot, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen < s.published {
		return *s.snap, false, nil
	}
	states, err := s.eng.Reconstruct(table, feed, s.adj)
	if err != nil {
		return models.Snapshot{}, false, err
	}
	s.table, s.feed, s.published = table, feed, gen
	return s.publish(states, trigger, now), true, nil
}

// setAdjustment updates the overlay and rebuilds from the cached inputs.
func (s *snapshotStore) setAdjustment(id string, a models.Adjustment, now time.Time) (models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap == nil {
		return models.Snapshot{}, ErrNoSnapshot
	}
	key := models.NormalizeVesselID(id)
	prev, had := s.adj[key]
	if a.IsZero() {
		delete(s.adj, key)
	} else {
		s.adj[key] = a
	}
	states, err := s.eng.Reconstruct(s.table, s.feed, s.adj)
	if err != nil {
		// the cached table produced a snapshot before, so this only guards the overlay
		if had {
			s.adj[key] = prev
		} else {
			delete(s.adj, key)
		}
		return models.Snapshot{}, err
	}
	return s.publish(states, models.TriggerAdjustment, now), nil
}

func (s *snapshotStore) publish(states []models.VesselState, trigger string, now time.Time) models.Snapshot {
	snap := models.Snapshot{
		ID:                 uuid.NewString(),
		GeneratedAt:        now.UTC(),
		Trigger:            trigger,
		TelemetryAvailable: s.feed != nil,
		Vessels:            states,
	}
	s.snap = &snap
	return snap
}

func (s *snapshotStore) latest() (models.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return models.Snapshot{}, false
	}
	return *s.snap, true
}

// known reports whether id names a configured vessel, returning its canonical form.
func (s *snapshotStore) known(id string) (string, bool) {
	want := models.NormalizeVesselID(id)
	for _, v := range s.eng.Vessels() {
		if models.NormalizeVesselID(v) == want {
			return v, true
		}
	}
	return "", false
}
