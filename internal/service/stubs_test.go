package service

import (
	"context"
	"sync"
	"time"

	"brewery_dashboard/internal/engine"
	"brewery_dashboard/internal/models"
	"brewery_dashboard/internal/repository"
)

// fakeEventRepo is a minimal stub that satisfies the repository.EventRepo interface.
type fakeEventRepo struct {
	mu sync.Mutex

	// captured inputs
	gotFrom time.Time
	gotTo   time.Time
	gotType string
	appends []models.RefreshEvent

	// configured outputs
	events    []models.RefreshEvent
	err       error
	appendErr error

	calls int
}

func (f *fakeEventRepo) List(_ context.Context, from, to time.Time, typ string) ([]models.RefreshEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.gotFrom, f.gotTo, f.gotType = from, to, typ
	return f.events, f.err
}

func (f *fakeEventRepo) Append(_ context.Context, e models.RefreshEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appends = append(f.appends, e)
	return f.appendErr
}

func (f *fakeEventRepo) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.appends))
	for i, e := range f.appends {
		out[i] = e.Type
	}
	return out
}

type fakeAdjustmentRepo struct {
	mu      sync.Mutex
	stored  map[string]models.Adjustment
	saveErr error
	listErr error
}

func (f *fakeAdjustmentRepo) Save(_ context.Context, id string, a models.Adjustment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	if f.stored == nil {
		f.stored = map[string]models.Adjustment{}
	}
	if a.IsZero() {
		delete(f.stored, id)
		return nil
	}
	f.stored[id] = a
	return nil
}

func (f *fakeAdjustmentRepo) Delete(ctx context.Context, id string) error {
	return f.Save(ctx, id, models.Adjustment{})
}

func (f *fakeAdjustmentRepo) List(context.Context) (map[string]models.Adjustment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]models.Adjustment, len(f.stored))
	for k, v := range f.stored {
		out[k] = v
	}
	return out, f.listErr
}

type stubSheets struct {
	mu    sync.Mutex
	table engine.Table
	err   error
	calls int
}

func (s *stubSheets) FetchTable(context.Context) (engine.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.table, s.err
}

func (s *stubSheets) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubTelemetry struct {
	samples []models.TelemetrySample
	err     error
}

func (s *stubTelemetry) FetchTelemetry(context.Context) ([]models.TelemetrySample, error) {
	return s.samples, s.err
}

// stubTrigger blocks on release when it is set, so tests can hold a manual
// refresh in flight.
type stubTrigger struct {
	err     error
	entered chan struct{}
	release chan struct{}
}

func (s *stubTrigger) Trigger(ctx context.Context) error {
	if s.entered != nil {
		close(s.entered)
	}
	if s.release != nil {
		select {
		case <-s.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return s.err
}

var testVessels = []string{"FV1", "FV2"}

func testEngine() *engine.Engine {
	return engine.New(engine.Options{Vessels: testVessels})
}

// brewSheet holds one fermenting batch on FV1: OE 12.2 over 1000 L, AE 2.5.
func brewSheet() engine.Table {
	c := engine.DefaultColumns()
	return engine.Table{
		Header: []string{
			c.FormType, c.Date[0], c.FermentVessel, c.BrewingVessel, c.BatchID,
			c.Stage, c.Gravity, c.OriginalGravity, c.VolumeIntoVessel,
		},
		Rows: [][]string{
			{"Brewing Day Data", "01/05/2024", "", "FV1", "B1", "", "", "12.2", "1000"},
			{"Daily Tank Data", "05/05/2024", "FV1", "", "B1", "Fermentation", "2.5", "", ""},
		},
	}
}

func activeFeed(ids ...string) *stubTelemetry {
	s := &stubTelemetry{}
	for _, id := range ids {
		s.samples = append(s.samples, models.TelemetrySample{VesselID: id, Active: true})
	}
	return s
}

type fixture struct {
	svc       *Service
	sheets    *stubSheets
	events    *fakeEventRepo
	adj       *fakeAdjustmentRepo
	refresher *RefreshService
}

func newFixture(t interface{ Fatalf(string, ...any) }, tel TelemetrySource, trig RefreshTrigger) fixture {
	f := fixture{
		sheets: &stubSheets{table: brewSheet()},
		events: &fakeEventRepo{},
		adj:    &fakeAdjustmentRepo{},
	}
	svc, err := NewService(context.Background(),
		&repository.Repository{AdjustmentRepo: f.adj, EventRepo: f.events},
		Deps{Engine: testEngine(), Sheets: f.sheets, Telemetry: tel, Trigger: trig},
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	f.svc = svc
	f.refresher = svc.Refresher.(*RefreshService)
	return f
}
