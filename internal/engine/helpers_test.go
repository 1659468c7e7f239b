package engine

import (
	"time"

	"brewery_dashboard/internal/models"
)

var cols = DefaultColumns()

var testHeader = []string{
	cols.FormType, cols.Date[0], cols.FermentVessel, cols.BrewingVessel, cols.TransferVessel,
	cols.BatchID, cols.BatchURL, cols.Stage, cols.Gravity, cols.FermentPH,
	cols.OriginalGravity, cols.VolumeIntoVessel, cols.BrewingPH, cols.FinalTankVolume,
	cols.Carbonation[1], cols.Operator[0],
}

type row map[string]string

func sheet(rows ...row) Table {
	t := Table{Header: testHeader}
	for _, r := range rows {
		cells := make([]string, len(testHeader))
		for i, h := range testHeader {
			cells[i] = r[h]
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func daily(vessel, date, batch, stage, gravity, ph string) row {
	return row{
		cols.FormType: "Daily Tank Data", cols.Date[0]: date, cols.FermentVessel: vessel,
		cols.BatchID: batch, cols.BatchURL: "https://sheets.example/" + batch,
		cols.Stage: stage, cols.Gravity: gravity, cols.FermentPH: ph,
	}
}

func brewDay(vessel, date, batch, og, volume, ph string) row {
	return row{
		cols.FormType: "Brewing Day Data", cols.Date[0]: date, cols.BrewingVessel: vessel,
		cols.BatchID: batch, cols.OriginalGravity: og, cols.VolumeIntoVessel: volume, cols.BrewingPH: ph,
	}
}

func transfer(vessel, date, batch, finalVolume string) row {
	return row{
		cols.FormType: "Transfer Data", cols.Date[0]: date, cols.TransferVessel: vessel,
		cols.BatchID: batch, cols.FinalTankVolume: finalVolume,
	}
}

func packaging(vessel, date, batch string) row {
	return row{
		cols.FormType: "Packaging Data", cols.Date[0]: date, cols.FermentVessel: vessel, cols.BatchID: batch,
	}
}

// allActive is a feed reporting every default vessel as running.
func allActive() *TelemetryFeed {
	feed := &TelemetryFeed{}
	for _, v := range DefaultVessels() {
		feed.Samples = append(feed.Samples, models.TelemetrySample{VesselID: v, Active: true})
	}
	return feed
}

func vesselByID(t interface{ Fatalf(string, ...any) }, states []models.VesselState, id string) models.VesselState {
	for _, s := range states {
		if s.VesselID == id {
			return s
		}
	}
	t.Fatalf("vessel %s missing from snapshot", id)
	return models.VesselState{}
}

func day(d, m, y int) time.Time { return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC) }

func near(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
