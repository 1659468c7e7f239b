package engine

import (
	"time"

	"brewery_dashboard/internal/models"
)

// Event is a record attributed to a vessel, tagged with its kind and parsed time.
type Event struct {
	Kind   models.EventKind
	At     time.Time
	Record Record
}

// Classified holds a vessel's events split into the three disjoint kinds,
// each in input order.
type Classified struct {
	Fermentation []Event
	BrewingDay   []Event
	Transfer     []Event
}

// dated is a record with its timestamp parsed once per reconstruction.
type dated struct {
	rec Record
	at  time.Time
}

// classify selects the events for one vessel. Fermentation rows are matched on the
// daily-form tank column; brewing-day and transfer rows carry their own tank
// reference columns. A row that matches several is attributed to the first kind
// in that order.
func (f fields) classify(rows []dated, vessel string) Classified {
	var c Classified
	for _, d := range rows {
		switch {
		case sameVessel(d.rec.Get(f.cols.FermentVessel), vessel):
			c.Fermentation = append(c.Fermentation, Event{Kind: models.KindFermentation, At: d.at, Record: d.rec})
		case sameVessel(d.rec.Get(f.cols.BrewingVessel), vessel):
			c.BrewingDay = append(c.BrewingDay, Event{Kind: models.KindBrewingDay, At: d.at, Record: d.rec})
		case sameVessel(d.rec.Get(f.cols.TransferVessel), vessel):
			c.Transfer = append(c.Transfer, Event{Kind: models.KindTransfer, At: d.at, Record: d.rec})
		}
	}
	return c
}

// Len is the number of events across all kinds.
func (c Classified) Len() int {
	return len(c.Fermentation) + len(c.BrewingDay) + len(c.Transfer)
}

// Current returns the most recent dated event. Equal timestamps go to the row
// entered later in the sheet. Undated events are never current.
func (c Classified) Current() (Event, bool) {
	var (
		best  Event
		found bool
	)
	for _, set := range [][]Event{c.Fermentation, c.BrewingDay, c.Transfer} {
		for _, ev := range set {
			if ev.At.IsZero() {
				continue
			}
			if !found || ev.At.After(best.At) || (ev.At.Equal(best.At) && ev.Record.Index() > best.Record.Index()) {
				best, found = ev, true
			}
		}
	}
	return best, found
}

// Latest is the newest non-zero timestamp among the vessel's events.
func (c Classified) Latest() time.Time {
	var t time.Time
	for _, set := range [][]Event{c.Fermentation, c.BrewingDay, c.Transfer} {
		for _, ev := range set {
			if ev.At.After(t) {
				t = ev.At
			}
		}
	}
	return t
}
