package engine

import (
	"sort"
	"strings"
	"time"

	"brewery_dashboard/internal/models"
)

// batchFacts is everything derived from a batch's rows regardless of which vessel
// asked. It is computed once per batch per reconstruction.
type batchFacts struct {
	packaged    bool
	url         string
	history     []models.GravityPoint
	historyPH   *float64
	brewingPH   *float64
	avgOE       *float64
	fillVolume  float64
	briteVolume *float64
}

type gravityReading struct {
	at      time.Time
	gravity float64
	rec     Record
}

func (f fields) summarize(batch []dated) batchFacts {
	var (
		bf       batchFacts
		readings []gravityReading
		oeSum    float64
		oeCount  int
		urlAt    time.Time
		briteAt  time.Time
		brewPHAt time.Time
	)
	bf.packaged = f.batchPackaged(batch)

	for _, d := range batch {
		r := d.rec
		if u := f.batchURL(r); u != "" && (bf.url == "" || !d.at.Before(urlAt)) {
			bf.url, urlAt = u, d.at
		}
		if g, ok := f.number(r, f.cols.Gravity); ok {
			readings = append(readings, gravityReading{at: d.at, gravity: g, rec: r})
		}
		if oe, ok := f.number(r, f.cols.OriginalGravity); ok {
			oeSum += oe
			oeCount++
		}
		if v, ok := f.number(r, f.cols.VolumeIntoVessel); ok {
			bf.fillVolume += v
		}
		if v, ok := f.number(r, f.cols.FinalTankVolume); ok && (bf.briteVolume == nil || !d.at.Before(briteAt)) {
			bf.briteVolume, briteAt = ptr(v), d.at
		}
		if v, ok := f.number(r, f.cols.BrewingPH); ok && (bf.brewingPH == nil || !d.at.Before(brewPHAt)) {
			bf.brewingPH, brewPHAt = ptr(v), d.at
		}
	}

	sort.SliceStable(readings, func(i, j int) bool { return readings[i].at.Before(readings[j].at) })
	bf.history = make([]models.GravityPoint, 0, len(readings))
	for _, rd := range readings {
		bf.history = append(bf.history, models.GravityPoint{Time: rd.at, Gravity: rd.gravity})
		if ph, ok := f.number(rd.rec, f.cols.FermentPH); ok {
			bf.historyPH = ptr(ph)
		}
	}
	if oeCount > 0 {
		bf.avgOE = ptr(oeSum / float64(oeCount))
	}
	return bf
}

// ClassifyStage groups free-text stage notes from the daily form.
func ClassifyStage(text string) models.Stage {
	s := strings.ToLower(text)
	switch {
	case strings.Contains(s, "brite"):
		return models.StageBrite
	case strings.Contains(s, "crashed"):
		return models.StageCrashed
	case strings.Contains(s, "d.h"), strings.Contains(s, "clean fusion"):
		return models.StageDryHop
	case strings.Contains(s, "fermentation"):
		return models.StageFermenting
	default:
		return models.StageUnknown
	}
}

// vesselBuilder assembles one occupied VesselState. Nothing outside build sees
// the partially filled value.
type vesselBuilder struct {
	f               fields
	primingConstant float64
	fruitEfficiency float64
}

func (b vesselBuilder) build(id string, cur Event, bf batchFacts, adj models.Adjustment) models.VesselState {
	rec := cur.Record
	st := models.VesselState{
		VesselID:           id,
		BatchID:            b.f.batchID(rec),
		BatchURL:           b.f.batchURL(rec),
		CurrentKind:        cur.Kind,
		Operator:           b.f.operator(rec),
		LastEventTimestamp: cur.At,
		Adjustment:         adj,
	}
	if st.BatchURL == "" {
		st.BatchURL = bf.url
	}

	switch cur.Kind {
	case models.KindTransfer:
		st.StageText, st.Stage = "Brite", models.StageBrite
	case models.KindBrewingDay:
		st.StageText, st.Stage = "Brewing Day", models.StageBrewingDay
	default:
		st.StageText = b.f.stage(rec)
		st.Stage = ClassifyStage(st.StageText)
	}

	st.GravityHistory = append([]models.GravityPoint{}, bf.history...)
	st.AverageOriginalExtract = copyPtr(bf.avgOE)
	if cur.Kind != models.KindBrewingDay && len(bf.history) > 0 {
		st.ActualExtract = ptr(bf.history[len(bf.history)-1].Gravity)
	}
	switch {
	case st.ActualExtract != nil:
		st.Gravity = copyPtr(st.ActualExtract)
	case cur.Kind == models.KindBrewingDay:
		st.Gravity = copyPtr(bf.avgOE)
	}

	if bf.historyPH != nil {
		st.LatestPH = copyPtr(bf.historyPH)
	} else {
		st.LatestPH = copyPtr(bf.brewingPH)
	}
	if v, ok := b.f.firstNumber(rec, b.f.cols.Carbonation); ok {
		st.Carbonation = ptr(v)
	}
	if v, ok := b.f.firstNumber(rec, b.f.cols.DissolvedOxygen); ok {
		st.DissolvedOxygen = ptr(v)
	}

	st.FillVolumeTotal = bf.fillVolume
	st.BrightTankVolume = copyPtr(bf.briteVolume)
	_, st.DisplayVolume = Dilute(0, st.FillVolumeTotal, adj.FruitVolume, b.fruitEfficiency)

	if st.AverageOriginalExtract != nil {
		oe := EffectiveOE(*st.AverageOriginalExtract, st.FillVolumeTotal, adj.DexCount, b.primingConstant)
		st.EffectiveOriginalExtract = ptr(oe)
		if st.ActualExtract != nil {
			if abv, ok := CombinedABV(oe, *st.ActualExtract); ok {
				abv, _ = Dilute(abv, st.FillVolumeTotal, adj.FruitVolume, b.fruitEfficiency)
				st.ABV = ptr(RoundTenth(abv))
			}
		}
	}
	return st
}

func ptr(v float64) *float64 { return &v }

func copyPtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	return ptr(*p)
}
