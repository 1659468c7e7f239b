package engine

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"brewery_dashboard/internal/models"
)

// Columns maps each concept the engine reads to spreadsheet header names.
// Slices are prioritized: the first column holding a non-blank value wins.
type Columns struct {
	FermentVessel    string   `mapstructure:"ferment_vessel"`
	BrewingVessel    string   `mapstructure:"brewing_vessel"`
	TransferVessel   string   `mapstructure:"transfer_vessel"`
	BatchID          string   `mapstructure:"batch_id"`
	BatchURL         string   `mapstructure:"batch_url"`
	FormType         string   `mapstructure:"form_type"`
	Date             []string `mapstructure:"date"`
	Stage            string   `mapstructure:"stage"`
	Gravity          string   `mapstructure:"gravity"`
	FermentPH        string   `mapstructure:"ferment_ph"`
	BrewingPH        string   `mapstructure:"brewing_ph"`
	OriginalGravity  string   `mapstructure:"original_gravity"`
	VolumeIntoVessel string   `mapstructure:"volume_into_vessel"`
	FinalTankVolume  string   `mapstructure:"final_tank_volume"`
	Carbonation      []string `mapstructure:"carbonation"`
	DissolvedOxygen  []string `mapstructure:"dissolved_oxygen"`
	Operator         []string `mapstructure:"operator"`
}

// DefaultColumns is the header layout of the brewery's form-response sheet.
func DefaultColumns() Columns {
	return Columns{
		FermentVessel:    "Daily_Tank_Data.FVFerm",
		BrewingVessel:    "Brewing_Day_Data.FV_Tank",
		TransferVessel:   "Transfer_Data.BBT_Tank",
		BatchID:          "EX",
		BatchURL:         "EY",
		FormType:         "What_are_you_filling_out_today_",
		Date:             []string{"DateFerm", "Timestamp"},
		Stage:            "Daily_Tank_Data.What_Stage_in_the_Product_in_",
		Gravity:          "Daily_Tank_Data.GravityFerm",
		FermentPH:        "Daily_Tank_Data.pHFerm",
		BrewingPH:        "Brewing_Day_Data.pH",
		OriginalGravity:  "Brewing_Day_Data.Original_Gravity",
		VolumeIntoVessel: "Brewing_Day_Data.Volume_into_FV",
		FinalTankVolume:  "Transfer_Data.Final_Tank_Volume",
		Carbonation:      []string{"Transfer_Data.Carbonation", "Daily_Tank_Data.Bright_Tank_CarbonationFerm"},
		DissolvedOxygen:  []string{"Transfer_Data.Dissolved_Oxygen", "Daily_Tank_Data.Bright_Tank_Dissolved_OxygenFerm"},
		Operator:         []string{"Your_Name", "Name"},
	}
}

// withDefaults fills blank entries from DefaultColumns.
func (c Columns) withDefaults() Columns {
	d := DefaultColumns()
	pick := func(v, def string) string {
		if strings.TrimSpace(v) == "" {
			return def
		}
		return v
	}
	pickAll := func(v, def []string) []string {
		if len(v) == 0 {
			return def
		}
		return v
	}
	return Columns{
		FermentVessel:    pick(c.FermentVessel, d.FermentVessel),
		BrewingVessel:    pick(c.BrewingVessel, d.BrewingVessel),
		TransferVessel:   pick(c.TransferVessel, d.TransferVessel),
		BatchID:          pick(c.BatchID, d.BatchID),
		BatchURL:         pick(c.BatchURL, d.BatchURL),
		FormType:         pick(c.FormType, d.FormType),
		Date:             pickAll(c.Date, d.Date),
		Stage:            pick(c.Stage, d.Stage),
		Gravity:          pick(c.Gravity, d.Gravity),
		FermentPH:        pick(c.FermentPH, d.FermentPH),
		BrewingPH:        pick(c.BrewingPH, d.BrewingPH),
		OriginalGravity:  pick(c.OriginalGravity, d.OriginalGravity),
		VolumeIntoVessel: pick(c.VolumeIntoVessel, d.VolumeIntoVessel),
		FinalTankVolume:  pick(c.FinalTankVolume, d.FinalTankVolume),
		Carbonation:      pickAll(c.Carbonation, d.Carbonation),
		DissolvedOxygen:  pickAll(c.DissolvedOxygen, d.DissolvedOxygen),
		Operator:         pickAll(c.Operator, d.Operator),
	}
}

// ParseWarning reports a non-blank cell that could not be parsed. The engine
// substitutes "absent" (or the zero time) and carries on.
type ParseWarning struct {
	Row    int
	Column string
	Value  string
}

// fields is the typed accessor layer over Records.
type fields struct {
	cols Columns
	loc  *time.Location
	warn func(ParseWarning)
}

func (f fields) text(r Record, column string) string {
	return strings.TrimSpace(r.Get(column))
}

// firstOf is the prioritized lookup: it returns the first non-blank value among
// columns, and the column it came from.
func (f fields) firstOf(r Record, columns []string) (string, string) {
	for _, c := range columns {
		if v := f.text(r, c); v != "" {
			return v, c
		}
	}
	return "", ""
}

func (f fields) number(r Record, column string) (float64, bool) {
	raw := f.text(r, column)
	if raw == "" {
		return 0, false
	}
	v, ok := parseLeadingFloat(raw)
	if !ok {
		f.report(r, column, raw)
	}
	return v, ok
}

func (f fields) firstNumber(r Record, columns []string) (float64, bool) {
	raw, col := f.firstOf(r, columns)
	if raw == "" {
		return 0, false
	}
	v, ok := parseLeadingFloat(raw)
	if !ok {
		f.report(r, col, raw)
	}
	return v, ok
}

func (f fields) timestamp(r Record) time.Time {
	raw, col := f.firstOf(r, f.cols.Date)
	if raw == "" {
		return time.Time{}
	}
	t, ok := ParseSheetDate(raw, f.loc)
	if !ok {
		f.report(r, col, raw)
	}
	return t
}

func (f fields) report(r Record, column, value string) {
	if f.warn != nil {
		f.warn(ParseWarning{Row: r.Index(), Column: column, Value: value})
	}
}

func (f fields) batchID(r Record) string  { return f.text(r, f.cols.BatchID) }
func (f fields) batchURL(r Record) string { return f.text(r, f.cols.BatchURL) }
func (f fields) stage(r Record) string    { return f.text(r, f.cols.Stage) }

func (f fields) operator(r Record) string {
	v, _ := f.firstOf(r, f.cols.Operator)
	return v
}

const packagingPhrase = "packaging data"

// isPackaging reports whether the row was filled from the packaging form.
func (f fields) isPackaging(r Record) bool {
	return strings.Contains(strings.ToLower(r.Get(f.cols.FormType)), packagingPhrase)
}

// sameVessel compares tank codes the way telemetry ids are compared, so "fv 1"
// in the sheet and "FV1" in the feed name the same tank.
func sameVessel(cell, vessel string) bool {
	c := models.NormalizeVesselID(cell)
	return c != "" && c == models.NormalizeVesselID(vessel)
}

var leadingFloat = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// parseLeadingFloat reads the numeric prefix of s ("12.5 °P" -> 12.5), so unit
// suffixes typed into the sheet do not discard the reading.
func parseLeadingFloat(s string) (float64, bool) {
	m := leadingFloat.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
