package engine

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Fractional seconds are dropped before splitting, since "." is also a date separator.
var (
	dateSplit   = regexp.MustCompile(`[/\s:.\-]+`)
	fracSeconds = regexp.MustCompile(`(\d:\d{1,2})[.,]\d+`)
)

// ParseSheetDate parses "day/month/year[ hour:minute[:second]]" as typed into the
// sheet. Two-digit years are 20xx, a trailing AM/PM is honoured and a leading
// four-digit field is read as year/month/day. It returns the zero time and false
// for anything else, including impossible dates such as 31/02.
func ParseSheetDate(s string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	var parts []string
	for _, p := range dateSplit.Split(fracSeconds.ReplaceAllString(s, "$1"), -1) {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 3 {
		return time.Time{}, false
	}

	pm, am := false, false
	if last := strings.ToUpper(parts[len(parts)-1]); last == "PM" || last == "AM" {
		pm, am = last == "PM", last == "AM"
		parts = parts[:len(parts)-1]
	}
	if len(parts) < 3 || len(parts) > 6 {
		return time.Time{}, false
	}

	nums := make([]int, 6)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return time.Time{}, false
		}
		nums[i] = n
	}

	day, month, year := nums[0], nums[1], nums[2]
	if len(parts[0]) == 4 {
		year, month, day = nums[0], nums[1], nums[2]
	}
	if year < 100 {
		year += 2000
	}
	hour, minute, sec := nums[3], nums[4], nums[5]
	if pm && hour < 12 {
		hour += 12
	}
	if am && hour == 12 {
		hour = 0
	}
	if month < 1 || month > 12 || day < 1 || hour > 23 || minute > 59 || sec > 59 {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, hour, minute, sec, 0, loc)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}
