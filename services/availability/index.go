// Package availability answers "is this date bookable" and "which windows are
// open on it" from a provider's rule set. Everything here is a pure function
// of the rules passed in; callers that want caching do it themselves.
package availability

import (
	"sort"
	"time"

	"carebook/models"
)

// Matches reports whether a single rule opens the given date: a recurring
// rule matches when its day-of-week equals the date's, a dated rule only on
// an exact date match. An unparseable date matches nothing.
func Matches(rule models.AvailabilityRule, date string) bool {
	if rule.Recurring {
		d, err := time.Parse(models.DateLayout, date)
		if err != nil {
			return false
		}
		return int(d.Weekday()) == rule.DayOfWeek
	}
	return rule.Date == date
}

// Bookable is true iff at least one rule matches the date.
func Bookable(rules []models.AvailabilityRule, date string) bool {
	for _, rule := range rules {
		if Matches(rule, date) {
			return true
		}
	}
	return false
}

// OpenRanges returns the window of every matching rule, sorted by start
// minute. Ranges are deliberately not merged or deduplicated: two rules that
// overlap yield two overlapping ranges, and each one independently opens the
// date.
func OpenRanges(rules []models.AvailabilityRule, date string) []models.TimeRange {
	var ranges []models.TimeRange
	for _, rule := range rules {
		if Matches(rule, date) {
			ranges = append(ranges, rule.Range())
		}
	}
	sort.SliceStable(ranges, func(i, j int) bool {
		if ranges[i].Start != ranges[j].Start {
			return ranges[i].Start < ranges[j].Start
		}
		return ranges[i].End < ranges[j].End
	})
	return ranges
}

// HourStarts lists the selectable whole-hour start points inside a range:
// every hour h with ceil(start) <= h < end-hour. Slot granularity is
// hour-only; a rule boundary that is not hour-aligned truncates inward
// (08:30-20:30 offers 9 through 19). This is a known limitation, not a bug:
// pricing and the creation guard both assume hour-granularity durations.
func HourStarts(r models.TimeRange) []int {
	first := r.Start / 60
	if r.Start%60 != 0 {
		first++
	}
	last := r.End / 60 // exclusive: the end hour is never a start
	var hours []int
	for h := first; h < last; h++ {
		hours = append(hours, h)
	}
	return hours
}

// StartHours flattens HourStarts over every open range for the date, in
// range order, without deduplication across overlapping ranges.
func StartHours(rules []models.AvailabilityRule, date string) []int {
	var hours []int
	for _, r := range OpenRanges(rules, date) {
		hours = append(hours, HourStarts(r)...)
	}
	return hours
}

// Contains reports whether a requested session fits entirely inside the
// range: start at or after the range start, and start plus duration at or
// before the range end.
func Contains(r models.TimeRange, startMinute, durationHours int) bool {
	return startMinute >= r.Start && startMinute+durationHours*60 <= r.End
}

// FitsAny is the creation guard: the requested window must lie entirely
// within at least one open range for the date.
func FitsAny(rules []models.AvailabilityRule, date string, startMinute, durationHours int) bool {
	for _, r := range OpenRanges(rules, date) {
		if Contains(r, startMinute, durationHours) {
			return true
		}
	}
	return false
}
