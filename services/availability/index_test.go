package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"carebook/models"
)

// 2024-11-25 is a Monday, 2024-11-26 a Tuesday.
const (
	monday  = "2024-11-25"
	tuesday = "2024-11-26"
)

func recurringRule(day, start, end int) models.AvailabilityRule {
	return models.AvailabilityRule{ID: "r", ProviderID: "P1", Recurring: true, DayOfWeek: day, StartMinute: start, EndMinute: end}
}

func datedRule(date string, start, end int) models.AvailabilityRule {
	return models.AvailabilityRule{ID: "d", ProviderID: "P1", Date: date, StartMinute: start, EndMinute: end}
}

func TestBookable_RecurringMatchesWeekday(t *testing.T) {
	rules := []models.AvailabilityRule{recurringRule(1, 8*60, 20*60)} // Mondays

	assert.True(t, Bookable(rules, monday))
	assert.False(t, Bookable(rules, tuesday))
}

func TestBookable_DatedMatchesExactDateOnly(t *testing.T) {
	rules := []models.AvailabilityRule{datedRule(tuesday, 9*60, 12*60)}

	assert.True(t, Bookable(rules, tuesday))
	// Same weekday one week later must not match a dated rule.
	assert.False(t, Bookable(rules, "2024-12-03"))
}

func TestBookable_AnyMatchingRuleOpensTheDate(t *testing.T) {
	rules := []models.AvailabilityRule{
		recurringRule(3, 8*60, 12*60), // Wednesdays, irrelevant here
		datedRule(monday, 14*60, 18*60),
	}
	assert.True(t, Bookable(rules, monday))
}

func TestBookable_UnparseableDate(t *testing.T) {
	rules := []models.AvailabilityRule{recurringRule(1, 8*60, 20*60)}
	assert.False(t, Bookable(rules, "not-a-date"))
}

func TestOpenRanges_SortedNotMerged(t *testing.T) {
	rules := []models.AvailabilityRule{
		recurringRule(1, 14*60, 18*60),
		datedRule(monday, 8*60, 15*60), // overlaps the recurring window
	}

	ranges := OpenRanges(rules, monday)
	assert.Equal(t, []models.TimeRange{
		{Start: 8 * 60, End: 15 * 60},
		{Start: 14 * 60, End: 18 * 60},
	}, ranges, "overlapping ranges are returned as-is, in start order")
}

func TestOpenRanges_NoMatch(t *testing.T) {
	rules := []models.AvailabilityRule{recurringRule(1, 8*60, 20*60)}
	assert.Empty(t, OpenRanges(rules, tuesday))
}

func TestHourStarts_WholeHours(t *testing.T) {
	hours := HourStarts(models.TimeRange{Start: 8 * 60, End: 11 * 60})
	assert.Equal(t, []int{8, 9, 10}, hours, "the end hour is never offered as a start")
}

func TestHourStarts_SubHourBoundariesTruncateInward(t *testing.T) {
	// 08:30-20:30 offers 9 through 19 only; minute precision is not supported.
	hours := HourStarts(models.TimeRange{Start: 8*60 + 30, End: 20*60 + 30})
	assert.Equal(t, 9, hours[0])
	assert.Equal(t, 19, hours[len(hours)-1])
}

func TestStartHours_AcrossOverlappingRangesNotDeduplicated(t *testing.T) {
	rules := []models.AvailabilityRule{
		recurringRule(1, 9*60, 11*60),
		datedRule(monday, 10*60, 12*60),
	}
	assert.Equal(t, []int{9, 10, 10, 11}, StartHours(rules, monday))
}

func TestContains_FullContainmentOnly(t *testing.T) {
	r := models.TimeRange{Start: 8 * 60, End: 20 * 60}

	assert.True(t, Contains(r, 14*60, 3))
	assert.True(t, Contains(r, 8*60, 12), "window may exactly fill the range")
	assert.False(t, Contains(r, 18*60, 3), "window spilling past the end does not fit")
	assert.False(t, Contains(r, 7*60, 2), "window starting before the range does not fit")
}

func TestFitsAny(t *testing.T) {
	rules := []models.AvailabilityRule{
		recurringRule(1, 8*60, 12*60),
		recurringRule(1, 14*60, 20*60),
	}

	assert.True(t, FitsAny(rules, monday, 14*60, 3))
	assert.False(t, FitsAny(rules, monday, 11*60, 4), "window straddling two ranges fits neither")
	assert.False(t, FitsAny(rules, tuesday, 14*60, 3))
}
