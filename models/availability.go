package models

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates across the API and store.
const DateLayout = "2006-01-02"

// TimeRange is a contiguous open window on a single day, in minutes from
// midnight (e.g., 480 for 8:00 AM). End is exclusive.
type TimeRange struct {
	Start int `bson:"start" json:"start"`
	End   int `bson:"end" json:"end"`
}

// AvailabilityRule declares when a provider is open for bookings. A rule is
// either recurring (keyed by day-of-week, repeating weekly) or dated (keyed by
// one exact calendar date); the Recurring flag is the discriminant.
type AvailabilityRule struct {
	ID          string    `bson:"id" json:"id"`
	ProviderID  string    `bson:"provider_id" json:"providerId"`
	Recurring   bool      `bson:"recurring" json:"recurring"`
	DayOfWeek   int       `bson:"day_of_week,omitempty" json:"dayOfWeek"`   // 0=Sunday .. 6=Saturday; recurring rules only
	Date        string    `bson:"date,omitempty" json:"date,omitempty"`    // DateLayout; dated rules only
	StartMinute int       `bson:"start_minute" json:"startMinute"`         // minutes from midnight
	EndMinute   int       `bson:"end_minute" json:"endMinute"`             // minutes from midnight, exclusive
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
}

// Range returns the rule's open window.
func (r AvailabilityRule) Range() TimeRange {
	return TimeRange{Start: r.StartMinute, End: r.EndMinute}
}

// Validate checks the structural invariants of a rule before it is stored.
func (r AvailabilityRule) Validate() error {
	if r.ProviderID == "" {
		return fmt.Errorf("availability rule: provider id is required")
	}
	if r.EndMinute <= r.StartMinute {
		return fmt.Errorf("availability rule: end time must be after start time")
	}
	if r.StartMinute < 0 || r.EndMinute > 24*60 {
		return fmt.Errorf("availability rule: times must fall within a single day")
	}
	if r.Recurring {
		if r.Date != "" {
			return fmt.Errorf("availability rule: recurring rules must not carry a date")
		}
		if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
			return fmt.Errorf("availability rule: day of week must be 0-6")
		}
		return nil
	}
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return fmt.Errorf("availability rule: invalid date %q: %w", r.Date, err)
	}
	return nil
}
