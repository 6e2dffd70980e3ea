package models

import (
	"fmt"
	"time"
)

// ClockLayout is the 12-hour wall-clock format bookings store their start
// time in (e.g., "02:00 PM").
const ClockLayout = "03:04 PM"

// BookingStatus is the persisted lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending        BookingStatus = "pending"         // awaiting provider decision
	StatusWaitingPayment BookingStatus = "waiting_payment" // provider accepted, payment outstanding
	StatusConfirmed      BookingStatus = "confirmed"       // payment acknowledged, session not started
	StatusActive         BookingStatus = "active"          // on-site verification succeeded
	StatusCompleted      BookingStatus = "completed"       // terminal
	StatusCancelled      BookingStatus = "cancelled"       // terminal
)

// VenueKind says where the session takes place.
type VenueKind string

const (
	VenueProviderSite  VenueKind = "provider_site"
	VenueRequesterHome VenueKind = "requester_home"
)

// Booking is one caregiving session on one calendar date. A multi-date
// request produces one independent row per date; the rows share no link.
// The priced plan is resolved at creation and frozen into TotalPrice rather
// than stored as a reference. Status is mutated only through the lifecycle
// service.
type Booking struct {
	ID            string        `bson:"id" json:"id"`
	RequesterID   string        `bson:"requester_id" json:"requesterId"`
	ProviderID    string        `bson:"provider_id" json:"providerId"`
	Date          string        `bson:"date" json:"date"`             // DateLayout
	StartTime     string        `bson:"start_time" json:"startTime"`  // ClockLayout
	StartMinute   int           `bson:"start_minute" json:"-"`        // derived from StartTime, kept for range queries
	DurationHours int           `bson:"duration_hours" json:"durationHours"`
	Location      string        `bson:"location" json:"location"`
	Venue         VenueKind     `bson:"venue" json:"venue"`
	Headcount     int           `bson:"headcount" json:"headcount"`
	Status        BookingStatus `bson:"status" json:"status"`
	TotalPrice    float64       `bson:"total_price" json:"totalPrice"`
	Notes         string        `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time     `bson:"created_at" json:"createdAt"`
}

// EndMinute is the minute-from-midnight the session is scheduled to end.
func (b *Booking) EndMinute() int {
	return b.StartMinute + b.DurationHours*60
}

// StartsAt combines the stored date and 12-hour clock string into a single
// timestamp in the given location.
func (b *Booking) StartsAt(loc *time.Location) (time.Time, error) {
	ts, err := time.ParseInLocation(DateLayout+" "+ClockLayout, b.Date+" "+b.StartTime, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("booking %s: bad schedule %q %q: %w", b.ID, b.Date, b.StartTime, err)
	}
	return ts, nil
}

// FormatClock renders a whole-hour start as a ClockLayout string.
func FormatClock(hour int) string {
	return time.Date(0, 1, 1, hour, 0, 0, 0, time.UTC).Format(ClockLayout)
}

// Terminal reports whether no further transition can leave s.
func (s BookingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ValidStatus reports whether s is one of the known lifecycle states.
func ValidStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusWaitingPayment, StatusConfirmed,
		StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}
