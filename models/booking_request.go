package models

// BookingRequest is the payload for creating bookings. Selecting several
// dates yields one independent Booking per date; validation runs per date and
// stops the batch at the first failing date.
type BookingRequest struct {
	RequesterID   string    `json:"-"` // bound from the authenticated actor, never the body
	ProviderID    string    `json:"providerId" binding:"required"`
	PlanID        string    `json:"planId" binding:"required"`
	Dates         []string  `json:"dates" binding:"required,min=1"` // DateLayout, in submission order
	StartHour     int       `json:"startHour"`                      // whole-hour start, 0-23
	DurationHours int       `json:"durationHours" binding:"required,min=1"`
	Location      string    `json:"location"`
	Venue         VenueKind `json:"venue" binding:"required"`
	Headcount     int       `json:"headcount" binding:"required,min=1"`
	Notes         string    `json:"notes"`
}
