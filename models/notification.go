package models

// Event kinds emitted by the booking lifecycle and verification protocol.
const (
	EventBookingRequested = "booking_requested"
	EventBookingAccepted  = "booking_accepted"
	EventBookingDeclined  = "booking_declined"
	EventBookingCancelled = "booking_cancelled"
	EventPaymentConfirmed = "payment_confirmed"
	EventSessionStarted   = "session_started"
	EventSessionCompleted = "session_completed"
	EventSecurityAlert    = "security_alert"
)

// Recipient roles for push routing.
const (
	RoleRequester = "requester"
	RoleProvider  = "provider"
)

// PushPayload is the queued unit of work for the push worker.
type PushPayload struct {
	RecipientID string            `json:"recipientId"`
	Role        string            `json:"role"` // RoleRequester or RoleProvider
	Kind        string            `json:"kind"`
	Title       string            `json:"title"`
	Body        string            `json:"body"`
	Data        map[string]string `json:"data,omitempty"`
}
