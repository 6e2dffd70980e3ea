package verification

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	bookingRepo "carebook/database/repository/booking"
	"carebook/models"
	"carebook/services/booking"
	"carebook/services/notification"
	"carebook/utils"
)

// Outcome classifies a scan attempt. Failed scans change nothing; the
// protocol does not retry, it just waits for the next scan.
type Outcome string

const (
	OutcomeActivated      Outcome = "activated"
	OutcomeAlreadyActive  Outcome = "already_active"
	OutcomeEarly          Outcome = "early"
	OutcomeWrongSession   Outcome = "wrong_session"
	OutcomeWrongRequester Outcome = "wrong_requester"
)

// Result is the reportable outcome of one scan attempt. Message is safe to
// show the scanning party; mismatch details go to the affected provider as a
// security alert, never back to the scanner.
type Result struct {
	Outcome Outcome
	Booking *models.Booking
	Message string
}

// ScanInput carries the explicit context of a scan: which booking the
// scanner is acting on, who they are, what they scanned, and when. Actor and
// clock are passed in rather than read from ambient state.
type ScanInput struct {
	BookingID string
	ScannerID string
	Payload   string
	Now       time.Time
}

// Service validates scans and issues display tokens.
type Service interface {
	VerifyScan(ctx context.Context, in ScanInput) (*Result, error)
	TokenFor(ctx context.Context, providerID, bookingID string) (string, error)
}

// DefaultVerificationService implements Service. It is stateless; every
// scan is judged against the stored booking alone.
type DefaultVerificationService struct {
	Bookings  bookingRepo.Repository
	Lifecycle booking.BookingService
	Notifier  notification.Service
	// Location resolves the wall-clock schedule strings; defaults to local time.
	Location *time.Location
}

// TokenFor renders the token a provider displays for a confirmed booking.
// It is regenerated on demand and becomes useless the moment the booking
// leaves the pre-session state.
func (s *DefaultVerificationService) TokenFor(ctx context.Context, providerID, bookingID string) (string, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch booking %s: %w", bookingID, err)
	}
	if b.ProviderID != providerID {
		return "", booking.ErrNotOwned
	}
	if b.Status != models.StatusConfirmed {
		return "", &booking.StateError{BookingID: b.ID, Status: b.Status, Op: "issue verification token"}
	}
	return Encode(b.ID, b.ProviderID, b.RequesterID), nil
}

// VerifyScan runs the handshake. First failure wins:
//
//  1. the target booking must be awaiting its session (already active is an
//     idempotent no-op, anything else is a state error);
//  2. the clock must have reached the scheduled start;
//  3. the token's booking id must match the target booking — a mismatch
//     alerts the provider named inside the token;
//  4. the token's provider id must match the booking's provider;
//  5. the token's requester id must match the scanning identity — a
//     mismatch alerts the booking's actual provider.
//
// The legacy bare-id format skips checks 4 and 5 by construction. Success
// performs the one and only confirmed->active transition.
func (s *DefaultVerificationService) VerifyScan(ctx context.Context, in ScanInput) (*Result, error) {
	token, err := Parse(in.Payload)
	if err != nil {
		return nil, err
	}

	b, err := s.Bookings.GetByID(ctx, in.BookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", in.BookingID, err)
	}

	switch b.Status {
	case models.StatusActive:
		// A second successful scan must not re-transition or re-notify.
		return &Result{Outcome: OutcomeAlreadyActive, Booking: b, Message: "Session is already running."}, nil
	case models.StatusConfirmed:
		// proceed
	default:
		return nil, &booking.StateError{BookingID: b.ID, Status: b.Status, Op: "verify scan"}
	}

	startsAt, err := b.StartsAt(s.location())
	if err != nil {
		return nil, err
	}
	if in.Now.Before(startsAt) {
		return &Result{
			Outcome: OutcomeEarly,
			Booking: b,
			Message: fmt.Sprintf("This session starts at %s; scanning is not open yet.", b.StartTime),
		}, nil
	}

	if token.BookingID != b.ID {
		s.alertWrongSession(ctx, token, b, in.ScannerID)
		return &Result{Outcome: OutcomeWrongSession, Booking: b, Message: "This code belongs to a different session."}, nil
	}

	if token.Format == TokenFormatFull {
		if token.ProviderID != b.ProviderID {
			// Same outcome as a session mismatch, but nothing beyond the
			// scanner needs to hear about it.
			return &Result{Outcome: OutcomeWrongSession, Booking: b, Message: "This code belongs to a different provider."}, nil
		}
		if token.RequesterID != in.ScannerID {
			s.alertWrongRequester(ctx, b, in.ScannerID)
			return &Result{Outcome: OutcomeWrongRequester, Booking: b, Message: "Verification failed."}, nil
		}
	}

	activated, err := s.Lifecycle.Activate(ctx, b.ID)
	if err != nil {
		return nil, fmt.Errorf("verification passed but activation failed: %w", err)
	}
	return &Result{Outcome: OutcomeActivated, Booking: activated, Message: "Session started."}, nil
}

func (s *DefaultVerificationService) location() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.Local
}

// alertWrongSession warns the provider named inside the mismatched token
// that someone tried to start one of their sessions from the wrong place.
// A legacy token names nobody, so the alert falls back to the target
// booking's provider.
func (s *DefaultVerificationService) alertWrongSession(ctx context.Context, token *Token, target *models.Booking, scannerID string) {
	recipient := token.ProviderID
	if recipient == "" {
		recipient = target.ProviderID
	}
	s.alert(ctx, notification.Event{
		RecipientID: recipient,
		Role:        models.RoleProvider,
		Kind:        models.EventSecurityAlert,
		Title:       "Session code scanned against the wrong booking",
		Body:        "A verification code for one of your sessions was scanned by someone acting on a different booking.",
		Data: map[string]string{
			"attemptedBy":     scannerID,
			"expectedBooking": token.BookingID,
		},
	})
}

// alertWrongRequester warns the booking's actual provider that someone other
// than the expected requester tried to start the session.
func (s *DefaultVerificationService) alertWrongRequester(ctx context.Context, target *models.Booking, scannerID string) {
	s.alert(ctx, notification.Event{
		RecipientID: target.ProviderID,
		Role:        models.RoleProvider,
		Kind:        models.EventSecurityAlert,
		Title:       "Unexpected person tried to start your session",
		Body:        fmt.Sprintf("Someone other than the booked requester attempted to start the session on %s.", target.Date),
		Data: map[string]string{
			"scannerId": scannerID,
			"bookingId": target.ID,
		},
	})
}

func (s *DefaultVerificationService) alert(ctx context.Context, ev notification.Event) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Notify(ctx, ev); err != nil {
		utils.GetLogger().Warn("security alert dispatch failed",
			zap.String("recipient", ev.RecipientID), zap.Error(err))
	}
}
