package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	bookingRepo "carebook/database/repository/booking"
	"carebook/models"
	"carebook/services/availability"
	"carebook/services/notification"
)

// ErrNotOwned is returned when an actor tries to act on a booking that does
// not belong to them.
var ErrNotOwned = errors.New("booking does not belong to the acting party")

// CreateBookings validates and creates one pending booking per requested
// date, in submission order. Each date is checked independently against the
// provider's open ranges; the first failing date aborts the rest of the
// batch, and the rows created before the failure stay as they are. The
// returned slice always holds exactly the rows that were created.
//
// The availability check and the insert are not atomic: two overlapping
// requests submitted concurrently can both pass. CountOverlapping narrows
// the window but does not close it.
func (s *DefaultBookingService) CreateBookings(ctx context.Context, req models.BookingRequest) ([]models.Booking, error) {
	plan, err := s.Plans.GetByID(ctx, req.PlanID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve plan %s: %w", req.PlanID, err)
	}
	if plan.ProviderID != req.ProviderID {
		return nil, &ValidationError{Field: "planId", Message: "plan does not belong to the selected provider"}
	}
	if !plan.Active {
		return nil, &ValidationError{Field: "planId", Message: "plan is no longer offered"}
	}
	if req.DurationHours < plan.MinHours {
		return nil, &ValidationError{Field: "durationHours",
			Message: fmt.Sprintf("plan requires at least %d hours", plan.MinHours)}
	}
	if req.StartHour < 0 || req.StartHour > 23 {
		return nil, &ValidationError{Field: "startHour", Message: "start hour must be 0-23"}
	}
	if req.Venue == models.VenueRequesterHome && strings.TrimSpace(req.Location) == "" {
		return nil, &ValidationError{Field: "location", Message: "an address is required for bookings at your location"}
	}

	rules, err := s.Rules.GetByProviderID(ctx, req.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load provider availability: %w", err)
	}

	// Price once for the whole request; each row carries its even share.
	quote := Quote(plan.HourlyRate, plan.ExtraDependentRate, req.DurationHours, len(req.Dates), req.Headcount)
	startMinute := req.StartHour * 60

	created := make([]models.Booking, 0, len(req.Dates))
	for _, date := range req.Dates {
		if _, perr := time.Parse(models.DateLayout, date); perr != nil {
			return created, NewDateError(date, "invalid date")
		}
		if !availability.FitsAny(rules, date, startMinute, req.DurationHours) {
			return created, NewDateError(date, fmt.Sprintf(
				"a %d-hour session starting %s does not fit the provider's open hours on this date",
				req.DurationHours, models.FormatClock(req.StartHour)))
		}
		if n, cerr := s.Repo.CountOverlapping(ctx, req.ProviderID, date, startMinute, startMinute+req.DurationHours*60); cerr != nil {
			return created, fmt.Errorf("failed to check existing bookings for %s: %w", date, cerr)
		} else if n > 0 {
			return created, NewDateError(date, "the provider already has a booking in this window")
		}

		b := models.Booking{
			RequesterID:   req.RequesterID,
			ProviderID:    req.ProviderID,
			Date:          date,
			StartTime:     models.FormatClock(req.StartHour),
			StartMinute:   startMinute,
			DurationHours: req.DurationHours,
			Location:      req.Location,
			Venue:         req.Venue,
			Headcount:     req.Headcount,
			Status:        models.StatusPending,
			TotalPrice:    quote.PerDate,
			Notes:         req.Notes,
			CreatedAt:     time.Now(),
		}
		if err := s.Repo.Create(ctx, &b); err != nil {
			return created, fmt.Errorf("failed to create booking for %s: %w", date, err)
		}
		created = append(created, b)

		s.emit(ctx, notification.Event{
			RecipientID: b.ProviderID,
			Role:        models.RoleProvider,
			Kind:        models.EventBookingRequested,
			Title:       "New booking request",
			Body:        fmt.Sprintf("A %d-hour session was requested for %s at %s.", b.DurationHours, b.Date, b.StartTime),
			Data:        map[string]string{"bookingId": b.ID, "date": b.Date},
		})
	}
	return created, nil
}

// Accept is the provider's decision to take a pending booking; the requester
// still has to pay before it is confirmed.
func (s *DefaultBookingService) Accept(ctx context.Context, providerID, bookingID string) (*models.Booking, error) {
	b, err := s.getForProvider(ctx, bookingID, providerID)
	if err != nil {
		return nil, err
	}
	if err := s.transition(ctx, b, models.StatusWaitingPayment, "accept"); err != nil {
		return nil, err
	}
	s.emit(ctx, notification.Event{
		RecipientID: b.RequesterID,
		Role:        models.RoleRequester,
		Kind:        models.EventBookingAccepted,
		Title:       "Booking accepted",
		Body:        fmt.Sprintf("Your booking for %s was accepted. Complete payment to confirm it.", b.Date),
		Data:        map[string]string{"bookingId": b.ID},
	})
	return b, nil
}

// Decline ends a pending booking by provider decision.
func (s *DefaultBookingService) Decline(ctx context.Context, providerID, bookingID string) (*models.Booking, error) {
	b, err := s.getForProvider(ctx, bookingID, providerID)
	if err != nil {
		return nil, err
	}
	if err := s.transition(ctx, b, models.StatusCancelled, "decline"); err != nil {
		return nil, err
	}
	s.emit(ctx, notification.Event{
		RecipientID: b.RequesterID,
		Role:        models.RoleRequester,
		Kind:        models.EventBookingDeclined,
		Title:       "Booking declined",
		Body:        fmt.Sprintf("Your booking request for %s was declined.", b.Date),
		Data:        map[string]string{"bookingId": b.ID},
	})
	return b, nil
}

// Cancel is the requester withdrawing a booking that is still pending.
func (s *DefaultBookingService) Cancel(ctx context.Context, requesterID, bookingID string) (*models.Booking, error) {
	b, err := s.get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.RequesterID != requesterID {
		return nil, ErrNotOwned
	}
	if b.Status != models.StatusPending {
		return nil, &StateError{BookingID: b.ID, Status: b.Status, Op: "cancel"}
	}
	if err := s.transition(ctx, b, models.StatusCancelled, "cancel"); err != nil {
		return nil, err
	}
	s.emit(ctx, notification.Event{
		RecipientID: b.ProviderID,
		Role:        models.RoleProvider,
		Kind:        models.EventBookingCancelled,
		Title:       "Booking cancelled",
		Body:        fmt.Sprintf("The booking request for %s was withdrawn.", b.Date),
		Data:        map[string]string{"bookingId": b.ID},
	})
	return b, nil
}

// ConfirmPayment reacts to the external payment collaborator acknowledging
// payment for a booking. This service never initiates payment itself.
func (s *DefaultBookingService) ConfirmPayment(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.transition(ctx, b, models.StatusConfirmed, "confirm payment"); err != nil {
		return nil, err
	}
	s.emit(ctx, notification.Event{
		RecipientID: b.ProviderID,
		Role:        models.RoleProvider,
		Kind:        models.EventPaymentConfirmed,
		Title:       "Booking confirmed",
		Body:        fmt.Sprintf("Payment received; the session on %s at %s is confirmed.", b.Date, b.StartTime),
		Data:        map[string]string{"bookingId": b.ID},
	})
	return b, nil
}

// Activate starts the timed session. The on-site verification protocol is
// the only caller. Activation is idempotent: a booking that is already
// active is returned as-is with no further event.
func (s *DefaultBookingService) Activate(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status == models.StatusActive {
		return b, nil
	}
	if err := s.transition(ctx, b, models.StatusActive, "activate"); err != nil {
		var se *StateError
		if errors.As(err, &se) {
			// Lost a conditional-update race; if another scan won, this one
			// degrades to the same no-op.
			if cur, gerr := s.Repo.GetByID(ctx, bookingID); gerr == nil && cur.Status == models.StatusActive {
				return cur, nil
			}
		}
		return nil, err
	}
	s.emit(ctx, notification.Event{
		RecipientID: b.ProviderID,
		Role:        models.RoleProvider,
		Kind:        models.EventSessionStarted,
		Title:       "Session started",
		Body:        fmt.Sprintf("The session on %s has started.", b.Date),
		Data:        map[string]string{"bookingId": b.ID},
	})
	return b, nil
}

// Complete ends an active session.
func (s *DefaultBookingService) Complete(ctx context.Context, providerID, bookingID string) (*models.Booking, error) {
	b, err := s.getForProvider(ctx, bookingID, providerID)
	if err != nil {
		return nil, err
	}
	if err := s.transition(ctx, b, models.StatusCompleted, "complete"); err != nil {
		return nil, err
	}
	s.emit(ctx, notification.Event{
		RecipientID: b.RequesterID,
		Role:        models.RoleRequester,
		Kind:        models.EventSessionCompleted,
		Title:       "Session completed",
		Body:        fmt.Sprintf("Your session on %s has ended.", b.Date),
		Data:        map[string]string{"bookingId": b.ID},
	})
	return b, nil
}

func (s *DefaultBookingService) ListForProvider(ctx context.Context, providerID string, statuses ...models.BookingStatus) ([]models.Booking, error) {
	return s.Repo.ListByProvider(ctx, providerID, statuses...)
}

func (s *DefaultBookingService) ListForRequester(ctx context.Context, requesterID string, statuses ...models.BookingStatus) ([]models.Booking, error) {
	return s.Repo.ListByRequester(ctx, requesterID, statuses...)
}

// transition is the single mutation path for the status field. It refuses
// edges outside the lifecycle graph, then applies a conditional update so a
// concurrent mover turns into a state error instead of a double write.
func (s *DefaultBookingService) transition(ctx context.Context, b *models.Booking, to models.BookingStatus, op string) error {
	if !CanTransition(b.Status, to) {
		return &StateError{BookingID: b.ID, Status: b.Status, Op: op}
	}
	if err := s.Repo.UpdateStatus(ctx, b.ID, b.Status, to); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			return &StateError{BookingID: b.ID, Status: b.Status, Op: op}
		}
		return fmt.Errorf("failed to update booking %s: %w", b.ID, err)
	}
	b.Status = to
	return nil
}

func (s *DefaultBookingService) get(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", bookingID, err)
	}
	return b, nil
}

func (s *DefaultBookingService) getForProvider(ctx context.Context, bookingID, providerID string) (*models.Booking, error) {
	b, err := s.get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.ProviderID != providerID {
		return nil, ErrNotOwned
	}
	return b, nil
}
