package booking

import (
	"context"

	"go.uber.org/zap"

	"carebook/services/notification"
	"carebook/utils"
)

// emit hands one lifecycle event to the dispatcher. Delivery is best-effort:
// a dispatch failure is logged and swallowed, never rolled back into the
// transition that produced it.
func (s *DefaultBookingService) emit(ctx context.Context, ev notification.Event) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Notify(ctx, ev); err != nil {
		utils.GetLogger().Warn("notification dispatch failed",
			zap.String("kind", ev.Kind),
			zap.String("recipient", ev.RecipientID),
			zap.Error(err))
	}
}
