package booking

import "carebook/models"

// transitions is the whole lifecycle graph. Forward moves never skip a
// state, nothing moves backward once payment is confirmed, and the two
// terminal states absorb.
var transitions = map[models.BookingStatus][]models.BookingStatus{
	models.StatusPending:        {models.StatusWaitingPayment, models.StatusCancelled},
	models.StatusWaitingPayment: {models.StatusConfirmed},
	models.StatusConfirmed:      {models.StatusActive},
	models.StatusActive:         {models.StatusCompleted},
	models.StatusCompleted:      {},
	models.StatusCancelled:      {},
}

// CanTransition reports whether from -> to is an edge of the lifecycle graph.
func CanTransition(from, to models.BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
