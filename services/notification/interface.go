package notification

import "context"

// Event is one notification-worthy fact: a lifecycle change or a security
// alert, addressed to a single recipient.
type Event struct {
	RecipientID string
	Role        string // models.RoleRequester or models.RoleProvider
	Kind        string
	Title       string
	Body        string
	Data        map[string]string
}

// Service accepts events fire-and-forget. Implementations must not block the
// caller on delivery; an error here only means the event could not be handed
// off.
type Service interface {
	Notify(ctx context.Context, ev Event) error
}
