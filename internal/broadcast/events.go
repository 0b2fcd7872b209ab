// Package broadcast fans queue-state changes out to connected observers
// (operator consoles and waiting-room displays). The queue engine publishes
// an event after each committed transition; the hub delivers it to every
// live subscriber on a best-effort basis.
package broadcast

import "github.com/tbourn/go-turnero-backend/internal/domain"

// Kind identifies the type of a queue event.
type Kind string

const (
	// KindTicketIssued signals a freshly created pending ticket.
	KindTicketIssued Kind = "ticket_issued"
	// KindTicketCalled signals the ticket now being announced.
	KindTicketCalled Kind = "ticket_called"
	// KindTicketUpdated signals any other state change (cancel, uncall, attend).
	KindTicketUpdated Kind = "ticket_updated"
	// KindUpcomingChanged carries the refreshed upcoming-tickets snapshot.
	KindUpcomingChanged Kind = "upcoming_changed"
)

// Event is the payload delivered to observers. Exactly one of Ticket or
// Upcoming is set, depending on Kind.
type Event struct {
	Kind     Kind            `json:"kind"`
	Ticket   *domain.Ticket  `json:"ticket,omitempty"`
	Upcoming []domain.Ticket `json:"upcoming,omitempty"`
}

// TicketIssued builds the event for a newly issued ticket.
func TicketIssued(t *domain.Ticket) Event {
	return Event{Kind: KindTicketIssued, Ticket: t}
}

// TicketCalled builds the event for a called ticket.
func TicketCalled(t *domain.Ticket) Event {
	return Event{Kind: KindTicketCalled, Ticket: t}
}

// TicketUpdated builds the event for a cancel/uncall/attend transition.
func TicketUpdated(t *domain.Ticket) Event {
	return Event{Kind: KindTicketUpdated, Ticket: t}
}

// UpcomingChanged builds the event carrying a fresh upcoming snapshot.
func UpcomingChanged(ts []domain.Ticket) Event {
	return Event{Kind: KindUpcomingChanged, Upcoming: ts}
}
