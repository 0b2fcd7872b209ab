// Package domain defines the persistence models for tickets, catalog
// services, and ticket history. These types are mapped with GORM and form
// the core data layer of the turnero application.
package domain

import "time"

// Ticket states. A ticket is Pending from issuance until it is called,
// cancelled, or (after being called) attended.
const (
	// StatePending marks a ticket waiting to be called.
	StatePending = "pending"
	// StateCalled marks the ticket currently being announced/served.
	StateCalled = "called"
	// StateCancelled marks a ticket withdrawn from the queue. Terminal.
	StateCancelled = "cancelled"
	// StateAttended marks a called ticket whose service finished. Terminal.
	StateAttended = "attended"
)

// transitions maps guarded engine operations to the states they may start
// from. Cancel and uncall are deliberately absent: cancelling is permissive
// (re-cancel is an idempotent no-op) and uncall is the operator's escape
// hatch for a mis-call, both matching counter-staff workflows.
var transitions = map[string][]string{
	"call":   {StatePending},
	"attend": {StateCalled},
}

// CanTransition reports whether the named operation is allowed for a ticket
// currently in fromState.
func CanTransition(op, fromState string) bool {
	allowed, ok := transitions[op]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == fromState {
			return true
		}
	}
	return false
}

// Ticket represents one customer's place in the service queue.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Number: human-readable sequential identifier (A001…A999, B001…);
//     unique, never reused, a bit-exact external contract.
//   - Seq: monotonic issuance sequence assigned atomically at creation.
//     All queue ordering uses Seq, never wall-clock timestamps.
//   - HolderName: free-text name of the customer holding the ticket.
//   - ServiceType: catalog service name the ticket was issued against.
//   - State: pending | called | cancelled | attended.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//
// Tickets are hard-deleted on queue reset so the unique number index never
// collides with a restarted sequence; the history table keeps the audit trail.
type Ticket struct {
	ID          string    `json:"id"           gorm:"type:char(36);primaryKey"`
	Number      string    `json:"number"       gorm:"type:char(4);not null;uniqueIndex:ux_ticket_number"`
	Seq         uint64    `json:"seq"          gorm:"not null;uniqueIndex:ux_ticket_seq"`
	HolderName  string    `json:"holder_name"  gorm:"type:varchar(255);not null"`
	ServiceType string    `json:"service_type" gorm:"type:varchar(128);not null;index:idx_ticket_service"`
	State       string    `json:"state"        gorm:"type:varchar(16);not null;index:idx_ticket_state;check:state IN ('pending','called','cancelled','attended')"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for Ticket.
func (Ticket) TableName() string { return "tickets" }

// Service represents a catalog entry customers can request a ticket for.
// RequestCount is a monotonic counter incremented once per issued ticket,
// always inside the same transaction as the ticket insert.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - Name: unique service name referenced by Ticket.ServiceType.
//   - RequestCount: total tickets ever issued against this service.
type Service struct {
	ID           string    `json:"id"            gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name"          gorm:"type:varchar(128);not null;uniqueIndex:ux_service_name"`
	RequestCount int64     `json:"request_count" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for Service.
func (Service) TableName() string { return "services" }

// TicketHistory is an append-only record of a ticket state transition.
// One row is written per committed called/cancelled/attended (and uncall)
// transition; rows are never updated or deleted.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - TicketNumber: the transitioned ticket's Number (not a FK; history
//     must survive queue resets).
//   - State: the state the ticket entered.
//   - RecordedAt: transition timestamp.
type TicketHistory struct {
	ID           string    `json:"id"            gorm:"type:char(36);primaryKey"`
	TicketNumber string    `json:"ticket_number" gorm:"type:char(4);not null;index:idx_history_number"`
	State        string    `json:"state"         gorm:"type:varchar(16);not null"`
	RecordedAt   time.Time `json:"recorded_at"   gorm:"not null;index"`
}

// TableName returns the database table name for TicketHistory.
func (TicketHistory) TableName() string { return "ticket_history" }
