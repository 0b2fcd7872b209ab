// Package services – QueueService
//
// This file implements QueueService, the engine that owns every ticket state
// transition and every minted ticket number. It validates inputs, serializes
// the read-then-write critical sections (issue and call-next), persists the
// results atomically, appends the transition history, and publishes events to
// the broadcast hub after commit.
//
// Concurrency model: a single engine mutex serializes every mutating
// operation from its first read through its post-commit publishes. Issuance
// reads the highest sequence slot and inserts the successor; call-next reads
// the queue head and flips it to called; either pair racing with itself
// would hand out duplicate numbers or the same ticket twice. The gorm
// transaction bounds atomicity, the mutex bounds interleaving. Publishing
// stays inside the mutex so the event stream matches commit order: an
// observer never sees a called event followed by a stale upcoming snapshot
// taken before that call committed. Hub.Publish never blocks (slow
// subscribers drop), so holding the mutex across it is cheap. Query paths
// (upcoming, counts, stats) take snapshot reads without the lock.
//
// Observability: public methods are OpenTelemetry-instrumented; spans carry
// ticket numbers and service types where applicable.
package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-turnero-backend/internal/broadcast"
	"github.com/tbourn/go-turnero-backend/internal/domain"
	"github.com/tbourn/go-turnero-backend/internal/repo"
	"github.com/tbourn/go-turnero-backend/internal/sequence"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DefaultUpcomingLimit bounds the upcoming-list preview shown on displays.
const DefaultUpcomingLimit = 6

// Broadcaster is the narrow publishing contract the engine needs. Publish
// must never block and never fail the caller; *broadcast.Hub satisfies it.
type Broadcaster interface {
	Publish(broadcast.Event)
}

// Statistics is the aggregate returned by QueueService.Statistics.
type Statistics struct {
	Attended int64                      `json:"attended"`
	Pending  int64                      `json:"pending"`
	Services []repo.ServiceRequestCount `json:"services"`
}

// QueueService is the only component permitted to transition ticket state or
// mint a new ticket number.
type QueueService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Hub receives queue events after each committed transition. Optional;
	// a nil hub disables broadcasting (tests use this).
	Hub Broadcaster
	// UpcomingLimit caps the upcoming preview; DefaultUpcomingLimit if <= 0.
	UpcomingLimit int

	// mu serializes the issue and call-next critical sections.
	mu sync.Mutex
}

// NewQueueService constructs a QueueService with the default preview limit.
func NewQueueService(db *gorm.DB, hub Broadcaster) *QueueService {
	return &QueueService{DB: db, Hub: hub, UpcomingLimit: DefaultUpcomingLimit}
}

// Issue creates a new pending ticket for holderName against serviceType.
//
// The service must already exist in the catalog (ErrUnknownService). The new
// ticket receives the successor of the most recently issued number and the
// next monotonic sequence slot; the ticket insert and the catalog counter
// increment commit in one transaction. Concurrent issuers are serialized so
// no two callers ever share a number or a slot.
func (s *QueueService) Issue(ctx context.Context, holderName, serviceType string) (*domain.Ticket, error) {
	tr := otel.Tracer("services/QueueService")
	ctx, span := tr.Start(ctx, "Issue",
		trace.WithAttributes(attribute.String("ticket.service_type", serviceType)),
	)
	defer span.End()

	holderName = strings.TrimSpace(holderName)
	if holderName == "" {
		return nil, ErrEmptyHolder
	}
	serviceType = strings.TrimSpace(serviceType)
	if serviceType == "" {
		return nil, ErrUnknownService
	}

	// Cheap pre-check outside the lock; the authoritative check is the
	// counter increment inside the transaction.
	if _, err := repo.GetServiceByName(ctx, s.DB, serviceType); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUnknownService
		}
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var ticket *domain.Ticket
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lastNumber string
		var seq uint64 = 1

		last, err := repo.LastTicket(ctx, tx)
		switch {
		case err == nil:
			lastNumber = last.Number
			seq = last.Seq + 1
		case errors.Is(err, repo.ErrNotFound):
			// Empty queue; the sequence starts over.
		default:
			return err
		}

		t, err := repo.CreateTicket(ctx, tx, sequence.Next(lastNumber), seq, holderName, serviceType)
		if err != nil {
			return err
		}

		if err := repo.IncrementRequestCount(ctx, tx, serviceType); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrUnknownService
			}
			return err
		}

		ticket = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("ticket.number", ticket.Number))
	s.publishTicket(ctx, broadcast.TicketIssued(ticket))
	return ticket, nil
}

// CallNext selects the earliest pending ticket, transitions it to called,
// and returns it. ErrNoPendingTickets when the queue is empty. Concurrent
// callers are serialized so each pending ticket is handed out exactly once.
func (s *QueueService) CallNext(ctx context.Context) (*domain.Ticket, error) {
	tr := otel.Tracer("services/QueueService")
	ctx, span := tr.Start(ctx, "CallNext")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	var ticket *domain.Ticket
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		head, err := repo.FirstPending(ctx, tx)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrNoPendingTickets
			}
			return err
		}
		if err := repo.UpdateTicketState(ctx, tx, head.Number, domain.StateCalled); err != nil {
			return err
		}
		head.State = domain.StateCalled
		ticket = head
		return nil
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("ticket.number", ticket.Number))
	s.recordHistory(ctx, ticket.Number, domain.StateCalled)
	s.publishTicket(ctx, broadcast.TicketCalled(ticket))
	return ticket, nil
}

// Cancel withdraws the ticket with the given number from the queue. It
// returns false when the number was never issued. Cancelling an already
// cancelled (or called, or attended) ticket is an idempotent overwrite,
// matching how counter staff actually use the button.
func (s *QueueService) Cancel(ctx context.Context, number string) (bool, error) {
	tr := otel.Tracer("services/QueueService")
	ctx, span := tr.Start(ctx, "Cancel",
		trace.WithAttributes(attribute.String("ticket.number", number)),
	)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, err := repo.GetTicketByNumber(ctx, s.DB, number)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := repo.UpdateTicketState(ctx, s.DB, number, domain.StateCancelled); err != nil {
		return false, err
	}
	ticket.State = domain.StateCancelled

	s.recordHistory(ctx, number, domain.StateCancelled)
	s.publishTicket(ctx, broadcast.TicketUpdated(ticket))
	return true, nil
}

// Uncall reverts a called ticket back to pending, for when an operator
// mis-calls. The ticket keeps its sequence slot, so it reappears at its
// original position in the upcoming list. Returns false when the number was
// never issued.
func (s *QueueService) Uncall(ctx context.Context, number string) (bool, error) {
	tr := otel.Tracer("services/QueueService")
	ctx, span := tr.Start(ctx, "Uncall",
		trace.WithAttributes(attribute.String("ticket.number", number)),
	)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, err := repo.GetTicketByNumber(ctx, s.DB, number)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := repo.UpdateTicketState(ctx, s.DB, number, domain.StatePending); err != nil {
		return false, err
	}
	ticket.State = domain.StatePending

	s.recordHistory(ctx, number, domain.StatePending)
	s.publishTicket(ctx, broadcast.TicketUpdated(ticket))
	return true, nil
}

// MarkAttended finishes service for a called ticket. Returns false when the
// number was never issued and ErrNotCalled when the ticket is in any state
// other than called.
func (s *QueueService) MarkAttended(ctx context.Context, number string) (bool, error) {
	tr := otel.Tracer("services/QueueService")
	ctx, span := tr.Start(ctx, "MarkAttended",
		trace.WithAttributes(attribute.String("ticket.number", number)),
	)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, err := repo.GetTicketByNumber(ctx, s.DB, number)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if !domain.CanTransition("attend", ticket.State) {
		return false, ErrNotCalled
	}

	// The write re-checks the state, so a transition that slipped in between
	// the read and the update cannot pull a terminal ticket back out.
	if err := repo.UpdateTicketStateFrom(ctx, s.DB, number, domain.StateCalled, domain.StateAttended); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, ErrNotCalled
		}
		return false, err
	}
	ticket.State = domain.StateAttended

	s.recordHistory(ctx, number, domain.StateAttended)
	if s.Hub != nil {
		s.Hub.Publish(broadcast.TicketUpdated(ticket))
	}
	return true, nil
}

// Upcoming returns a snapshot of up to limit pending tickets in issuance
// order. A non-positive limit falls back to the configured preview size.
func (s *QueueService) Upcoming(ctx context.Context, limit int) ([]domain.Ticket, error) {
	tr := otel.Tracer("services/QueueService")
	ctx, span := tr.Start(ctx, "Upcoming",
		trace.WithAttributes(attribute.Int("limit", limit)),
	)
	defer span.End()

	if limit <= 0 {
		limit = s.limit()
	}
	return repo.ListPending(ctx, s.DB, limit)
}

// CountPending returns the number of tickets waiting to be called.
func (s *QueueService) CountPending(ctx context.Context) (int64, error) {
	return repo.CountTicketsByState(ctx, s.DB, domain.StatePending)
}

// CountAttended returns the number of tickets whose service finished.
func (s *QueueService) CountAttended(ctx context.Context) (int64, error) {
	return repo.CountTicketsByState(ctx, s.DB, domain.StateAttended)
}

// Statistics aggregates attended/pending counts with the per-service
// request counters. Composed from snapshot reads; no independent state.
func (s *QueueService) Statistics(ctx context.Context) (*Statistics, error) {
	tr := otel.Tracer("services/QueueService")
	ctx, span := tr.Start(ctx, "Statistics")
	defer span.End()

	attended, err := s.CountAttended(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.CountPending(ctx)
	if err != nil {
		return nil, err
	}
	perService, err := repo.ServiceRequestCounts(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	return &Statistics{Attended: attended, Pending: pending, Services: perService}, nil
}

// Reset wipes every ticket; numbering restarts at the beginning. History
// rows survive. Admin-only, exposed for end-of-day cleanup.
func (s *QueueService) Reset(ctx context.Context) error {
	tr := otel.Tracer("services/QueueService")
	ctx, span := tr.Start(ctx, "Reset")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := repo.DeleteAllTickets(ctx, s.DB); err != nil {
		return err
	}

	if s.Hub != nil {
		s.Hub.Publish(broadcast.UpcomingChanged([]domain.Ticket{}))
	}
	return nil
}

// limit returns the effective upcoming-preview size.
func (s *QueueService) limit() int {
	if s.UpcomingLimit > 0 {
		return s.UpcomingLimit
	}
	return DefaultUpcomingLimit
}

// recordHistory appends a transition record. History is fire-and-forget:
// failures are logged, never propagated to the mutating caller.
func (s *QueueService) recordHistory(ctx context.Context, number, state string) {
	if _, err := repo.AppendHistory(ctx, s.DB, number, state, time.Now()); err != nil {
		log.Error().Err(err).
			Str("ticket_number", number).
			Str("state", state).
			Msg("history append failed")
	}
}

// publishTicket publishes ev followed by a refreshed upcoming snapshot.
// Callers invoke it after commit while still holding mu, which keeps the
// snapshot consistent with the transition just published: no other commit
// can land between the two events. Fan-out never fails the caller; if the
// snapshot read errors, the upcoming event is skipped and logged.
func (s *QueueService) publishTicket(ctx context.Context, ev broadcast.Event) {
	if s.Hub == nil {
		return
	}
	s.Hub.Publish(ev)

	upcoming, err := repo.ListPending(ctx, s.DB, s.limit())
	if err != nil {
		log.Error().Err(err).Msg("upcoming snapshot for broadcast failed")
		return
	}
	s.Hub.Publish(broadcast.UpcomingChanged(upcoming))
}
