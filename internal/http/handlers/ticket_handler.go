// Ticket HTTP handlers.
//
// This file exposes REST endpoints for the ticket queue:
//   - POST   /tickets                  (issue a ticket)
//   - POST   /tickets/next             (call the next pending ticket)
//   - POST   /tickets/{number}/cancel  (withdraw a ticket)
//   - POST   /tickets/{number}/uncall  (revert a mis-call)
//   - POST   /tickets/{number}/attend  (finish service)
//   - POST   /tickets/reset            (wipe the queue)
//   - GET    /tickets/upcoming         (pending preview, ETag support)
//   - GET    /tickets/pending/count    (pending counter)
//   - GET    /stats                    (queue statistics)
//
// Handlers are transport-thin: they validate input, call the queue engine,
// and translate results into HTTP responses (including conditional responses).
//
// Idempotency:
// If the client supplies an Idempotency-Key header and a previous successful
// issuance with the same key exists, POST /tickets replays the original
// ticket and sets `Idempotency-Replayed: true`. Kiosks retry on flaky links;
// one customer must never receive two numbers.
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/go-turnero-backend/internal/domain"
	"github.com/tbourn/go-turnero-backend/internal/repo"
	"github.com/tbourn/go-turnero-backend/internal/sequence"
	"github.com/tbourn/go-turnero-backend/internal/services"
	"github.com/tbourn/go-turnero-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// QueueService defines the ticket queue operations consumed by HTTP handlers.
//
// Implementations must be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type QueueService interface {
	// Issue creates a pending ticket for a holder against a catalog service.
	Issue(ctx context.Context, holderName, serviceType string) (*domain.Ticket, error)
	// CallNext transitions the earliest pending ticket to called.
	CallNext(ctx context.Context) (*domain.Ticket, error)
	// Cancel withdraws a ticket; false when the number was never issued.
	Cancel(ctx context.Context, number string) (bool, error)
	// Uncall reverts a called ticket to pending; false when unknown.
	Uncall(ctx context.Context, number string) (bool, error)
	// MarkAttended finishes service for a called ticket; false when unknown.
	MarkAttended(ctx context.Context, number string) (bool, error)
	// Upcoming returns a snapshot of the next pending tickets.
	Upcoming(ctx context.Context, limit int) ([]domain.Ticket, error)
	// CountPending returns the number of waiting tickets.
	CountPending(ctx context.Context) (int64, error)
	// Statistics aggregates queue counts and per-service request counters.
	Statistics(ctx context.Context) (*services.Statistics, error)
	// Reset wipes the queue; numbering restarts.
	Reset(ctx context.Context) error
}

// CatalogService defines the service-catalog admin operations.
type CatalogService interface {
	// Add creates a catalog entry.
	Add(ctx context.Context, name string) (*domain.Service, error)
	// List returns all catalog entries.
	List(ctx context.Context) ([]domain.Service, error)
	// Remove deletes a catalog entry; false when it does not exist.
	Remove(ctx context.Context, name string) (bool, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for tickets and the service catalog.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	queueSvc   QueueService
	catalogSvc CatalogService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(queueSvc QueueService, catalogSvc CatalogService) *Handlers {
	return &Handlers{queueSvc: queueSvc, catalogSvc: catalogSvc}
}

// clientID identifies the requesting kiosk or counter terminal, used to
// scope idempotency keys. It is set by upstream middleware when present,
// falls back to the "X-Client-ID" header, and finally to "default-kiosk".
func clientID(c *gin.Context) string {
	if v, ok := c.Get("clientID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-Client-ID")); h != "" {
			return h
		}
	}
	return "default-kiosk"
}

//
// DTOs
//

// IssueTicketRequest is the JSON payload for issuing a ticket.
type IssueTicketRequest struct {
	// HolderName is the customer's name as entered at the kiosk.
	HolderName string `json:"holder_name" binding:"required,min=1,max=255" example:"Ada Lovelace"`
	// ServiceType names an existing catalog service.
	ServiceType string `json:"service_type" binding:"required,min=1,max=128" example:"passport renewal"`
}

// TicketResponse wraps a single ticket resource.
type TicketResponse struct {
	Ticket *domain.Ticket `json:"ticket"`
}

// UpcomingResponse wraps the pending-ticket preview.
type UpcomingResponse struct {
	Tickets []domain.Ticket `json:"tickets"`
	Limit   int             `json:"limit"`
}

// PendingCountResponse carries the waiting-queue counter.
type PendingCountResponse struct {
	Pending int64 `json:"pending"`
}

//
// Handlers
//

// IssueTicket godoc
// @ID          issueTicket
// @Summary     Issue a new ticket
// @Description Creates a pending ticket with the next sequential number. Supports idempotency via the Idempotency-Key header (same key → same ticket).
// @Tags        Tickets
// @Accept      json
// @Produce     json
//
// @Param       X-Client-ID      header  string  false "Kiosk/terminal ID (scopes idempotency)" example(kiosk-1)
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries"       example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       body             body    handlers.IssueTicketRequest  true  "Issue ticket payload"
//
// @Success     201  {object}  handlers.TicketResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     422  {object}  handlers.ErrorResponse  "Unknown service type"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /tickets [post]
func (h *Handlers) IssueTicket(c *gin.Context) {
	ctx := c.Request.Context()

	var req IssueTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "holder_name and service_type required")
		return
	}

	client := clientID(c)

	// Idempotency (replay path) – read validated key if present.
	idemKey, _ := idempotencyKey(c)
	if idemKey != "" {
		if db := h.queueDB(); db != nil {
			if rec, err := repo.GetIdempotency(ctx, db, client, idemKey, time.Now().UTC()); err == nil && rec != nil {
				if prev, err2 := repo.GetTicketByNumber(ctx, db, rec.TicketNumber); err2 == nil {
					c.Header("Idempotency-Replayed", "true")
					ok(c, http.StatusOK, TicketResponse{Ticket: prev})
					return
				}
			}
		}
	}

	t, err := h.queueSvc.Issue(ctx, req.HolderName, req.ServiceType)
	if err != nil {
		switch err {
		case services.ErrUnknownService:
			fail(c, http.StatusUnprocessableEntity, ErrCodeUnknownService,
				fmt.Sprintf("service %q does not exist", strings.TrimSpace(req.ServiceType)))
		case services.ErrEmptyHolder:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "holder_name required")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, "could not issue ticket")
		}
		return
	}

	// Idempotency (store path) – best effort.
	if idemKey != "" {
		if db := h.queueDB(); db != nil {
			ttl := 24 * time.Hour
			_, _ = repo.CreateIdempotency(ctx, db, client, idemKey, t.Number, http.StatusCreated, ttl)
		}
	}

	ok(c, http.StatusCreated, TicketResponse{Ticket: t})
}

// CallNext godoc
// @ID          callNext
// @Summary     Call the next pending ticket
// @Description Transitions the earliest pending ticket to called and broadcasts it to displays.
// @Tags        Tickets
// @Produce     json
//
// @Success     200  {object}  handlers.TicketResponse
// @Failure     404  {object}  handlers.ErrorResponse  "No pending tickets"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /tickets/next [post]
func (h *Handlers) CallNext(c *gin.Context) {
	t, err := h.queueSvc.CallNext(c.Request.Context())
	if err != nil {
		if err == services.ErrNoPendingTickets {
			fail(c, http.StatusNotFound, ErrCodeNoPending, "no pending tickets")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not call next ticket")
		return
	}
	ok(c, http.StatusOK, TicketResponse{Ticket: t})
}

// CancelTicket godoc
// @ID          cancelTicket
// @Summary     Cancel a ticket
// @Description Withdraws the ticket from the queue. Cancelling twice is a no-op.
// @Tags        Tickets
// @Produce     json
//
// @Param       number  path  string  true  "Ticket number"  example(A001)
//
// @Success     204  {string}  string "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed number"
// @Failure     404  {object}  handlers.ErrorResponse  "Ticket not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /tickets/{number}/cancel [post]
func (h *Handlers) CancelTicket(c *gin.Context) {
	number, okNum := ticketNumberParam(c)
	if !okNum {
		return
	}
	found, err := h.queueSvc.Cancel(c.Request.Context(), number)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not cancel ticket")
		return
	}
	if !found {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "ticket not found")
		return
	}
	noContent(c)
}

// UncallTicket godoc
// @ID          uncallTicket
// @Summary     Revert a called ticket to pending
// @Description Puts a mis-called ticket back at its original queue position.
// @Tags        Tickets
// @Produce     json
//
// @Param       number  path  string  true  "Ticket number"  example(A001)
//
// @Success     204  {string}  string "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed number"
// @Failure     404  {object}  handlers.ErrorResponse  "Ticket not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /tickets/{number}/uncall [post]
func (h *Handlers) UncallTicket(c *gin.Context) {
	number, okNum := ticketNumberParam(c)
	if !okNum {
		return
	}
	found, err := h.queueSvc.Uncall(c.Request.Context(), number)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not uncall ticket")
		return
	}
	if !found {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "ticket not found")
		return
	}
	noContent(c)
}

// AttendTicket godoc
// @ID          attendTicket
// @Summary     Mark a called ticket as attended
// @Description Finishes service for the ticket currently being served.
// @Tags        Tickets
// @Produce     json
//
// @Param       number  path  string  true  "Ticket number"  example(A001)
//
// @Success     204  {string}  string "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed number"
// @Failure     404  {object}  handlers.ErrorResponse  "Ticket not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Ticket is not called"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /tickets/{number}/attend [post]
func (h *Handlers) AttendTicket(c *gin.Context) {
	number, okNum := ticketNumberParam(c)
	if !okNum {
		return
	}
	found, err := h.queueSvc.MarkAttended(c.Request.Context(), number)
	if err != nil {
		if err == services.ErrNotCalled {
			fail(c, http.StatusConflict, ErrCodeConflict, "ticket is not called")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not mark ticket attended")
		return
	}
	if !found {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "ticket not found")
		return
	}
	noContent(c)
}

// ResetQueue godoc
// @ID          resetQueue
// @Summary     Wipe the queue
// @Description Removes all tickets; numbering restarts at A001. History is kept.
// @Tags        Tickets
// @Produce     json
//
// @Success     204  {string}  string "No Content"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /tickets/reset [post]
func (h *Handlers) ResetQueue(c *gin.Context) {
	if err := h.queueSvc.Reset(c.Request.Context()); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not reset queue")
		return
	}
	noContent(c)
}

// Upcoming godoc
// @ID          upcomingTickets
// @Summary     Preview the next pending tickets
// @Description Returns up to limit pending tickets in issuance order. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Tickets
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"abc123\")
// @Param       limit          query   int     false "Max tickets to return"        minimum(1) maximum(50) default(6)
//
// @Success     200  {object} handlers.UpcomingResponse
// @Header      200  {string} ETag  "Weak ETag for current queue state"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /tickets/upcoming [get]
func (h *Handlers) Upcoming(c *gin.Context) {
	ctx := c.Request.Context()
	limit := clampLimit(c)

	// ETag pre-check (best effort).
	if db := h.queueDB(); db != nil {
		count, maxTS, err := repo.QueueStats(ctx, db)
		if err == nil {
			var ts int64
			if maxTS != nil {
				// Nanosecond resolution: two transitions inside the same
				// second must still produce distinct tags.
				ts = maxTS.UnixNano()
			}
			etag := fmt.Sprintf(`W/"queue:%d:%d"`, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, err := h.queueSvc.Upcoming(ctx, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not list upcoming tickets")
		return
	}
	ok(c, http.StatusOK, UpcomingResponse{Tickets: items, Limit: limit})
}

// PendingCount godoc
// @ID          pendingCount
// @Summary     Count pending tickets
// @Tags        Tickets
// @Produce     json
//
// @Success     200  {object} handlers.PendingCountResponse
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /tickets/pending/count [get]
func (h *Handlers) PendingCount(c *gin.Context) {
	n, err := h.queueSvc.CountPending(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not count pending tickets")
		return
	}
	ok(c, http.StatusOK, PendingCountResponse{Pending: n})
}

// Stats godoc
// @ID          queueStats
// @Summary     Queue statistics
// @Description Attended/pending totals plus per-service request counters.
// @Tags        Tickets
// @Produce     json
//
// @Success     200  {object} services.Statistics
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /stats [get]
func (h *Handlers) Stats(c *gin.Context) {
	st, err := h.queueSvc.Statistics(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not compute statistics")
		return
	}
	ok(c, http.StatusOK, st)
}

//
// Helpers
//

// ticketNumberParam validates the :number path parameter against the public
// ticket-number format and fails the request when malformed.
func ticketNumberParam(c *gin.Context) (string, bool) {
	number := strings.ToUpper(strings.TrimSpace(c.Param("number")))
	if !sequence.Valid(number) {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "ticket number must match A001…Z999")
		return "", false
	}
	return number, true
}

// clampLimit parses and bounds the limit query param.
func clampLimit(c *gin.Context) int {
	const (
		defaultLimit = services.DefaultUpcomingLimit
		maxLimit     = 50
	)
	limit := utils.AtoiDefault(c.Query("limit"), defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit
}

// idempotencyKey extracts an idempotency key if an upstream middleware
// validated one, falling back to the "Idempotency-Key" header directly when
// no dedicated middleware exists.
func idempotencyKey(c *gin.Context) (string, bool) {
	if v := strings.TrimSpace(c.GetHeader("Idempotency-Key")); v != "" {
		return v, true
	}
	return "", false
}

// queueDB exposes the engine's DB handle for ETag and idempotency reads when
// the concrete service is in use; interface-only test doubles return nil.
func (h *Handlers) queueDB() *gorm.DB {
	if svc, okSvc := h.queueSvc.(*services.QueueService); okSvc {
		return svc.DB
	}
	return nil
}
