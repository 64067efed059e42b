package repositories

import (
	"sync"
	"time"

	"metro-ticketing-platform/internal/models"
)

// MemoryTicketRepository is an in-memory mirror of the Postgres ticket
// repository with identical semantics. It backs the unit tests and the
// server's fallback mode when Postgres is unreachable at startup.
type MemoryTicketRepository struct {
	mu      sync.RWMutex
	tickets map[string]*models.Ticket
}

// NewMemoryTicketRepository constructs an empty repository
func NewMemoryTicketRepository() *MemoryTicketRepository {
	return &MemoryTicketRepository{tickets: make(map[string]*models.Ticket)}
}

func cloneTicket(t *models.Ticket) *models.Ticket {
	clone := *t
	if t.EntryTime != nil {
		entry := *t.EntryTime
		clone.EntryTime = &entry
	}
	if t.ExitTime != nil {
		exit := *t.ExitTime
		clone.ExitTime = &exit
	}
	return &clone
}

// Create persists a freshly booked ticket
func (r *MemoryTicketRepository) Create(ticket *models.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tickets[ticket.TicketID]; exists {
		return models.ErrDuplicateTicket
	}
	r.tickets[ticket.TicketID] = cloneTicket(ticket)
	return nil
}

// FindByID loads a ticket by its identifier
func (r *MemoryTicketRepository) FindByID(ticketID string) (*models.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ticket, ok := r.tickets[ticketID]
	if !ok {
		return nil, models.ErrTicketNotFound
	}
	return cloneTicket(ticket), nil
}

// Update replaces the stored ticket with the given record
func (r *MemoryTicketRepository) Update(ticket *models.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tickets[ticket.TicketID]; !ok {
		return models.ErrTicketNotFound
	}
	r.tickets[ticket.TicketID] = cloneTicket(ticket)
	return nil
}

// MarkEntered records the entry event for a booked ticket
func (r *MemoryTicketRepository) MarkEntered(ticketID string, entryTime time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, ok := r.tickets[ticketID]
	if !ok || ticket.Status != models.TicketBooked {
		return false, nil
	}

	entry := entryTime
	ticket.EntryTime = &entry
	ticket.Status = models.TicketEntered
	return true, nil
}

// MarkExited records the exit event for a ticket that has not exited yet
func (r *MemoryTicketRepository) MarkExited(ticketID string, exitTime, newDeadline time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, ok := r.tickets[ticketID]
	if !ok || ticket.ExitTime != nil {
		return false, nil
	}

	exit := exitTime
	ticket.ExitTime = &exit
	ticket.BookingDate = exitTime
	ticket.IsValid = newDeadline
	return true, nil
}

// CountByStatus returns the number of tickets per status, for metrics
func (r *MemoryTicketRepository) CountByStatus(status models.TicketStatus) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, t := range r.tickets {
		if t.Status == status {
			count++
		}
	}
	return count, nil
}
