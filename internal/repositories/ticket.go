package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"metro-ticketing-platform/internal/models"
)

const ticketColumns = `ticket_id, from_station, to_station, price, booking_date, entry_time, exit_time, is_valid, status`

// TicketRepository handles ticket data operations against Postgres.
// Every read and write is keyed by ticket_id; the entry and exit
// updates are guarded so that two concurrent gate requests for the
// same ticket cannot both claim the transition.
type TicketRepository struct {
	db *sql.DB
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *sql.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// Create persists a freshly booked ticket
func (r *TicketRepository) Create(ticket *models.Ticket) error {
	query := `
		INSERT INTO tickets (ticket_id, from_station, to_station, price, booking_date, entry_time, exit_time, is_valid, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(
		query,
		ticket.TicketID,
		ticket.FromStation,
		ticket.ToStation,
		ticket.Price,
		ticket.BookingDate,
		ticket.EntryTime,
		ticket.ExitTime,
		ticket.IsValid,
		ticket.Status,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return models.ErrDuplicateTicket
		}
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	return nil
}

// FindByID loads a ticket by its identifier
func (r *TicketRepository) FindByID(ticketID string) (*models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE ticket_id = $1`

	ticket := &models.Ticket{}
	err := r.db.QueryRow(query, ticketID).Scan(
		&ticket.TicketID,
		&ticket.FromStation,
		&ticket.ToStation,
		&ticket.Price,
		&ticket.BookingDate,
		&ticket.EntryTime,
		&ticket.ExitTime,
		&ticket.IsValid,
		&ticket.Status,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to load ticket %s: %w", ticketID, err)
	}

	return ticket, nil
}

// Update replaces the stored ticket with the given record
func (r *TicketRepository) Update(ticket *models.Ticket) error {
	query := `
		UPDATE tickets
		SET from_station = $2, to_station = $3, price = $4, booking_date = $5,
		    entry_time = $6, exit_time = $7, is_valid = $8, status = $9
		WHERE ticket_id = $1`

	result, err := r.db.Exec(
		query,
		ticket.TicketID,
		ticket.FromStation,
		ticket.ToStation,
		ticket.Price,
		ticket.BookingDate,
		ticket.EntryTime,
		ticket.ExitTime,
		ticket.IsValid,
		ticket.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update ticket %s: %w", ticket.TicketID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return models.ErrTicketNotFound
	}

	return nil
}

// MarkEntered records the entry event for a booked ticket. The status
// guard is part of the statement so that only one of two concurrent
// entry attempts can claim the transition. Returns false when the
// ticket was not in the booked state.
func (r *TicketRepository) MarkEntered(ticketID string, entryTime time.Time) (bool, error) {
	query := `
		UPDATE tickets
		SET entry_time = $2, status = $3
		WHERE ticket_id = $1 AND status = $4`

	result, err := r.db.Exec(query, ticketID, entryTime, models.TicketEntered, models.TicketBooked)
	if err != nil {
		return false, fmt.Errorf("failed to record entry for ticket %s: %w", ticketID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check entry result: %w", err)
	}

	return affected == 1, nil
}

// MarkExited records the exit event for a ticket that has not exited
// yet. Exit resets the booking date and pushes the validity deadline
// forward; it does not change the status. Returns false when an exit
// was already recorded.
func (r *TicketRepository) MarkExited(ticketID string, exitTime, newDeadline time.Time) (bool, error) {
	query := `
		UPDATE tickets
		SET exit_time = $2, booking_date = $2, is_valid = $3
		WHERE ticket_id = $1 AND exit_time IS NULL`

	result, err := r.db.Exec(query, ticketID, exitTime, newDeadline)
	if err != nil {
		return false, fmt.Errorf("failed to record exit for ticket %s: %w", ticketID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check exit result: %w", err)
	}

	return affected == 1, nil
}

// CountByStatus returns the number of tickets per status, for metrics
func (r *TicketRepository) CountByStatus(status models.TicketStatus) (int64, error) {
	var count int64
	err := r.db.QueryRow(`SELECT COUNT(*) FROM tickets WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count tickets: %w", err)
	}
	return count, nil
}
