package models

import "time"

// TicketStatus represents the lifecycle status of a ticket
type TicketStatus string

const (
	TicketBooked  TicketStatus = "booked"
	TicketEntered TicketStatus = "entered"
	TicketExited  TicketStatus = "exited"
	TicketExpired TicketStatus = "expired"
)

// Ticket represents a metro trip ticket. IsValid is the validity
// deadline: the point in time beyond which gate operations reject the
// ticket. Exit pushes the deadline forward and resets BookingDate,
// matching the behavior of the original booking system.
type Ticket struct {
	TicketID    string       `json:"ticketId" db:"ticket_id"`
	FromStation string       `json:"fromStation" db:"from_station"`
	ToStation   string       `json:"toStation" db:"to_station"`
	Price       int          `json:"price" db:"price"`
	BookingDate time.Time    `json:"bookingDate" db:"booking_date"`
	EntryTime   *time.Time   `json:"entryTime,omitempty" db:"entry_time"`
	ExitTime    *time.Time   `json:"exitTime,omitempty" db:"exit_time"`
	IsValid     time.Time    `json:"isValid" db:"is_valid"`
	Status      TicketStatus `json:"status" db:"status"`
}

// HasEntered returns true once an entry event has been recorded.
func (t *Ticket) HasEntered() bool {
	return t.EntryTime != nil
}

// HasExited returns true once an exit event has been recorded.
func (t *Ticket) HasExited() bool {
	return t.ExitTime != nil
}

// ExpiredAt reports whether the validity deadline has lapsed at the
// given instant.
func (t *Ticket) ExpiredAt(now time.Time) bool {
	return now.After(t.IsValid)
}
