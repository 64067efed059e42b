package services

import (
	"time"

	"metro-ticketing-platform/internal/models"
)

// TicketRepository defines the interface for ticket data operations
type TicketRepository interface {
	Create(ticket *models.Ticket) error
	FindByID(ticketID string) (*models.Ticket, error)
	Update(ticket *models.Ticket) error
	MarkEntered(ticketID string, entryTime time.Time) (bool, error)
	MarkExited(ticketID string, exitTime, newDeadline time.Time) (bool, error)
}

// TicketServiceInterface defines the interface for the ticket lifecycle
type TicketServiceInterface interface {
	CalculatePrice(fromStation, toStation string) (int, error)
	BookTicket(fromStation, toStation string) (*models.Ticket, error)
	EnterStation(ticketID, stationName string) (*models.Ticket, error)
	ExitStation(ticketID, stationName string) (*models.Ticket, error)
	GetTicket(ticketID string) (*models.Ticket, error)
}
