package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"metro-ticketing-platform/internal/models"
	"metro-ticketing-platform/internal/stations"
)

// ValidityWindow is how long a ticket stays usable after booking. A
// successful exit pushes the deadline forward by the same window.
const ValidityWindow = 6 * time.Hour

// TicketService implements the ticket lifecycle: booking, station
// entry, and station exit against the station directory and the ticket
// store. Entry expects the ticket's origin station, exit its
// destination station.
type TicketService struct {
	repo      TicketRepository
	directory *stations.Directory
}

// NewTicketService creates a new ticket service
func NewTicketService(repo TicketRepository, directory *stations.Directory) *TicketService {
	return &TicketService{repo: repo, directory: directory}
}

// CalculatePrice computes the fare for a trip between two stations
func (s *TicketService) CalculatePrice(fromStation, toStation string) (int, error) {
	return s.directory.TripPrice(fromStation, toStation)
}

// BookTicket creates and persists a new ticket for the given trip.
// Station names must resolve in the directory. The equal-station guard
// lives at the HTTP boundary, not here.
func (s *TicketService) BookTicket(fromStation, toStation string) (*models.Ticket, error) {
	price, err := s.directory.TripPrice(fromStation, toStation)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	ticket := &models.Ticket{
		TicketID:    uuid.NewString(),
		FromStation: fromStation,
		ToStation:   toStation,
		Price:       price,
		BookingDate: now,
		IsValid:     now.Add(ValidityWindow),
		Status:      models.TicketBooked,
	}

	if err := s.repo.Create(ticket); err != nil {
		return nil, fmt.Errorf("failed to persist ticket: %w", err)
	}

	return ticket, nil
}

// EnterStation records a station entry against the ticket. The ticket
// must enter at its origin station before the validity deadline. An
// attempt past the deadline marks the ticket expired before failing.
func (s *TicketService) EnterStation(ticketID, stationName string) (*models.Ticket, error) {
	ticket, err := s.repo.FindByID(ticketID)
	if err != nil {
		return nil, err
	}

	if ticket.FromStation != stationName {
		return nil, models.ErrStationMismatch
	}

	now := time.Now()
	if ticket.ExpiredAt(now) {
		ticket.Status = models.TicketExpired
		if err := s.repo.Update(ticket); err != nil {
			return nil, fmt.Errorf("failed to mark ticket expired: %w", err)
		}
		return nil, models.ErrTicketExpired
	}

	if ticket.Status != models.TicketBooked {
		return nil, models.ErrAlreadyEntered
	}

	claimed, err := s.repo.MarkEntered(ticketID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to record entry: %w", err)
	}
	if !claimed {
		// A concurrent entry won the transition.
		return nil, models.ErrAlreadyEntered
	}

	ticket.EntryTime = &now
	ticket.Status = models.TicketEntered
	return ticket, nil
}

// ExitStation records a station exit against the ticket. The ticket
// must exit at its destination station before the validity deadline.
// A successful exit resets the booking date and extends the deadline
// by another validity window; the status is left unchanged. An attempt
// past the deadline fails without mutating the record.
func (s *TicketService) ExitStation(ticketID, stationName string) (*models.Ticket, error) {
	ticket, err := s.repo.FindByID(ticketID)
	if err != nil {
		return nil, err
	}

	if ticket.ToStation != stationName {
		return nil, models.ErrStationMismatch
	}

	now := time.Now()
	if ticket.ExpiredAt(now) {
		return nil, models.ErrTicketExpired
	}

	if ticket.HasExited() {
		return nil, models.ErrAlreadyExited
	}

	newDeadline := now.Add(ValidityWindow)
	claimed, err := s.repo.MarkExited(ticketID, now, newDeadline)
	if err != nil {
		return nil, fmt.Errorf("failed to record exit: %w", err)
	}
	if !claimed {
		return nil, models.ErrAlreadyExited
	}

	ticket.ExitTime = &now
	ticket.BookingDate = now
	ticket.IsValid = newDeadline
	return ticket, nil
}

// GetTicket loads a ticket by its identifier
func (s *TicketService) GetTicket(ticketID string) (*models.Ticket, error) {
	return s.repo.FindByID(ticketID)
}
