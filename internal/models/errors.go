package models

import "errors"

// Common errors used throughout the application
var (
	ErrInvalidStation  = errors.New("invalid station name")
	ErrMissingField    = errors.New("required field missing")
	ErrStationMismatch = errors.New("wrong station for this ticket")
	ErrTicketNotFound  = errors.New("ticket not found")
	ErrTicketExpired   = errors.New("ticket has expired")
	ErrAlreadyEntered  = errors.New("already entered at station")
	ErrAlreadyExited   = errors.New("already exited from station")
	ErrDuplicateTicket = errors.New("duplicate ticket id")
)
