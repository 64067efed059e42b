package models

import "fmt"

// PriceRequest represents a trip price calculation request
type PriceRequest struct {
	FromStation string `json:"fromStation"`
	ToStation   string `json:"toStation"`
}

// Validate validates the price request data
func (req *PriceRequest) Validate() error {
	if req.FromStation == "" || req.ToStation == "" {
		return fmt.Errorf("%w: both fromStation and toStation are required", ErrMissingField)
	}
	return nil
}

// BookTicketRequest represents a ticket booking request
type BookTicketRequest struct {
	FromStation string `json:"fromStation"`
	ToStation   string `json:"toStation"`
}

// Validate validates the booking request data. Equal stations are
// rejected here at the boundary; the booking service itself does not
// repeat this guard.
func (req *BookTicketRequest) Validate() error {
	if req.FromStation == "" || req.ToStation == "" {
		return fmt.Errorf("%w: both fromStation and toStation are required", ErrMissingField)
	}
	if req.FromStation == req.ToStation {
		return fmt.Errorf("%w: fromStation and toStation must differ", ErrMissingField)
	}
	return nil
}

// GateRequest represents a station entry or exit request
type GateRequest struct {
	TicketID    string `json:"ticketId"`
	StationName string `json:"stationName"`
}

// Validate validates the gate request data
func (req *GateRequest) Validate() error {
	if req.TicketID == "" || req.StationName == "" {
		return fmt.Errorf("%w: both ticketId and stationName are required", ErrMissingField)
	}
	return nil
}
