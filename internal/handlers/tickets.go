package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"metro-ticketing-platform/internal/models"
	"metro-ticketing-platform/internal/services"
)

// TicketHandler exposes the ticket lifecycle over HTTP
type TicketHandler struct {
	ticketService services.TicketServiceInterface
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(ticketService services.TicketServiceInterface) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// CalculatePrice computes the fare for a trip without booking it
func (h *TicketHandler) CalculatePrice(w http.ResponseWriter, r *http.Request) {
	var req models.PriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, "Both fromStation and toStation are required.")
		return
	}

	price, err := h.ticketService.CalculatePrice(req.FromStation, req.ToStation)
	if err != nil {
		if errors.Is(err, models.ErrInvalidStation) {
			respondError(w, http.StatusNotFound, "Invalid station names provided.")
			return
		}
		log.Printf("Error calculating price: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]int{"price": price})
}

// BookTicket books a ticket for a trip between two stations
func (h *TicketHandler) BookTicket(w http.ResponseWriter, r *http.Request) {
	var req models.BookTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ticket, err := h.ticketService.BookTicket(req.FromStation, req.ToStation)
	if err != nil {
		if errors.Is(err, models.ErrInvalidStation) {
			respondError(w, http.StatusNotFound, "Invalid station names provided.")
			return
		}
		log.Printf("Error booking ticket: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusCreated, ticket)
}

// EnterStation records a station entry for a ticket
func (h *TicketHandler) EnterStation(w http.ResponseWriter, r *http.Request) {
	var req models.GateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, "Both ticketId and stationName are required.")
		return
	}

	ticket, err := h.ticketService.EnterStation(req.TicketID, req.StationName)
	if err != nil {
		status := gateErrorStatus(err)
		if status == http.StatusInternalServerError {
			log.Printf("Error entering station: %v", err)
			respondError(w, status, "Failed to enter")
			return
		}
		respondError(w, status, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Entry success",
		"ticket":  ticket,
	})
}

// ExitStation records a station exit for a ticket
func (h *TicketHandler) ExitStation(w http.ResponseWriter, r *http.Request) {
	var req models.GateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, "Both ticketId and stationName are required.")
		return
	}

	ticket, err := h.ticketService.ExitStation(req.TicketID, req.StationName)
	if err != nil {
		status := gateErrorStatus(err)
		if status == http.StatusInternalServerError {
			log.Printf("Error exiting station: %v", err)
			respondError(w, status, "Failed to exit")
			return
		}
		respondError(w, status, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Exit success",
		"ticket":  ticket,
	})
}

// GetTicket returns a ticket record by its identifier
func (h *TicketHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "ticketId")

	ticket, err := h.ticketService.GetTicket(ticketID)
	if err != nil {
		if errors.Is(err, models.ErrTicketNotFound) {
			respondError(w, http.StatusNotFound, "Ticket not found")
			return
		}
		log.Printf("Error loading ticket: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, ticket)
}
