package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"metro-ticketing-platform/internal/models"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// gateErrorStatus maps lifecycle errors from the gate operations to
// HTTP statuses. The original API reports every domain guard failure,
// including an unknown ticket, as a 400.
func gateErrorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrTicketNotFound),
		errors.Is(err, models.ErrStationMismatch),
		errors.Is(err, models.ErrTicketExpired),
		errors.Is(err, models.ErrAlreadyEntered),
		errors.Is(err, models.ErrAlreadyExited):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
