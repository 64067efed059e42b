package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"metro-ticketing-platform/internal/stations"
)

// StationHandler serves the station reference data
type StationHandler struct {
	directory *stations.Directory
}

// NewStationHandler creates a new station handler
func NewStationHandler(directory *stations.Directory) *StationHandler {
	return &StationHandler{directory: directory}
}

// ListStations returns every station with its fare-basis price
func (h *StationHandler) ListStations(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.directory.All())
}

// GetStation returns a single station by name
func (h *StationHandler) GetStation(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	station, ok := h.directory.Lookup(name)
	if !ok {
		respondError(w, http.StatusNotFound, "Invalid station names provided.")
		return
	}

	respondJSON(w, http.StatusOK, station)
}
