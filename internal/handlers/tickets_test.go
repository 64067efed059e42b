package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"metro-ticketing-platform/internal/models"
)

// MockTicketService implements services.TicketServiceInterface for testing
type MockTicketService struct {
	mock.Mock
}

func (m *MockTicketService) CalculatePrice(fromStation, toStation string) (int, error) {
	args := m.Called(fromStation, toStation)
	return args.Int(0), args.Error(1)
}

func (m *MockTicketService) BookTicket(fromStation, toStation string) (*models.Ticket, error) {
	args := m.Called(fromStation, toStation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *MockTicketService) EnterStation(ticketID, stationName string) (*models.Ticket, error) {
	args := m.Called(ticketID, stationName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *MockTicketService) ExitStation(ticketID, stationName string) (*models.Ticket, error) {
	args := m.Called(ticketID, stationName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *MockTicketService) GetTicket(ticketID string) (*models.Ticket, error) {
	args := m.Called(ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func ticketRouter(svc *MockTicketService) *chi.Mux {
	h := NewTicketHandler(svc)
	r := chi.NewRouter()
	r.Post("/tickets/calculate-price", h.CalculatePrice)
	r.Post("/tickets/book", h.BookTicket)
	r.Post("/tickets/enter-station", h.EnterStation)
	r.Post("/tickets/exit-station", h.ExitStation)
	r.Get("/tickets/{ticketId}", h.GetTicket)
	return r
}

func postJSON(t *testing.T, router http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func sampleTicket() *models.Ticket {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return &models.Ticket{
		TicketID:    "b7e6a1c4-0000-4000-8000-000000000001",
		FromStation: "Central",
		ToStation:   "Stadium",
		Price:       45,
		BookingDate: now,
		IsValid:     now.Add(6 * time.Hour),
		Status:      models.TicketBooked,
	}
}

func TestCalculatePrice(t *testing.T) {
	svc := new(MockTicketService)
	svc.On("CalculatePrice", "Central", "Stadium").Return(45, nil)

	rr := postJSON(t, ticketRouter(svc), "/tickets/calculate-price",
		models.PriceRequest{FromStation: "Central", ToStation: "Stadium"})

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]int
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 45, resp["price"])
	svc.AssertExpectations(t)
}

func TestCalculatePrice_MissingField(t *testing.T) {
	svc := new(MockTicketService)

	rr := postJSON(t, ticketRouter(svc), "/tickets/calculate-price",
		models.PriceRequest{FromStation: "Central"})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "CalculatePrice", mock.Anything, mock.Anything)
}

func TestCalculatePrice_UnknownStation(t *testing.T) {
	svc := new(MockTicketService)
	svc.On("CalculatePrice", "Central", "Atlantis").Return(0, models.ErrInvalidStation)

	rr := postJSON(t, ticketRouter(svc), "/tickets/calculate-price",
		models.PriceRequest{FromStation: "Central", ToStation: "Atlantis"})

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "error")
}

func TestBookTicket(t *testing.T) {
	svc := new(MockTicketService)
	svc.On("BookTicket", "Central", "Stadium").Return(sampleTicket(), nil)

	rr := postJSON(t, ticketRouter(svc), "/tickets/book",
		models.BookTicketRequest{FromStation: "Central", ToStation: "Stadium"})

	assert.Equal(t, http.StatusCreated, rr.Code)

	var ticket models.Ticket
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ticket))
	assert.Equal(t, "Central", ticket.FromStation)
	assert.Equal(t, 45, ticket.Price)
	assert.Equal(t, models.TicketBooked, ticket.Status)
}

func TestBookTicket_EqualStations(t *testing.T) {
	svc := new(MockTicketService)

	rr := postJSON(t, ticketRouter(svc), "/tickets/book",
		models.BookTicketRequest{FromStation: "Central", ToStation: "Central"})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "BookTicket", mock.Anything, mock.Anything)
}

func TestBookTicket_UnknownStation(t *testing.T) {
	svc := new(MockTicketService)
	svc.On("BookTicket", "Central", "Atlantis").Return(nil, models.ErrInvalidStation)

	rr := postJSON(t, ticketRouter(svc), "/tickets/book",
		models.BookTicketRequest{FromStation: "Central", ToStation: "Atlantis"})

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestBookTicket_InvalidBody(t *testing.T) {
	svc := new(MockTicketService)
	router := ticketRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/tickets/book", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestEnterStation(t *testing.T) {
	entered := sampleTicket()
	entry := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	entered.EntryTime = &entry
	entered.Status = models.TicketEntered

	svc := new(MockTicketService)
	svc.On("EnterStation", entered.TicketID, "Central").Return(entered, nil)

	rr := postJSON(t, ticketRouter(svc), "/tickets/enter-station",
		models.GateRequest{TicketID: entered.TicketID, StationName: "Central"})

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Message string        `json:"message"`
		Ticket  models.Ticket `json:"ticket"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Entry success", resp.Message)
	assert.Equal(t, models.TicketEntered, resp.Ticket.Status)
}

func TestEnterStation_GuardFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "unknown ticket", err: models.ErrTicketNotFound},
		{name: "wrong station", err: models.ErrStationMismatch},
		{name: "expired ticket", err: models.ErrTicketExpired},
		{name: "already entered", err: models.ErrAlreadyEntered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockTicketService)
			svc.On("EnterStation", "t-1", "Central").Return(nil, tt.err)

			rr := postJSON(t, ticketRouter(svc), "/tickets/enter-station",
				models.GateRequest{TicketID: "t-1", StationName: "Central"})

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, rr.Body.String(), "error")
		})
	}
}

func TestExitStation(t *testing.T) {
	exited := sampleTicket()
	exit := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	exited.ExitTime = &exit
	exited.Status = models.TicketEntered

	svc := new(MockTicketService)
	svc.On("ExitStation", exited.TicketID, "Stadium").Return(exited, nil)

	rr := postJSON(t, ticketRouter(svc), "/tickets/exit-station",
		models.GateRequest{TicketID: exited.TicketID, StationName: "Stadium"})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Exit success")
}

func TestExitStation_AlreadyExited(t *testing.T) {
	svc := new(MockTicketService)
	svc.On("ExitStation", "t-1", "Stadium").Return(nil, models.ErrAlreadyExited)

	rr := postJSON(t, ticketRouter(svc), "/tickets/exit-station",
		models.GateRequest{TicketID: "t-1", StationName: "Stadium"})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestExitStation_MissingField(t *testing.T) {
	svc := new(MockTicketService)

	rr := postJSON(t, ticketRouter(svc), "/tickets/exit-station",
		models.GateRequest{TicketID: "t-1"})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "ExitStation", mock.Anything, mock.Anything)
}

func TestGetTicket(t *testing.T) {
	ticket := sampleTicket()
	svc := new(MockTicketService)
	svc.On("GetTicket", ticket.TicketID).Return(ticket, nil)

	req := httptest.NewRequest(http.MethodGet, "/tickets/"+ticket.TicketID, nil)
	rr := httptest.NewRecorder()
	ticketRouter(svc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var got models.Ticket
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, ticket.TicketID, got.TicketID)
}

func TestGetTicket_NotFound(t *testing.T) {
	svc := new(MockTicketService)
	svc.On("GetTicket", "missing").Return(nil, models.ErrTicketNotFound)

	req := httptest.NewRequest(http.MethodGet, "/tickets/missing", nil)
	rr := httptest.NewRecorder()
	ticketRouter(svc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
