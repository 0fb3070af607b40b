package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jdevries/tripwise/backend/internal/domain"
	"github.com/jdevries/tripwise/backend/internal/middleware"
)

// createTripRequest is the POST /trips payload. Dates are date-only strings.
type createTripRequest struct {
	Destination string `json:"destination"`
	TravelStyle string `json:"travel_style"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Notes       string `json:"notes"`
}

const dateLayout = "2006-01-02"

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		respondError(w, domain.ErrNotAuthenticated)
		return
	}

	var req createTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid request body")
		return
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "start_date must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "end_date must be YYYY-MM-DD")
		return
	}

	trip := domain.Trip{
		Destination: req.Destination,
		TravelStyle: domain.TravelStyle(req.TravelStyle),
		StartDate:   start,
		EndDate:     end,
		Notes:       req.Notes,
	}

	created, err := s.trips.Create(r.Context(), userID, trip)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListTrips handles GET /trips.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		respondError(w, domain.ErrNotAuthenticated)
		return
	}

	trips, err := s.trips.List(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trips)
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := s.tripRequest(w, r)
	if !ok {
		return
	}

	trip, err := s.trips.GetByID(r.Context(), userID, tripID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// DeleteTrip handles DELETE /trips/{tripID}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := s.tripRequest(w, r)
	if !ok {
		return
	}

	if err := s.trips.Delete(r.Context(), userID, tripID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// tripRequest resolves the caller identity and the tripID path parameter,
// writing the error response itself when either is unusable.
func (s *Server) tripRequest(w http.ResponseWriter, r *http.Request) (userID, tripID uuid.UUID, ok bool) {
	userID, ok = middleware.UserIDFrom(r.Context())
	if !ok {
		respondError(w, domain.ErrNotAuthenticated)
		return uuid.Nil, uuid.Nil, false
	}
	tripID, err := uuid.Parse(chi.URLParam(r, "tripID"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "trip id must be a UUID")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, tripID, true
}
