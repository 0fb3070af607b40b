// Package handler implements the HTTP handlers for the Tripwise API.
// All handlers are methods on Server; they are split into resource-specific
// files (health.go, trip.go, itinerary.go) but share the same Server struct
// so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jdevries/tripwise/backend/internal/domain"
	"github.com/jdevries/tripwise/backend/internal/service"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, ownerID uuid.UUID, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, ownerID, tripID uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]domain.Trip, error)
	Delete(ctx context.Context, ownerID, tripID uuid.UUID) error
}

// ItineraryServicer defines the operations the itinerary handlers depend on.
type ItineraryServicer interface {
	Generate(ctx context.Context, userID, tripID uuid.UUID, includeActivities bool) (service.GenerateResult, error)
	Delete(ctx context.Context, userID, tripID uuid.UUID) error
	Get(ctx context.Context, userID, tripID uuid.UUID) ([]service.ItineraryDay, error)
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	trips       TripServicer
	itineraries ItineraryServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, itineraries ItineraryServicer) *Server {
	return &Server{trips: trips, itineraries: itineraries}
}

// Routes assembles the API router. authn is the identity middleware applied
// to everything under /trips; the health endpoint stays unauthenticated.
func (s *Server) Routes(authn func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/trips", func(r chi.Router) {
		r.Use(authn)
		r.Post("/", s.CreateTrip)
		r.Get("/", s.ListTrips)
		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Delete("/", s.DeleteTrip)
			r.Post("/itinerary", s.GenerateItinerary)
			r.Get("/itinerary", s.GetItinerary)
			r.Delete("/itinerary", s.DeleteItinerary)
		})
	})

	return r
}
