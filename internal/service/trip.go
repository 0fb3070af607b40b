// Package service contains the business logic for the Tripwise backend.
// Services validate inputs, enforce business rules and ownership, and
// orchestrate repo calls. No SQL lives here — services depend on repo
// interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jdevries/tripwise/backend/internal/domain"
	"github.com/jdevries/tripwise/backend/internal/repo"
)

// TripService implements business logic for Trip operations.
type TripService struct {
	repo repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r}
}

// Create validates and persists a new trip owned by ownerID.
func (s *TripService) Create(ctx context.Context, ownerID uuid.UUID, trip domain.Trip) (domain.Trip, error) {
	if ownerID == uuid.Nil {
		return domain.Trip{}, domain.ErrNotAuthenticated
	}
	trip.OwnerID = ownerID
	if trip.TravelStyle == "" {
		trip.TravelStyle = domain.StyleMixed
	}
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	result, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip, enforcing that the caller owns it.
func (s *TripService) GetByID(ctx context.Context, ownerID, tripID uuid.UUID) (domain.Trip, error) {
	trip, err := s.repo.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	if trip.OwnerID != ownerID {
		return domain.Trip{}, domain.ErrNotOwner
	}
	return trip, nil
}

// List returns all trips owned by the caller.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Trip, error) {
	trips, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Delete removes a trip owned by the caller. Itinerary days and activities
// cascade with it.
func (s *TripService) Delete(ctx context.Context, ownerID, tripID uuid.UUID) error {
	trip, err := s.repo.GetByID(ctx, tripID)
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	if trip.OwnerID != ownerID {
		return domain.ErrNotOwner
	}
	if err := s.repo.Delete(ctx, tripID); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// validateTrip enforces business rules for trip creation.
//   - Destination must be non-empty (whitespace-only is rejected).
//   - Travel style must be one of the supported enum values.
//   - End date must not be before the start date.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Destination) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if !trip.TravelStyle.Valid() {
		return fmt.Errorf("%w: unknown travel style %q", domain.ErrValidation, trip.TravelStyle)
	}
	if trip.StartDate.IsZero() || trip.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end date are required", domain.ErrValidation)
	}
	if trip.EndDate.Before(trip.StartDate) {
		return fmt.Errorf("%w: end date must not be before start date", domain.ErrValidation)
	}
	return nil
}
