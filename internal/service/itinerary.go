package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jdevries/tripwise/backend/internal/domain"
	"github.com/jdevries/tripwise/backend/internal/planner"
	"github.com/jdevries/tripwise/backend/internal/repo"
	"github.com/jdevries/tripwise/backend/internal/sourcing"
)

// maxActivitiesPerDay bounds how many candidates generation requests from the
// sourcing layer: three slots per day (morning, afternoon, evening).
const maxActivitiesPerDay = 3

// defaultSourcingTimeout bounds the whole extraction phase of one generation.
// Sourcing that runs out of time degrades to the synthetic fallback.
const defaultSourcingTimeout = 15 * time.Second

// CandidateSource acquires candidate activities for a destination.
// Implementations never return an error: an unusable source is an empty
// result, and the orchestrator substitutes the fallback generator.
type CandidateSource interface {
	FetchCandidates(ctx context.Context, destination string, style domain.TravelStyle, desiredCount int) []domain.Candidate
}

// FallbackFunc produces synthetic candidates when extraction yields nothing.
type FallbackFunc func(destination string, style domain.TravelStyle, dayCount int) []domain.Candidate

// GenerateResult summarizes what one generation run actually wrote.
// ActivitiesAdded can be lower than requested when writes partially fail;
// the run still reports success with the real count.
type GenerateResult struct {
	Days            int
	ActivitiesAdded int
}

// ItineraryDay is a day with its activities, as returned to renderers.
type ItineraryDay struct {
	Day        domain.Day        `json:"day"`
	Activities []domain.Activity `json:"activities"`
}

// ItineraryService is the generation orchestrator. One invocation is a single
// sequential unit of work: inspect persisted state, create days if the trip
// has none, source candidates (falling back to synthetic generation),
// distribute them over the days, and persist activity by activity.
//
// The persisted state drives a three-state machine: no days yet (create them,
// then fill), days without activities (backfill only — this is how a run that
// failed after creating days gets completed by being invoked again), and days
// with activities (refuse; the existing plan must be deleted explicitly).
type ItineraryService struct {
	trips      repo.TripRepo
	days       repo.DayRepo
	activities repo.ActivityRepo
	source     CandidateSource
	fallback   FallbackFunc

	sourcingTimeout time.Duration
	log             *slog.Logger
}

// NewItineraryService wires the orchestrator. A zero sourcingTimeout gets
// the default; the fallback generator is the sourcing package's template
// generator (tests swap it through the fallback field).
func NewItineraryService(trips repo.TripRepo, days repo.DayRepo, activities repo.ActivityRepo, source CandidateSource, sourcingTimeout time.Duration, log *slog.Logger) *ItineraryService {
	if sourcingTimeout <= 0 {
		sourcingTimeout = defaultSourcingTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	return &ItineraryService{
		trips:           trips,
		days:            days,
		activities:      activities,
		source:          source,
		fallback:        sourcing.Fallback,
		sourcingTimeout: sourcingTimeout,
		log:             log,
	}
}

// Generate builds the itinerary for a trip owned by userID.
// With includeActivities false it only ensures the day skeleton exists.
func (s *ItineraryService) Generate(ctx context.Context, userID, tripID uuid.UUID, includeActivities bool) (GenerateResult, error) {
	trip, err := s.authorize(ctx, userID, tripID)
	if err != nil {
		return GenerateResult{}, err
	}

	days, err := s.days.ListByTripID(ctx, tripID)
	if err != nil {
		return GenerateResult{}, fmt.Errorf("service.ItineraryService.Generate: %w", err)
	}

	if len(days) > 0 {
		count, err := s.activities.CountByTripID(ctx, tripID)
		if err != nil {
			return GenerateResult{}, fmt.Errorf("service.ItineraryService.Generate: %w", err)
		}
		if count > 0 {
			return GenerateResult{}, fmt.Errorf("%w: delete the existing plan before regenerating", domain.ErrPlanExists)
		}
		s.log.Info("reusing existing day skeleton", "trip_id", tripID, "days", len(days))
	} else {
		days, err = s.createDays(ctx, trip)
		if err != nil {
			return GenerateResult{}, err
		}
	}

	result := GenerateResult{Days: len(days)}
	if !includeActivities {
		return result, nil
	}

	candidates := s.sourceCandidates(ctx, trip, len(days))
	planned := planner.Distribute(days, candidates)

	for _, activity := range planned {
		id, err := s.activities.Create(ctx, activity)
		if err != nil {
			// A failure partway through leaves a partially populated trip;
			// that state is recoverable by invoking generation again.
			return result, fmt.Errorf("service.ItineraryService.Generate: persist activity: %w", err)
		}
		if err := s.activities.UpdateDetails(ctx, id, activity); err != nil {
			// Optional fields only. The activity exists and counts.
			s.log.Warn("activity details landed incomplete", "activity_id", id, "error", err)
		}
		result.ActivitiesAdded++
	}

	s.log.Info("itinerary generated",
		"trip_id", tripID, "days", result.Days, "activities", result.ActivitiesAdded)
	return result, nil
}

// Delete removes all itinerary days for a trip owned by userID; activities
// cascade with them. Deleting an empty itinerary is not an error.
func (s *ItineraryService) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	if _, err := s.authorize(ctx, userID, tripID); err != nil {
		return err
	}

	removed, err := s.days.DeleteByTripID(ctx, tripID)
	if err != nil {
		return fmt.Errorf("service.ItineraryService.Delete: %w", err)
	}
	s.log.Info("itinerary deleted", "trip_id", tripID, "days_removed", removed)
	return nil
}

// Get returns the trip's days with their activities, for rendering.
func (s *ItineraryService) Get(ctx context.Context, userID, tripID uuid.UUID) ([]ItineraryDay, error) {
	if _, err := s.authorize(ctx, userID, tripID); err != nil {
		return nil, err
	}

	days, err := s.days.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.Get: %w", err)
	}

	result := make([]ItineraryDay, 0, len(days))
	for _, day := range days {
		activities, err := s.activities.ListByDayID(ctx, day.ID)
		if err != nil {
			return nil, fmt.Errorf("service.ItineraryService.Get: %w", err)
		}
		if activities == nil {
			activities = []domain.Activity{}
		}
		result = append(result, ItineraryDay{Day: day, Activities: activities})
	}
	return result, nil
}

// authorize resolves the trip and verifies ownership before any state is
// inspected or touched.
func (s *ItineraryService) authorize(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error) {
	if userID == uuid.Nil {
		return domain.Trip{}, domain.ErrNotAuthenticated
	}
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.ItineraryService: %w", err)
	}
	if trip.OwnerID != userID {
		return domain.Trip{}, domain.ErrNotOwner
	}
	return trip, nil
}

// createDays materializes the full inclusive date sequence as days 1..N.
func (s *ItineraryService) createDays(ctx context.Context, trip domain.Trip) ([]domain.Day, error) {
	count := trip.DayCount()
	days := make([]domain.Day, 0, count)
	for i := 0; i < count; i++ {
		day, err := s.days.Create(ctx, domain.Day{
			TripID:   trip.ID,
			Position: i + 1,
			Date:     trip.StartDate.AddDate(0, 0, i),
			Title:    fmt.Sprintf("Day %d", i+1),
		})
		if err != nil {
			return nil, fmt.Errorf("service.ItineraryService.Generate: create day %d: %w", i+1, err)
		}
		days = append(days, day)
	}
	return days, nil
}

// sourceCandidates runs extraction under its own deadline and substitutes the
// synthetic fallback when extraction yields nothing usable.
func (s *ItineraryService) sourceCandidates(ctx context.Context, trip domain.Trip, dayCount int) []domain.Candidate {
	sctx, cancel := context.WithTimeout(ctx, s.sourcingTimeout)
	defer cancel()

	candidates := s.source.FetchCandidates(sctx, trip.Destination, trip.TravelStyle, dayCount*maxActivitiesPerDay)
	if len(candidates) > 0 {
		return candidates
	}

	s.log.Info("extraction came up empty, generating synthetic activities",
		"trip_id", trip.ID, "destination", trip.Destination, "style", trip.TravelStyle)
	return s.fallback(trip.Destination, trip.TravelStyle, dayCount)
}
