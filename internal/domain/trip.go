// Package domain contains the core data types for the Tripwise backend.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (sourcing, planner, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TravelStyle categorizes a trip and drives which activity keywords and
// fallback templates the sourcing layer uses.
type TravelStyle string

// The five supported travel styles. Unknown values fall back to StyleMixed
// when the sourcing layer resolves keyword and template tables.
const (
	StyleAdventure TravelStyle = "adventure"
	StyleBeach     TravelStyle = "beach"
	StyleCulture   TravelStyle = "culture"
	StyleNature    TravelStyle = "nature"
	StyleMixed     TravelStyle = "mixed"
)

// Valid reports whether s is one of the five supported styles.
func (s TravelStyle) Valid() bool {
	switch s {
	case StyleAdventure, StyleBeach, StyleCulture, StyleNature, StyleMixed:
		return true
	}
	return false
}

// Trip represents a planned trip to a single destination.
// A trip is the top-level aggregate; itinerary days belong to a trip.
// The itinerary engine only reads trips, it never mutates them.
type Trip struct {
	ID          uuid.UUID   `json:"id"`
	OwnerID     uuid.UUID   `json:"owner_id"`
	Destination string      `json:"destination"`
	TravelStyle TravelStyle `json:"travel_style"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	Notes       string      `json:"notes,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// DayCount returns the number of calendar days the trip spans, inclusive of
// both the start and end date. A same-day trip counts as one day.
func (t Trip) DayCount() int {
	start := t.StartDate.Truncate(24 * time.Hour)
	end := t.EndDate.Truncate(24 * time.Hour)
	return int(end.Sub(start).Hours()/24) + 1
}
