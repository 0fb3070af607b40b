package domain

import (
	"time"

	"github.com/google/uuid"
)

// Day represents one calendar day of a trip's itinerary.
// Days for a trip are contiguous: positions run 1..N with no gaps and cover
// every calendar date from the trip's start to end date inclusive.
type Day struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	Position  int       `json:"position"` // 1-based sequence number
	Date      time.Time `json:"date"`
	Title     string    `json:"title,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
