package domain

import (
	"time"

	"github.com/google/uuid"
)

// DayPart is the coarse time-of-day bucket an activity is scheduled in.
type DayPart string

// Day-part values. The planner only ever assigns the three timed parts;
// PartFullDay is a valid stored value but is never produced by generation.
const (
	PartMorning   DayPart = "morning"
	PartAfternoon DayPart = "afternoon"
	PartEvening   DayPart = "evening"
	PartFullDay   DayPart = "full_day"
)

// Activity is one scheduled item within a day.
// Position is unique within its day and 0-based in assignment order.
// Notes may carry encoded provenance (see provenance.go) when the storage
// schema has no dedicated source/image URL columns.
type Activity struct {
	ID              uuid.UUID `json:"id"`
	DayID           uuid.UUID `json:"day_id"`
	TripID          uuid.UUID `json:"trip_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	DayPart         DayPart   `json:"day_part"`
	Position        int       `json:"position"`
	StartTime       string    `json:"start_time,omitempty"` // "HH:MM", derived from day part
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	EstimatedCost   *float64  `json:"estimated_cost,omitempty"`
	Location        string    `json:"location,omitempty"`
	Category        string    `json:"category,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
