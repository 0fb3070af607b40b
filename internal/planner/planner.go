// Package planner distributes a pool of candidate activities across a trip's
// day/day-part slots. It is pure: no I/O, no randomness, no fallback logic —
// an empty pool simply plans nothing, and substituting synthetic candidates
// for an empty pool is the orchestrator's job.
package planner

import (
	"math"

	"github.com/jdevries/tripwise/backend/internal/domain"
)

// dayParts is the assignment cycle within a day: the i-th activity of a day
// gets dayParts[i % 3].
var dayParts = [...]domain.DayPart{
	domain.PartMorning,
	domain.PartAfternoon,
	domain.PartEvening,
}

// startTimes derives a nominal start time from the assigned day part.
var startTimes = map[domain.DayPart]string{
	domain.PartMorning:   "09:00",
	domain.PartAfternoon: "14:00",
	domain.PartEvening:   "18:00",
}

// maxPerDay caps how many activities a single day can receive.
const maxPerDay = 3

// Distribute assigns candidates to days in sequence order, at most
// min(3, ceil(len(candidates)/len(days))) per day, consuming the pool in
// order. Excess candidates are discarded. The returned activities carry day
// linkage, day part, derived start time, parsed duration and cost, and a
// 0-based position unique within each day; IDs are left for the store to
// assign.
func Distribute(days []domain.Day, candidates []domain.Candidate) []domain.Activity {
	if len(days) == 0 || len(candidates) == 0 {
		return nil
	}

	perDay := int(math.Ceil(float64(len(candidates)) / float64(len(days))))
	if perDay > maxPerDay {
		perDay = maxPerDay
	}

	planned := make([]domain.Activity, 0, len(candidates))
	next := 0
	for _, day := range days {
		for i := 0; i < perDay && next < len(candidates); i++ {
			candidate := candidates[next]
			next++

			part := dayParts[i%len(dayParts)]
			activity := domain.Activity{
				DayID:       day.ID,
				TripID:      day.TripID,
				Title:       candidate.Title,
				Description: candidate.Description,
				DayPart:     part,
				Position:    i,
				StartTime:   startTimes[part],
				Category:    candidate.Category,
				Notes:       domain.EncodeProvenance(candidate.SourceURL, candidate.ImageURL),
			}

			minutes := ParseDurationMinutes(candidate.Duration)
			activity.DurationMinutes = &minutes
			activity.EstimatedCost = ParseCost(candidate.Price)

			planned = append(planned, activity)
		}
	}
	return planned
}
