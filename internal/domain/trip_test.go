package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jdevries/tripwise/backend/internal/domain"
)

func TestTravelStyle_Valid(t *testing.T) {
	valid := []domain.TravelStyle{
		domain.StyleAdventure,
		domain.StyleBeach,
		domain.StyleCulture,
		domain.StyleNature,
		domain.StyleMixed,
	}
	for _, style := range valid {
		assert.True(t, style.Valid(), "style %q should be valid", style)
	}

	assert.False(t, domain.TravelStyle("").Valid())
	assert.False(t, domain.TravelStyle("luxury").Valid())
}

func TestTrip_DayCount_SameDay(t *testing.T) {
	day := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	trip := domain.Trip{StartDate: day, EndDate: day}

	assert.Equal(t, 1, trip.DayCount(), "a same-day trip is one day")
}

func TestTrip_DayCount_Inclusive(t *testing.T) {
	trip := domain.Trip{
		StartDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC),
	}

	// July 1, 2, and 3 — both endpoints count.
	assert.Equal(t, 3, trip.DayCount())
}

func TestTrip_DayCount_AcrossMonthBoundary(t *testing.T) {
	trip := domain.Trip{
		StartDate: time.Date(2025, 6, 29, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, 4, trip.DayCount())
}
