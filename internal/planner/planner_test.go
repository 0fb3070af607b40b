package planner_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdevries/tripwise/backend/internal/domain"
	"github.com/jdevries/tripwise/backend/internal/planner"
)

// ---- fixtures --------------------------------------------------------------

func daysFixture(n int) []domain.Day {
	tripID := uuid.New()
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	days := make([]domain.Day, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, domain.Day{
			ID:       uuid.New(),
			TripID:   tripID,
			Position: i + 1,
			Date:     start.AddDate(0, 0, i),
		})
	}
	return days
}

func candidatesFixture(n int) []domain.Candidate {
	candidates := make([]domain.Candidate, 0, n)
	for i := 0; i < n; i++ {
		candidates = append(candidates, domain.Candidate{
			Title:    fmt.Sprintf("Candidate %d", i+1),
			Duration: "2 uur",
			Price:    "€ 25,00",
			Category: "culture",
		})
	}
	return candidates
}

// ---- Distribute ------------------------------------------------------------

func TestDistribute_EvenPool(t *testing.T) {
	days := daysFixture(3)
	got := planner.Distribute(days, candidatesFixture(9))

	require.Len(t, got, 9)

	// Three per day, consumed in order: candidates 1-3 on day one, 4-6 on
	// day two, 7-9 on day three.
	perDay := map[uuid.UUID]int{}
	for _, a := range got {
		perDay[a.DayID]++
	}
	for _, day := range days {
		assert.Equal(t, 3, perDay[day.ID], "day %d should hold three activities", day.Position)
	}
	assert.Equal(t, "Candidate 1", got[0].Title)
	assert.Equal(t, days[0].ID, got[0].DayID)
	assert.Equal(t, "Candidate 4", got[3].Title)
	assert.Equal(t, days[1].ID, got[3].DayID)
}

func TestDistribute_DayPartCycle(t *testing.T) {
	days := daysFixture(1)
	got := planner.Distribute(days, candidatesFixture(3))

	require.Len(t, got, 3)
	assert.Equal(t, domain.PartMorning, got[0].DayPart)
	assert.Equal(t, domain.PartAfternoon, got[1].DayPart)
	assert.Equal(t, domain.PartEvening, got[2].DayPart)

	assert.Equal(t, "09:00", got[0].StartTime)
	assert.Equal(t, "14:00", got[1].StartTime)
	assert.Equal(t, "18:00", got[2].StartTime)
}

func TestDistribute_PositionsZeroBasedPerDay(t *testing.T) {
	got := planner.Distribute(daysFixture(2), candidatesFixture(6))

	require.Len(t, got, 6)
	for i, a := range got {
		assert.Equal(t, i%3, a.Position, "activity %d", i)
	}
}

func TestDistribute_SmallPoolFrontLoads(t *testing.T) {
	// Four candidates over three days: ceil(4/3) = 2 per day, pool exhausts
	// partway through day two, day three gets nothing.
	days := daysFixture(3)
	got := planner.Distribute(days, candidatesFixture(4))

	require.Len(t, got, 4)
	assert.Equal(t, days[0].ID, got[0].DayID)
	assert.Equal(t, days[0].ID, got[1].DayID)
	assert.Equal(t, days[1].ID, got[2].DayID)
	assert.Equal(t, days[1].ID, got[3].DayID)
}

func TestDistribute_OversizedPoolCapsAtThreePerDay(t *testing.T) {
	// Twenty candidates over two days still places only three per day; the
	// excess is discarded, never squeezed in.
	got := planner.Distribute(daysFixture(2), candidatesFixture(20))

	require.Len(t, got, 6)
	for _, a := range got {
		assert.Less(t, a.Position, 3)
	}
}

func TestDistribute_ParsesDurationAndCost(t *testing.T) {
	candidates := []domain.Candidate{{
		Title:    "Canal Cruise",
		Duration: "90 minuten",
		Price:    "€ 45,50",
	}}

	got := planner.Distribute(daysFixture(1), candidates)

	require.Len(t, got, 1)
	require.NotNil(t, got[0].DurationMinutes)
	assert.Equal(t, 90, *got[0].DurationMinutes)
	require.NotNil(t, got[0].EstimatedCost)
	assert.InDelta(t, 45.50, *got[0].EstimatedCost, 0.001)
}

func TestDistribute_UnparsableDetailsGetDefaults(t *testing.T) {
	candidates := []domain.Candidate{{
		Title:    "Mystery Walk",
		Duration: "flexibel",
		Price:    "op aanvraag",
	}}

	got := planner.Distribute(daysFixture(1), candidates)

	require.Len(t, got, 1)
	require.NotNil(t, got[0].DurationMinutes)
	assert.Equal(t, planner.DefaultDurationMinutes, *got[0].DurationMinutes)
	assert.Nil(t, got[0].EstimatedCost, "unparsable price must stay unset, not zero")
}

func TestDistribute_EncodesProvenanceInNotes(t *testing.T) {
	candidates := []domain.Candidate{{
		Title:     "Rijksmuseum Tour",
		SourceURL: "https://www.getyourguide.com/amsterdam/rijksmuseum-t9",
		ImageURL:  "https://cdn.getyourguide.com/img/9.jpg",
	}}

	got := planner.Distribute(daysFixture(1), candidates)

	require.Len(t, got, 1)
	source, image := domain.DecodeProvenance(got[0].Notes)
	assert.Equal(t, candidates[0].SourceURL, source)
	assert.Equal(t, candidates[0].ImageURL, image)
}

func TestDistribute_SyntheticCandidatesLeaveNotesEmpty(t *testing.T) {
	got := planner.Distribute(daysFixture(1), []domain.Candidate{{Title: "Walking Tour"}})

	require.Len(t, got, 1)
	assert.Empty(t, got[0].Notes)
}

func TestDistribute_EmptyInputs(t *testing.T) {
	assert.Nil(t, planner.Distribute(nil, candidatesFixture(3)))
	assert.Nil(t, planner.Distribute(daysFixture(2), nil))
	assert.Nil(t, planner.Distribute(nil, nil))
}
