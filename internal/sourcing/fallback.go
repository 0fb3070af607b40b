package sourcing

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/jdevries/tripwise/backend/internal/domain"
)

// Fallback produces synthetic candidates from the travel style's template
// table when extraction yields nothing usable. Titles and descriptions are
// deterministic for a given destination/style/dayCount; rating, review count,
// and duration are randomized within fixed ranges but are cosmetic only and
// never drive decisions elsewhere. Synthetic candidates carry no source or
// image URL.
func Fallback(destination string, style domain.TravelStyle, dayCount int) []domain.Candidate {
	if dayCount <= 0 {
		return nil
	}

	templates := styleFor(style).Templates
	perDay := int(math.Ceil(float64(len(templates)) / float64(dayCount)))
	if perDay < 2 {
		perDay = 2
	}
	if perDay > 3 {
		perDay = 3
	}

	total := dayCount * perDay
	candidates := make([]domain.Candidate, 0, total)
	for i := 0; i < total; i++ {
		template := templates[i%len(templates)]
		candidates = append(candidates, domain.Candidate{
			Title:       fmt.Sprintf("%s in %s", template, destination),
			Description: fmt.Sprintf("%s is a popular way to spend part of your stay in %s.", template, destination),
			Rating:      4.0 + rand.Float64(),        // 4.0 to 5.0
			Reviews:     50 + rand.IntN(501),         // 50 to 550
			Duration:    fmt.Sprintf("%d uur", 2+rand.IntN(4)), // 2 to 5 hours
			Category:    fallbackCategory(style),
		})
	}
	return candidates
}

// fallbackCategory tags synthetic candidates with their style, falling back
// to mixed for unknown styles, mirroring the keyword table resolution.
func fallbackCategory(style domain.TravelStyle) string {
	if style.Valid() {
		return string(style)
	}
	return string(domain.StyleMixed)
}
