package sourcing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdevries/tripwise/backend/internal/domain"
)

func TestStyleFor_AllStylesHaveTables(t *testing.T) {
	for _, style := range []domain.TravelStyle{
		domain.StyleAdventure, domain.StyleBeach, domain.StyleCulture,
		domain.StyleNature, domain.StyleMixed,
	} {
		entry := styleFor(style)
		assert.NotEmpty(t, entry.Keywords, "style %q keywords", style)
		assert.NotEmpty(t, entry.Templates, "style %q templates", style)
	}
}

func TestStyleFor_PrimaryKeywords(t *testing.T) {
	// The first keyword doubles as the search hint and the candidate category,
	// so its identity matters more than the rest of the table.
	assert.Equal(t, "museum", styleFor(domain.StyleCulture).Keywords[0])
	assert.Equal(t, "beach", styleFor(domain.StyleBeach).Keywords[0])
	assert.Equal(t, "adventure", styleFor(domain.StyleAdventure).Keywords[0])
	assert.Equal(t, "nature", styleFor(domain.StyleNature).Keywords[0])
	assert.Equal(t, "tour", styleFor(domain.StyleMixed).Keywords[0])
}

func TestStyleFor_UnknownResolvesToMixed(t *testing.T) {
	entry := styleFor(domain.TravelStyle("cruise"))

	require.NotEmpty(t, entry.Keywords)
	assert.Equal(t, styleFor(domain.StyleMixed).Keywords, entry.Keywords)
	assert.Equal(t, styleFor(domain.StyleMixed).Templates, entry.Templates)
}
