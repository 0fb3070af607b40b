package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jdevries/tripwise/backend/internal/domain"
)

func TestEncodeProvenance_BothURLs(t *testing.T) {
	notes := domain.EncodeProvenance(
		"https://www.getyourguide.com/amsterdam/canal-cruise-t123",
		"https://cdn.getyourguide.com/img/tour/123.jpg",
	)

	assert.Equal(t,
		"GYG_URL:https://www.getyourguide.com/amsterdam/canal-cruise-t123|GYG_IMG:https://cdn.getyourguide.com/img/tour/123.jpg",
		notes)
}

func TestEncodeProvenance_SourceOnly(t *testing.T) {
	notes := domain.EncodeProvenance("https://www.getyourguide.com/x", "")

	assert.Equal(t, "GYG_URL:https://www.getyourguide.com/x", notes)
	assert.NotContains(t, notes, "|", "single token should carry no delimiter")
}

func TestEncodeProvenance_ImageOnly(t *testing.T) {
	notes := domain.EncodeProvenance("", "https://cdn.example.com/img.jpg")

	assert.Equal(t, "GYG_IMG:https://cdn.example.com/img.jpg", notes)
}

func TestEncodeProvenance_Empty(t *testing.T) {
	assert.Empty(t, domain.EncodeProvenance("", ""))
}

func TestDecodeProvenance_RoundTrip(t *testing.T) {
	source := "https://www.getyourguide.com/amsterdam/rijksmuseum-t9"
	image := "https://cdn.getyourguide.com/img/tour/9.jpg"

	gotSource, gotImage := domain.DecodeProvenance(domain.EncodeProvenance(source, image))

	assert.Equal(t, source, gotSource)
	assert.Equal(t, image, gotImage)
}

func TestDecodeProvenance_IgnoresFreeText(t *testing.T) {
	// Notes columns are free text; decoding must survive tokens that are
	// neither provenance prefix.
	notes := "bring comfortable shoes|GYG_URL:https://www.getyourguide.com/x|closed on Mondays"

	source, image := domain.DecodeProvenance(notes)

	assert.Equal(t, "https://www.getyourguide.com/x", source)
	assert.Empty(t, image)
}

func TestDecodeProvenance_PlainNotes(t *testing.T) {
	source, image := domain.DecodeProvenance("just a regular note")

	assert.Empty(t, source)
	assert.Empty(t, image)
}
