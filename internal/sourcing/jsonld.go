package sourcing

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/jdevries/tripwise/backend/internal/domain"
)

// ldTypes are the structured-data types that indicate a bookable listing or
// tourist attraction, the only objects worth turning into candidates.
var ldTypes = map[string]bool{
	"TouristAttraction": true,
	"TouristTrip":       true,
	"Product":           true,
	"Event":             true,
}

// structuredDataCandidates is the second extraction strategy: scan embedded
// JSON-LD blocks for listing objects. It tolerates all of the shapes the
// source has been seen to emit: a single object, a top-level array, @graph
// wrappers, and ItemList/itemListElement nesting.
func (e *Extractor) structuredDataCandidates(doc *goquery.Document, category string) []domain.Candidate {
	var candidates []domain.Candidate

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, block *goquery.Selection) {
		var payload any
		if err := json.Unmarshal([]byte(block.Text()), &payload); err != nil {
			return
		}
		for _, obj := range flattenLD(payload) {
			if candidate, ok := e.candidateFromLD(obj, category); ok {
				candidates = append(candidates, candidate)
			}
		}
	})

	return candidates
}

// flattenLD walks a decoded JSON-LD payload and collects every object node,
// descending into arrays, @graph, and itemListElement/item wrappers.
func flattenLD(payload any) []map[string]any {
	var objects []map[string]any

	switch v := payload.(type) {
	case []any:
		for _, item := range v {
			objects = append(objects, flattenLD(item)...)
		}
	case map[string]any:
		objects = append(objects, v)
		for _, key := range []string{"@graph", "itemListElement"} {
			if nested, ok := v[key]; ok {
				objects = append(objects, flattenLD(nested)...)
			}
		}
		if item, ok := v["item"]; ok {
			objects = append(objects, flattenLD(item)...)
		}
	}

	return objects
}

// candidateFromLD converts one JSON-LD object into a candidate.
// The same gates apply as for selector extraction: a usable title and a URL
// on the source's own domain.
func (e *Extractor) candidateFromLD(obj map[string]any, category string) (domain.Candidate, bool) {
	if !ldTypes[ldType(obj)] {
		return domain.Candidate{}, false
	}

	title := ldString(obj["name"])
	if utf8.RuneCountInString(title) < 3 {
		return domain.Candidate{}, false
	}

	detailURL := e.resolveURL(ldString(obj["url"]))
	if !e.sameDomain(detailURL) {
		return domain.Candidate{}, false
	}

	candidate := domain.Candidate{
		Title:       title,
		Description: ldString(obj["description"]),
		Duration:    ldString(obj["duration"]),
		Category:    category,
		SourceURL:   detailURL,
		ImageURL:    ldString(obj["image"]),
	}

	if offers, ok := obj["offers"].(map[string]any); ok {
		candidate.Price = ldPrice(offers)
	}
	if rating, ok := obj["aggregateRating"].(map[string]any); ok {
		candidate.Rating = parseLeadingDecimal(ldString(rating["ratingValue"]))
		candidate.Reviews = parseLeadingInt(ldString(rating["reviewCount"]))
	}

	return candidate, true
}

// ldType returns the object's declared type. @type may be a string or an
// array of strings; the first recognized entry wins.
func ldType(obj map[string]any) string {
	switch t := obj["@type"].(type) {
	case string:
		return t
	case []any:
		for _, entry := range t {
			if s, ok := entry.(string); ok && ldTypes[s] {
				return s
			}
		}
	}
	return ""
}

// ldString coerces the loose value shapes JSON-LD uses for scalar properties:
// plain strings, numbers, arrays (first usable entry), and {url: ...} objects.
func ldString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strings.TrimSuffix(fmt.Sprintf("%.2f", val), ".00")
	case []any:
		for _, entry := range val {
			if s := ldString(entry); s != "" {
				return s
			}
		}
	case map[string]any:
		return ldString(val["url"])
	}
	return ""
}

// ldPrice renders an offers block as display price text. The planner parses
// cost from a currency-prefixed string, so a bare numeric price gets its
// currency symbol prepended here.
func ldPrice(offers map[string]any) string {
	price := ldString(offers["price"])
	if price == "" {
		price = ldString(offers["lowPrice"])
	}
	if price == "" {
		return ""
	}
	if strings.HasPrefix(price, "€") || strings.HasPrefix(price, "$") || strings.HasPrefix(price, "£") {
		return price
	}
	switch ldString(offers["priceCurrency"]) {
	case "USD":
		return "$ " + price
	case "GBP":
		return "£ " + price
	default:
		return "€ " + price
	}
}
